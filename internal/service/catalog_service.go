package service

import (
	"context"

	"pedidos-service/internal/models"
	"pedidos-service/internal/store"
	"pedidos-service/internal/util"

	"go.uber.org/zap"
)

// CatalogService handles the producto catalog
type CatalogService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(st *store.Store) *CatalogService {
	return &CatalogService{
		store:  st,
		logger: util.GetLogger(),
	}
}

// AddProductoRequest represents an admin request to grow the catalog
type AddProductoRequest struct {
	Nombre string `json:"nombre" binding:"required"`
}

// List returns the catalog ordered by nombre, degrading to an empty
// list on failure. Listing also pushes the snapshot to subscribers.
func (s *CatalogService) List(ctx context.Context) []models.Producto {
	productos, err := s.store.ListProductos(ctx)
	if err != nil {
		util.QueryFailuresTotal.WithLabelValues("productos_list").Inc()
		s.logger.Error("Failed to list productos", zap.Error(err))
		return []models.Producto{}
	}
	return productos
}

// FindPorNombre looks up a producto by exact name; nil means not found.
func (s *CatalogService) FindPorNombre(ctx context.Context, nombre string) *models.Producto {
	producto, err := s.store.GetProductoPorNombre(ctx, nombre)
	if err != nil {
		util.QueryFailuresTotal.WithLabelValues("producto_find").Inc()
		s.logger.Error("Failed to find producto", zap.Error(err))
		return nil
	}
	return producto
}

// Add grows the catalog; a duplicate nombre is surfaced to the caller.
func (s *CatalogService) Add(ctx context.Context, req *AddProductoRequest) (*models.Producto, error) {
	return s.store.AddProducto(ctx, req.Nombre)
}

// Subscribe registers a catalog observer; see Store.SubscribeProductos.
func (s *CatalogService) Subscribe() <-chan []models.Producto {
	return s.store.SubscribeProductos()
}
