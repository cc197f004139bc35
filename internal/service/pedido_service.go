package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pedidos-service/internal/models"
	"pedidos-service/internal/store"
	"pedidos-service/internal/ticket"
	"pedidos-service/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrInvalidTicket rejects a numero de tillo fragment that has no digits
// left after stripping; the sentinel code is never persisted.
var ErrInvalidTicket = errors.New("numero de tillo has no digits")

// PedidoService handles pedido business logic
type PedidoService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewPedidoService creates a new pedido service
func NewPedidoService(st *store.Store) *PedidoService {
	return &PedidoService{
		store:  st,
		logger: util.GetLogger(),
	}
}

// CreatePedidoRequest represents a request to create a pedido
type CreatePedidoRequest struct {
	ClienteID    int64               `json:"cliente_id" binding:"required"`
	NumeroTillo  string              `json:"numero_tillo" binding:"required"`
	Precio       decimal.Decimal     `json:"precio" binding:"required"`
	Estado       string              `json:"estado" binding:"required,oneof=PE EN CA"`
	FechaEntrega string              `json:"fecha_entrega" binding:"required"`
	Observacion  *string             `json:"observacion"`
	Items        []PedidoItemRequest `json:"items" binding:"dive"`
}

// PedidoItemRequest represents one line of the pedido. Zero quantities
// are accepted and dropped at persistence time.
type PedidoItemRequest struct {
	ProductoID int64 `json:"producto_id" binding:"required"`
	Cantidad   int   `json:"cantidad" binding:"min=0"`
}

// CreatePedidoResponse represents the response after creating a pedido
type CreatePedidoResponse struct {
	PedidoID    int64  `json:"pedido_id"`
	NumeroTillo string `json:"numero_tillo"`
}

// Create resolves the final numero de tillo from the manually entered
// fragment, stamps the creation and update timestamps with one instant,
// and persists the pedido with its items in a single transaction.
func (s *PedidoService) Create(ctx context.Context, req *CreatePedidoRequest) (*CreatePedidoResponse, error) {
	ctx, span := util.StartSpan(ctx, "PedidoService.Create")
	defer span.End()

	numeroTillo := ticket.Generate(req.NumeroTillo)
	if ticket.IsInvalid(numeroTillo) {
		util.PedidosFailedTotal.WithLabelValues("invalid_ticket").Inc()
		return nil, fmt.Errorf("%w: %q", ErrInvalidTicket, req.NumeroTillo)
	}

	ahora := time.Now().Format(time.RFC3339)
	pedido := &models.Pedido{
		ClienteID:          req.ClienteID,
		NumeroTillo:        numeroTillo,
		Precio:             req.Precio,
		Estado:             req.Estado,
		FechaEntrega:       req.FechaEntrega,
		FechaActualizacion: ahora,
		FechaCreacion:      ahora,
		Observacion:        req.Observacion,
	}

	items := make([]models.PedidoItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.PedidoItem{
			ProductoID: item.ProductoID,
			Cantidad:   item.Cantidad,
		})
	}

	pedidoID, err := s.store.CreatePedido(ctx, pedido, items)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			util.PedidosFailedTotal.WithLabelValues("duplicate_ticket").Inc()
		case errors.Is(err, store.ErrNotReady):
			util.PedidosFailedTotal.WithLabelValues("not_ready").Inc()
		default:
			util.PedidosFailedTotal.WithLabelValues("db_error").Inc()
		}
		return nil, err
	}

	util.PedidosCreatedTotal.Inc()
	s.logger.Info("Pedido created",
		zap.Int64("pedido_id", pedidoID),
		zap.String("numero_tillo", numeroTillo))

	return &CreatePedidoResponse{
		PedidoID:    pedidoID,
		NumeroTillo: numeroTillo,
	}, nil
}

// ListConResumen returns all pedidos newest-first with their derived
// summaries. An unexpected storage failure is logged and metered and
// degrades to an empty list; it never crosses the collaborator boundary
// as a crash.
func (s *PedidoService) ListConResumen(ctx context.Context) []models.PedidoResumen {
	ctx, span := util.StartSpan(ctx, "PedidoService.ListConResumen")
	defer span.End()

	pedidos, err := s.store.ListPedidosConResumen(ctx)
	if err != nil {
		util.QueryFailuresTotal.WithLabelValues("pedidos_list").Inc()
		s.logger.Error("Failed to list pedidos", zap.Error(err))
		return []models.PedidoResumen{}
	}
	return pedidos
}

// Get returns one pedido with its items, or nil when the id does not
// exist. Storage failures degrade to nil after logging.
func (s *PedidoService) Get(ctx context.Context, pedidoID int64) *models.PedidoDetalle {
	ctx, span := util.StartSpan(ctx, "PedidoService.Get")
	defer span.End()

	detalle, err := s.store.GetPedidoConItems(ctx, pedidoID)
	if err != nil {
		util.QueryFailuresTotal.WithLabelValues("pedido_get").Inc()
		s.logger.Error("Failed to get pedido",
			zap.Int64("pedido_id", pedidoID),
			zap.Error(err))
		return nil
	}
	return detalle
}
