package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pedidos-service/internal/models"
	"pedidos-service/internal/util"

	"go.uber.org/zap"
)

// seedCatalog is the fixed starter catalog inserted at first run.
var seedCatalog = []string{
	"Chancho", "Costilla", "Tortillas",
	"Piernas", "Pavo", "Agrio",
	"Brazos", "Pollos", "Motes",
}

// SeedProductos inserts the starter catalog. A unique violation on a
// name means the row is already seeded and is swallowed; any other
// failure is logged and the remaining insertions continue. Safe to call
// on every startup.
func (s *Store) SeedProductos(ctx context.Context) error {
	for _, nombre := range seedCatalog {
		_, err := s.db.ExecContext(ctx, `INSERT INTO Productos (nombre) VALUES (?)`, nombre)
		if err == nil {
			util.ProductosSeededTotal.Inc()
			continue
		}
		if isUniqueViolation(err) {
			continue
		}
		s.logger.Error("Failed to seed producto",
			zap.String("nombre", nombre),
			zap.Error(err))
	}
	return nil
}

// ListProductos returns the whole catalog ordered by nombre and
// publishes the snapshot to catalog subscribers. Before the gate is
// ready it returns an empty slice, not an error.
func (s *Store) ListProductos(ctx context.Context) ([]models.Producto, error) {
	if !s.gate.Ready() {
		return []models.Producto{}, nil
	}

	productos := []models.Producto{}
	err := s.db.SelectContext(ctx, &productos,
		`SELECT id, nombre FROM Productos ORDER BY nombre ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list productos: %w", err)
	}

	s.publishProductos(productos)
	return productos, nil
}

// GetProductoPorNombre looks up a producto by exact name. A missing row
// is (nil, nil), distinct from a query failure.
func (s *Store) GetProductoPorNombre(ctx context.Context, nombre string) (*models.Producto, error) {
	if !s.gate.Ready() {
		return nil, nil
	}

	var producto models.Producto
	err := s.db.GetContext(ctx, &producto,
		`SELECT id, nombre FROM Productos WHERE nombre = ?`, nombre)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get producto %q: %w", nombre, err)
	}
	return &producto, nil
}

// AddProducto grows the catalog beyond the seeded set. Returns
// ErrDuplicate when the name already exists.
func (s *Store) AddProducto(ctx context.Context, nombre string) (*models.Producto, error) {
	if !s.gate.Ready() {
		return nil, ErrNotReady
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO Productos (nombre) VALUES (?)`, nombre)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert producto: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read producto id: %w", err)
	}
	return &models.Producto{ID: id, Nombre: nombre}, nil
}

// DeleteProducto removes a catalog entry. The RESTRICT foreign key
// blocks deletion while any pedido item references the producto; that
// case surfaces as ErrRestricted with the row left intact.
func (s *Store) DeleteProducto(ctx context.Context, id int64) error {
	if !s.gate.Ready() {
		return ErrNotReady
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM Productos WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrRestricted
		}
		return fmt.Errorf("failed to delete producto %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SubscribeProductos registers a catalog observer. Every ListProductos
// publishes its snapshot to all subscribers; a slow subscriber only
// keeps the most recent snapshot.
func (s *Store) SubscribeProductos() <-chan []models.Producto {
	ch := make(chan []models.Producto, 1)
	s.prodMu.Lock()
	s.prodSubs = append(s.prodSubs, ch)
	s.prodMu.Unlock()
	return ch
}

func (s *Store) publishProductos(productos []models.Producto) {
	s.prodMu.Lock()
	defer s.prodMu.Unlock()
	for _, ch := range s.prodSubs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- productos:
		default:
		}
	}
}
