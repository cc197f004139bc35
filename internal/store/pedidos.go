package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pedidos-service/internal/models"
)

// CreatePedido inserts the pedido row and one item row per entry with
// cantidad > 0, in slice order; zero-quantity items are silently
// dropped. The whole write runs inside one transaction: a failure on any
// item rolls back the header too, so a pedido is never half-populated.
// A numero de tillo collision surfaces as ErrDuplicate.
func (s *Store) CreatePedido(ctx context.Context, pedido *models.Pedido, items []models.PedidoItem) (int64, error) {
	if !s.gate.Ready() {
		return 0, ErrNotReady
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO Pedido (cliente_id, numero_tillo, precio, estado, fecha_entrega, fecha_actualizacion, fecha_creacion, observacion)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		pedido.ClienteID, pedido.NumeroTillo, pedido.Precio, pedido.Estado,
		pedido.FechaEntrega, pedido.FechaActualizacion, pedido.FechaCreacion, pedido.Observacion)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("failed to insert pedido: %w", err)
	}

	pedidoID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read pedido id: %w", err)
	}

	for _, item := range items {
		if item.Cantidad <= 0 {
			continue
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO PedidoItems (pedido_id, producto_id, cantidad) VALUES (?, ?, ?)`,
			pedidoID, item.ProductoID, item.Cantidad)
		if err != nil {
			return 0, fmt.Errorf("failed to insert item for producto %d: %w", item.ProductoID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit pedido: %w", err)
	}

	pedido.ID = pedidoID
	return pedidoID, nil
}

// ListPedidosConResumen returns all pedidos newest-first, each joined
// with its cliente and a derived "<cantidad> <producto>" comma summary.
// The summary is computed in the query; stored item rows are never
// touched. Before the gate is ready it returns an empty slice.
func (s *Store) ListPedidosConResumen(ctx context.Context) ([]models.PedidoResumen, error) {
	if !s.gate.Ready() {
		return []models.PedidoResumen{}, nil
	}

	pedidos := []models.PedidoResumen{}
	err := s.db.SelectContext(ctx, &pedidos, `
		SELECT
			p.id, p.cliente_id, p.numero_tillo, p.precio, p.estado,
			p.fecha_entrega, p.fecha_actualizacion, p.fecha_creacion, p.observacion,
			c.nombre AS nombre_cliente, c.cedula AS cedula_cliente,
			COALESCE((
				SELECT GROUP_CONCAT(pi.cantidad || ' ' || pr.nombre, ', ')
				FROM PedidoItems pi
				JOIN Productos pr ON pi.producto_id = pr.id
				WHERE pi.pedido_id = p.id
			), '') AS descripcion_trabajo
		FROM Pedido p
		JOIN Clientes c ON p.cliente_id = c.id
		ORDER BY p.fecha_creacion DESC, p.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pedidos: %w", err)
	}
	return pedidos, nil
}

// GetPedidoConItems returns one pedido joined with its cliente plus the
// full item list, each item carrying its producto name. A missing id is
// (nil, nil).
func (s *Store) GetPedidoConItems(ctx context.Context, pedidoID int64) (*models.PedidoDetalle, error) {
	if !s.gate.Ready() {
		return nil, nil
	}

	var detalle models.PedidoDetalle
	err := s.db.GetContext(ctx, &detalle, `
		SELECT
			p.id, p.cliente_id, p.numero_tillo, p.precio, p.estado,
			p.fecha_entrega, p.fecha_actualizacion, p.fecha_creacion, p.observacion,
			c.nombre AS nombre_cliente, c.cedula AS cedula_cliente
		FROM Pedido p
		JOIN Clientes c ON p.cliente_id = c.id
		WHERE p.id = ?`, pedidoID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pedido %d: %w", pedidoID, err)
	}

	detalle.Items = []models.PedidoItem{}
	err = s.db.SelectContext(ctx, &detalle.Items, `
		SELECT pi.id, pi.pedido_id, pi.producto_id, pi.cantidad, pr.nombre AS nombre_producto
		FROM PedidoItems pi
		JOIN Productos pr ON pi.producto_id = pr.id
		WHERE pi.pedido_id = ?
		ORDER BY pi.id`, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("failed to load items for pedido %d: %w", pedidoID, err)
	}
	return &detalle, nil
}
