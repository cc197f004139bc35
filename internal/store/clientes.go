package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pedidos-service/internal/models"
)

// AddCliente inserts a new cliente and sets its assigned id. A cedula
// already present surfaces as ErrDuplicate; the store is left unchanged.
func (s *Store) AddCliente(ctx context.Context, cliente *models.Cliente) error {
	if !s.gate.Ready() {
		return ErrNotReady
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO Clientes (nombre, cedula, telefono) VALUES (?, ?, ?)`,
		cliente.Nombre, cliente.Cedula, cliente.Telefono)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert cliente: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read cliente id: %w", err)
	}
	cliente.ID = id
	return nil
}

// FindClientePorCedula looks up a cliente by exact cedula. A missing row
// is (nil, nil), distinct from a query failure.
func (s *Store) FindClientePorCedula(ctx context.Context, cedula string) (*models.Cliente, error) {
	if !s.gate.Ready() {
		return nil, nil
	}

	var cliente models.Cliente
	err := s.db.GetContext(ctx, &cliente,
		`SELECT id, nombre, cedula, telefono FROM Clientes WHERE cedula = ?`, cedula)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find cliente by cedula: %w", err)
	}
	return &cliente, nil
}

// ListClientes returns all clientes ordered by nombre.
func (s *Store) ListClientes(ctx context.Context) ([]models.Cliente, error) {
	if !s.gate.Ready() {
		return []models.Cliente{}, nil
	}

	clientes := []models.Cliente{}
	err := s.db.SelectContext(ctx, &clientes,
		`SELECT id, nombre, cedula, telefono FROM Clientes ORDER BY nombre ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clientes: %w", err)
	}
	return clientes, nil
}

// DeleteCliente removes a cliente. The CASCADE foreign keys remove the
// cliente's pedidos and, transitively, their items.
func (s *Store) DeleteCliente(ctx context.Context, id int64) error {
	if !s.gate.Ready() {
		return ErrNotReady
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM Clientes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete cliente %d: %w", id, err)
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
