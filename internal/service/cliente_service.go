package service

import (
	"context"
	"errors"

	"pedidos-service/internal/models"
	"pedidos-service/internal/store"
	"pedidos-service/internal/util"

	"go.uber.org/zap"
)

// ClienteService handles cliente registration and lookup
type ClienteService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewClienteService creates a new cliente service
func NewClienteService(st *store.Store) *ClienteService {
	return &ClienteService{
		store:  st,
		logger: util.GetLogger(),
	}
}

// RegisterClienteRequest represents a registration request
type RegisterClienteRequest struct {
	Nombre   string `json:"nombre" binding:"required"`
	Cedula   string `json:"cedula" binding:"required,len=10"`
	Telefono string `json:"telefono" binding:"required"`
}

// Register inserts a new cliente and returns it with its assigned id.
// A duplicate cedula is surfaced, not swallowed.
func (s *ClienteService) Register(ctx context.Context, req *RegisterClienteRequest) (*models.Cliente, error) {
	cliente := &models.Cliente{
		Nombre:   req.Nombre,
		Cedula:   req.Cedula,
		Telefono: req.Telefono,
	}

	if err := s.store.AddCliente(ctx, cliente); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			util.ClientesDuplicateTotal.Inc()
		}
		return nil, err
	}

	util.ClientesRegisteredTotal.Inc()
	s.logger.Info("Cliente registered",
		zap.Int64("cliente_id", cliente.ID),
		zap.String("cedula", cliente.Cedula))
	return cliente, nil
}

// FindPorCedula looks up a cliente; nil means not found. Storage
// failures degrade to nil after logging.
func (s *ClienteService) FindPorCedula(ctx context.Context, cedula string) *models.Cliente {
	cliente, err := s.store.FindClientePorCedula(ctx, cedula)
	if err != nil {
		util.QueryFailuresTotal.WithLabelValues("cliente_find").Inc()
		s.logger.Error("Failed to find cliente", zap.Error(err))
		return nil
	}
	return cliente
}

// List returns all clientes, degrading to an empty list on failure.
func (s *ClienteService) List(ctx context.Context) []models.Cliente {
	clientes, err := s.store.ListClientes(ctx)
	if err != nil {
		util.QueryFailuresTotal.WithLabelValues("clientes_list").Inc()
		s.logger.Error("Failed to list clientes", zap.Error(err))
		return []models.Cliente{}
	}
	return clientes
}
