package store

import (
	"context"
	"testing"

	"pedidos-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addTestCliente(t *testing.T, st *Store, nombre, cedula string) *models.Cliente {
	t.Helper()

	cliente := &models.Cliente{Nombre: nombre, Cedula: cedula, Telefono: "0991112233"}
	require.NoError(t, st.AddCliente(context.Background(), cliente))
	require.NotZero(t, cliente.ID)
	return cliente
}

func TestAddClienteAssignsID(t *testing.T) {
	st := newTestStore(t)

	cliente := addTestCliente(t, st, "Maria Lopez", "0102030405")

	found, err := st.FindClientePorCedula(context.Background(), "0102030405")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, cliente.ID, found.ID)
	assert.Equal(t, "Maria Lopez", found.Nombre)
	assert.Equal(t, "0991112233", found.Telefono)
}

func TestAddClienteDuplicateCedula(t *testing.T) {
	st := newTestStore(t)

	addTestCliente(t, st, "Maria Lopez", "0102030405")

	otro := &models.Cliente{Nombre: "Pedro Paz", Cedula: "0102030405", Telefono: "0987654321"}
	err := st.AddCliente(context.Background(), otro)
	assert.ErrorIs(t, err, ErrDuplicate)

	// The store is left unchanged.
	assert.Equal(t, 1, countRows(t, st, "Clientes"))
}

func TestFindClientePorCedulaNotFound(t *testing.T) {
	st := newTestStore(t)

	cliente, err := st.FindClientePorCedula(context.Background(), "9999999999")
	require.NoError(t, err)
	assert.Nil(t, cliente)
}

func TestFindClienteBeforeReady(t *testing.T) {
	st := newUninitializedStore(t)

	cliente, err := st.FindClientePorCedula(context.Background(), "0102030405")
	require.NoError(t, err)
	assert.Nil(t, cliente)
}

func TestAddClienteBeforeReady(t *testing.T) {
	st := newUninitializedStore(t)

	cliente := &models.Cliente{Nombre: "Maria Lopez", Cedula: "0102030405", Telefono: "0991112233"}
	err := st.AddCliente(context.Background(), cliente)
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestListClientes(t *testing.T) {
	st := newTestStore(t)

	addTestCliente(t, st, "Zoila Vaca", "0102030405")
	addTestCliente(t, st, "Ana Mora", "0504030201")

	clientes, err := st.ListClientes(context.Background())
	require.NoError(t, err)
	require.Len(t, clientes, 2)
	assert.Equal(t, "Ana Mora", clientes[0].Nombre)
	assert.Equal(t, "Zoila Vaca", clientes[1].Nombre)
}

func TestDeleteClienteNotFound(t *testing.T) {
	st := newTestStore(t)

	err := st.DeleteCliente(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}
