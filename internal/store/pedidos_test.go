package store

import (
	"context"
	"fmt"
	"testing"

	"pedidos-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPedido(clienteID int64, numeroTillo, fechaCreacion string) *models.Pedido {
	return &models.Pedido{
		ClienteID:          clienteID,
		NumeroTillo:        numeroTillo,
		Precio:             decimal.NewFromFloat(25.0),
		Estado:             models.EstadoPendiente,
		FechaEntrega:       "2025-06-01T10:00:00Z",
		FechaActualizacion: fechaCreacion,
		FechaCreacion:      fechaCreacion,
	}
}

func mustProducto(t *testing.T, st *Store, nombre string) *models.Producto {
	t.Helper()

	producto, err := st.GetProductoPorNombre(context.Background(), nombre)
	require.NoError(t, err)
	require.NotNil(t, producto)
	return producto
}

func TestCreatePedidoDropsZeroQuantityItems(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	cliente := addTestCliente(t, st, "Maria Lopez", "0102030405")
	chancho := mustProducto(t, st, "Chancho")
	pavo := mustProducto(t, st, "Pavo")

	pedidoID, err := st.CreatePedido(ctx,
		testPedido(cliente.ID, "2025_7", "2025-05-01T08:00:00Z"),
		[]models.PedidoItem{
			{ProductoID: chancho.ID, Cantidad: 2},
			{ProductoID: pavo.ID, Cantidad: 0},
		})
	require.NoError(t, err)
	require.NotZero(t, pedidoID)

	assert.Equal(t, 1, countRows(t, st, "Pedido"))
	assert.Equal(t, 1, countRows(t, st, "PedidoItems"))

	detalle, err := st.GetPedidoConItems(ctx, pedidoID)
	require.NoError(t, err)
	require.NotNil(t, detalle)
	require.Len(t, detalle.Items, 1)
	assert.Equal(t, chancho.ID, detalle.Items[0].ProductoID)
	assert.Equal(t, 2, detalle.Items[0].Cantidad)
	assert.Equal(t, "Chancho", detalle.Items[0].NombreProducto)
}

func TestCreatePedidoDuplicateTillo(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	cliente := addTestCliente(t, st, "Maria Lopez", "0102030405")

	_, err := st.CreatePedido(ctx, testPedido(cliente.ID, "2025_7", "2025-05-01T08:00:00Z"), nil)
	require.NoError(t, err)

	_, err = st.CreatePedido(ctx, testPedido(cliente.ID, "2025_7", "2025-05-02T08:00:00Z"), nil)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, 1, countRows(t, st, "Pedido"))
}

func TestCreatePedidoRollsBackOnItemFailure(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	cliente := addTestCliente(t, st, "Maria Lopez", "0102030405")

	_, err := st.CreatePedido(ctx,
		testPedido(cliente.ID, "2025_8", "2025-05-01T08:00:00Z"),
		[]models.PedidoItem{
			{ProductoID: 9999, Cantidad: 1}, // no such producto
		})
	require.Error(t, err)

	// The header insert is rolled back with the failed item.
	assert.Equal(t, 0, countRows(t, st, "Pedido"))
	assert.Equal(t, 0, countRows(t, st, "PedidoItems"))
}

func TestCreatePedidoBeforeReady(t *testing.T) {
	st := newUninitializedStore(t)

	_, err := st.CreatePedido(context.Background(), testPedido(1, "2025_7", "2025-05-01T08:00:00Z"), nil)
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestListPedidosConResumen(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	cliente := addTestCliente(t, st, "Maria Lopez", "0102030405")
	chancho := mustProducto(t, st, "Chancho")
	pavo := mustProducto(t, st, "Pavo")

	_, err := st.CreatePedido(ctx,
		testPedido(cliente.ID, "2025_1", "2025-05-01T08:00:00Z"),
		[]models.PedidoItem{
			{ProductoID: chancho.ID, Cantidad: 2},
			{ProductoID: pavo.ID, Cantidad: 1},
		})
	require.NoError(t, err)

	// Newer pedido, no items.
	_, err = st.CreatePedido(ctx, testPedido(cliente.ID, "2025_2", "2025-05-02T08:00:00Z"), nil)
	require.NoError(t, err)

	pedidos, err := st.ListPedidosConResumen(ctx)
	require.NoError(t, err)
	require.Len(t, pedidos, 2)

	// Newest first.
	assert.Equal(t, "2025_2", pedidos[0].NumeroTillo)
	assert.Equal(t, "2025_1", pedidos[1].NumeroTillo)

	assert.Empty(t, pedidos[0].DescripcionTrabajo)
	assert.Equal(t, "2 Chancho, 1 Pavo", pedidos[1].DescripcionTrabajo)

	assert.Equal(t, "Maria Lopez", pedidos[0].NombreCliente)
	assert.Equal(t, "0102030405", pedidos[0].CedulaCliente)
	assert.True(t, pedidos[1].Precio.Equal(decimal.NewFromFloat(25.0)),
		"expected precio 25, got %s", pedidos[1].Precio)
}

func TestListPedidosBeforeReady(t *testing.T) {
	st := newUninitializedStore(t)

	pedidos, err := st.ListPedidosConResumen(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pedidos)
}

func TestListPedidosDoesNotMutateItems(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	cliente := addTestCliente(t, st, "Maria Lopez", "0102030405")
	chancho := mustProducto(t, st, "Chancho")

	_, err := st.CreatePedido(ctx,
		testPedido(cliente.ID, "2025_1", "2025-05-01T08:00:00Z"),
		[]models.PedidoItem{{ProductoID: chancho.ID, Cantidad: 2}})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := st.ListPedidosConResumen(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, countRows(t, st, "PedidoItems"))
}

func TestGetPedidoConItemsNotFound(t *testing.T) {
	st := newTestStore(t)

	detalle, err := st.GetPedidoConItems(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, detalle)
}

func TestGetPedidoBeforeReady(t *testing.T) {
	st := newUninitializedStore(t)

	detalle, err := st.GetPedidoConItems(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, detalle)
}

func TestDeleteClienteCascadesToPedidosAndItems(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	cliente := addTestCliente(t, st, "Maria Lopez", "0102030405")
	chancho := mustProducto(t, st, "Chancho")

	for i := 0; i < 2; i++ {
		_, err := st.CreatePedido(ctx,
			testPedido(cliente.ID, fmt.Sprintf("2025_%d", i+1), "2025-05-01T08:00:00Z"),
			[]models.PedidoItem{{ProductoID: chancho.ID, Cantidad: 1}})
		require.NoError(t, err)
	}

	require.NoError(t, st.DeleteCliente(ctx, cliente.ID))

	assert.Equal(t, 0, countRows(t, st, "Clientes"))
	assert.Equal(t, 0, countRows(t, st, "Pedido"))
	assert.Equal(t, 0, countRows(t, st, "PedidoItems"))
}

func TestDeleteProductoRestrictedWhileReferenced(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	cliente := addTestCliente(t, st, "Maria Lopez", "0102030405")
	chancho := mustProducto(t, st, "Chancho")

	pedidoID, err := st.CreatePedido(ctx,
		testPedido(cliente.ID, "2025_1", "2025-05-01T08:00:00Z"),
		[]models.PedidoItem{{ProductoID: chancho.ID, Cantidad: 1}})
	require.NoError(t, err)

	err = st.DeleteProducto(ctx, chancho.ID)
	assert.ErrorIs(t, err, ErrRestricted)

	// Producto and referencing item remain intact.
	producto, err := st.GetProductoPorNombre(ctx, "Chancho")
	require.NoError(t, err)
	assert.NotNil(t, producto)

	detalle, err := st.GetPedidoConItems(ctx, pedidoID)
	require.NoError(t, err)
	require.NotNil(t, detalle)
	assert.Len(t, detalle.Items, 1)
}
