package models

import "github.com/shopspring/decimal"

// Cliente represents a registered customer, keyed by a unique cedula
type Cliente struct {
	ID       int64  `db:"id" json:"id"`
	Nombre   string `db:"nombre" json:"nombre"`
	Cedula   string `db:"cedula" json:"cedula"`
	Telefono string `db:"telefono" json:"telefono"`
}

// Producto represents a catalog entry, e.g. "Chancho" or "Pavo"
type Producto struct {
	ID     int64  `db:"id" json:"id"`
	Nombre string `db:"nombre" json:"nombre"`
}

// Pedido represents an order. The numero_tillo is the human-assigned
// ticket code canonicalized to <year>_<digits>; it is unique and
// immutable after creation. Precio is entered by the administrator,
// never derived from the items.
type Pedido struct {
	ID                 int64           `db:"id" json:"id"`
	ClienteID          int64           `db:"cliente_id" json:"cliente_id"`
	NumeroTillo        string          `db:"numero_tillo" json:"numero_tillo"`
	Precio             decimal.Decimal `db:"precio" json:"precio"`
	Estado             string          `db:"estado" json:"estado"`
	FechaEntrega       string          `db:"fecha_entrega" json:"fecha_entrega"`
	FechaActualizacion string          `db:"fecha_actualizacion" json:"fecha_actualizacion"`
	FechaCreacion      string          `db:"fecha_creacion" json:"fecha_creacion"`
	Observacion        *string         `db:"observacion" json:"observacion,omitempty"`
}

// PedidoItem represents one line of an order. NombreProducto is only
// populated by joined reads.
type PedidoItem struct {
	ID             int64  `db:"id" json:"id"`
	PedidoID       int64  `db:"pedido_id" json:"pedido_id"`
	ProductoID     int64  `db:"producto_id" json:"producto_id"`
	Cantidad       int    `db:"cantidad" json:"cantidad"`
	NombreProducto string `db:"nombre_producto" json:"nombre_producto,omitempty"`
}

// PedidoResumen is the list-view projection: an order joined with its
// client and a derived "<cantidad> <producto>" comma summary.
type PedidoResumen struct {
	Pedido
	NombreCliente      string `db:"nombre_cliente" json:"nombre_cliente"`
	CedulaCliente      string `db:"cedula_cliente" json:"cedula_cliente"`
	DescripcionTrabajo string `db:"descripcion_trabajo" json:"descripcion_trabajo"`
}

// PedidoDetalle is the detail-view projection: an order joined with its
// client plus the full item list.
type PedidoDetalle struct {
	Pedido
	NombreCliente string       `db:"nombre_cliente" json:"nombre_cliente"`
	CedulaCliente string       `db:"cedula_cliente" json:"cedula_cliente"`
	Items         []PedidoItem `json:"items"`
}

// Estados cross the boundary as two-letter codes
const (
	EstadoPendiente = "PE"
	EstadoEntregado = "EN"
	EstadoCancelado = "CA"
)
