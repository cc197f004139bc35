package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pedidos-service/internal/models"
	"pedidos-service/internal/util"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const (
	schemaClientes = `
		CREATE TABLE IF NOT EXISTS Clientes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nombre VARCHAR(150) NOT NULL,
			cedula CHAR(10) NOT NULL UNIQUE,
			telefono VARCHAR(50) NOT NULL
		)`

	schemaProductos = `
		CREATE TABLE IF NOT EXISTS Productos (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nombre VARCHAR(50) NOT NULL UNIQUE
		)`

	schemaPedido = `
		CREATE TABLE IF NOT EXISTS Pedido (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			cliente_id INTEGER NOT NULL,
			numero_tillo VARCHAR(50) NOT NULL UNIQUE,
			precio REAL NOT NULL,
			estado CHAR(2) NOT NULL,
			fecha_entrega TEXT NOT NULL,
			fecha_actualizacion TEXT NOT NULL,
			fecha_creacion TEXT NOT NULL,
			observacion VARCHAR(250),
			FOREIGN KEY (cliente_id) REFERENCES Clientes(id) ON DELETE CASCADE
		)`

	schemaPedidoItems = `
		CREATE TABLE IF NOT EXISTS PedidoItems (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pedido_id INTEGER NOT NULL,
			producto_id INTEGER NOT NULL,
			cantidad INTEGER NOT NULL,
			FOREIGN KEY (pedido_id) REFERENCES Pedido(id) ON DELETE CASCADE,
			FOREIGN KEY (producto_id) REFERENCES Productos(id) ON DELETE RESTRICT
		)`
)

// Store is the embedded relational store: a single SQLite file accessed
// by one process. All operations are gated on the injected readiness
// Gate, which only flips after Initialize completes.
type Store struct {
	db     *sqlx.DB
	gate   *Gate
	logger *zap.Logger

	prodMu   sync.Mutex
	prodSubs []chan []models.Producto
}

// New opens the SQLite database file. Foreign-key enforcement is turned
// on for the whole session, both via the DSN and explicitly at
// Initialize. The pool is capped at one connection: the layer assumes a
// single logical writer and the cap makes ":memory:" stores safe too.
func New(dbPath string, gate *Gate) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on", dbPath)
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	return &Store{db: db, gate: gate, logger: util.GetLogger()}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Initialize provisions the schema and seeds the catalog, strictly in
// that order, then flips the gate. Any failure leaves the gate false and
// is returned to the caller; no reader can observe a half-provisioned
// schema. Safe to invoke on every application start.
func (s *Store) Initialize(ctx context.Context) error {
	start := time.Now()
	defer func() {
		util.StoreInitLatency.Observe(time.Since(start).Seconds())
	}()

	if _, err := s.db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		s.gate.set(false)
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := s.createTables(ctx); err != nil {
		s.gate.set(false)
		return fmt.Errorf("failed to provision schema: %w", err)
	}

	if err := s.SeedProductos(ctx); err != nil {
		s.gate.set(false)
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	s.gate.set(true)
	s.logger.Info("Store initialized", zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (s *Store) createTables(ctx context.Context) error {
	stmts := []struct {
		table string
		ddl   string
	}{
		{"Clientes", schemaClientes},
		{"Productos", schemaProductos},
		{"Pedido", schemaPedido},
		{"PedidoItems", schemaPedidoItems},
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt.ddl); err != nil {
			return fmt.Errorf("failed to create table %s: %w", stmt.table, err)
		}
	}
	return nil
}
