package store

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotReady is returned by mutations attempted before the gate is
	// ready. Read paths degrade to an empty result instead.
	ErrNotReady = errors.New("store is not ready")

	// ErrDuplicate signals a unique-constraint violation: cedula, numero
	// de tillo, or producto nombre already present.
	ErrDuplicate = errors.New("duplicate key")

	// ErrRestricted signals a delete blocked by a RESTRICT foreign key.
	ErrRestricted = errors.New("row is still referenced")

	// ErrNotFound signals a mutation aimed at a row that does not exist.
	ErrNotFound = errors.New("row not found")
)

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintTrigger
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
