// Package repo holds the persistence plumbing shared by the domain
// repositories.
package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base carries the gorm handle a domain repository operates on. It may
// wrap either the shared pool or a transaction.
type Base struct {
	conn *gorm.DB
}

// NewBase wraps a gorm connection for embedding in a repository.
func NewBase(conn *gorm.DB) Base {
	return Base{conn: conn}
}

// DB binds the connection to the request context so cancellation
// propagates into the driver. A nil context returns the raw handle.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.conn
	}
	return b.conn.WithContext(ctx)
}
