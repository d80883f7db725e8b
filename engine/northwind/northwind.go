// Package northwind implements one repository per node label of the trading
// dataset graph: Customer, Product, Order, Supplier, Category, Employee,
// Shipper, Region, and Territory. Each repository owns the Cypher templates
// for its label and the relationship traversals that view related entities.
// Results are passed through as alias-keyed records; the HTTP layer renders
// them verbatim.
package northwind

import (
	"context"

	"github.com/mossaab-byte/northwind-graph-api/engine/store"
)

// Store is the slice of the graph store client the repositories need.
type Store interface {
	Run(ctx context.Context, cypher string, params map[string]any) ([]store.Record, error)
	Write(ctx context.Context, work func(tx store.Tx) error) error
	DeleteNode(ctx context.Context, label, key string, id any) (bool, error)
}

// one returns the single record of a keyed lookup, or nil when none matched.
func one(recs []store.Record) store.Record {
	if len(recs) == 0 {
		return nil
	}
	return recs[0]
}
