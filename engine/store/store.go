// Package store provides the Neo4j-backed graph store client. All queries
// are parameterized Cypher; results come back as ordered slices of Record
// maps keyed by output alias, mirroring what the HTTP layer serves verbatim.
package store

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Record maps a query output alias to its scalar value.
type Record map[string]any

// result is the minimal interface needed from a neo4j result.
type result interface {
	Next(ctx context.Context) bool
	Record() *neo4j.Record
	Err() error
}

// runner is the minimal interface needed from a neo4j session.
type runner interface {
	Run(ctx context.Context, cypher string, params map[string]any) (result, error)
	Close(ctx context.Context) error
}

// Tx runs queries inside a managed write transaction.
type Tx interface {
	Run(ctx context.Context, cypher string, params map[string]any) ([]Record, error)
}

// Store executes Cypher against a shared Neo4j driver. The driver is created
// once at startup and injected here; sessions are opened per call and closed
// before returning.
type Store struct {
	driver     neo4j.DriverWithContext
	newSession func(ctx context.Context) runner                     // for testing
	execWrite  func(ctx context.Context, work func(tx Tx) error) error // for testing
}

// New creates a Store over an already-connected driver.
func New(driver neo4j.DriverWithContext) *Store {
	return &Store{driver: driver}
}

// neo4jSessionAdapter adapts neo4j.SessionWithContext to the runner interface.
type neo4jSessionAdapter struct {
	sess neo4j.SessionWithContext
}

func (a *neo4jSessionAdapter) Run(ctx context.Context, cypher string, params map[string]any) (result, error) {
	return a.sess.Run(ctx, cypher, params)
}

func (a *neo4jSessionAdapter) Close(ctx context.Context) error {
	return a.sess.Close(ctx)
}

func (s *Store) session(ctx context.Context) runner {
	if s.newSession != nil {
		return s.newSession(ctx)
	}
	return &neo4jSessionAdapter{sess: s.driver.NewSession(ctx, neo4j.SessionConfig{})}
}

// Run executes one parameterized query in its own session and collects every
// record. Engine errors propagate untouched; no retry.
func (s *Store) Run(ctx context.Context, cypher string, params map[string]any) ([]Record, error) {
	sess := s.session(ctx)
	defer sess.Close(ctx)

	res, err := sess.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	return collect(ctx, res)
}

// Write runs work inside a single managed write transaction. Every query the
// work function issues commits or rolls back together, so a multi-step
// mutation (node create plus relationship links) cannot be left half done.
func (s *Store) Write(ctx context.Context, work func(tx Tx) error) error {
	if s.execWrite != nil {
		return s.execWrite(ctx, work)
	}
	sess := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer sess.Close(ctx)

	_, err := sess.ExecuteWrite(ctx, func(mtx neo4j.ManagedTransaction) (any, error) {
		return nil, work(&managedTx{tx: mtx})
	})
	return err
}

// managedTx adapts neo4j.ManagedTransaction to the Tx interface.
type managedTx struct {
	tx neo4j.ManagedTransaction
}

func (t *managedTx) Run(ctx context.Context, cypher string, params map[string]any) ([]Record, error) {
	res, err := t.tx.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	return collect(ctx, res)
}

// DeleteNode removes the node with the given key property and all of its
// incident relationships in one query. Returns false when no node matched.
// Label and key are trusted constants from the repositories, never caller
// input.
func (s *Store) DeleteNode(ctx context.Context, label, key string, id any) (bool, error) {
	cypher := fmt.Sprintf("MATCH (n:%s {%s: $id}) DETACH DELETE n RETURN count(n) AS deleted", label, key)
	recs, err := s.Run(ctx, cypher, map[string]any{"id": id})
	if err != nil {
		return false, err
	}
	if len(recs) == 0 {
		return false, nil
	}
	deleted, _ := recs[0]["deleted"].(int64)
	return deleted > 0, nil
}

// NextID allocates the next integer identifier for a label as
// coalesce(max(key), 0) + 1, evaluated inside the caller's write transaction
// so the read and the subsequent CREATE commit together. Two transactions
// racing on the same label can still observe the same max; callers that need
// stronger guarantees must serialize creates externally.
func NextID(ctx context.Context, tx Tx, label, key string) (int64, error) {
	cypher := fmt.Sprintf("MATCH (n:%s) RETURN coalesce(max(n.%s), 0) + 1 AS id", label, key)
	recs, err := tx.Run(ctx, cypher, nil)
	if err != nil {
		return 0, err
	}
	if len(recs) == 0 {
		return 1, nil
	}
	id, _ := recs[0]["id"].(int64)
	return id, nil
}

// collect reads all records from a result into alias-keyed maps.
func collect(ctx context.Context, res result) ([]Record, error) {
	var out []Record
	for res.Next(ctx) {
		rec := res.Record()
		m := make(Record, len(rec.Keys))
		for i, key := range rec.Keys {
			m[key] = rec.Values[i]
		}
		out = append(out, m)
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
