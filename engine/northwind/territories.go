package northwind

import (
	"context"

	"github.com/mossaab-byte/northwind-graph-api/engine/domain"
	"github.com/mossaab-byte/northwind-graph-api/engine/store"
)

// Territories is the read-only repository for Territory nodes. Territory
// keys are strings.
type Territories struct {
	db Store
}

func NewTerritories(db Store) *Territories { return &Territories{db: db} }

const territoryListQuery = `
MATCH (t:Territory)
OPTIONAL MATCH (t)-[:IN_REGION]->(r:Region)
RETURN t.territoryID AS id,
       t.territoryDescription AS name,
       r.regionDescription AS region
ORDER BY t.territoryDescription`

const territoryGetQuery = `
MATCH (t:Territory {territoryID: $id})
OPTIONAL MATCH (t)-[:IN_REGION]->(r:Region)
RETURN t.territoryID AS id,
       t.territoryDescription AS name,
       r.regionID AS regionId,
       r.regionDescription AS region`

const territoryEmployeesQuery = `
MATCH (e:Employee)-[:IN_TERRITORY]->(t:Territory {territoryID: $id})
RETURN e.employeeID AS id,
       e.firstName AS firstName,
       e.lastName AS lastName,
       e.title AS title
ORDER BY e.lastName, e.firstName`

func (r *Territories) List(ctx context.Context) ([]store.Record, error) {
	return r.db.Run(ctx, territoryListQuery, nil)
}

func (r *Territories) Get(ctx context.Context, id string) (store.Record, error) {
	recs, err := r.db.Run(ctx, territoryGetQuery, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	if rec := one(recs); rec != nil {
		return rec, nil
	}
	return nil, &domain.NotFoundError{Entity: "Territory"}
}

// Employees lists all employees assigned to the territory.
func (r *Territories) Employees(ctx context.Context, id string) ([]store.Record, error) {
	return r.db.Run(ctx, territoryEmployeesQuery, map[string]any{"id": id})
}
