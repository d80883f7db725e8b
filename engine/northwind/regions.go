package northwind

import (
	"context"

	"github.com/mossaab-byte/northwind-graph-api/engine/domain"
	"github.com/mossaab-byte/northwind-graph-api/engine/store"
)

// Regions is the read-only repository for Region nodes.
type Regions struct {
	db Store
}

func NewRegions(db Store) *Regions { return &Regions{db: db} }

const regionListQuery = `
MATCH (r:Region)
OPTIONAL MATCH (t:Territory)-[:IN_REGION]->(r)
RETURN r.regionID AS id,
       r.regionDescription AS name,
       count(t) AS territoryCount
ORDER BY r.regionDescription`

const regionGetQuery = `
MATCH (r:Region {regionID: $id})
RETURN r.regionID AS id,
       r.regionDescription AS name`

const regionTerritoriesQuery = `
MATCH (t:Territory)-[:IN_REGION]->(r:Region {regionID: $id})
RETURN t.territoryID AS id,
       t.territoryDescription AS name
ORDER BY t.territoryDescription`

func (r *Regions) List(ctx context.Context) ([]store.Record, error) {
	return r.db.Run(ctx, regionListQuery, nil)
}

func (r *Regions) Get(ctx context.Context, id int64) (store.Record, error) {
	recs, err := r.db.Run(ctx, regionGetQuery, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	if rec := one(recs); rec != nil {
		return rec, nil
	}
	return nil, &domain.NotFoundError{Entity: "Region"}
}

// Territories lists all territories in the region.
func (r *Regions) Territories(ctx context.Context, id int64) ([]store.Record, error) {
	return r.db.Run(ctx, regionTerritoriesQuery, map[string]any{"id": id})
}
