package northwind

import (
	"context"

	"github.com/mossaab-byte/northwind-graph-api/engine/domain"
	"github.com/mossaab-byte/northwind-graph-api/engine/store"
)

// Shippers is the repository for Shipper nodes.
type Shippers struct {
	db Store
}

func NewShippers(db Store) *Shippers { return &Shippers{db: db} }

const shipperListQuery = `
MATCH (s:Shipper)
OPTIONAL MATCH (s)-[:SHIPS]->(o:Order)
RETURN s.shipperID AS id,
       s.companyName AS name,
       s.phone AS phone,
       count(o) AS orderCount
ORDER BY s.companyName`

const shipperGetQuery = `
MATCH (s:Shipper {shipperID: $id})
RETURN s.shipperID AS id,
       s.companyName AS name,
       s.phone AS phone`

const shipperCreateQuery = `
CREATE (s:Shipper {
    shipperID: $shipperID,
    companyName: $companyName,
    phone: $phone
})
RETURN s.shipperID AS id, s.companyName AS name`

const shipperUpdateQuery = `
MATCH (s:Shipper {shipperID: $id})
SET s.companyName = $companyName,
    s.phone = $phone
RETURN s.shipperID AS id, s.companyName AS name`

const shipperOrdersQuery = `
MATCH (s:Shipper {shipperID: $id})-[:SHIPS]->(o:Order)
MATCH (c:Customer)-[:PURCHASED]->(o)
RETURN o.orderID AS orderId,
       o.orderDate AS orderDate,
       o.shippedDate AS shippedDate,
       o.shipCity AS shipCity,
       o.shipCountry AS shipCountry,
       c.companyName AS customer
ORDER BY o.shippedDate DESC
LIMIT 50`

func (r *Shippers) List(ctx context.Context) ([]store.Record, error) {
	return r.db.Run(ctx, shipperListQuery, nil)
}

func (r *Shippers) Get(ctx context.Context, id int64) (store.Record, error) {
	recs, err := r.db.Run(ctx, shipperGetQuery, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	if rec := one(recs); rec != nil {
		return rec, nil
	}
	return nil, &domain.NotFoundError{Entity: "Shipper"}
}

func (r *Shippers) Create(ctx context.Context, in domain.ShipperInput) (store.Record, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var created store.Record
	err := r.db.Write(ctx, func(tx store.Tx) error {
		id, err := store.NextID(ctx, tx, "Shipper", "shipperID")
		if err != nil {
			return err
		}
		recs, err := tx.Run(ctx, shipperCreateQuery, map[string]any{
			"shipperID":   id,
			"companyName": in.CompanyName,
			"phone":       in.Phone,
		})
		if err != nil {
			return err
		}
		created = one(recs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *Shippers) Update(ctx context.Context, id int64, in domain.ShipperInput) (store.Record, error) {
	recs, err := r.db.Run(ctx, shipperUpdateQuery, map[string]any{
		"id":          id,
		"companyName": in.CompanyName,
		"phone":       in.Phone,
	})
	if err != nil {
		return nil, err
	}
	if rec := one(recs); rec != nil {
		return rec, nil
	}
	return nil, &domain.NotFoundError{Entity: "Shipper"}
}

func (r *Shippers) Delete(ctx context.Context, id int64) error {
	ok, err := r.db.DeleteNode(ctx, "Shipper", "shipperID", id)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.NotFoundError{Entity: "Shipper"}
	}
	return nil
}

// Orders lists orders shipped by this shipper, most recently shipped first.
func (r *Shippers) Orders(ctx context.Context, id int64) ([]store.Record, error) {
	return r.db.Run(ctx, shipperOrdersQuery, map[string]any{"id": id})
}
