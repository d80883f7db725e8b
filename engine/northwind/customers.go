package northwind

import (
	"context"

	"github.com/mossaab-byte/northwind-graph-api/engine/domain"
	"github.com/mossaab-byte/northwind-graph-api/engine/store"
)

// Customers is the repository for Customer nodes. Customer keys are
// caller-supplied strings, so creation needs no ID allocation.
type Customers struct {
	db Store
}

func NewCustomers(db Store) *Customers { return &Customers{db: db} }

const customerListQuery = `
MATCH (c:Customer)
OPTIONAL MATCH (c)-[:PURCHASED]->(o:Order)
RETURN c.customerID AS id,
       c.companyName AS name,
       c.contactName AS contactName,
       c.city AS city,
       c.country AS country,
       count(o) AS orderCount
ORDER BY c.companyName
LIMIT 100`

const customerGetQuery = `
MATCH (c:Customer {customerID: $id})
RETURN c.customerID AS id,
       c.companyName AS name,
       c.contactName AS contactName,
       c.contactTitle AS contactTitle,
       c.address AS address,
       c.city AS city,
       c.region AS region,
       c.postalCode AS postalCode,
       c.country AS country,
       c.phone AS phone,
       c.fax AS fax`

const customerCreateQuery = `
CREATE (c:Customer {
    customerID: $customerID,
    companyName: $companyName,
    contactName: $contactName,
    contactTitle: $contactTitle,
    address: $address,
    city: $city,
    region: $region,
    postalCode: $postalCode,
    country: $country,
    phone: $phone,
    fax: $fax
})
RETURN c.customerID AS id, c.companyName AS name`

const customerUpdateQuery = `
MATCH (c:Customer {customerID: $id})
SET c.companyName = $companyName,
    c.contactName = $contactName,
    c.contactTitle = $contactTitle,
    c.address = $address,
    c.city = $city,
    c.region = $region,
    c.postalCode = $postalCode,
    c.country = $country,
    c.phone = $phone,
    c.fax = $fax
RETURN c.customerID AS id, c.companyName AS name`

const customerOrdersQuery = `
MATCH (c:Customer {customerID: $id})-[:PURCHASED]->(o:Order)
RETURN o.orderID AS id, o.orderDate AS date
ORDER BY o.orderDate DESC
LIMIT 20`

func (r *Customers) List(ctx context.Context) ([]store.Record, error) {
	return r.db.Run(ctx, customerListQuery, nil)
}

func (r *Customers) Get(ctx context.Context, id string) (store.Record, error) {
	recs, err := r.db.Run(ctx, customerGetQuery, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	if rec := one(recs); rec != nil {
		return rec, nil
	}
	return nil, &domain.NotFoundError{Entity: "Customer"}
}

func (r *Customers) Create(ctx context.Context, in domain.CustomerInput) (store.Record, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	recs, err := r.db.Run(ctx, customerCreateQuery, map[string]any{
		"customerID":   in.CustomerID,
		"companyName":  in.CompanyName,
		"contactName":  in.ContactName,
		"contactTitle": in.ContactTitle,
		"address":      in.Address,
		"city":         in.City,
		"region":       in.Region,
		"postalCode":   in.PostalCode,
		"country":      in.Country,
		"phone":        in.Phone,
		"fax":          in.Fax,
	})
	if err != nil {
		return nil, err
	}
	return one(recs), nil
}

func (r *Customers) Update(ctx context.Context, id string, in domain.CustomerInput) (store.Record, error) {
	recs, err := r.db.Run(ctx, customerUpdateQuery, map[string]any{
		"id":           id,
		"companyName":  in.CompanyName,
		"contactName":  in.ContactName,
		"contactTitle": in.ContactTitle,
		"address":      in.Address,
		"city":         in.City,
		"region":       in.Region,
		"postalCode":   in.PostalCode,
		"country":      in.Country,
		"phone":        in.Phone,
		"fax":          in.Fax,
	})
	if err != nil {
		return nil, err
	}
	if rec := one(recs); rec != nil {
		return rec, nil
	}
	return nil, &domain.NotFoundError{Entity: "Customer"}
}

func (r *Customers) Delete(ctx context.Context, id string) error {
	ok, err := r.db.DeleteNode(ctx, "Customer", "customerID", id)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.NotFoundError{Entity: "Customer"}
	}
	return nil
}

// Orders lists the customer's most recent orders, newest first.
func (r *Customers) Orders(ctx context.Context, id string) ([]store.Record, error) {
	return r.db.Run(ctx, customerOrdersQuery, map[string]any{"id": id})
}
