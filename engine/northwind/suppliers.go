package northwind

import (
	"context"

	"github.com/mossaab-byte/northwind-graph-api/engine/domain"
	"github.com/mossaab-byte/northwind-graph-api/engine/store"
)

// Suppliers is the repository for Supplier nodes.
type Suppliers struct {
	db Store
}

func NewSuppliers(db Store) *Suppliers { return &Suppliers{db: db} }

const supplierListQuery = `
MATCH (s:Supplier)
OPTIONAL MATCH (s)-[:SUPPLIES]->(p:Product)
RETURN s.supplierID AS id,
       s.companyName AS name,
       s.contactName AS contactName,
       s.contactTitle AS contactTitle,
       s.city AS city,
       s.country AS country,
       s.phone AS phone,
       count(p) AS productCount
ORDER BY s.companyName`

const supplierGetQuery = `
MATCH (s:Supplier {supplierID: $id})
RETURN s.supplierID AS id,
       s.companyName AS name,
       s.contactName AS contactName,
       s.contactTitle AS contactTitle,
       s.address AS address,
       s.city AS city,
       s.region AS region,
       s.postalCode AS postalCode,
       s.country AS country,
       s.phone AS phone,
       s.fax AS fax,
       s.homePage AS homePage`

const supplierCreateQuery = `
CREATE (s:Supplier {
    supplierID: $supplierID,
    companyName: $companyName,
    contactName: $contactName,
    contactTitle: $contactTitle,
    address: $address,
    city: $city,
    region: $region,
    postalCode: $postalCode,
    country: $country,
    phone: $phone,
    fax: $fax,
    homePage: $homePage
})
RETURN s.supplierID AS id, s.companyName AS name`

const supplierUpdateQuery = `
MATCH (s:Supplier {supplierID: $id})
SET s.companyName = $companyName,
    s.contactName = $contactName,
    s.contactTitle = $contactTitle,
    s.address = $address,
    s.city = $city,
    s.region = $region,
    s.postalCode = $postalCode,
    s.country = $country,
    s.phone = $phone,
    s.fax = $fax,
    s.homePage = $homePage
RETURN s.supplierID AS id, s.companyName AS name`

const supplierProductsQuery = `
MATCH (s:Supplier {supplierID: $id})-[:SUPPLIES]->(p:Product)
OPTIONAL MATCH (p)-[:PART_OF]->(c:Category)
RETURN p.productID AS id,
       p.productName AS name,
       p.unitPrice AS unitPrice,
       p.unitsInStock AS unitsInStock,
       c.categoryName AS category
ORDER BY p.productName`

func (r *Suppliers) List(ctx context.Context) ([]store.Record, error) {
	return r.db.Run(ctx, supplierListQuery, nil)
}

func (r *Suppliers) Get(ctx context.Context, id int64) (store.Record, error) {
	recs, err := r.db.Run(ctx, supplierGetQuery, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	if rec := one(recs); rec != nil {
		return rec, nil
	}
	return nil, &domain.NotFoundError{Entity: "Supplier"}
}

func (r *Suppliers) Create(ctx context.Context, in domain.SupplierInput) (store.Record, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var created store.Record
	err := r.db.Write(ctx, func(tx store.Tx) error {
		id, err := store.NextID(ctx, tx, "Supplier", "supplierID")
		if err != nil {
			return err
		}
		recs, err := tx.Run(ctx, supplierCreateQuery, map[string]any{
			"supplierID":   id,
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
			"homePage":     in.HomePage,
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

func (r *Suppliers) Update(ctx context.Context, id int64, in domain.SupplierInput) (store.Record, error) {
	recs, err := r.db.Run(ctx, supplierUpdateQuery, map[string]any{
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
		"homePage":     in.HomePage,
	})
	if err != nil {
		return nil, err
	}
	if rec := one(recs); rec != nil {
		return rec, nil
	}
	return nil, &domain.NotFoundError{Entity: "Supplier"}
}

func (r *Suppliers) Delete(ctx context.Context, id int64) error {
	ok, err := r.db.DeleteNode(ctx, "Supplier", "supplierID", id)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.NotFoundError{Entity: "Supplier"}
	}
	return nil
}

// Products lists the supplier's catalog with category names attached.
func (r *Suppliers) Products(ctx context.Context, id int64) ([]store.Record, error) {
	return r.db.Run(ctx, supplierProductsQuery, map[string]any{"id": id})
}
