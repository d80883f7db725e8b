package northwind

import (
	"context"

	"github.com/mossaab-byte/northwind-graph-api/engine/domain"
	"github.com/mossaab-byte/northwind-graph-api/engine/store"
)

// Products is the repository for Product nodes. Product IDs are allocated
// max-plus-one inside the create transaction; category and supplier links are
// singular edges replaced on update.
type Products struct {
	db Store
}

func NewProducts(db Store) *Products { return &Products{db: db} }

const productListQuery = `
MATCH (p:Product)
OPTIONAL MATCH (p)-[:PART_OF]->(c:Category)
OPTIONAL MATCH (s:Supplier)-[:SUPPLIES]->(p)
RETURN p.productID AS id,
       p.productName AS name,
       p.unitPrice AS unitPrice,
       p.unitsInStock AS unitsInStock,
       p.unitsOnOrder AS unitsOnOrder,
       p.discontinued AS discontinued,
       c.categoryName AS category,
       s.companyName AS supplier
ORDER BY p.productName
LIMIT 100`

const productGetQuery = `
MATCH (p:Product {productID: $id})
OPTIONAL MATCH (p)-[:PART_OF]->(c:Category)
OPTIONAL MATCH (s:Supplier)-[:SUPPLIES]->(p)
RETURN p.productID AS id,
       p.productName AS name,
       p.unitPrice AS unitPrice,
       p.unitsInStock AS unitsInStock,
       p.unitsOnOrder AS unitsOnOrder,
       p.quantityPerUnit AS quantityPerUnit,
       p.discontinued AS discontinued,
       c.categoryName AS category,
       c.categoryID AS categoryId,
       s.companyName AS supplier,
       s.supplierID AS supplierId`

const productCreateQuery = `
CREATE (p:Product {
    productID: $productID,
    productName: $productName,
    unitPrice: $unitPrice,
    unitsInStock: $unitsInStock,
    unitsOnOrder: $unitsOnOrder,
    quantityPerUnit: $quantityPerUnit,
    discontinued: $discontinued,
    reorderLevel: $reorderLevel
})
RETURN p.productID AS id, p.productName AS name`

const productUpdateQuery = `
MATCH (p:Product {productID: $id})
SET p.productName = $productName,
    p.unitPrice = $unitPrice,
    p.unitsInStock = $unitsInStock,
    p.unitsOnOrder = $unitsOnOrder,
    p.quantityPerUnit = $quantityPerUnit,
    p.discontinued = $discontinued,
    p.reorderLevel = $reorderLevel
RETURN p.productID AS id, p.productName AS name`

const productLinkCategoryQuery = `
MATCH (p:Product {productID: $productID})
MATCH (c:Category {categoryID: $categoryID})
CREATE (p)-[:PART_OF]->(c)`

const productUnlinkCategoryQuery = `
MATCH (p:Product {productID: $id})-[r:PART_OF]->() DELETE r`

const productLinkSupplierQuery = `
MATCH (p:Product {productID: $productID})
MATCH (s:Supplier {supplierID: $supplierID})
CREATE (s)-[:SUPPLIES]->(p)`

const productUnlinkSupplierQuery = `
MATCH ()-[r:SUPPLIES]->(p:Product {productID: $id}) DELETE r`

const productOrdersQuery = `
MATCH (o:Order)-[:ORDERS]->(p:Product {productID: $id})
MATCH (c:Customer)-[:PURCHASED]->(o)
RETURN o.orderID AS orderId,
       o.orderDate AS orderDate,
       c.companyName AS customer,
       c.customerID AS customerId
ORDER BY o.orderDate DESC
LIMIT 50`

func (r *Products) List(ctx context.Context) ([]store.Record, error) {
	return r.db.Run(ctx, productListQuery, nil)
}

func (r *Products) Get(ctx context.Context, id int64) (store.Record, error) {
	recs, err := r.db.Run(ctx, productGetQuery, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	if rec := one(recs); rec != nil {
		return rec, nil
	}
	return nil, &domain.NotFoundError{Entity: "Product"}
}

// Create allocates the next product ID, creates the node, and links the
// optional category and supplier edges, all in one write transaction.
func (r *Products) Create(ctx context.Context, in domain.ProductInput) (store.Record, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var created store.Record
	err := r.db.Write(ctx, func(tx store.Tx) error {
		id, err := store.NextID(ctx, tx, "Product", "productID")
		if err != nil {
			return err
		}
		recs, err := tx.Run(ctx, productCreateQuery, map[string]any{
			"productID":       id,
			"productName":     in.ProductName,
			"unitPrice":       in.UnitPrice,
			"unitsInStock":    in.UnitsInStock,
			"unitsOnOrder":    in.UnitsOnOrder,
			"quantityPerUnit": in.QuantityPerUnit,
			"discontinued":    in.Discontinued,
			"reorderLevel":    in.ReorderLevel,
		})
		if err != nil {
			return err
		}
		created = one(recs)
		if in.CategoryID != 0 {
			if _, err := tx.Run(ctx, productLinkCategoryQuery, map[string]any{
				"productID":  id,
				"categoryID": in.CategoryID,
			}); err != nil {
				return err
			}
		}
		if in.SupplierID != 0 {
			if _, err := tx.Run(ctx, productLinkSupplierQuery, map[string]any{
				"productID":  id,
				"supplierID": in.SupplierID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update overwrites every mutable attribute and, when a foreign key is set,
// replaces the corresponding singular edge (delete then create) inside the
// same transaction. An absent foreign key leaves that edge untouched.
func (r *Products) Update(ctx context.Context, id int64, in domain.ProductInput) (store.Record, error) {
	var updated store.Record
	err := r.db.Write(ctx, func(tx store.Tx) error {
		recs, err := tx.Run(ctx, productUpdateQuery, map[string]any{
			"id":              id,
			"productName":     in.ProductName,
			"unitPrice":       in.UnitPrice,
			"unitsInStock":    in.UnitsInStock,
			"unitsOnOrder":    in.UnitsOnOrder,
			"quantityPerUnit": in.QuantityPerUnit,
			"discontinued":    in.Discontinued,
			"reorderLevel":    in.ReorderLevel,
		})
		if err != nil {
			return err
		}
		updated = one(recs)
		if updated == nil {
			return &domain.NotFoundError{Entity: "Product"}
		}
		if in.CategoryID != 0 {
			if _, err := tx.Run(ctx, productUnlinkCategoryQuery, map[string]any{"id": id}); err != nil {
				return err
			}
			if _, err := tx.Run(ctx, productLinkCategoryQuery, map[string]any{
				"productID":  id,
				"categoryID": in.CategoryID,
			}); err != nil {
				return err
			}
		}
		if in.SupplierID != 0 {
			if _, err := tx.Run(ctx, productUnlinkSupplierQuery, map[string]any{"id": id}); err != nil {
				return err
			}
			if _, err := tx.Run(ctx, productLinkSupplierQuery, map[string]any{
				"productID":  id,
				"supplierID": in.SupplierID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *Products) Delete(ctx context.Context, id int64) error {
	ok, err := r.db.DeleteNode(ctx, "Product", "productID", id)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.NotFoundError{Entity: "Product"}
	}
	return nil
}

// Orders lists orders containing this product, newest first.
func (r *Products) Orders(ctx context.Context, id int64) ([]store.Record, error) {
	return r.db.Run(ctx, productOrdersQuery, map[string]any{"id": id})
}
