package northwind

import (
	"context"

	"github.com/mossaab-byte/northwind-graph-api/engine/domain"
	"github.com/mossaab-byte/northwind-graph-api/engine/store"
)

// Categories is the repository for Category nodes.
type Categories struct {
	db Store
}

func NewCategories(db Store) *Categories { return &Categories{db: db} }

const categoryListQuery = `
MATCH (c:Category)
OPTIONAL MATCH (p:Product)-[:PART_OF]->(c)
RETURN c.categoryID AS id,
       c.categoryName AS name,
       c.description AS description,
       count(p) AS productCount
ORDER BY c.categoryName`

const categoryGetQuery = `
MATCH (c:Category {categoryID: $id})
RETURN c.categoryID AS id,
       c.categoryName AS name,
       c.description AS description`

const categoryCreateQuery = `
CREATE (c:Category {
    categoryID: $categoryID,
    categoryName: $categoryName,
    description: $description
})
RETURN c.categoryID AS id, c.categoryName AS name`

const categoryUpdateQuery = `
MATCH (c:Category {categoryID: $id})
SET c.categoryName = $categoryName,
    c.description = $description
RETURN c.categoryID AS id, c.categoryName AS name`

const categoryProductsQuery = `
MATCH (p:Product)-[:PART_OF]->(c:Category {categoryID: $id})
RETURN p.productID AS id,
       p.productName AS name,
       p.unitPrice AS unitPrice,
       p.unitsInStock AS unitsInStock
ORDER BY p.productName`

func (r *Categories) List(ctx context.Context) ([]store.Record, error) {
	return r.db.Run(ctx, categoryListQuery, nil)
}

func (r *Categories) Get(ctx context.Context, id int64) (store.Record, error) {
	recs, err := r.db.Run(ctx, categoryGetQuery, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	if rec := one(recs); rec != nil {
		return rec, nil
	}
	return nil, &domain.NotFoundError{Entity: "Category"}
}

func (r *Categories) Create(ctx context.Context, in domain.CategoryInput) (store.Record, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var created store.Record
	err := r.db.Write(ctx, func(tx store.Tx) error {
		id, err := store.NextID(ctx, tx, "Category", "categoryID")
		if err != nil {
			return err
		}
		recs, err := tx.Run(ctx, categoryCreateQuery, map[string]any{
			"categoryID":   id,
			"categoryName": in.CategoryName,
			"description":  in.Description,
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

func (r *Categories) Update(ctx context.Context, id int64, in domain.CategoryInput) (store.Record, error) {
	recs, err := r.db.Run(ctx, categoryUpdateQuery, map[string]any{
		"id":           id,
		"categoryName": in.CategoryName,
		"description":  in.Description,
	})
	if err != nil {
		return nil, err
	}
	if rec := one(recs); rec != nil {
		return rec, nil
	}
	return nil, &domain.NotFoundError{Entity: "Category"}
}

func (r *Categories) Delete(ctx context.Context, id int64) error {
	ok, err := r.db.DeleteNode(ctx, "Category", "categoryID", id)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.NotFoundError{Entity: "Category"}
	}
	return nil
}

// Products lists all products assigned to this category.
func (r *Categories) Products(ctx context.Context, id int64) ([]store.Record, error) {
	return r.db.Run(ctx, categoryProductsQuery, map[string]any{"id": id})
}
