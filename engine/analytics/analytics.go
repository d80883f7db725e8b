// Package analytics provides read-only aggregation queries over the whole
// graph: leaderboards, grouped sales breakdowns, and the dashboard summary.
// Every query is a full scan of the relevant relationship set; none holds
// state between calls.
package analytics

import (
	"context"

	"github.com/mossaab-byte/northwind-graph-api/engine/store"
)

// DefaultLimit caps leaderboard queries when the caller gives none.
const DefaultLimit = 10

// Store is the read-only slice of the graph store client used here.
type Store interface {
	Run(ctx context.Context, cypher string, params map[string]any) ([]store.Record, error)
}

// Analytics runs the aggregation query templates.
type Analytics struct {
	db Store
}

func New(db Store) *Analytics { return &Analytics{db: db} }

const topProductsQuery = `
MATCH (:Order)-[r:ORDERS]->(p:Product)
RETURN p.productID AS id,
       p.productName AS name,
       count(*) AS orderCount,
       sum(r.quantity) AS totalQuantity,
       sum(r.unitPrice * r.quantity) AS totalRevenue
ORDER BY totalRevenue DESC
LIMIT $limit`

const topCustomersQuery = `
MATCH (c:Customer)-[:PURCHASED]->(o:Order)
OPTIONAL MATCH (o)-[r:ORDERS]->(p:Product)
RETURN c.customerID AS id,
       c.companyName AS name,
       c.country AS country,
       count(DISTINCT o) AS orderCount,
       sum(r.unitPrice * r.quantity) AS totalSpent
ORDER BY totalSpent DESC
LIMIT $limit`

const topEmployeesQuery = `
MATCH (e:Employee)-[:SOLD]->(o:Order)
OPTIONAL MATCH (o)-[r:ORDERS]->(p:Product)
RETURN e.employeeID AS id,
       e.firstName + ' ' + e.lastName AS name,
       e.title AS title,
       count(DISTINCT o) AS orderCount,
       sum(r.unitPrice * r.quantity) AS totalSales
ORDER BY totalSales DESC
LIMIT $limit`

const salesByCategoryQuery = `
MATCH (o:Order)-[r:ORDERS]->(p:Product)-[:PART_OF]->(c:Category)
RETURN c.categoryID AS id,
       c.categoryName AS category,
       count(DISTINCT o) AS orderCount,
       sum(r.quantity) AS totalQuantity,
       sum(r.unitPrice * r.quantity) AS totalRevenue
ORDER BY totalRevenue DESC`

const salesByCountryQuery = `
MATCH (c:Customer)-[:PURCHASED]->(o:Order)-[r:ORDERS]->(p:Product)
RETURN c.country AS country,
       count(DISTINCT c) AS customerCount,
       count(DISTINCT o) AS orderCount,
       sum(r.unitPrice * r.quantity) AS totalRevenue
ORDER BY totalRevenue DESC`

const salesBySupplierQuery = `
MATCH (s:Supplier)-[:SUPPLIES]->(p:Product)<-[r:ORDERS]-(o:Order)
RETURN s.supplierID AS id,
       s.companyName AS supplier,
       s.country AS country,
       count(DISTINCT p) AS productCount,
       sum(r.quantity) AS totalQuantity,
       sum(r.unitPrice * r.quantity) AS totalRevenue
ORDER BY totalRevenue DESC`

const shippingStatsQuery = `
MATCH (sh:Shipper)-[:SHIPS]->(o:Order)
RETURN sh.shipperID AS id,
       sh.companyName AS shipper,
       count(o) AS orderCount,
       avg(o.freight) AS avgFreight,
       sum(o.freight) AS totalFreight
ORDER BY orderCount DESC`

const monthlySalesQuery = `
MATCH (o:Order)-[r:ORDERS]->(p:Product)
WHERE $year IS NULL OR o.orderDate STARTS WITH $year
RETURN substring(o.orderDate, 0, 7) AS month,
       count(DISTINCT o) AS orderCount,
       sum(r.unitPrice * r.quantity) AS revenue
ORDER BY month`

// dashboardQuery chains the five entity counts, then attaches total revenue
// through an OPTIONAL MATCH so a graph without line items still reports its
// counts with a zero revenue.
const dashboardQuery = `
MATCH (c:Customer) WITH count(c) AS customerCount
MATCH (p:Product) WITH customerCount, count(p) AS productCount
MATCH (o:Order) WITH customerCount, productCount, count(o) AS orderCount
MATCH (s:Supplier) WITH customerCount, productCount, orderCount, count(s) AS supplierCount
MATCH (e:Employee) WITH customerCount, productCount, orderCount, supplierCount, count(e) AS employeeCount
OPTIONAL MATCH (:Order)-[r:ORDERS]->(:Product)
RETURN customerCount,
       productCount,
       orderCount,
       supplierCount,
       employeeCount,
       coalesce(sum(r.unitPrice * r.quantity), 0) AS totalRevenue`

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

// TopProducts ranks products by revenue.
func (a *Analytics) TopProducts(ctx context.Context, limit int) ([]store.Record, error) {
	return a.db.Run(ctx, topProductsQuery, map[string]any{"limit": clampLimit(limit)})
}

// TopCustomers ranks customers by total spend.
func (a *Analytics) TopCustomers(ctx context.Context, limit int) ([]store.Record, error) {
	return a.db.Run(ctx, topCustomersQuery, map[string]any{"limit": clampLimit(limit)})
}

// TopEmployees ranks employees by total sales.
func (a *Analytics) TopEmployees(ctx context.Context, limit int) ([]store.Record, error) {
	return a.db.Run(ctx, topEmployeesQuery, map[string]any{"limit": clampLimit(limit)})
}

func (a *Analytics) SalesByCategory(ctx context.Context) ([]store.Record, error) {
	return a.db.Run(ctx, salesByCategoryQuery, nil)
}

func (a *Analytics) SalesByCountry(ctx context.Context) ([]store.Record, error) {
	return a.db.Run(ctx, salesByCountryQuery, nil)
}

func (a *Analytics) SalesBySupplier(ctx context.Context) ([]store.Record, error) {
	return a.db.Run(ctx, salesBySupplierQuery, nil)
}

func (a *Analytics) ShippingStats(ctx context.Context) ([]store.Record, error) {
	return a.db.Run(ctx, shippingStatsQuery, nil)
}

// MonthlySales groups revenue by year-month. A non-empty year filters orders
// whose ISO date string starts with it.
func (a *Analytics) MonthlySales(ctx context.Context, year string) ([]store.Record, error) {
	params := map[string]any{"year": nil}
	if year != "" {
		params["year"] = year
	}
	return a.db.Run(ctx, monthlySalesQuery, params)
}

// Dashboard returns the five entity counts plus total revenue as one record.
func (a *Analytics) Dashboard(ctx context.Context) (store.Record, error) {
	recs, err := a.db.Run(ctx, dashboardQuery, nil)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return store.Record{}, nil
	}
	return recs[0], nil
}
