package northwind

import (
	"context"

	"github.com/mossaab-byte/northwind-graph-api/engine/domain"
	"github.com/mossaab-byte/northwind-graph-api/engine/store"
)

// Orders is the repository for Order nodes and their ORDERS line-item edges.
type Orders struct {
	db Store
}

func NewOrders(db Store) *Orders { return &Orders{db: db} }

const orderListQuery = `
MATCH (c:Customer)-[:PURCHASED]->(o:Order)
OPTIONAL MATCH (sh:Shipper)-[:SHIPS]->(o)
OPTIONAL MATCH (e:Employee)-[:SOLD]->(o)
RETURN o.orderID AS id,
       o.orderDate AS orderDate,
       o.requiredDate AS requiredDate,
       o.shippedDate AS shippedDate,
       o.freight AS freight,
       o.shipCity AS shipCity,
       o.shipCountry AS shipCountry,
       c.companyName AS customer,
       c.customerID AS customerId,
       sh.companyName AS shipper,
       e.firstName + ' ' + e.lastName AS employee
ORDER BY o.orderDate DESC
LIMIT 100`

const orderGetQuery = `
MATCH (c:Customer)-[:PURCHASED]->(o:Order {orderID: $id})
OPTIONAL MATCH (sh:Shipper)-[:SHIPS]->(o)
OPTIONAL MATCH (e:Employee)-[:SOLD]->(o)
RETURN o.orderID AS id,
       o.orderDate AS orderDate,
       o.requiredDate AS requiredDate,
       o.shippedDate AS shippedDate,
       o.freight AS freight,
       o.shipName AS shipName,
       o.shipAddress AS shipAddress,
       o.shipCity AS shipCity,
       o.shipRegion AS shipRegion,
       o.shipPostalCode AS shipPostalCode,
       o.shipCountry AS shipCountry,
       c.companyName AS customer,
       c.customerID AS customerId,
       sh.companyName AS shipper,
       sh.shipperID AS shipperId,
       e.firstName + ' ' + e.lastName AS employee,
       e.employeeID AS employeeId`

const orderCreateQuery = `
CREATE (o:Order {
    orderID: $orderID,
    orderDate: $orderDate,
    requiredDate: $requiredDate,
    shippedDate: $shippedDate,
    freight: $freight,
    shipName: $shipName,
    shipAddress: $shipAddress,
    shipCity: $shipCity,
    shipRegion: $shipRegion,
    shipPostalCode: $shipPostalCode,
    shipCountry: $shipCountry
})
RETURN o.orderID AS id`

const orderUpdateQuery = `
MATCH (o:Order {orderID: $id})
SET o.orderDate = $orderDate,
    o.requiredDate = $requiredDate,
    o.shippedDate = $shippedDate,
    o.freight = $freight,
    o.shipName = $shipName,
    o.shipAddress = $shipAddress,
    o.shipCity = $shipCity,
    o.shipRegion = $shipRegion,
    o.shipPostalCode = $shipPostalCode,
    o.shipCountry = $shipCountry
RETURN o.orderID AS id`

const orderLinkCustomerQuery = `
MATCH (c:Customer {customerID: $customerId})
MATCH (o:Order {orderID: $orderID})
CREATE (c)-[:PURCHASED]->(o)`

const orderLinkEmployeeQuery = `
MATCH (e:Employee {employeeID: $employeeId})
MATCH (o:Order {orderID: $orderID})
CREATE (e)-[:SOLD]->(o)`

const orderLinkShipperQuery = `
MATCH (s:Shipper {shipperID: $shipperId})
MATCH (o:Order {orderID: $orderID})
CREATE (s)-[:SHIPS]->(o)`

const orderDetailsQuery = `
MATCH (o:Order {orderID: $id})-[r:ORDERS]->(p:Product)
RETURN p.productID AS productId,
       p.productName AS productName,
       r.unitPrice AS unitPrice,
       r.quantity AS quantity,
       r.discount AS discount,
       (r.unitPrice * r.quantity * (1 - r.discount)) AS lineTotal
ORDER BY p.productName`

const orderAddDetailQuery = `
MATCH (o:Order {orderID: $orderID})
MATCH (p:Product {productID: $productID})
CREATE (o)-[r:ORDERS {
    unitPrice: $unitPrice,
    quantity: $quantity,
    discount: $discount
}]->(p)
RETURN p.productID AS productId, r.quantity AS quantity`

const orderProductPriceQuery = `
MATCH (p:Product {productID: $id}) RETURN p.unitPrice AS price`

// orderProductsLegacyQuery backs the legacy /orders/{id}/products/ alias. The
// quantity comes from the ORDERS relationship; the old reading of a quantity
// property on the Product node always returned null.
const orderProductsLegacyQuery = `
MATCH (o:Order {orderID: $id})-[r:ORDERS]->(p:Product)
RETURN p.productName AS name, r.quantity AS quantity`

func (r *Orders) List(ctx context.Context) ([]store.Record, error) {
	return r.db.Run(ctx, orderListQuery, nil)
}

func (r *Orders) Get(ctx context.Context, id int64) (store.Record, error) {
	recs, err := r.db.Run(ctx, orderGetQuery, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	if rec := one(recs); rec != nil {
		return rec, nil
	}
	return nil, &domain.NotFoundError{Entity: "Order"}
}

// Create allocates the next order ID, creates the node, links the purchasing
// customer, and links the optional selling employee and shipper, all in one
// write transaction.
func (r *Orders) Create(ctx context.Context, in domain.OrderInput) (store.Record, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var created store.Record
	err := r.db.Write(ctx, func(tx store.Tx) error {
		id, err := store.NextID(ctx, tx, "Order", "orderID")
		if err != nil {
			return err
		}
		if _, err := tx.Run(ctx, orderCreateQuery, map[string]any{
			"orderID":        id,
			"orderDate":      in.OrderDate,
			"requiredDate":   in.RequiredDate,
			"shippedDate":    in.ShippedDate,
			"freight":        in.Freight,
			"shipName":       in.ShipName,
			"shipAddress":    in.ShipAddress,
			"shipCity":       in.ShipCity,
			"shipRegion":     in.ShipRegion,
			"shipPostalCode": in.ShipPostalCode,
			"shipCountry":    in.ShipCountry,
		}); err != nil {
			return err
		}
		if _, err := tx.Run(ctx, orderLinkCustomerQuery, map[string]any{
			"customerId": in.CustomerID,
			"orderID":    id,
		}); err != nil {
			return err
		}
		if in.EmployeeID != 0 {
			if _, err := tx.Run(ctx, orderLinkEmployeeQuery, map[string]any{
				"employeeId": in.EmployeeID,
				"orderID":    id,
			}); err != nil {
				return err
			}
		}
		if in.ShipperID != 0 {
			if _, err := tx.Run(ctx, orderLinkShipperQuery, map[string]any{
				"shipperId": in.ShipperID,
				"orderID":   id,
			}); err != nil {
				return err
			}
		}
		created = store.Record{"id": id}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *Orders) Update(ctx context.Context, id int64, in domain.OrderInput) (store.Record, error) {
	recs, err := r.db.Run(ctx, orderUpdateQuery, map[string]any{
		"id":             id,
		"orderDate":      in.OrderDate,
		"requiredDate":   in.RequiredDate,
		"shippedDate":    in.ShippedDate,
		"freight":        in.Freight,
		"shipName":       in.ShipName,
		"shipAddress":    in.ShipAddress,
		"shipCity":       in.ShipCity,
		"shipRegion":     in.ShipRegion,
		"shipPostalCode": in.ShipPostalCode,
		"shipCountry":    in.ShipCountry,
	})
	if err != nil {
		return nil, err
	}
	if rec := one(recs); rec != nil {
		return rec, nil
	}
	return nil, &domain.NotFoundError{Entity: "Order"}
}

func (r *Orders) Delete(ctx context.Context, id int64) error {
	ok, err := r.db.DeleteNode(ctx, "Order", "orderID", id)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.NotFoundError{Entity: "Order"}
	}
	return nil
}

// Details lists the order's line items with the computed lineTotal
// unitPrice * quantity * (1 - discount).
func (r *Orders) Details(ctx context.Context, id int64) ([]store.Record, error) {
	return r.db.Run(ctx, orderDetailsQuery, map[string]any{"id": id})
}

// AddDetail adds one ORDERS line-item edge. When the caller omits unitPrice
// the product's current catalog price is read inside the same transaction.
func (r *Orders) AddDetail(ctx context.Context, id int64, in domain.OrderLineInput) (store.Record, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var created store.Record
	err := r.db.Write(ctx, func(tx store.Tx) error {
		unitPrice := in.UnitPrice
		if unitPrice == 0 {
			recs, err := tx.Run(ctx, orderProductPriceQuery, map[string]any{"id": in.ProductID})
			if err != nil {
				return err
			}
			if rec := one(recs); rec != nil {
				unitPrice = asFloat(rec["price"])
			}
		}
		recs, err := tx.Run(ctx, orderAddDetailQuery, map[string]any{
			"orderID":   id,
			"productID": in.ProductID,
			"unitPrice": unitPrice,
			"quantity":  in.Quantity,
			"discount":  in.Discount,
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

// ProductsLegacy backs the legacy /orders/{id}/products/ alias.
func (r *Orders) ProductsLegacy(ctx context.Context, id int64) ([]store.Record, error) {
	return r.db.Run(ctx, orderProductsLegacyQuery, map[string]any{"id": id})
}

// asFloat normalizes numeric properties the engine may return as int64.
func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	default:
		return 0
	}
}
