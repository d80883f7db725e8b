package northwind

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mossaab-byte/northwind-graph-api/engine/domain"
	"github.com/mossaab-byte/northwind-graph-api/engine/store"
)

// fakeStore satisfies both Store and store.Tx: Write just hands itself to the
// work function, so transactional steps land in the same call log.
type fakeStore struct {
	cyphers []string
	params  []map[string]any
	results [][]store.Record
	err     error

	deleteOK    bool
	deleteErr   error
	deleteLabel string
	deleteID    any
}

func (f *fakeStore) Run(_ context.Context, cypher string, params map[string]any) ([]store.Record, error) {
	f.cyphers = append(f.cyphers, cypher)
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.results) == 0 {
		return nil, nil
	}
	recs := f.results[0]
	f.results = f.results[1:]
	return recs, nil
}

func (f *fakeStore) Write(_ context.Context, work func(tx store.Tx) error) error {
	return work(f)
}

func (f *fakeStore) DeleteNode(_ context.Context, label, _ string, id any) (bool, error) {
	f.deleteLabel = label
	f.deleteID = id
	return f.deleteOK, f.deleteErr
}

func ctx() context.Context { return context.Background() }

func TestCustomersCreateValidates(t *testing.T) {
	db := &fakeStore{}
	_, err := NewCustomers(db).Create(ctx(), domain.CustomerInput{CustomerID: "ALFKI"})
	if !errors.Is(err, domain.ErrFieldRequired) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(db.cyphers) != 0 {
		t.Fatal("no query may run on validation failure")
	}
}

func TestCustomersGetNotFound(t *testing.T) {
	db := &fakeStore{}
	_, err := NewCustomers(db).Get(ctx(), "NOPE")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCustomersCreateReturnsSummary(t *testing.T) {
	db := &fakeStore{results: [][]store.Record{
		{{"id": "ALFKI", "name": "Alfreds Futterkiste"}},
	}}
	rec, err := NewCustomers(db).Create(ctx(), domain.CustomerInput{
		CustomerID:  "ALFKI",
		CompanyName: "Alfreds Futterkiste",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec["id"] != "ALFKI" {
		t.Fatalf("unexpected summary: %v", rec)
	}
	if db.params[0]["contactName"] != "" {
		t.Fatal("optional fields must default to empty string")
	}
}

func TestCustomersOrdersCap(t *testing.T) {
	db := &fakeStore{}
	if _, err := NewCustomers(db).Orders(ctx(), "ALFKI"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(db.cyphers[0], "LIMIT 20") {
		t.Fatalf("expected 20-row cap:\n%s", db.cyphers[0])
	}
}

func TestCustomersDelete(t *testing.T) {
	db := &fakeStore{deleteOK: true}
	if err := NewCustomers(db).Delete(ctx(), "ALFKI"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.deleteLabel != "Customer" || db.deleteID != "ALFKI" {
		t.Fatalf("unexpected delete target: %s %v", db.deleteLabel, db.deleteID)
	}

	db = &fakeStore{deleteOK: false}
	if err := NewCustomers(db).Delete(ctx(), "NOPE"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProductsCreateAllocatesAndLinks(t *testing.T) {
	db := &fakeStore{results: [][]store.Record{
		{{"id": int64(78)}},                      // next id
		{{"id": int64(78), "name": "Widget"}},    // create
		nil,                                      // category link
		nil,                                      // supplier link
	}}
	rec, err := NewProducts(db).Create(ctx(), domain.ProductInput{
		ProductName: "Widget",
		CategoryID:  2,
		SupplierID:  5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec["id"] != int64(78) {
		t.Fatalf("expected allocated id 78, got %v", rec["id"])
	}
	if len(db.cyphers) != 4 {
		t.Fatalf("expected 4 queries in the transaction, got %d", len(db.cyphers))
	}
	if !strings.Contains(db.cyphers[0], "coalesce(max(n.productID), 0) + 1") {
		t.Fatalf("expected max-plus-one allocation:\n%s", db.cyphers[0])
	}
	if !strings.Contains(db.cyphers[2], "PART_OF") || !strings.Contains(db.cyphers[3], "SUPPLIES") {
		t.Fatal("expected category and supplier links")
	}
	if db.params[1]["unitPrice"] != 0.0 || db.params[1]["discontinued"] != false {
		t.Fatalf("optional attributes must default to zero values: %v", db.params[1])
	}
}

func TestProductsCreateSkipsAbsentLinks(t *testing.T) {
	db := &fakeStore{results: [][]store.Record{
		{{"id": int64(1)}},
		{{"id": int64(1), "name": "Widget"}},
	}}
	if _, err := NewProducts(db).Create(ctx(), domain.ProductInput{ProductName: "Widget"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.cyphers) != 2 {
		t.Fatalf("expected no link queries, got %d queries", len(db.cyphers))
	}
}

func TestProductsUpdateReplacesCategoryEdge(t *testing.T) {
	db := &fakeStore{results: [][]store.Record{
		{{"id": int64(7), "name": "Widget"}}, // set
		nil,                                  // unlink category
		nil,                                  // link category
	}}
	_, err := NewProducts(db).Update(ctx(), 7, domain.ProductInput{
		ProductName: "Widget",
		CategoryID:  3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.cyphers) != 3 {
		t.Fatalf("expected set+unlink+link, got %d queries", len(db.cyphers))
	}
	if !strings.Contains(db.cyphers[1], "DELETE r") {
		t.Fatalf("expected edge deletion before recreation:\n%s", db.cyphers[1])
	}
}

func TestProductsUpdateNotFound(t *testing.T) {
	db := &fakeStore{}
	_, err := NewProducts(db).Update(ctx(), 99, domain.ProductInput{ProductName: "X"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(db.cyphers) != 1 {
		t.Fatal("no edge queries may run when the node is missing")
	}
}

func TestOrdersCreateLinksCustomer(t *testing.T) {
	db := &fakeStore{results: [][]store.Record{
		{{"id": int64(11)}}, // next id
		{{"id": int64(11)}}, // create
		nil,                 // customer link
	}}
	rec, err := NewOrders(db).Create(ctx(), domain.OrderInput{CustomerID: "ALFKI"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec["id"] != int64(11) {
		t.Fatalf("expected id 11, got %v", rec["id"])
	}
	if len(db.cyphers) != 3 {
		t.Fatalf("expected 3 queries, got %d", len(db.cyphers))
	}
	if !strings.Contains(db.cyphers[2], "PURCHASED") {
		t.Fatalf("expected PURCHASED link:\n%s", db.cyphers[2])
	}
}

func TestOrdersCreateOptionalLinks(t *testing.T) {
	db := &fakeStore{results: [][]store.Record{
		{{"id": int64(12)}},
		{{"id": int64(12)}},
		nil, nil, nil,
	}}
	_, err := NewOrders(db).Create(ctx(), domain.OrderInput{
		CustomerID: "ALFKI",
		EmployeeID: 4,
		ShipperID:  2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.cyphers) != 5 {
		t.Fatalf("expected 5 queries, got %d", len(db.cyphers))
	}
	if !strings.Contains(db.cyphers[3], "SOLD") || !strings.Contains(db.cyphers[4], "SHIPS") {
		t.Fatal("expected SOLD and SHIPS links")
	}
}

func TestOrdersCreateRequiresCustomer(t *testing.T) {
	db := &fakeStore{}
	_, err := NewOrders(db).Create(ctx(), domain.OrderInput{})
	if !errors.Is(err, domain.ErrFieldRequired) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(db.cyphers) != 0 {
		t.Fatal("no query may run on validation failure")
	}
}

func TestOrdersAddDetailDefaultsCatalogPrice(t *testing.T) {
	db := &fakeStore{results: [][]store.Record{
		{{"price": 19.5}},                                 // price lookup
		{{"productId": int64(7), "quantity": int64(3)}},   // edge create
	}}
	rec, err := NewOrders(db).AddDetail(ctx(), 11, domain.OrderLineInput{
		ProductID: 7,
		Quantity:  3,
		Discount:  0.1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec["productId"] != int64(7) {
		t.Fatalf("unexpected result: %v", rec)
	}
	if len(db.cyphers) != 2 {
		t.Fatalf("expected price lookup plus create, got %d queries", len(db.cyphers))
	}
	if db.params[1]["unitPrice"] != 19.5 {
		t.Fatalf("expected catalog price 19.5, got %v", db.params[1]["unitPrice"])
	}
}

func TestOrdersAddDetailExplicitPrice(t *testing.T) {
	db := &fakeStore{results: [][]store.Record{
		{{"productId": int64(7), "quantity": int64(2)}},
	}}
	_, err := NewOrders(db).AddDetail(ctx(), 11, domain.OrderLineInput{
		ProductID: 7,
		Quantity:  2,
		UnitPrice: 42,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.cyphers) != 1 {
		t.Fatal("explicit price must skip the catalog lookup")
	}
	if db.params[0]["unitPrice"] != 42.0 {
		t.Fatalf("expected explicit price, got %v", db.params[0]["unitPrice"])
	}
}

func TestOrdersDetailsComputesLineTotal(t *testing.T) {
	db := &fakeStore{}
	if _, err := NewOrders(db).Details(ctx(), 11); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(db.cyphers[0], "(r.unitPrice * r.quantity * (1 - r.discount)) AS lineTotal") {
		t.Fatalf("expected computed lineTotal:\n%s", db.cyphers[0])
	}
}

func TestOrdersLegacyProductsReadsEdgeQuantity(t *testing.T) {
	db := &fakeStore{}
	if _, err := NewOrders(db).ProductsLegacy(ctx(), 11); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(db.cyphers[0], "r.quantity AS quantity") {
		t.Fatalf("quantity must come from the ORDERS edge:\n%s", db.cyphers[0])
	}
}

func TestEmployeesUpdateReplacesManagerEdge(t *testing.T) {
	db := &fakeStore{results: [][]store.Record{
		{{"id": int64(3), "firstName": "Janet", "lastName": "Leverling"}},
		nil,
		nil,
	}}
	_, err := NewEmployees(db).Update(ctx(), 3, domain.EmployeeInput{
		FirstName:   "Janet",
		LastName:    "Leverling",
		ReportsToID: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.cyphers) != 3 {
		t.Fatalf("expected set+unlink+link, got %d", len(db.cyphers))
	}
	if !strings.Contains(db.cyphers[1], "REPORTS_TO") || !strings.Contains(db.cyphers[1], "DELETE r") {
		t.Fatalf("expected manager edge removal:\n%s", db.cyphers[1])
	}
}

func TestEmployeesUpdateKeepsManagerWhenAbsent(t *testing.T) {
	db := &fakeStore{results: [][]store.Record{
		{{"id": int64(3), "firstName": "Janet", "lastName": "Leverling"}},
	}}
	_, err := NewEmployees(db).Update(ctx(), 3, domain.EmployeeInput{
		FirstName: "Janet",
		LastName:  "Leverling",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.cyphers) != 1 {
		t.Fatal("absent reportsToId must leave the manager edge untouched")
	}
}

func TestSuppliersCreateAllocatesID(t *testing.T) {
	db := &fakeStore{results: [][]store.Record{
		{{"id": int64(30)}},
		{{"id": int64(30), "name": "Exotic Liquids"}},
	}}
	rec, err := NewSuppliers(db).Create(ctx(), domain.SupplierInput{CompanyName: "Exotic Liquids"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec["id"] != int64(30) {
		t.Fatalf("unexpected record: %v", rec)
	}
	if db.params[1]["supplierID"] != int64(30) {
		t.Fatalf("expected allocated id in create params, got %v", db.params[1]["supplierID"])
	}
}

func TestShippersGetNotFound(t *testing.T) {
	db := &fakeStore{}
	_, err := NewShippers(db).Get(ctx(), 9)
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) || nf.Entity != "Shipper" {
		t.Fatalf("expected Shipper not found, got %v", err)
	}
}

func TestRegionsAndTerritoriesReadOnly(t *testing.T) {
	db := &fakeStore{results: [][]store.Record{
		{{"id": int64(1), "name": "Eastern"}},
	}}
	rec, err := NewRegions(db).Get(ctx(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec["name"] != "Eastern" {
		t.Fatalf("unexpected record: %v", rec)
	}

	db = &fakeStore{}
	if _, err := NewTerritories(db).Get(ctx(), "01581"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if db.params[0]["id"] != "01581" {
		t.Fatalf("territory keys are strings, got %v", db.params[0]["id"])
	}
}

func TestStoreFailurePropagates(t *testing.T) {
	boom := errors.New("neo4j unavailable")
	db := &fakeStore{err: boom}
	if _, err := NewProducts(db).List(ctx()); !errors.Is(err, boom) {
		t.Fatalf("expected store failure to propagate, got %v", err)
	}
}

func TestAsFloat(t *testing.T) {
	if asFloat(int64(3)) != 3 || asFloat(2.5) != 2.5 || asFloat("x") != 0 {
		t.Fatal("unexpected numeric normalization")
	}
}
