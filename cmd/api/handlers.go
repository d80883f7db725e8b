package main

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mossaab-byte/northwind-graph-api/engine/analytics"
	"github.com/mossaab-byte/northwind-graph-api/engine/domain"
	"github.com/mossaab-byte/northwind-graph-api/engine/events"
	"github.com/mossaab-byte/northwind-graph-api/engine/northwind"
	"github.com/mossaab-byte/northwind-graph-api/pkg/metrics"
)

// server bundles the repositories, the analytics queries, and the change
// event publisher behind the HTTP handlers.
type server struct {
	customers   *northwind.Customers
	products    *northwind.Products
	orders      *northwind.Orders
	suppliers   *northwind.Suppliers
	categories  *northwind.Categories
	employees   *northwind.Employees
	shippers    *northwind.Shippers
	regions     *northwind.Regions
	territories *northwind.Territories
	analytics   *analytics.Analytics
	events      events.Publisher
	storeErrors *metrics.Counter
	log         *slog.Logger
}

func newServer(db northwind.Store, pub events.Publisher, reg *metrics.Registry, log *slog.Logger) *server {
	return &server{
		customers:   northwind.NewCustomers(db),
		products:    northwind.NewProducts(db),
		orders:      northwind.NewOrders(db),
		suppliers:   northwind.NewSuppliers(db),
		categories:  northwind.NewCategories(db),
		employees:   northwind.NewEmployees(db),
		shippers:    northwind.NewShippers(db),
		regions:     northwind.NewRegions(db),
		territories: northwind.NewTerritories(db),
		analytics:   analytics.New(db),
		events:      pub,
		storeErrors: reg.Counter("store_errors_total", "Total graph store failures surfaced as 500s."),
		log:         log,
	}
}

// publish emits a change event. Failures are logged, never surfaced: the
// mutation already committed.
func (s *server) publish(ctx context.Context, entity string, action events.Action, id any) {
	if err := s.events.Publish(ctx, events.Event{Entity: entity, Action: action, ID: id}); err != nil {
		s.log.Warn("event publish failed", "entity", entity, "action", action, "err", err)
	}
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Customers ---

func (s *server) handleCustomerList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.customers.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

func (s *server) handleCustomerGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.customers.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *server) handleCustomerCreate(w http.ResponseWriter, r *http.Request) {
	in, err := decode[domain.CustomerInput](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	rec, err := s.customers.Create(r.Context(), in)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.publish(r.Context(), "customer", events.ActionCreated, rec["id"])
	respondJSON(w, http.StatusCreated, rec)
}

func (s *server) handleCustomerUpdate(w http.ResponseWriter, r *http.Request) {
	in, err := decode[domain.CustomerInput](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	id := r.PathValue("id")
	rec, err := s.customers.Update(r.Context(), id, in)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.publish(r.Context(), "customer", events.ActionUpdated, id)
	respondJSON(w, http.StatusOK, rec)
}

func (s *server) handleCustomerDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.customers.Delete(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}
	s.publish(r.Context(), "customer", events.ActionDeleted, id)
	s.respondDeleted(w, "Customer")
}

func (s *server) handleCustomerOrders(w http.ResponseWriter, r *http.Request) {
	recs, err := s.customers.Orders(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

// --- Products ---

func (s *server) handleProductList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.products.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

func (s *server) handleProductGet(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Product")
	if !ok {
		return
	}
	rec, err := s.products.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *server) handleProductCreate(w http.ResponseWriter, r *http.Request) {
	in, err := decode[domain.ProductInput](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	rec, err := s.products.Create(r.Context(), in)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.publish(r.Context(), "product", events.ActionCreated, rec["id"])
	respondJSON(w, http.StatusCreated, rec)
}

func (s *server) handleProductUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Product")
	if !ok {
		return
	}
	in, err := decode[domain.ProductInput](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	rec, err := s.products.Update(r.Context(), id, in)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.publish(r.Context(), "product", events.ActionUpdated, id)
	respondJSON(w, http.StatusOK, rec)
}

func (s *server) handleProductDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Product")
	if !ok {
		return
	}
	if err := s.products.Delete(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}
	s.publish(r.Context(), "product", events.ActionDeleted, id)
	s.respondDeleted(w, "Product")
}

func (s *server) handleProductOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Product")
	if !ok {
		return
	}
	recs, err := s.products.Orders(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

// --- Orders ---

func (s *server) handleOrderList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.orders.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

func (s *server) handleOrderGet(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Order")
	if !ok {
		return
	}
	rec, err := s.orders.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *server) handleOrderCreate(w http.ResponseWriter, r *http.Request) {
	in, err := decode[domain.OrderInput](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	rec, err := s.orders.Create(r.Context(), in)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.publish(r.Context(), "order", events.ActionCreated, rec["id"])
	respondJSON(w, http.StatusCreated, rec)
}

func (s *server) handleOrderUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Order")
	if !ok {
		return
	}
	in, err := decode[domain.OrderInput](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	rec, err := s.orders.Update(r.Context(), id, in)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.publish(r.Context(), "order", events.ActionUpdated, id)
	respondJSON(w, http.StatusOK, rec)
}

func (s *server) handleOrderDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Order")
	if !ok {
		return
	}
	if err := s.orders.Delete(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}
	s.publish(r.Context(), "order", events.ActionDeleted, id)
	s.respondDeleted(w, "Order")
}

func (s *server) handleOrderDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Order")
	if !ok {
		return
	}
	recs, err := s.orders.Details(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

func (s *server) handleOrderAddDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Order")
	if !ok {
		return
	}
	in, err := decode[domain.OrderLineInput](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	rec, err := s.orders.AddDetail(r.Context(), id, in)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.publish(r.Context(), "order", events.ActionUpdated, id)
	respondJSON(w, http.StatusCreated, rec)
}

func (s *server) handleOrderProductsLegacy(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Order")
	if !ok {
		return
	}
	recs, err := s.orders.ProductsLegacy(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

// --- Suppliers ---

func (s *server) handleSupplierList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.suppliers.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

func (s *server) handleSupplierGet(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Supplier")
	if !ok {
		return
	}
	rec, err := s.suppliers.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *server) handleSupplierCreate(w http.ResponseWriter, r *http.Request) {
	in, err := decode[domain.SupplierInput](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	rec, err := s.suppliers.Create(r.Context(), in)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.publish(r.Context(), "supplier", events.ActionCreated, rec["id"])
	respondJSON(w, http.StatusCreated, rec)
}

func (s *server) handleSupplierUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Supplier")
	if !ok {
		return
	}
	in, err := decode[domain.SupplierInput](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	rec, err := s.suppliers.Update(r.Context(), id, in)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.publish(r.Context(), "supplier", events.ActionUpdated, id)
	respondJSON(w, http.StatusOK, rec)
}

func (s *server) handleSupplierDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Supplier")
	if !ok {
		return
	}
	if err := s.suppliers.Delete(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}
	s.publish(r.Context(), "supplier", events.ActionDeleted, id)
	s.respondDeleted(w, "Supplier")
}

func (s *server) handleSupplierProducts(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Supplier")
	if !ok {
		return
	}
	recs, err := s.suppliers.Products(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

// --- Categories ---

func (s *server) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.categories.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

func (s *server) handleCategoryGet(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Category")
	if !ok {
		return
	}
	rec, err := s.categories.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *server) handleCategoryCreate(w http.ResponseWriter, r *http.Request) {
	in, err := decode[domain.CategoryInput](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	rec, err := s.categories.Create(r.Context(), in)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.publish(r.Context(), "category", events.ActionCreated, rec["id"])
	respondJSON(w, http.StatusCreated, rec)
}

func (s *server) handleCategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Category")
	if !ok {
		return
	}
	in, err := decode[domain.CategoryInput](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	rec, err := s.categories.Update(r.Context(), id, in)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.publish(r.Context(), "category", events.ActionUpdated, id)
	respondJSON(w, http.StatusOK, rec)
}

func (s *server) handleCategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Category")
	if !ok {
		return
	}
	if err := s.categories.Delete(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}
	s.publish(r.Context(), "category", events.ActionDeleted, id)
	s.respondDeleted(w, "Category")
}

func (s *server) handleCategoryProducts(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Category")
	if !ok {
		return
	}
	recs, err := s.categories.Products(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

// --- Employees ---

func (s *server) handleEmployeeList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.employees.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

func (s *server) handleEmployeeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Employee")
	if !ok {
		return
	}
	rec, err := s.employees.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *server) handleEmployeeCreate(w http.ResponseWriter, r *http.Request) {
	in, err := decode[domain.EmployeeInput](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	rec, err := s.employees.Create(r.Context(), in)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.publish(r.Context(), "employee", events.ActionCreated, rec["id"])
	respondJSON(w, http.StatusCreated, rec)
}

func (s *server) handleEmployeeUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Employee")
	if !ok {
		return
	}
	in, err := decode[domain.EmployeeInput](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	rec, err := s.employees.Update(r.Context(), id, in)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.publish(r.Context(), "employee", events.ActionUpdated, id)
	respondJSON(w, http.StatusOK, rec)
}

func (s *server) handleEmployeeDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Employee")
	if !ok {
		return
	}
	if err := s.employees.Delete(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}
	s.publish(r.Context(), "employee", events.ActionDeleted, id)
	s.respondDeleted(w, "Employee")
}

func (s *server) handleEmployeeOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Employee")
	if !ok {
		return
	}
	recs, err := s.employees.Orders(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

func (s *server) handleEmployeeTerritories(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Employee")
	if !ok {
		return
	}
	recs, err := s.employees.Territories(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

func (s *server) handleEmployeeSubordinates(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Employee")
	if !ok {
		return
	}
	recs, err := s.employees.Subordinates(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

// --- Shippers ---

func (s *server) handleShipperList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.shippers.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

func (s *server) handleShipperGet(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Shipper")
	if !ok {
		return
	}
	rec, err := s.shippers.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *server) handleShipperCreate(w http.ResponseWriter, r *http.Request) {
	in, err := decode[domain.ShipperInput](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	rec, err := s.shippers.Create(r.Context(), in)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.publish(r.Context(), "shipper", events.ActionCreated, rec["id"])
	respondJSON(w, http.StatusCreated, rec)
}

func (s *server) handleShipperUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Shipper")
	if !ok {
		return
	}
	in, err := decode[domain.ShipperInput](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	rec, err := s.shippers.Update(r.Context(), id, in)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.publish(r.Context(), "shipper", events.ActionUpdated, id)
	respondJSON(w, http.StatusOK, rec)
}

func (s *server) handleShipperDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Shipper")
	if !ok {
		return
	}
	if err := s.shippers.Delete(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}
	s.publish(r.Context(), "shipper", events.ActionDeleted, id)
	s.respondDeleted(w, "Shipper")
}

func (s *server) handleShipperOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Shipper")
	if !ok {
		return
	}
	recs, err := s.shippers.Orders(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

// --- Regions and Territories (read-only) ---

func (s *server) handleRegionList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.regions.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

func (s *server) handleRegionGet(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Region")
	if !ok {
		return
	}
	rec, err := s.regions.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *server) handleRegionTerritories(w http.ResponseWriter, r *http.Request) {
	id, ok := intID(w, r, "Region")
	if !ok {
		return
	}
	recs, err := s.regions.Territories(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

func (s *server) handleTerritoryList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.territories.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

func (s *server) handleTerritoryGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.territories.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *server) handleTerritoryEmployees(w http.ResponseWriter, r *http.Request) {
	recs, err := s.territories.Employees(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

// --- Analytics ---

func queryLimit(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		return 0
	}
	return n
}

func (s *server) handleTopProducts(w http.ResponseWriter, r *http.Request) {
	recs, err := s.analytics.TopProducts(r.Context(), queryLimit(r))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

func (s *server) handleTopCustomers(w http.ResponseWriter, r *http.Request) {
	recs, err := s.analytics.TopCustomers(r.Context(), queryLimit(r))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

func (s *server) handleTopEmployees(w http.ResponseWriter, r *http.Request) {
	recs, err := s.analytics.TopEmployees(r.Context(), queryLimit(r))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

func (s *server) handleSalesByCategory(w http.ResponseWriter, r *http.Request) {
	recs, err := s.analytics.SalesByCategory(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

func (s *server) handleSalesByCountry(w http.ResponseWriter, r *http.Request) {
	recs, err := s.analytics.SalesByCountry(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

func (s *server) handleSalesBySupplier(w http.ResponseWriter, r *http.Request) {
	recs, err := s.analytics.SalesBySupplier(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

func (s *server) handleShippingStats(w http.ResponseWriter, r *http.Request) {
	recs, err := s.analytics.ShippingStats(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

func (s *server) handleMonthlySales(w http.ResponseWriter, r *http.Request) {
	recs, err := s.analytics.MonthlySales(r.Context(), r.URL.Query().Get("year"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondRecords(w, recs)
}

func (s *server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	rec, err := s.analytics.Dashboard(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}
