package main

import "net/http"

// routes registers every endpoint under the API prefix. Paths use trailing
// slashes; {$} keeps each pattern an exact match instead of a subtree.
func (s *server) routes(prefix string) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+prefix+"/health", s.handleHealth)

	mux.HandleFunc("GET "+prefix+"/customers/{$}", s.handleCustomerList)
	mux.HandleFunc("POST "+prefix+"/customers/{$}", s.handleCustomerCreate)
	mux.HandleFunc("GET "+prefix+"/customers/{id}/{$}", s.handleCustomerGet)
	mux.HandleFunc("PUT "+prefix+"/customers/{id}/{$}", s.handleCustomerUpdate)
	mux.HandleFunc("DELETE "+prefix+"/customers/{id}/{$}", s.handleCustomerDelete)
	mux.HandleFunc("GET "+prefix+"/customers/{id}/orders/{$}", s.handleCustomerOrders)

	mux.HandleFunc("GET "+prefix+"/products/{$}", s.handleProductList)
	mux.HandleFunc("POST "+prefix+"/products/{$}", s.handleProductCreate)
	mux.HandleFunc("GET "+prefix+"/products/{id}/{$}", s.handleProductGet)
	mux.HandleFunc("PUT "+prefix+"/products/{id}/{$}", s.handleProductUpdate)
	mux.HandleFunc("DELETE "+prefix+"/products/{id}/{$}", s.handleProductDelete)
	mux.HandleFunc("GET "+prefix+"/products/{id}/orders/{$}", s.handleProductOrders)

	mux.HandleFunc("GET "+prefix+"/orders/{$}", s.handleOrderList)
	mux.HandleFunc("POST "+prefix+"/orders/{$}", s.handleOrderCreate)
	mux.HandleFunc("GET "+prefix+"/orders/{id}/{$}", s.handleOrderGet)
	mux.HandleFunc("PUT "+prefix+"/orders/{id}/{$}", s.handleOrderUpdate)
	mux.HandleFunc("DELETE "+prefix+"/orders/{id}/{$}", s.handleOrderDelete)
	mux.HandleFunc("GET "+prefix+"/orders/{id}/details/{$}", s.handleOrderDetails)
	mux.HandleFunc("POST "+prefix+"/orders/{id}/details/{$}", s.handleOrderAddDetail)
	mux.HandleFunc("GET "+prefix+"/orders/{id}/products/{$}", s.handleOrderProductsLegacy)

	mux.HandleFunc("GET "+prefix+"/suppliers/{$}", s.handleSupplierList)
	mux.HandleFunc("POST "+prefix+"/suppliers/{$}", s.handleSupplierCreate)
	mux.HandleFunc("GET "+prefix+"/suppliers/{id}/{$}", s.handleSupplierGet)
	mux.HandleFunc("PUT "+prefix+"/suppliers/{id}/{$}", s.handleSupplierUpdate)
	mux.HandleFunc("DELETE "+prefix+"/suppliers/{id}/{$}", s.handleSupplierDelete)
	mux.HandleFunc("GET "+prefix+"/suppliers/{id}/products/{$}", s.handleSupplierProducts)

	mux.HandleFunc("GET "+prefix+"/categories/{$}", s.handleCategoryList)
	mux.HandleFunc("POST "+prefix+"/categories/{$}", s.handleCategoryCreate)
	mux.HandleFunc("GET "+prefix+"/categories/{id}/{$}", s.handleCategoryGet)
	mux.HandleFunc("PUT "+prefix+"/categories/{id}/{$}", s.handleCategoryUpdate)
	mux.HandleFunc("DELETE "+prefix+"/categories/{id}/{$}", s.handleCategoryDelete)
	mux.HandleFunc("GET "+prefix+"/categories/{id}/products/{$}", s.handleCategoryProducts)

	mux.HandleFunc("GET "+prefix+"/employees/{$}", s.handleEmployeeList)
	mux.HandleFunc("POST "+prefix+"/employees/{$}", s.handleEmployeeCreate)
	mux.HandleFunc("GET "+prefix+"/employees/{id}/{$}", s.handleEmployeeGet)
	mux.HandleFunc("PUT "+prefix+"/employees/{id}/{$}", s.handleEmployeeUpdate)
	mux.HandleFunc("DELETE "+prefix+"/employees/{id}/{$}", s.handleEmployeeDelete)
	mux.HandleFunc("GET "+prefix+"/employees/{id}/orders/{$}", s.handleEmployeeOrders)
	mux.HandleFunc("GET "+prefix+"/employees/{id}/territories/{$}", s.handleEmployeeTerritories)
	mux.HandleFunc("GET "+prefix+"/employees/{id}/subordinates/{$}", s.handleEmployeeSubordinates)

	mux.HandleFunc("GET "+prefix+"/shippers/{$}", s.handleShipperList)
	mux.HandleFunc("POST "+prefix+"/shippers/{$}", s.handleShipperCreate)
	mux.HandleFunc("GET "+prefix+"/shippers/{id}/{$}", s.handleShipperGet)
	mux.HandleFunc("PUT "+prefix+"/shippers/{id}/{$}", s.handleShipperUpdate)
	mux.HandleFunc("DELETE "+prefix+"/shippers/{id}/{$}", s.handleShipperDelete)
	mux.HandleFunc("GET "+prefix+"/shippers/{id}/orders/{$}", s.handleShipperOrders)

	mux.HandleFunc("GET "+prefix+"/regions/{$}", s.handleRegionList)
	mux.HandleFunc("GET "+prefix+"/regions/{id}/{$}", s.handleRegionGet)
	mux.HandleFunc("GET "+prefix+"/regions/{id}/territories/{$}", s.handleRegionTerritories)

	mux.HandleFunc("GET "+prefix+"/territories/{$}", s.handleTerritoryList)
	mux.HandleFunc("GET "+prefix+"/territories/{id}/{$}", s.handleTerritoryGet)
	mux.HandleFunc("GET "+prefix+"/territories/{id}/employees/{$}", s.handleTerritoryEmployees)

	mux.HandleFunc("GET "+prefix+"/analytics/dashboard/{$}", s.handleDashboard)
	mux.HandleFunc("GET "+prefix+"/analytics/top-products/{$}", s.handleTopProducts)
	mux.HandleFunc("GET "+prefix+"/analytics/top-customers/{$}", s.handleTopCustomers)
	mux.HandleFunc("GET "+prefix+"/analytics/top-employees/{$}", s.handleTopEmployees)
	mux.HandleFunc("GET "+prefix+"/analytics/sales-by-category/{$}", s.handleSalesByCategory)
	mux.HandleFunc("GET "+prefix+"/analytics/sales-by-country/{$}", s.handleSalesByCountry)
	mux.HandleFunc("GET "+prefix+"/analytics/sales-by-supplier/{$}", s.handleSalesBySupplier)
	mux.HandleFunc("GET "+prefix+"/analytics/shipping-stats/{$}", s.handleShippingStats)
	mux.HandleFunc("GET "+prefix+"/analytics/monthly-sales/{$}", s.handleMonthlySales)

	return mux
}
