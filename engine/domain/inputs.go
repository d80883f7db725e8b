// Package domain defines the typed request payloads and the error taxonomy
// shared by the repositories and the HTTP layer. Every optional field is a
// plain zero-valued Go field, so decoding a partial JSON body yields the
// documented defaults and PUT keeps full-replace semantics.
package domain

// CustomerInput is the create/replace payload for a Customer node.
type CustomerInput struct {
	CustomerID   string `json:"customerID"`
	CompanyName  string `json:"companyName"`
	ContactName  string `json:"contactName"`
	ContactTitle string `json:"contactTitle"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Region       string `json:"region"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
	Phone        string `json:"phone"`
	Fax          string `json:"fax"`
}

// Validate checks the create-time required fields. Replace payloads are not
// validated; a PUT with blanks resets every mutable attribute.
func (in CustomerInput) Validate() error {
	if in.CustomerID == "" {
		return Required("customerID")
	}
	if in.CompanyName == "" {
		return Required("companyName")
	}
	return nil
}

// ProductInput is the create/replace payload for a Product node. CategoryID
// and SupplierID are foreign keys; zero means no link.
type ProductInput struct {
	ProductName     string  `json:"productName"`
	UnitPrice       float64 `json:"unitPrice"`
	UnitsInStock    int     `json:"unitsInStock"`
	UnitsOnOrder    int     `json:"unitsOnOrder"`
	QuantityPerUnit string  `json:"quantityPerUnit"`
	Discontinued    bool    `json:"discontinued"`
	ReorderLevel    int     `json:"reorderLevel"`
	CategoryID      int64   `json:"categoryId"`
	SupplierID      int64   `json:"supplierId"`
}

func (in ProductInput) Validate() error {
	if in.ProductName == "" {
		return Required("productName")
	}
	return nil
}

// OrderInput is the create/replace payload for an Order node. Dates are ISO
// strings as stored on the node.
type OrderInput struct {
	CustomerID     string  `json:"customerId"`
	EmployeeID     int64   `json:"employeeId"`
	ShipperID      int64   `json:"shipperId"`
	OrderDate      string  `json:"orderDate"`
	RequiredDate   string  `json:"requiredDate"`
	ShippedDate    string  `json:"shippedDate"`
	Freight        float64 `json:"freight"`
	ShipName       string  `json:"shipName"`
	ShipAddress    string  `json:"shipAddress"`
	ShipCity       string  `json:"shipCity"`
	ShipRegion     string  `json:"shipRegion"`
	ShipPostalCode string  `json:"shipPostalCode"`
	ShipCountry    string  `json:"shipCountry"`
}

func (in OrderInput) Validate() error {
	if in.CustomerID == "" {
		return Required("customerId")
	}
	return nil
}

// OrderLineInput adds one ORDERS edge from an order to a product. A zero
// UnitPrice means "use the product's current catalog price".
type OrderLineInput struct {
	ProductID int64   `json:"productId"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Discount  float64 `json:"discount"`
}

func (in OrderLineInput) Validate() error {
	if in.ProductID == 0 {
		return Required("productId")
	}
	if in.Quantity == 0 {
		return Required("quantity")
	}
	return nil
}

// SupplierInput is the create/replace payload for a Supplier node.
type SupplierInput struct {
	CompanyName  string `json:"companyName"`
	ContactName  string `json:"contactName"`
	ContactTitle string `json:"contactTitle"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Region       string `json:"region"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
	Phone        string `json:"phone"`
	Fax          string `json:"fax"`
	HomePage     string `json:"homePage"`
}

func (in SupplierInput) Validate() error {
	if in.CompanyName == "" {
		return Required("companyName")
	}
	return nil
}

// CategoryInput is the create/replace payload for a Category node.
type CategoryInput struct {
	CategoryName string `json:"categoryName"`
	Description  string `json:"description"`
}

func (in CategoryInput) Validate() error {
	if in.CategoryName == "" {
		return Required("categoryName")
	}
	return nil
}

// EmployeeInput is the create/replace payload for an Employee node.
// ReportsToID is the manager foreign key; zero means no link.
type EmployeeInput struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Title           string `json:"title"`
	TitleOfCourtesy string `json:"titleOfCourtesy"`
	BirthDate       string `json:"birthDate"`
	HireDate        string `json:"hireDate"`
	Address         string `json:"address"`
	City            string `json:"city"`
	Region          string `json:"region"`
	PostalCode      string `json:"postalCode"`
	Country         string `json:"country"`
	HomePhone       string `json:"homePhone"`
	Extension       string `json:"extension"`
	Notes           string `json:"notes"`
	ReportsToID     int64  `json:"reportsToId"`
}

func (in EmployeeInput) Validate() error {
	if in.FirstName == "" {
		return Required("firstName")
	}
	if in.LastName == "" {
		return Required("lastName")
	}
	return nil
}

// ShipperInput is the create/replace payload for a Shipper node.
type ShipperInput struct {
	CompanyName string `json:"companyName"`
	Phone       string `json:"phone"`
}

func (in ShipperInput) Validate() error {
	if in.CompanyName == "" {
		return Required("companyName")
	}
	return nil
}
