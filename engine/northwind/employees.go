package northwind

import (
	"context"

	"github.com/mossaab-byte/northwind-graph-api/engine/domain"
	"github.com/mossaab-byte/northwind-graph-api/engine/store"
)

// Employees is the repository for Employee nodes. REPORTS_TO is the singular
// manager edge, replaced on update when reportsToId is present.
type Employees struct {
	db Store
}

func NewEmployees(db Store) *Employees { return &Employees{db: db} }

const employeeListQuery = `
MATCH (e:Employee)
OPTIONAL MATCH (e)-[:REPORTS_TO]->(m:Employee)
RETURN e.employeeID AS id,
       e.firstName AS firstName,
       e.lastName AS lastName,
       e.title AS title,
       e.city AS city,
       e.country AS country,
       e.hireDate AS hireDate,
       m.firstName + ' ' + m.lastName AS reportsTo
ORDER BY e.lastName, e.firstName`

const employeeGetQuery = `
MATCH (e:Employee {employeeID: $id})
OPTIONAL MATCH (e)-[:REPORTS_TO]->(m:Employee)
RETURN e.employeeID AS id,
       e.firstName AS firstName,
       e.lastName AS lastName,
       e.title AS title,
       e.titleOfCourtesy AS titleOfCourtesy,
       e.birthDate AS birthDate,
       e.hireDate AS hireDate,
       e.address AS address,
       e.city AS city,
       e.region AS region,
       e.postalCode AS postalCode,
       e.country AS country,
       e.homePhone AS homePhone,
       e.extension AS extension,
       e.notes AS notes,
       m.employeeID AS reportsToId,
       m.firstName + ' ' + m.lastName AS reportsTo`

const employeeCreateQuery = `
CREATE (e:Employee {
    employeeID: $employeeID,
    firstName: $firstName,
    lastName: $lastName,
    title: $title,
    titleOfCourtesy: $titleOfCourtesy,
    birthDate: $birthDate,
    hireDate: $hireDate,
    address: $address,
    city: $city,
    region: $region,
    postalCode: $postalCode,
    country: $country,
    homePhone: $homePhone,
    extension: $extension,
    notes: $notes
})
RETURN e.employeeID AS id, e.firstName AS firstName, e.lastName AS lastName`

const employeeUpdateQuery = `
MATCH (e:Employee {employeeID: $id})
SET e.firstName = $firstName,
    e.lastName = $lastName,
    e.title = $title,
    e.titleOfCourtesy = $titleOfCourtesy,
    e.birthDate = $birthDate,
    e.hireDate = $hireDate,
    e.address = $address,
    e.city = $city,
    e.region = $region,
    e.postalCode = $postalCode,
    e.country = $country,
    e.homePhone = $homePhone,
    e.extension = $extension,
    e.notes = $notes
RETURN e.employeeID AS id, e.firstName AS firstName, e.lastName AS lastName`

const employeeLinkManagerQuery = `
MATCH (e:Employee {employeeID: $employeeID})
MATCH (m:Employee {employeeID: $managerId})
CREATE (e)-[:REPORTS_TO]->(m)`

const employeeUnlinkManagerQuery = `
MATCH (e:Employee {employeeID: $id})-[r:REPORTS_TO]->() DELETE r`

const employeeOrdersQuery = `
MATCH (e:Employee {employeeID: $id})-[:SOLD]->(o:Order)
MATCH (c:Customer)-[:PURCHASED]->(o)
RETURN o.orderID AS orderId,
       o.orderDate AS orderDate,
       o.shippedDate AS shippedDate,
       c.companyName AS customer
ORDER BY o.orderDate DESC
LIMIT 50`

const employeeTerritoriesQuery = `
MATCH (e:Employee {employeeID: $id})-[:IN_TERRITORY]->(t:Territory)
OPTIONAL MATCH (t)-[:IN_REGION]->(r:Region)
RETURN t.territoryID AS id,
       t.territoryDescription AS name,
       r.regionDescription AS region
ORDER BY t.territoryDescription`

const employeeSubordinatesQuery = `
MATCH (e:Employee)-[:REPORTS_TO]->(m:Employee {employeeID: $id})
RETURN e.employeeID AS id,
       e.firstName AS firstName,
       e.lastName AS lastName,
       e.title AS title
ORDER BY e.lastName, e.firstName`

func (r *Employees) List(ctx context.Context) ([]store.Record, error) {
	return r.db.Run(ctx, employeeListQuery, nil)
}

func (r *Employees) Get(ctx context.Context, id int64) (store.Record, error) {
	recs, err := r.db.Run(ctx, employeeGetQuery, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	if rec := one(recs); rec != nil {
		return rec, nil
	}
	return nil, &domain.NotFoundError{Entity: "Employee"}
}

func (r *Employees) Create(ctx context.Context, in domain.EmployeeInput) (store.Record, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var created store.Record
	err := r.db.Write(ctx, func(tx store.Tx) error {
		id, err := store.NextID(ctx, tx, "Employee", "employeeID")
		if err != nil {
			return err
		}
		recs, err := tx.Run(ctx, employeeCreateQuery, map[string]any{
			"employeeID":      id,
			"firstName":       in.FirstName,
			"lastName":        in.LastName,
			"title":           in.Title,
			"titleOfCourtesy": in.TitleOfCourtesy,
			"birthDate":       in.BirthDate,
			"hireDate":        in.HireDate,
			"address":         in.Address,
			"city":            in.City,
			"region":          in.Region,
			"postalCode":      in.PostalCode,
			"country":         in.Country,
			"homePhone":       in.HomePhone,
			"extension":       in.Extension,
			"notes":           in.Notes,
		})
		if err != nil {
			return err
		}
		created = one(recs)
		if in.ReportsToID != 0 {
			if _, err := tx.Run(ctx, employeeLinkManagerQuery, map[string]any{
				"employeeID": id,
				"managerId":  in.ReportsToID,
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

func (r *Employees) Update(ctx context.Context, id int64, in domain.EmployeeInput) (store.Record, error) {
	var updated store.Record
	err := r.db.Write(ctx, func(tx store.Tx) error {
		recs, err := tx.Run(ctx, employeeUpdateQuery, map[string]any{
			"id":              id,
			"firstName":       in.FirstName,
			"lastName":        in.LastName,
			"title":           in.Title,
			"titleOfCourtesy": in.TitleOfCourtesy,
			"birthDate":       in.BirthDate,
			"hireDate":        in.HireDate,
			"address":         in.Address,
			"city":            in.City,
			"region":          in.Region,
			"postalCode":      in.PostalCode,
			"country":         in.Country,
			"homePhone":       in.HomePhone,
			"extension":       in.Extension,
			"notes":           in.Notes,
		})
		if err != nil {
			return err
		}
		updated = one(recs)
		if updated == nil {
			return &domain.NotFoundError{Entity: "Employee"}
		}
		if in.ReportsToID != 0 {
			if _, err := tx.Run(ctx, employeeUnlinkManagerQuery, map[string]any{"id": id}); err != nil {
				return err
			}
			if _, err := tx.Run(ctx, employeeLinkManagerQuery, map[string]any{
				"employeeID": id,
				"managerId":  in.ReportsToID,
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

func (r *Employees) Delete(ctx context.Context, id int64) error {
	ok, err := r.db.DeleteNode(ctx, "Employee", "employeeID", id)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.NotFoundError{Entity: "Employee"}
	}
	return nil
}

// Orders lists orders sold by the employee, newest first.
func (r *Employees) Orders(ctx context.Context, id int64) ([]store.Record, error) {
	return r.db.Run(ctx, employeeOrdersQuery, map[string]any{"id": id})
}

// Territories lists the employee's assigned territories with their regions.
func (r *Employees) Territories(ctx context.Context, id int64) ([]store.Record, error) {
	return r.db.Run(ctx, employeeTerritoriesQuery, map[string]any{"id": id})
}

// Subordinates lists employees reporting to this employee.
func (r *Employees) Subordinates(ctx context.Context, id int64) ([]store.Record, error) {
	return r.db.Run(ctx, employeeSubordinatesQuery, map[string]any{"id": id})
}
