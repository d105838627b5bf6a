package schema

import (
	"propdesk/internal/config"
	"propdesk/internal/store"
	"propdesk/internal/validate"
)

// Field describes how one column is entered or edited.
type Field struct {
	Column       string
	Prompt       string
	Kind         validate.Kind
	ErrorMessage string
}

// Entity is everything the generic CRUD operations need to know about a table.
type Entity struct {
	Label        string // "Apartment", used in operator messages
	Table        string
	PrimaryKey   string
	AddFields    []Field
	UpdateFields []Field

	// KeyPrompt and KeyError are used when asking which row to update.
	KeyPrompt string
	KeyError  string

	model interface{}
}

// Filter is one search-by-column option.
type Filter struct {
	Label  string
	Column string
	Prompt string
	Kind   validate.Kind
}

// Catalog holds the three entities, bound to the configured table names.
type Catalog struct {
	Apartment Entity
	Tenant    Entity
	Parking   Entity

	ApartmentFilters []Filter
}

// NewCatalog builds the field tables for the given table names.
func NewCatalog(tables config.Tables) *Catalog {
	return &Catalog{
		Apartment: Entity{
			Label:      "Apartment",
			Table:      tables.Apartment,
			PrimaryKey: "unit_number",
			AddFields: []Field{
				{"unit_number", "Enter unit number: ", validate.KindInteger, "Invalid unit number."},
				{"floor_number", "Enter floor number: ", validate.KindInteger, "Invalid floor number."},
				{"bedrooms", "Enter number of bedrooms: ", validate.KindInteger, "Invalid number."},
				{"bathrooms", "Enter number of bathrooms: ", validate.KindInteger, "Invalid number."},
				{"square_footage", "Enter square footage: ", validate.KindInteger, "Invalid square footage."},
				{"rent_ownership_details", "Enter rent/ownership details: ", validate.KindAlphanumeric, "Invalid details."},
				{"occupancy_status", "Enter occupancy status: ", validate.KindAlphanumeric, "Invalid status."},
			},
			UpdateFields: []Field{
				{"floor_number", "Enter new floor number: ", validate.KindInteger, "Invalid floor number."},
				{"bedrooms", "Enter new number of bedrooms: ", validate.KindInteger, "Invalid number."},
				{"bathrooms", "Enter new number of bathrooms: ", validate.KindInteger, "Invalid number."},
				{"square_footage", "Enter new square footage: ", validate.KindInteger, "Invalid square footage."},
				{"rent_ownership_details", "Enter new rent/ownership details: ", validate.KindAlphanumeric, "Invalid details."},
				{"occupancy_status", "Enter new occupancy status: ", validate.KindAlphanumeric, "Invalid status."},
			},
			KeyPrompt: "Enter unit number to update: ",
			KeyError:  "Invalid unit number.",
			model:     &store.ApartmentUnit{},
		},
		Tenant: Entity{
			Label:      "Tenant",
			Table:      tables.Tenant,
			PrimaryKey: "tenant_id",
			AddFields: []Field{
				{"name", "Enter tenant name: ", validate.KindAlphanumeric, "Invalid name."},
				{"contact_info", "Enter contact information: ", validate.KindDigits, "Invalid contact info."},
				{"lease_start_date", "Enter lease start date (YYYY-MM-DD): ", validate.KindDate, "Invalid date format."},
				{"lease_end_date", "Enter lease end date (YYYY-MM-DD): ", validate.KindDate, "Invalid date format."},
				{"emergency_contact", "Enter emergency contact: ", validate.KindAlphanumeric, "Invalid contact."},
				{"rent_payment_history", "Enter rent/payment history: ", validate.KindAlphanumeric, "Invalid history."},
			},
			UpdateFields: []Field{
				{"name", "Enter new tenant name: ", validate.KindAlphanumeric, "Invalid name."},
				{"contact_info", "Enter new contact information: ", validate.KindDigits, "Invalid contact info."},
				{"lease_start_date", "Enter new lease start date (YYYY-MM-DD): ", validate.KindDate, "Invalid date format."},
				{"lease_end_date", "Enter new lease end date (YYYY-MM-DD): ", validate.KindDate, "Invalid date format."},
				{"emergency_contact", "Enter new emergency contact: ", validate.KindAlphanumeric, "Invalid contact."},
				{"rent_payment_history", "Enter new rent/payment history: ", validate.KindAlphanumeric, "Invalid history."},
			},
			KeyPrompt: "Enter tenant ID to update: ",
			KeyError:  "Invalid tenant ID.",
			model:     &store.TenantOwner{},
		},
		Parking: Entity{
			Label:      "Parking",
			Table:      tables.Parking,
			PrimaryKey: "parking_id",
			AddFields: []Field{
				{"parking_space_number", "Enter parking space number: ", validate.KindInteger, "Invalid number."},
				{"vehicle_details", "Enter vehicle details: ", validate.KindAlphanumeric, "Invalid details."},
				{"availability_status", "Enter availability status: ", validate.KindAlphanumeric, "Invalid status."},
			},
			UpdateFields: []Field{
				{"parking_space_number", "Enter new parking space number: ", validate.KindInteger, "Invalid number."},
				{"vehicle_details", "Enter new vehicle details: ", validate.KindAlphanumeric, "Invalid details."},
				{"availability_status", "Enter new availability status: ", validate.KindAlphanumeric, "Invalid status."},
			},
			KeyPrompt: "Enter parking ID to update: ",
			KeyError:  "Invalid parking ID.",
			model:     &store.Parking{},
		},
		ApartmentFilters: []Filter{
			{"By Floor Number", "floor_number", "Enter floor number: ", validate.KindInteger},
			{"By Number of Bedrooms", "bedrooms", "Enter number of bedrooms: ", validate.KindInteger},
			{"By Number of Bathrooms", "bathrooms", "Enter number of bathrooms: ", validate.KindInteger},
			{"By Square Footage", "square_footage", "Enter square footage: ", validate.KindInteger},
			{"By Occupancy Status", "occupancy_status", "Enter occupancy status: ", validate.KindAlphanumeric},
		},
	}
}

// Model is the GORM model the entity's table is created from.
func (e Entity) Model() interface{} {
	return e.model
}

// Entities lists the three entities in menu order.
func (c *Catalog) Entities() []Entity {
	return []Entity{c.Apartment, c.Tenant, c.Parking}
}

// Check verifies every entity and filter against its model.
func (c *Catalog) Check() error {
	for _, e := range c.Entities() {
		if err := Check(e, e.model); err != nil {
			return err
		}
	}

	filterFields := make([]Field, 0, len(c.ApartmentFilters))
	for _, f := range c.ApartmentFilters {
		filterFields = append(filterFields, Field{Column: f.Column})
	}
	filters := Entity{Label: "Apartment search", PrimaryKey: c.Apartment.PrimaryKey, AddFields: filterFields}
	return Check(filters, c.Apartment.model)
}
