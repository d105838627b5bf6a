package store

// ApartmentUnit is one apartment row. UnitNumber is supplied by the operator.
type ApartmentUnit struct {
	UnitNumber           int64 `gorm:"column:unit_number;primaryKey;autoIncrement:false"`
	FloorNumber          int64 `gorm:"column:floor_number;not null"`
	Bedrooms             int64 `gorm:"column:bedrooms;not null"`
	Bathrooms            int64 `gorm:"column:bathrooms;not null"`
	SquareFootage        int64 `gorm:"column:square_footage;not null"`
	RentOwnershipDetails string `gorm:"column:rent_ownership_details;size:255"`
	OccupancyStatus      string `gorm:"column:occupancy_status;size:50"`
}

// TenantOwner is one tenant or owner row. TenantID is assigned by the store.
// Lease dates are kept as YYYY-MM-DD text, the same shape the operator types.
type TenantOwner struct {
	TenantID           int64  `gorm:"column:tenant_id;primaryKey;autoIncrement"`
	Name               string `gorm:"column:name;size:255;not null"`
	ContactInfo        string `gorm:"column:contact_info;size:32"`
	LeaseStartDate     string `gorm:"column:lease_start_date;size:10"`
	LeaseEndDate       string `gorm:"column:lease_end_date;size:10"`
	EmergencyContact   string `gorm:"column:emergency_contact;size:255"`
	RentPaymentHistory string `gorm:"column:rent_payment_history;type:text"`
}

// Parking is one parking space row. ParkingID is assigned by the store.
type Parking struct {
	ParkingID          int64  `gorm:"column:parking_id;primaryKey;autoIncrement"`
	ParkingSpaceNumber int64  `gorm:"column:parking_space_number;not null"`
	VehicleDetails     string `gorm:"column:vehicle_details;size:255"`
	AvailabilityStatus string `gorm:"column:availability_status;size:50"`
}
