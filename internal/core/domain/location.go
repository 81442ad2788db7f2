package domain

// Location represents a retail store. Location provisioning is external
// master data; this service only reads it. The short code feeds the
// session/sale number format.
type Location struct {
	LocationID string `json:"locationID" db:"location_id"` // Primary key (UUID)
	Code       string `json:"code" db:"code"`              // Short code, e.g. STORE1
	Name       string `json:"name" db:"name"`
	IsActive   bool   `json:"isActive" db:"is_active"`
	AuditFields
}
