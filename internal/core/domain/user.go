package domain

// User is the cashier/manager identity referenced by audit fields and
// sessions. User management and token issuance live in an external identity
// service; this subsystem only performs lookups.
type User struct {
	UserID   string `json:"userID" db:"user_id"` // Primary key (UUID)
	Name     string `json:"name" db:"name"`
	IsActive bool   `json:"isActive" db:"is_active"`
	AuditFields
}
