package domain

import "time"

// DayStatus indicates the state of a business day.
type DayStatus string

const (
	DayOpen   DayStatus = "OPEN"
	DayClosed DayStatus = "CLOSED"
)

// BusinessDay represents one trading period for a location, bounded by explicit
// open/close operations rather than wall-clock midnight. At most one OPEN day
// may exist per location at any time. Closed days are retained as audit records
// and are never mutated again.
type BusinessDay struct {
	DayID        string     `json:"dayID" db:"day_id"`               // Primary key (UUID)
	LocationID   string     `json:"locationID" db:"location_id"`     // FK -> locations.location_id
	BusinessDate time.Time  `json:"businessDate" db:"business_date"` // Calendar date of the trading period
	Status       DayStatus  `json:"status" db:"status"`
	OpenedBy     string     `json:"openedBy" db:"opened_by"` // UserID reference
	OpenedAt     time.Time  `json:"openedAt" db:"opened_at"`
	ClosedBy     *string    `json:"closedBy,omitempty" db:"closed_by"`
	ClosedAt     *time.Time `json:"closedAt,omitempty" db:"closed_at"`

	// Per-day counters owned by the sequence allocator. They hold the NEXT
	// value to hand out; numbering restarts at 1 for every new day.
	NextSaleNumber    int64 `json:"nextSaleNumber" db:"next_sale_number"`
	NextSessionNumber int64 `json:"nextSessionNumber" db:"next_session_number"`

	Notes string `json:"notes" db:"notes"`
	AuditFields
}

// IsOpen reports whether the day can still accept sessions and allocations.
func (d *BusinessDay) IsOpen() bool {
	return d.Status == DayOpen
}
