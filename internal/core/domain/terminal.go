package domain

// Terminal represents a physical point-of-sale register within a location.
// Terminal provisioning is managed externally; this service treats terminals
// as read-only master data except for the one-time system name backfill.
type Terminal struct {
	TerminalID   string  `json:"terminalID" db:"terminal_id"` // Primary key (UUID)
	LocationID   string  `json:"locationID" db:"location_id"` // FK -> locations.location_id
	TerminalCode string  `json:"terminalCode" db:"terminal_code"`
	Name         string  `json:"name" db:"name"`
	// SystemName is the hardware/hostname token used for best-effort identity
	// resolution. It is a hint, not a key: it may be absent, and resolution
	// degrades to manual selection. Unique per location when set.
	SystemName *string `json:"systemName,omitempty" db:"system_name"`
	IsActive   bool    `json:"isActive" db:"is_active"`
	AuditFields
}

// ResolutionMethod records how a terminal identity was established.
type ResolutionMethod string

const (
	ResolvedBySystemName ResolutionMethod = "SYSTEM_NAME"
	ResolvedManually     ResolutionMethod = "MANUAL"
	ResolutionNone       ResolutionMethod = "NONE"
)

// TerminalResolution is the outcome of the three-tier resolution policy:
// an exact system-name match, an explicit manual selection, or a candidate
// list for the caller to choose from.
type TerminalResolution struct {
	Method     ResolutionMethod `json:"method"`
	Terminal   *Terminal        `json:"terminal,omitempty"`
	Candidates []Terminal       `json:"candidates,omitempty"`
}
