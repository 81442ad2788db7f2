package dto

import (
	"github.com/storeops/pos_lifecycle_app/internal/core/domain"
)

// --- Terminal DTOs ---

// ResolveTerminalRequest defines data for resolving a physical terminal's
// identity. Hostname is a best-effort hint; TerminalID is an explicit manual
// selection. Confirm records the hostname against a manually selected
// terminal that has no system name yet.
type ResolveTerminalRequest struct {
	Hostname   string `json:"hostname"`
	TerminalID string `json:"terminalID"`
	Confirm    bool   `json:"confirm"`
}

// TerminalResponse defines data returned for a terminal.
type TerminalResponse struct {
	TerminalID   string  `json:"terminalID"`
	LocationID   string  `json:"locationID"`
	TerminalCode string  `json:"terminalCode"`
	Name         string  `json:"name"`
	SystemName   *string `json:"systemName,omitempty"`
	IsActive     bool    `json:"isActive"`
}

// ToTerminalResponse converts domain.Terminal to DTO.
func ToTerminalResponse(t *domain.Terminal) TerminalResponse {
	return TerminalResponse{
		TerminalID:   t.TerminalID,
		LocationID:   t.LocationID,
		TerminalCode: t.TerminalCode,
		Name:         t.Name,
		SystemName:   t.SystemName,
		IsActive:     t.IsActive,
	}
}

// TerminalResolutionResponse reports the resolution outcome: a terminal when
// one of the first two tiers matched, otherwise the candidate list for
// manual selection.
type TerminalResolutionResponse struct {
	Method     string             `json:"method"`
	Terminal   *TerminalResponse  `json:"terminal,omitempty"`
	Candidates []TerminalResponse `json:"candidates,omitempty"`
}

// ToTerminalResolutionResponse converts domain.TerminalResolution to DTO.
func ToTerminalResolutionResponse(r *domain.TerminalResolution) TerminalResolutionResponse {
	resp := TerminalResolutionResponse{Method: string(r.Method)}
	if r.Terminal != nil {
		t := ToTerminalResponse(r.Terminal)
		resp.Terminal = &t
	}
	if len(r.Candidates) > 0 {
		resp.Candidates = make([]TerminalResponse, len(r.Candidates))
		for i := range r.Candidates {
			resp.Candidates[i] = ToTerminalResponse(&r.Candidates[i])
		}
	}
	return resp
}

// ListTerminalsResponse wraps a list of terminals.
type ListTerminalsResponse struct {
	Terminals []TerminalResponse `json:"terminals"`
}

// ToListTerminalsResponse converts a slice of domain.Terminal to DTO.
func ToListTerminalsResponse(ts []domain.Terminal) ListTerminalsResponse {
	list := make([]TerminalResponse, len(ts))
	for i := range ts {
		list[i] = ToTerminalResponse(&ts[i])
	}
	return ListTerminalsResponse{Terminals: list}
}
