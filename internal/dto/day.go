package dto

import (
	"time"

	"github.com/storeops/pos_lifecycle_app/internal/core/domain"
)

// --- Business Day DTOs ---

// OpenDayRequest defines data for opening a trading day. BusinessDate is the
// calendar date of the trading period, not necessarily today: a shift running
// past midnight keeps its original date until explicitly closed.
type OpenDayRequest struct {
	BusinessDate string `json:"businessDate" binding:"required,dateonly"`
	Notes        string `json:"notes"`
}

// CloseDayRequest defines data for closing a trading day.
type CloseDayRequest struct {
	Notes string `json:"notes"`
}

// BusinessDayResponse defines data returned for a business day.
type BusinessDayResponse struct {
	DayID             string     `json:"dayID"`
	LocationID        string     `json:"locationID"`
	BusinessDate      string     `json:"businessDate"`
	Status            string     `json:"status"`
	OpenedBy          string     `json:"openedBy"`
	OpenedAt          time.Time  `json:"openedAt"`
	ClosedBy          *string    `json:"closedBy,omitempty"`
	ClosedAt          *time.Time `json:"closedAt,omitempty"`
	NextSaleNumber    int64      `json:"nextSaleNumber"`
	NextSessionNumber int64      `json:"nextSessionNumber"`
	Notes             string     `json:"notes,omitempty"`
}

// ToBusinessDayResponse converts domain.BusinessDay to DTO.
func ToBusinessDayResponse(d *domain.BusinessDay) BusinessDayResponse {
	return BusinessDayResponse{
		DayID:             d.DayID,
		LocationID:        d.LocationID,
		BusinessDate:      d.BusinessDate.Format(time.DateOnly),
		Status:            string(d.Status),
		OpenedBy:          d.OpenedBy,
		OpenedAt:          d.OpenedAt,
		ClosedBy:          d.ClosedBy,
		ClosedAt:          d.ClosedAt,
		NextSaleNumber:    d.NextSaleNumber,
		NextSessionNumber: d.NextSessionNumber,
		Notes:             d.Notes,
	}
}
