package domain

import (
	"strings"
	"time"
	"unicode"
)

// Penalty represents a single Penalty Charge Notice record. Records sourced
// directly from a lookup spreadsheet are not persisted and use the ticket
// number as their ID; persisted records carry a generated UUID.
type Penalty struct {
	ID                string        `json:"id" db:"id"`
	TicketNo          string        `json:"ticketNo" db:"ticket_no" validate:"required"`
	VRM               string        `json:"vrm" db:"vrm" validate:"required"`
	VehicleMake       string        `json:"vehicleMake,omitempty" db:"vehicle_make"`
	PenaltyAmount     string        `json:"penaltyAmount" db:"penalty_amount" validate:"required"`
	ContraventionDate string        `json:"contraventionDateTime,omitempty" db:"contravention_date"`
	Site              string        `json:"site,omitempty" db:"site"`
	ReasonForIssue    string        `json:"reasonForIssue,omitempty" db:"reason_for_issue"`
	BadgeID           string        `json:"badgeId,omitempty" db:"badge_id"`
	Status            PenaltyStatus `json:"status" db:"status"`
	CreatedAt         time.Time     `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at,omitempty" db:"updated_at"`
}

// PenaltyStatus represents the lifecycle state of a penalty
type PenaltyStatus string

const (
	PenaltyStatusActive    PenaltyStatus = "active"
	PenaltyStatusPaid      PenaltyStatus = "paid"
	PenaltyStatusAppealed  PenaltyStatus = "appealed"
	PenaltyStatusCancelled PenaltyStatus = "cancelled"
)

// PenaltyInsert is the writable subset used when creating or upserting a
// penalty record during bulk ingestion.
type PenaltyInsert struct {
	TicketNo          string        `json:"ticketNo" validate:"required"`
	VRM               string        `json:"vrm" validate:"required"`
	VehicleMake       string        `json:"vehicleMake,omitempty"`
	PenaltyAmount     string        `json:"penaltyAmount" validate:"required"`
	ContraventionDate string        `json:"contraventionDateTime,omitempty"`
	Site              string        `json:"site,omitempty"`
	ReasonForIssue    string        `json:"reasonForIssue,omitempty"`
	BadgeID           string        `json:"badgeId,omitempty"`
	Status            PenaltyStatus `json:"status"`
}

// NormalizeVRM converts a vehicle registration mark into its matching key:
// uppercase with everything but letters and digits stripped.
func NormalizeVRM(vrm string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(vrm)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
