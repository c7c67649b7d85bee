package spreadsheet

import (
	"strings"

	"pcnportal/pkg/contracts/domain"
)

func trim(s string) string { return strings.TrimSpace(s) }

// Match scans the data rows of a parsed sheet and projects each candidate
// row into a penalty record using the given layout. Row 0 is the header and
// is always skipped; rows with an empty ticket or VRM column are skipped
// entirely. An empty ticketNo or vrm filter matches everything. Ticket
// matching is exact and case-sensitive; VRMs are compared on their
// normalized form (uppercased, punctuation and spaces stripped) so
// "ab12 cde" finds a row holding "AB12CDE". Matching rows are returned in
// sheet order with no de-duplication, so two rows sharing a ticket number
// both appear.
func Match(rows [][]string, layout RowLayout, ticketNo, vrm string) []domain.Penalty {
	results := []domain.Penalty{}
	if len(rows) < 2 {
		return results
	}

	wantVRM := domain.NormalizeVRM(vrm)

	for _, row := range rows[1:] {
		rowTicket := cell(row, layout.TicketNo)
		rowVRM := strings.ToUpper(cell(row, layout.VRM))
		if rowTicket == "" || rowVRM == "" {
			continue
		}

		ticketMatch := ticketNo == "" || rowTicket == ticketNo
		vrmMatch := wantVRM == "" || domain.NormalizeVRM(rowVRM) == wantVRM
		if !ticketMatch || !vrmMatch {
			continue
		}

		date := NormalizeDate(cell(row, layout.Date))

		p := domain.Penalty{
			// Spreadsheet-sourced results are not persisted; the ticket
			// number is the only stable identifier they have.
			ID:                rowTicket,
			TicketNo:          rowTicket,
			VRM:               rowVRM,
			VehicleMake:       cell(row, layout.VehicleMake),
			PenaltyAmount:     NormalizeAmount(cell(row, layout.Amount)),
			ContraventionDate: date.Value,
			Site:              cell(row, layout.Site),
			ReasonForIssue:    cell(row, layout.ReasonForIssue),
			BadgeID:           cell(row, layout.BadgeID),
			Status:            domain.PenaltyStatusActive,
		}
		results = append(results, p)
	}

	return results
}
