package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcnportal/pkg/contracts/domain"
)

func searchRows() [][]string {
	return [][]string{
		{"Ticket No", "VRM", "Contravention Date", "Site", "Charge"},
		{"A11623936", "PG23WCR", "21/08/2025 03:05:09", "Waitrose Dorking", "£60.00"},
		{"B22734847", "AB12XYZ", "45123", "High Street Car Park", "90"},
		{"", "CD34EFG", "01/09/2025", "Town Centre", "75"},
		{"C33845958", "", "01/09/2025", "Town Centre", "75"},
		{"D44956069", "ef56hij", "bad date", "Retail Park", "n/a"},
	}
}

func TestMatch_NoFilters(t *testing.T) {
	got := Match(searchRows(), SearchLayout, "", "")
	require.Len(t, got, 3, "rows with empty ticket or VRM must be skipped")

	assert.Equal(t, "A11623936", got[0].TicketNo)
	assert.Equal(t, "B22734847", got[1].TicketNo)
	assert.Equal(t, "D44956069", got[2].TicketNo)

	// spreadsheet-sourced records use the ticket number as their ID
	assert.Equal(t, got[0].TicketNo, got[0].ID)
	assert.Equal(t, domain.PenaltyStatusActive, got[0].Status)
}

func TestMatch_TicketFilter(t *testing.T) {
	tests := []struct {
		name     string
		ticketNo string
		want     int
	}{
		{name: "exact match", ticketNo: "A11623936", want: 1},
		{name: "case sensitive", ticketNo: "a11623936", want: 0},
		{name: "substring does not match", ticketNo: "A116", want: 0},
		{name: "unknown ticket", ticketNo: "Z9999", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(searchRows(), SearchLayout, tt.ticketNo, "")
			assert.Len(t, got, tt.want)
		})
	}
}

func TestMatch_VRMFilter(t *testing.T) {
	tests := []struct {
		name string
		vrm  string
		want int
	}{
		{name: "exact uppercase", vrm: "PG23WCR", want: 1},
		{name: "lowercase input matches", vrm: "pg23wcr", want: 1},
		{name: "substring does not match", vrm: "PG23", want: 0},
		{name: "row VRM uppercased before compare", vrm: "EF56HIJ", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(searchRows(), SearchLayout, "", tt.vrm)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestMatch_VRMNormalizedKey(t *testing.T) {
	rows := [][]string{
		{"Ticket No", "VRM", "Date", "Site", "Charge"},
		{"A11623936", "PG23 WCR", "21/08/2025", "Waitrose Dorking", "60"},
	}

	tests := []struct {
		name string
		vrm  string
		want int
	}{
		{name: "filter with space", vrm: "PG23 WCR", want: 1},
		{name: "filter without space", vrm: "PG23WCR", want: 1},
		{name: "lowercase without space", vrm: "pg23wcr", want: 1},
		{name: "filter with hyphen", vrm: "PG23-WCR", want: 1},
		{name: "different mark", vrm: "PG23WCS", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(rows, SearchLayout, "", tt.vrm)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestMatch_BothFilters(t *testing.T) {
	got := Match(searchRows(), SearchLayout, "A11623936", "PG23WCR")
	require.Len(t, got, 1)
	assert.Equal(t, "Waitrose Dorking", got[0].Site)
	assert.Equal(t, "60.00", got[0].PenaltyAmount)
	assert.Equal(t, "21/08/2025 03:05:09", got[0].ContraventionDate)

	// both must hold
	got = Match(searchRows(), SearchLayout, "A11623936", "AB12XYZ")
	assert.Empty(t, got)
}

func TestMatch_NormalizationFallbacks(t *testing.T) {
	got := Match(searchRows(), SearchLayout, "D44956069", "")
	require.Len(t, got, 1)

	// unparseable amount degrades to 0.00, row still returned
	assert.Equal(t, "0.00", got[0].PenaltyAmount)
	// unparseable date preserved verbatim
	assert.Equal(t, "bad date", got[0].ContraventionDate)
}

func TestMatch_SerialDateResolved(t *testing.T) {
	got := Match(searchRows(), SearchLayout, "B22734847", "")
	require.Len(t, got, 1)
	assert.Equal(t, "16/07/2023 00:00:00", got[0].ContraventionDate)
	assert.Equal(t, "90.00", got[0].PenaltyAmount)
}

func TestMatch_DuplicateTicketsAllReturned(t *testing.T) {
	rows := [][]string{
		{"Ticket No", "VRM", "Date", "Site", "Charge"},
		{"A11623936", "PG23WCR", "21/08/2025", "Site One", "60"},
		{"A11623936", "PG23WCR", "22/08/2025", "Site Two", "60"},
	}

	got := Match(rows, SearchLayout, "A11623936", "")
	require.Len(t, got, 2, "no de-duplication at this layer")
	assert.Equal(t, "Site One", got[0].Site)
	assert.Equal(t, "Site Two", got[1].Site)
}

func TestMatch_BulkLayout(t *testing.T) {
	rows := [][]string{
		{"Ticket No", "VRM", "Make", "Amount", "Date Issued", "Site", "Reason", "Badge"},
		{"A11623936", "pg23wcr", "Audi", "60.00", "45123", "Waitrose Dorking", "No Valid Parking Payment Found", "ANPR"},
	}

	got := Match(rows, BulkLayout, "", "")
	require.Len(t, got, 1)

	assert.Equal(t, "PG23WCR", got[0].VRM)
	assert.Equal(t, "Audi", got[0].VehicleMake)
	assert.Equal(t, "60.00", got[0].PenaltyAmount)
	assert.Equal(t, "16/07/2023 00:00:00", got[0].ContraventionDate)
	assert.Equal(t, "No Valid Parking Payment Found", got[0].ReasonForIssue)
	assert.Equal(t, "ANPR", got[0].BadgeID)
}

func TestMatch_HeaderOnly(t *testing.T) {
	rows := [][]string{{"Ticket No", "VRM", "Date", "Site", "Charge"}}
	assert.Empty(t, Match(rows, SearchLayout, "", ""))
	assert.Empty(t, Match(nil, SearchLayout, "", ""))
}

func TestDecodeFirstSheet_InvalidBytes(t *testing.T) {
	_, err := DecodeFirstSheet([]byte("not a workbook"))
	assert.Error(t, err)
}
