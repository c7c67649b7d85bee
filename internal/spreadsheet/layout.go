package spreadsheet

// RowLayout maps penalty fields to column positions in a workbook row. The
// lookup workbook and the bulk-upload workbook use different column orders
// for the same nominal record; the two layouts are kept as separate tables
// on purpose so that a fix to one call site cannot silently corrupt the
// other.
type RowLayout struct {
	Name     string
	TicketNo int
	VRM      int
	Date     int
	Site     int
	Amount   int
	// Bulk-only columns; -1 when the layout does not carry them.
	VehicleMake    int
	ReasonForIssue int
	BadgeID        int
	// MinColumns is the highest index the layout reads, plus one.
	MinColumns int
}

// SearchLayout is the 5-column layout of the lookup workbook:
// A ticket, B VRM, C contravention date/time, D site, E charge.
var SearchLayout = RowLayout{
	Name:           "search",
	TicketNo:       0,
	VRM:            1,
	Date:           2,
	Site:           3,
	Amount:         4,
	VehicleMake:    -1,
	ReasonForIssue: -1,
	BadgeID:        -1,
	MinColumns:     5,
}

// BulkLayout is the 8-column layout of the bulk-upload workbook:
// A ticket, B VRM, C vehicle make, D amount, E date issued, F site,
// G reason for issue, H badge ID.
var BulkLayout = RowLayout{
	Name:           "bulk",
	TicketNo:       0,
	VRM:            1,
	VehicleMake:    2,
	Amount:         3,
	Date:           4,
	Site:           5,
	ReasonForIssue: 6,
	BadgeID:        7,
	MinColumns:     8,
}

// cell returns the trimmed cell at idx, or "" when the row is short or the
// layout does not carry the column.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return trim(row[idx])
}
