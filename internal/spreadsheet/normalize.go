package spreadsheet

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateValue is the result of normalizing a date cell. Parsed reports whether
// the cell was understood; when false, Value carries the trimmed original
// text unchanged so a malformed cell is preserved rather than discarded.
type DateValue struct {
	Value  string
	Parsed bool
}

func (d DateValue) String() string { return d.Value }

// serialEpoch is day zero of spreadsheet serial-date arithmetic. It is
// 1899-12-30 rather than 1899-12-31 to absorb the historical treatment of
// 1900 as a leap year; existing workbooks depend on this offset, so it is
// intentional and must not be corrected.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// outputLayout is the canonical zero-padded 24-hour date format.
const outputLayout = "02/01/2006 15:04:05"

// numericSerial matches a serial day count rendered as text, with an
// optional fractional day carrying the time of day.
var numericSerial = regexp.MustCompile(`^\d+(\.\d+)?$`)

// Day/month-first textual forms seen in the source workbooks. Day and month
// may be one or two digits on input; output is always zero-padded.
var textualDateFormats = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})\s+(\d{1,2}):(\d{2}):(\d{2})$`),
	regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})\s+(\d{1,2}):(\d{2})$`),
	regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`),
	regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`),
}

// genericLayouts are tried last, for cells produced by other tooling.
var genericLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2 Jan 2006 15:04:05",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// NormalizeDate converts a raw date cell into the canonical
// DD/MM/YYYY HH:mm:ss form. The cell may be a serial day count, a numeric
// string, or one of several day-first textual formats. It never fails: text
// that matches nothing is passed through trimmed, with Parsed false.
func NormalizeDate(cell string) DateValue {
	s := strings.TrimSpace(cell)
	if s == "" {
		return DateValue{Value: "", Parsed: false}
	}

	if numericSerial.MatchString(s) {
		// Serial day 0 is the epoch itself and below it the arithmetic is
		// undefined; such cells pass through unparsed.
		if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
			return DateValue{Value: fromSerial(serial).Format(outputLayout), Parsed: true}
		}
	}

	for _, re := range textualDateFormats {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		var hour, min, sec int
		if len(m) > 4 && m[4] != "" {
			hour, _ = strconv.Atoi(m[4])
		}
		if len(m) > 5 && m[5] != "" {
			min, _ = strconv.Atoi(m[5])
		}
		if len(m) > 6 && m[6] != "" {
			sec, _ = strconv.Atoi(m[6])
		}
		t := time.Date(year, time.Month(month), day, hour, min, sec, 0, time.UTC)
		return DateValue{Value: t.Format(outputLayout), Parsed: true}
	}

	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateValue{Value: t.Format(outputLayout), Parsed: true}
		}
	}

	return DateValue{Value: s, Parsed: false}
}

// fromSerial converts a spreadsheet serial day count into a timestamp. The
// fractional part of the serial carries the time of day.
func fromSerial(serial float64) time.Time {
	seconds := math.Round(serial * 86400)
	return serialEpoch.Add(time.Duration(seconds) * time.Second)
}

// amountStrip removes currency symbols, thousands separators and whitespace
// ahead of numeric parsing.
var amountStrip = strings.NewReplacer("£", "", "$", "", ",", "", " ", "", "\t", "")

// NormalizeAmount converts a raw amount cell into a decimal string with two
// fractional digits. Anything that does not parse as a finite non-negative
// number degrades to "0.00" rather than failing the row.
func NormalizeAmount(cell string) string {
	s := amountStrip.Replace(strings.TrimSpace(cell))
	if s == "" {
		return "0.00"
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", v)
}
