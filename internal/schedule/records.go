package schedule

import (
	"fmt"
	"time"
)

// ShiftDef describes one shift code: a human label and its hour range.
// An EndHour earlier than StartHour marks an overnight shift that rolls into
// the next calendar day.
type ShiftDef struct {
	Label     string `json:"label"`
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
}

// Duration returns the shift length in hours, wrapping past midnight for
// overnight shifts.
func (d ShiftDef) Duration() int {
	return ((d.EndHour + 24) - d.StartHour) % 24
}

// Overnight reports whether the shift crosses midnight.
func (d ShiftDef) Overnight() bool { return d.EndHour < d.StartHour }

// ShiftRecord is one recovered shift, timestamped in the schedule's month.
type ShiftRecord struct {
	Person     string  `json:"person"`
	Date       string  `json:"date"` // ISO date, e.g. 2025-12-07
	DayOfWeek  string  `json:"dow"`  // weekday abbreviation, e.g. Sun
	ShiftCode  string  `json:"shift_code"`
	ShiftType  string  `json:"shift_type"`
	Start      string  `json:"start"` // 2006-01-02 15:04
	End        string  `json:"end"`
	Hours      int     `json:"hours"`
	Confidence float64 `json:"confidence"`
}

// CSVHeader is the flat-row column order for tabular export.
func CSVHeader() []string {
	return []string{"person", "date", "dow", "shift_code", "shift_type", "start", "end", "hours"}
}

// CSVRow renders the record as a flat table row in CSVHeader order.
func (r ShiftRecord) CSVRow() []string {
	return []string{
		r.Person, r.Date, r.DayOfWeek, r.ShiftCode, r.ShiftType,
		r.Start, r.End, fmt.Sprintf("%d", r.Hours),
	}
}

const timestampLayout = "2006-01-02 15:04"

// buildRecords converts the day->assignment map into shift records.
//
// Days are visited in ascending order so output is sorted by day (the source
// implementation emitted map iteration order; sorting is a deliberate
// improvement). Day numbers that do not exist in the given year/month are
// skipped silently, as are codes missing from the shift table.
func buildRecords(assignments map[int]Assignment, days []int, year int, month time.Month, shifts map[string]ShiftDef, person string) []ShiftRecord {
	var records []ShiftRecord
	for _, day := range days {
		a, ok := assignments[day]
		if !ok {
			continue
		}
		def, ok := shifts[a.Code]
		if !ok {
			continue
		}

		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if date.Day() != day || date.Month() != month {
			// Invalid calendar day, e.g. Feb 30. time.Date normalizes
			// overflow into the next month, which is how we detect it.
			continue
		}

		start := time.Date(year, month, day, def.StartHour, 0, 0, 0, time.UTC)
		hours := def.Duration()
		var end time.Time
		if def.Overnight() {
			end = start.Add(time.Duration(hours) * time.Hour)
		} else {
			end = time.Date(year, month, day, def.EndHour, 0, 0, 0, time.UTC)
		}

		records = append(records, ShiftRecord{
			Person:     person,
			Date:       date.Format("2006-01-02"),
			DayOfWeek:  date.Format("Mon"),
			ShiftCode:  a.Code,
			ShiftType:  def.Label,
			Start:      start.Format(timestampLayout),
			End:        end.Format(timestampLayout),
			Hours:      hours,
			Confidence: a.Confidence,
		})
	}
	return records
}
