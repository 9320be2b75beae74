// Package sample provides prefab demo data: a parsed December schedule and a
// matching raw OCR dump. Demo mode serves these instead of running a real
// recognizer, so the full output path can be exercised without Tesseract or a
// scanned image on hand.
package sample

import (
	"strings"
	"time"

	"github.com/shiftscan/shiftscan/internal/schedule"
)

const (
	person = "NINA ARONOVA"
	year   = 2025
	month  = time.December
)

var sampleShifts = map[string]schedule.ShiftDef{
	"M": {Label: "Morning", StartHour: 6, EndHour: 14},
	"T": {Label: "Evening", StartHour: 14, EndHour: 22},
	"N": {Label: "Night", StartHour: 22, EndHour: 6},
}

var sampleDays = []struct {
	day  int
	code string
}{
	{2, "M"}, {4, "T"}, {7, "N"}, {10, "M"}, {12, "T"},
	{15, "N"}, {18, "M"}, {21, "T"}, {24, "N"}, {28, "M"},
}

// Result returns a fresh copy of the prefab parsed schedule. Callers may
// mutate the returned value freely.
func Result() *schedule.Result {
	days := make([]int, 31)
	for i := range days {
		days[i] = i + 1
	}

	records := make([]schedule.ShiftRecord, 0, len(sampleDays))
	for _, s := range sampleDays {
		def := sampleShifts[s.code]
		start := time.Date(year, month, s.day, def.StartHour, 0, 0, 0, time.UTC)
		end := start.Add(time.Duration(def.Duration()) * time.Hour)
		records = append(records, schedule.ShiftRecord{
			Person:     person,
			Date:       start.Format("2006-01-02"),
			DayOfWeek:  start.Format("Mon"),
			ShiftCode:  s.code,
			ShiftType:  def.Label,
			Start:      start.Format("2006-01-02 15:04"),
			End:        end.Format("2006-01-02 15:04"),
			Hours:      def.Duration(),
			Confidence: 1,
		})
	}

	return &schedule.Result{
		Person:  person,
		Year:    year,
		Month:   int(month),
		Days:    days,
		Records: records,
	}
}

// RawText returns the prefab raw OCR dump shown alongside the demo result.
// The lines mimic a real low-quality scan, garbled names included.
func RawText() string {
	return strings.Join([]string{
		"Name (conf=1.00)",
		"1 L (conf=0.87)",
		"2 M (conf=0.93)",
		"3 X (conf=0.95)",
		"4] (conf=0.48)",
		"5 V (conf=0.81)",
		"6 5 (conf=0.93)",
		"7 D (conf=0.77)",
		"LVIRA JIMENET (conf=0.80)",
		"M (conf=1.00)",
		"IOLA MIQUELI (conf=0.71)",
		"N (conf=0.43)",
		"oaarawovl (conf=0.13)",
		"N (conf=0.12)",
		"M (conf=0.74)",
		"M (conf=0.59)",
		" (conf=0.00)",
		" (conf=0.00)",
		" (conf=0.00)",
		"\" (conf=0.02)",
		"\" (conf=0.07)",
	}, "\n")
}
