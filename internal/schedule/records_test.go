package schedule

import (
	"testing"
	"time"
)

func testShifts() map[string]ShiftDef {
	return map[string]ShiftDef{
		"M": {Label: "Morning", StartHour: 6, EndHour: 14},
		"T": {Label: "Evening", StartHour: 14, EndHour: 22},
		"N": {Label: "Night", StartHour: 22, EndHour: 6},
	}
}

func TestShiftDef(t *testing.T) {
	for code, def := range testShifts() {
		if def.Duration() != 8 {
			t.Errorf("%s: duration = %d, want 8", code, def.Duration())
		}
	}
	if testShifts()["M"].Overnight() || !testShifts()["N"].Overnight() {
		t.Error("overnight detection wrong")
	}
}

func TestBuildRecords(t *testing.T) {
	days := []int{1, 2, 3, 4, 5, 6, 7}

	t.Run("day shift stays on its calendar day", func(t *testing.T) {
		got := buildRecords(map[int]Assignment{1: {Code: "M", Confidence: 0.9}},
			days, 2025, time.December, testShifts(), "NINA ARONOVA")
		if len(got) != 1 {
			t.Fatalf("expected 1 record, got %d", len(got))
		}
		r := got[0]
		if r.Date != "2025-12-01" || r.DayOfWeek != "Mon" {
			t.Errorf("date wrong: %s %s", r.Date, r.DayOfWeek)
		}
		if r.Start != "2025-12-01 06:00" || r.End != "2025-12-01 14:00" || r.Hours != 8 {
			t.Errorf("times wrong: %s - %s (%dh)", r.Start, r.End, r.Hours)
		}
		if r.ShiftType != "Morning" || r.Person != "NINA ARONOVA" {
			t.Errorf("labels wrong: %+v", r)
		}
	})

	t.Run("overnight shift rolls into the next day", func(t *testing.T) {
		got := buildRecords(map[int]Assignment{7: {Code: "N", Confidence: 0.8}},
			days, 2025, time.December, testShifts(), "NINA ARONOVA")
		if len(got) != 1 {
			t.Fatalf("expected 1 record, got %d", len(got))
		}
		r := got[0]
		if r.Date != "2025-12-07" || r.DayOfWeek != "Sun" {
			t.Errorf("date wrong: %s %s", r.Date, r.DayOfWeek)
		}
		if r.Start != "2025-12-07 22:00" || r.End != "2025-12-08 06:00" || r.Hours != 8 {
			t.Errorf("overnight times wrong: %s - %s (%dh)", r.Start, r.End, r.Hours)
		}
	})

	t.Run("invalid calendar days are skipped", func(t *testing.T) {
		got := buildRecords(map[int]Assignment{
			30: {Code: "M", Confidence: 0.9},
			31: {Code: "T", Confidence: 0.9},
		}, []int{30, 31}, 2025, time.April, testShifts(), "NINA ARONOVA")
		if len(got) != 1 || got[0].Date != "2025-04-30" {
			t.Fatalf("April 31 not skipped: %+v", got)
		}
	})

	t.Run("unknown shift codes are skipped", func(t *testing.T) {
		got := buildRecords(map[int]Assignment{1: {Code: "X", Confidence: 0.9}},
			days, 2025, time.December, testShifts(), "NINA ARONOVA")
		if len(got) != 0 {
			t.Fatalf("unknown code produced a record: %+v", got)
		}
	})

	t.Run("records come out sorted by day", func(t *testing.T) {
		got := buildRecords(map[int]Assignment{
			5: {Code: "M", Confidence: 0.9},
			1: {Code: "T", Confidence: 0.9},
			3: {Code: "N", Confidence: 0.9},
		}, days, 2025, time.December, testShifts(), "NINA ARONOVA")
		want := []string{"2025-12-01", "2025-12-03", "2025-12-05"}
		if len(got) != len(want) {
			t.Fatalf("expected %d records, got %d", len(want), len(got))
		}
		for i, date := range want {
			if got[i].Date != date {
				t.Errorf("record %d: date = %s, want %s", i, got[i].Date, date)
			}
		}
	})
}

func TestCSVRow(t *testing.T) {
	r := ShiftRecord{
		Person: "NINA ARONOVA", Date: "2025-12-01", DayOfWeek: "Mon",
		ShiftCode: "M", ShiftType: "Morning",
		Start: "2025-12-01 06:00", End: "2025-12-01 14:00", Hours: 8,
	}
	row := r.CSVRow()
	if len(row) != len(CSVHeader()) {
		t.Fatalf("row width %d != header width %d", len(row), len(CSVHeader()))
	}
	if row[0] != "NINA ARONOVA" || row[7] != "8" {
		t.Errorf("row content wrong: %v", row)
	}
}
