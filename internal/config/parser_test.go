package config

import "testing"

func TestToParserConfig(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("defaults map through", func(t *testing.T) {
		pc := cfg.ToParserConfig(nil)
		if pc.TargetName != cfg.TargetName {
			t.Errorf("target name = %q", pc.TargetName)
		}
		if len(pc.Days) != cfg.DayCount || pc.Days[0] != 1 || pc.Days[len(pc.Days)-1] != cfg.DayCount {
			t.Errorf("days = %v", pc.Days)
		}
		if pc.Tolerance.Floor != 25 || pc.Tolerance.Fallback != 35 || pc.Tolerance.Factor != 0.8 {
			t.Errorf("tolerance = %+v", pc.Tolerance)
		}
		night, ok := pc.Shifts["N"]
		if !ok || night.StartHour != 22 || night.EndHour != 6 {
			t.Errorf("night shift = %+v", night)
		}
	})

	t.Run("explicit days override day count", func(t *testing.T) {
		pc := cfg.ToParserConfig([]int{1, 2, 3})
		if len(pc.Days) != 3 {
			t.Errorf("days = %v", pc.Days)
		}
	})
}
