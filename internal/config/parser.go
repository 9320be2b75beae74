package config

import "github.com/shiftscan/shiftscan/internal/schedule"

// ToParserConfig converts the loaded configuration into the schedule parser's
// plain config struct. days overrides the column list when non-empty;
// otherwise the columns run 1..DayCount.
func (c *Config) ToParserConfig(days []int) schedule.Config {
	if len(days) == 0 {
		days = c.Days()
	}

	shifts := make(map[string]schedule.ShiftDef, len(c.Shifts))
	for code, s := range c.Shifts {
		shifts[code] = schedule.ShiftDef{
			Label:     s.Label,
			StartHour: s.StartHour,
			EndHour:   s.EndHour,
		}
	}

	return schedule.Config{
		TargetName:    c.TargetName,
		Shifts:        shifts,
		MinConfidence: c.MinTokenConfidence,
		Days:          days,
		Tolerance: schedule.Tolerance{
			Floor:    c.Tolerance.Floor,
			Fallback: c.Tolerance.Fallback,
			Factor:   c.Tolerance.Factor,
		},
	}
}
