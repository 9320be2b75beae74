package config

import "sort"

// DefaultConfig returns configuration with sensible defaults.
// The shift table matches the conventional three-shift roster:
// Morning 06-14, Evening 14-22, Night 22-06 (overnight).
func DefaultConfig() *Config {
	return &Config{
		TargetName: "NINA ARONOVA",
		Shifts: map[string]ShiftCfg{
			"M": {Label: "Morning", StartHour: 6, EndHour: 14},
			"T": {Label: "Evening", StartHour: 14, EndHour: 22},
			"N": {Label: "Night", StartHour: 22, EndHour: 6},
		},
		MinTokenConfidence: 0.15,
		DayCount:           31,
		Tolerance: ToleranceCfg{
			Floor:    25,
			Fallback: 35,
			Factor:   0.8,
		},
		OCR: OCRCfg{
			Engine:      "tesseract",
			Language:    "eng",
			PageSegMode: 6, // single uniform block of text
			Vision: VisionCfg{
				APIKey: "${OPENAI_API_KEY}",
				Model:  "gpt-4o",
			},
		},
		Server: ServerCfg{
			Host:    "127.0.0.1",
			Port:    "8080",
			Workers: 2,
		},
	}
}

// ShiftCodes returns the configured shift-code alphabet in sorted order.
func (c *Config) ShiftCodes() []string {
	codes := make([]string, 0, len(c.Shifts))
	for code := range c.Shifts {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Days returns the configured day range 1..DayCount.
func (c *Config) Days() []int {
	n := c.DayCount
	if n <= 0 {
		n = 31
	}
	days := make([]int, n)
	for i := range days {
		days[i] = i + 1
	}
	return days
}
