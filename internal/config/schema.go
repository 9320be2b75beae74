package config

// Config holds shiftscan configuration.
// Stored at: {home}/config.yaml
type Config struct {
	// TargetName is the employee name to locate in the schedule table.
	TargetName string `mapstructure:"target_name" yaml:"target_name"`

	// Shifts maps single-letter shift codes to their definitions.
	Shifts map[string]ShiftCfg `mapstructure:"shifts" yaml:"shifts"`

	// MinTokenConfidence is the minimum OCR confidence for a detection to
	// participate in parsing. Range [0,1].
	MinTokenConfidence float64 `mapstructure:"min_token_confidence" yaml:"min_token_confidence"`

	// DayCount is the number of day columns assumed when the caller does not
	// supply the real month length. Days run 1..DayCount.
	DayCount int `mapstructure:"day_count" yaml:"day_count"`

	Tolerance ToleranceCfg `mapstructure:"tolerance" yaml:"tolerance"`
	OCR       OCRCfg       `mapstructure:"ocr" yaml:"ocr"`
	Server    ServerCfg    `mapstructure:"server" yaml:"server"`
}

// ShiftCfg describes one shift code: a label and its hour range.
// An EndHour earlier than StartHour marks an overnight shift.
type ShiftCfg struct {
	Label     string `mapstructure:"label" yaml:"label"`
	StartHour int    `mapstructure:"start_hour" yaml:"start_hour"`
	EndHour   int    `mapstructure:"end_hour" yaml:"end_hour"`
}

// ToleranceCfg holds the row-tolerance estimator tuning knobs.
// Floor and Factor are empirically tuned guards for noisy scans.
type ToleranceCfg struct {
	// Floor is the minimum tolerance in pixels (default 25).
	Floor int `mapstructure:"floor" yaml:"floor"`
	// Fallback is used when fewer than 2 distinct row centers exist (default 35).
	Fallback int `mapstructure:"fallback" yaml:"fallback"`
	// Factor scales the median row gap (default 0.8).
	Factor float64 `mapstructure:"factor" yaml:"factor"`
}

// OCRCfg configures the OCR recognizer.
type OCRCfg struct {
	// Engine selects the recognizer: "tesseract" (default) or "vision".
	Engine string `mapstructure:"engine" yaml:"engine"`
	// Language is the tesseract language pack ("eng" default).
	Language string `mapstructure:"language" yaml:"language"`
	// PageSegMode is the tesseract page segmentation mode.
	PageSegMode int `mapstructure:"page_seg_mode" yaml:"page_seg_mode"`
	// Vision holds settings for the OpenAI vision recognizer.
	Vision VisionCfg `mapstructure:"vision" yaml:"vision"`
}

// VisionCfg configures the OpenAI vision recognizer.
type VisionCfg struct {
	// APIKey supports ${ENV_VAR} syntax.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
	Model  string `mapstructure:"model" yaml:"model"`
}

// ServerCfg holds HTTP server settings.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
	// Workers is the number of parse job workers.
	Workers int `mapstructure:"workers" yaml:"workers"`
}
