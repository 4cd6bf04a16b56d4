package domain

// Config mirrors ~/.baseconv/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	Preferences         Preferences     `yaml:"preferences"`
	History             HistorySettings `yaml:"history"`
	Storage             StorageSettings `yaml:"storage"`
	Server              ServerSettings  `yaml:"server"`
	Logging             LoggingSettings `yaml:"logging"`
}

// Preferences captures the settings screen toggles and converter defaults.
type Preferences struct {
	DefaultFrom   Radix  `yaml:"default_from"`
	DefaultTo     Radix  `yaml:"default_to"`
	CopyResult    bool   `yaml:"copy_result"`
	DarkTheme     bool   `yaml:"dark_theme"`
	Notifications bool   `yaml:"notifications"`
	FontSize      string `yaml:"font_size"`
}

// HistorySettings controls conversion history listing and retention.
type HistorySettings struct {
	Limit         int `yaml:"limit"`
	RetentionDays int `yaml:"retention_days"`
}

// StorageSettings locates the local database, notes and session files.
type StorageSettings struct {
	DataDir string `yaml:"data_dir"`
}

// ServerSettings configures `baseconv serve`.
type ServerSettings struct {
	Addr string `yaml:"addr"`
}

// LoggingSettings configures the logrus backend.
type LoggingSettings struct {
	Level string `yaml:"level"`
}
