package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// History constants
const (
	// DefaultHistoryLimit matches the ten entries the converter screen keeps
	DefaultHistoryLimit = 10
	// DefaultHistoryRetainDays is the default number of days to retain history
	DefaultHistoryRetainDays = 30
	// MaxHistoryAnalysisRecords is the maximum number of records to analyze
	MaxHistoryAnalysisRecords = 1000
	// DefaultTopPairs is how many base pairs `history stats` ranks
	DefaultTopPairs = 5
)

// Account constants
const (
	// MinPasswordLength is the shortest accepted password
	MinPasswordLength = 6
)

// Font sizes offered by the settings screen
const (
	FontSizeSmall  = "Small"
	FontSizeMedium = "Medium"
	FontSizeLarge  = "Large"
)

// Server constants
const (
	DefaultServerAddr      = "127.0.0.1:8080"
	DefaultShutdownTimeout = 5 * time.Second
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
