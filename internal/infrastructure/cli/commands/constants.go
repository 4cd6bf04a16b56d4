package commands

// Error messages
const (
	ErrConfigLoaderUnavailable  = "config loader unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrHistoryStoreUnavailable  = "history store unavailable"
	ErrKeyRequired              = "--key is required"
	ErrInvalidRetainDays        = "--days must be > 0"
	ErrInvalidLimit             = "--limit must be >= 0"
	ErrNothingToUpdate          = "nothing to update; pass at least one flag"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoHistoryRecorded        = "No conversions yet"
	MsgNoNotes                  = "No notes yet"
	MsgCancelled                = "Cancelled."
)
