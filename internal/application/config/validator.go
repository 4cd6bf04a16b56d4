package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/doeshing/baseconv/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validatePreferences(cfg.Preferences); err != nil {
		return err
	}
	if err := validateHistory(cfg.History); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Storage.DataDir) == "" {
		return fmt.Errorf("storage.data_dir must be set")
	}
	if err := validateServer(cfg.Server); err != nil {
		return err
	}
	return validateLogging(cfg.Logging)
}

func validatePreferences(p domain.Preferences) error {
	// zero means unset; DefaultPair falls back to Decimal to Binary
	if p.DefaultFrom != 0 && !domain.RadixSetFixed.Contains(p.DefaultFrom) {
		return fmt.Errorf("preferences.default_from must be 2, 8, 10 or 16, got %d", p.DefaultFrom)
	}
	if p.DefaultTo != 0 && !domain.RadixSetFixed.Contains(p.DefaultTo) {
		return fmt.Errorf("preferences.default_to must be 2, 8, 10 or 16, got %d", p.DefaultTo)
	}
	if _, ok := domain.NormalizeFontSize(p.FontSize); !ok {
		return fmt.Errorf("preferences.font_size must be Small|Medium|Large, got %s", p.FontSize)
	}
	return nil
}

func validateHistory(history domain.HistorySettings) error {
	if history.Limit < 0 {
		return fmt.Errorf("history.limit must be >= 0")
	}
	if history.RetentionDays < 0 {
		return fmt.Errorf("history.retention_days must be >= 0")
	}
	return nil
}

func validateServer(server domain.ServerSettings) error {
	if server.Addr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(server.Addr); err != nil {
		return fmt.Errorf("server.addr invalid: %w", err)
	}
	return nil
}

func validateLogging(logging domain.LoggingSettings) error {
	switch strings.ToLower(logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug|info|warn|error, got %s", logging.Level)
	}
}
