package doctor

import (
	"context"
	"fmt"

	"github.com/doeshing/baseconv/internal/converter"
	"github.com/doeshing/baseconv/internal/domain"
	"github.com/doeshing/baseconv/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	History        ports.HistoryRepository
	Notes          ports.NoteRepository
	Sessions       ports.SessionStore
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded format %s", cfg.ConfigFormatVersion)))

	checks = append(checks, engineCheck())

	if s.History != nil {
		if _, err := s.History.Records(ctx, domain.GuestUser, 1); err != nil {
			checks = append(checks, fail("History store", err.Error()))
		} else {
			checks = append(checks, ok("History store", s.History.Path()))
		}
	} else {
		checks = append(checks, warn("History store", "history store not initialized"))
	}

	if s.Notes != nil {
		if _, err := s.Notes.List(ctx, domain.GuestUser); err != nil {
			checks = append(checks, fail("Notes", err.Error()))
		} else {
			checks = append(checks, ok("Notes", "readable"))
		}
	}

	if s.Sessions != nil {
		sess, err := s.Sessions.Load()
		switch {
		case err != nil:
			checks = append(checks, warn("Session", err.Error()))
		case sess.Valid():
			checks = append(checks, ok("Session", "logged in as "+sess.Username))
		default:
			checks = append(checks, ok("Session", "not logged in, conversions recorded as "+domain.GuestUser))
		}
	}

	return domain.HealthReport{Checks: checks}, nil
}

// engineCheck runs a known conversion through the engine.
func engineCheck() domain.HealthCheck {
	res, err := converter.ConvertBase("FF", domain.Hexadecimal, domain.Binary)
	if err != nil {
		return fail("Converter", err.Error())
	}
	if res.Rendered != "11111111" {
		return fail("Converter", fmt.Sprintf("FF (Base 16) rendered as %s in base 2", res.Rendered))
	}
	return ok("Converter", "self-test passed")
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
