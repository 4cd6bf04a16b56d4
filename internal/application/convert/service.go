// Package convert orchestrates conversions around the pure engine: it picks
// the radix set for the call site, records successful fixed-set conversions
// in the user's history and serves history queries.
package convert

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doeshing/baseconv/internal/converter"
	"github.com/doeshing/baseconv/internal/domain"
	"github.com/doeshing/baseconv/internal/ports"
)

// Service wires the conversion engine to configuration and history.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Store          ports.HistoryRepository
	Clipboard      ports.Clipboard
	Logger         ports.Logger
	Now            func() time.Time
}

// Request is a single conversion from the CLI or the HTTP API.
type Request struct {
	Username string
	Text     string
	From     domain.Radix
	To       domain.Radix
	Copy     bool
}

// Response carries the engine result plus what the service did with it.
type Response struct {
	Pair     domain.ConversionPair
	Input    string
	Result   domain.ConversionResult
	Recorded bool
	Copied   bool
}

func (s *Service) ready() error {
	if s.Logger == nil {
		return errors.New("convert.Service dependencies not satisfied")
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Convert runs the primary converter (binary, octal, decimal, hexadecimal)
// and records the result in the user's history. A failed history write is
// logged; the conversion itself still succeeds.
func (s *Service) Convert(ctx context.Context, req Request) (Response, error) {
	if err := s.ready(); err != nil {
		return Response{}, err
	}
	result, err := converter.ConvertBase(req.Text, req.From, req.To)
	if err != nil {
		return Response{}, err
	}
	resp := Response{
		Pair:   domain.ConversionPair{From: req.From, To: req.To},
		Input:  req.Text,
		Result: result,
	}

	if s.Store != nil {
		rec := domain.ConversionRecord{
			Username:    userOrGuest(req.Username),
			InputValue:  strings.TrimSpace(req.Text),
			InputBase:   req.From,
			OutputValue: result.Rendered,
			OutputBase:  req.To,
			Timestamp:   s.now(),
		}
		if err := s.Store.Save(ctx, rec); err != nil {
			s.Logger.Warn("history save failed", map[string]interface{}{
				"error": err.Error(),
				"user":  rec.Username,
			})
		} else {
			resp.Recorded = true
		}
	}

	resp.Copied = s.copy(req.Copy, result.Rendered)
	return resp, nil
}

// Preview runs the primary converter without touching history.
func (s *Service) Preview(req Request) (Response, error) {
	if err := s.ready(); err != nil {
		return Response{}, err
	}
	result, err := converter.ConvertBase(req.Text, req.From, req.To)
	if err != nil {
		return Response{}, err
	}
	return Response{
		Pair:   domain.ConversionPair{From: req.From, To: req.To},
		Input:  req.Text,
		Result: result,
	}, nil
}

// Quick converts between any two radixes from 2 to 36. Quick conversions
// are not recorded.
func (s *Service) Quick(req Request) (Response, error) {
	if err := s.ready(); err != nil {
		return Response{}, err
	}
	result, err := converter.QuickConvert(req.Text, req.From, req.To)
	if err != nil {
		return Response{}, err
	}
	return Response{
		Pair:   domain.ConversionPair{From: req.From, To: req.To},
		Input:  req.Text,
		Result: result,
		Copied: s.copy(req.Copy, result.Rendered),
	}, nil
}

// Validate reports whether text is acceptable for radix at the call site
// described by set.
func (s *Service) Validate(text string, radix domain.Radix, set domain.RadixSet) bool {
	if !set.Contains(radix) {
		return false
	}
	return converter.IsValidDigits(text, radix)
}

// History lists the user's conversions, newest first. A non-positive limit
// uses the configured history limit.
func (s *Service) History(ctx context.Context, username string, limit int) ([]domain.ConversionRecord, error) {
	if s.Store == nil {
		return nil, errors.New("history store unavailable")
	}
	if limit <= 0 {
		limit = s.historyLimit(ctx)
	}
	records, err := s.Store.Records(ctx, userOrGuest(username), limit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return records, nil
}

// ClearHistory removes every conversion recorded for the user.
func (s *Service) ClearHistory(ctx context.Context, username string) error {
	if s.Store == nil {
		return errors.New("history store unavailable")
	}
	if err := s.Store.Clear(ctx, userOrGuest(username)); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Stats summarises up to domain.MaxHistoryAnalysisRecords of the user's
// conversions.
func (s *Service) Stats(ctx context.Context, username string) (domain.HistoryStats, error) {
	if s.Store == nil {
		return domain.HistoryStats{}, errors.New("history store unavailable")
	}
	records, err := s.Store.Records(ctx, userOrGuest(username), domain.MaxHistoryAnalysisRecords)
	if err != nil {
		return domain.HistoryStats{}, fmt.Errorf("load history: %w", err)
	}
	return Summarize(records, domain.DefaultTopPairs), nil
}

// CopyByDefault reports whether preferences.copy_result asks for every
// result to go to the clipboard.
func (s *Service) CopyByDefault(ctx context.Context) bool {
	if s.ConfigProvider == nil {
		return false
	}
	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return false
	}
	return cfg.Preferences.CopyResult
}

func (s *Service) historyLimit(ctx context.Context) int {
	if s.ConfigProvider == nil {
		return domain.DefaultHistoryLimit
	}
	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Debug("config load failed, using default history limit", map[string]interface{}{"error": err.Error()})
		}
		return domain.DefaultHistoryLimit
	}
	return cfg.HistoryLimit()
}

func (s *Service) copy(requested bool, text string) bool {
	if !requested || s.Clipboard == nil || !s.Clipboard.Enabled() {
		return false
	}
	if err := s.Clipboard.Copy(text); err != nil {
		s.Logger.Warn("clipboard copy failed", map[string]interface{}{"error": err.Error()})
		return false
	}
	return true
}

func userOrGuest(username string) string {
	if username == "" {
		return domain.GuestUser
	}
	return username
}
