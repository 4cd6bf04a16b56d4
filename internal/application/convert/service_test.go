package convert

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/baseconv/internal/domain"
	"github.com/doeshing/baseconv/internal/pkg/logger"
)

var fixedNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newService(store *stubHistory) *Service {
	return &Service{
		ConfigProvider: stubConfigProvider{cfg: domain.Config{History: domain.HistorySettings{Limit: 3}}},
		Store:          store,
		Logger:         logger.Discard(),
		Now:            func() time.Time { return fixedNow },
	}
}

func TestConvertRecordsHistory(t *testing.T) {
	store := &stubHistory{}
	svc := newService(store)

	resp, err := svc.Convert(context.Background(), Request{Username: "alice", Text: "FF", From: domain.Hexadecimal, To: domain.Binary})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if resp.Result.Rendered != "11111111" || !resp.Recorded {
		t.Fatalf("unexpected response %+v", resp)
	}
	want := []domain.ConversionRecord{{
		Username:    "alice",
		InputValue:  "FF",
		InputBase:   domain.Hexadecimal,
		OutputValue: "11111111",
		OutputBase:  domain.Binary,
		Timestamp:   fixedNow,
	}}
	if diff := cmp.Diff(want, store.saved); diff != "" {
		t.Fatalf("saved records mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertWithoutUserRecordsGuest(t *testing.T) {
	store := &stubHistory{}
	svc := newService(store)
	if _, err := svc.Convert(context.Background(), Request{Text: "10", From: domain.Decimal, To: domain.Octal}); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(store.saved) != 1 || store.saved[0].Username != domain.GuestUser {
		t.Fatalf("expected guest record, got %+v", store.saved)
	}
}

func TestConvertFailureRecordsNothing(t *testing.T) {
	store := &stubHistory{}
	svc := newService(store)

	_, err := svc.Convert(context.Background(), Request{Username: "alice", Text: "12", From: domain.Binary, To: domain.Decimal})
	if !errors.Is(err, domain.ErrInvalidDigit) {
		t.Fatalf("expected ErrInvalidDigit, got %v", err)
	}
	_, err = svc.Convert(context.Background(), Request{Username: "alice", Text: "Z", From: 36, To: domain.Decimal})
	if !errors.Is(err, domain.ErrUnsupportedRadix) {
		t.Fatalf("expected ErrUnsupportedRadix for base 36 on the primary converter, got %v", err)
	}
	if len(store.saved) != 0 {
		t.Fatalf("failed conversions must not be recorded, got %+v", store.saved)
	}
}

func TestConvertSurvivesHistoryFailure(t *testing.T) {
	store := &stubHistory{saveErr: errors.New("disk full")}
	svc := newService(store)

	resp, err := svc.Convert(context.Background(), Request{Text: "7", From: domain.Octal, To: domain.Decimal})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if resp.Recorded || resp.Result.Rendered != "7" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestQuickUsesWideSetAndSkipsHistory(t *testing.T) {
	store := &stubHistory{}
	svc := newService(store)

	resp, err := svc.Quick(Request{Text: "Z", From: 36, To: domain.Decimal})
	if err != nil {
		t.Fatalf("Quick() error = %v", err)
	}
	if resp.Result.Rendered != "35" {
		t.Fatalf("expected 35, got %q", resp.Result.Rendered)
	}
	if len(store.saved) != 0 {
		t.Fatal("quick conversions must not be recorded")
	}
}

func TestConvertCopiesWhenRequested(t *testing.T) {
	clip := &stubClipboard{enabled: true}
	svc := newService(&stubHistory{})
	svc.Clipboard = clip

	resp, err := svc.Convert(context.Background(), Request{Text: "255", From: domain.Decimal, To: domain.Hexadecimal, Copy: true})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !resp.Copied || clip.text != "FF" {
		t.Fatalf("expected FF copied, got %+v / %q", resp, clip.text)
	}
}

func TestCopyResultPreference(t *testing.T) {
	clip := &stubClipboard{enabled: true}
	svc := newService(&stubHistory{})
	svc.Clipboard = clip

	if svc.CopyByDefault(context.Background()) {
		t.Fatal("copy_result is off by default")
	}

	svc.ConfigProvider = stubConfigProvider{cfg: domain.Config{Preferences: domain.Preferences{CopyResult: true}}}
	ctx := context.Background()
	resp, err := svc.Convert(ctx, Request{Text: "10", From: domain.Decimal, To: domain.Binary, Copy: svc.CopyByDefault(ctx)})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !resp.Copied || clip.text != "1010" {
		t.Fatalf("expected 1010 copied, got %+v / %q", resp, clip.text)
	}

	svc.ConfigProvider = stubConfigProvider{err: errors.New("unreadable")}
	if svc.CopyByDefault(ctx) {
		t.Fatal("an unreadable config must not enable copying")
	}
}

func TestConvertStoresTrimmedInput(t *testing.T) {
	store := &stubHistory{}
	svc := newService(store)

	if _, err := svc.Convert(context.Background(), Request{Text: " ff \n", From: domain.Hexadecimal, To: domain.Decimal}); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(store.saved) != 1 || store.saved[0].InputValue != "ff" {
		t.Fatalf("expected trimmed input, got %+v", store.saved)
	}
	if got := store.saved[0].Summary(); got != "ff (Base 16) -> 255 (Base 10)" {
		t.Fatalf("Summary() = %q", got)
	}
}

func TestValidate(t *testing.T) {
	svc := newService(&stubHistory{})
	tests := []struct {
		text  string
		radix domain.Radix
		set   domain.RadixSet
		want  bool
	}{
		{"1010", domain.Binary, domain.RadixSetFixed, true},
		{"", domain.Binary, domain.RadixSetFixed, true},
		{"Z", 36, domain.RadixSetFixed, false},
		{"Z", 36, domain.RadixSetWide, true},
		{"8", domain.Octal, domain.RadixSetWide, false},
	}
	for _, tt := range tests {
		if got := svc.Validate(tt.text, tt.radix, tt.set); got != tt.want {
			t.Errorf("Validate(%q, %d, %s) = %v, want %v", tt.text, tt.radix, tt.set, got, tt.want)
		}
	}
}

func TestHistoryUsesConfiguredLimit(t *testing.T) {
	store := &stubHistory{}
	svc := newService(store)
	if _, err := svc.History(context.Background(), "alice", 0); err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if store.lastLimit != 3 || store.lastUser != "alice" {
		t.Fatalf("expected limit 3 for alice, got %d for %q", store.lastLimit, store.lastUser)
	}
	if _, err := svc.History(context.Background(), "", 7); err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if store.lastLimit != 7 || store.lastUser != domain.GuestUser {
		t.Fatalf("expected limit 7 for guest, got %d for %q", store.lastLimit, store.lastUser)
	}
}

func TestClearHistory(t *testing.T) {
	store := &stubHistory{}
	svc := newService(store)
	if err := svc.ClearHistory(context.Background(), "bob"); err != nil {
		t.Fatalf("ClearHistory() error = %v", err)
	}
	if store.cleared != "bob" {
		t.Fatalf("expected bob cleared, got %q", store.cleared)
	}
}

func TestSummarize(t *testing.T) {
	at := func(m int) time.Time { return fixedNow.Add(time.Duration(m) * time.Minute) }
	records := []domain.ConversionRecord{
		{InputBase: 16, OutputBase: 2, Timestamp: at(3)},
		{InputBase: 10, OutputBase: 2, Timestamp: at(2)},
		{InputBase: 16, OutputBase: 2, Timestamp: at(1)},
		{InputBase: 8, OutputBase: 10, Timestamp: at(0)},
	}
	got := Summarize(records, 2)
	want := domain.HistoryStats{
		Total: 4,
		TopPairs: []domain.PairCount{
			{Pair: domain.ConversionPair{From: 16, To: 2}, Count: 2},
			{Pair: domain.ConversionPair{From: 8, To: 10}, Count: 1},
		},
		Oldest: at(0),
		Newest: at(3),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Summarize mismatch (-want +got):\n%s", diff)
	}
	if empty := Summarize(nil, 5); empty.Total != 0 || empty.TopPairs != nil {
		t.Fatalf("expected empty stats, got %+v", empty)
	}
}

type stubConfigProvider struct {
	cfg domain.Config
	err error
}

func (s stubConfigProvider) Load(context.Context) (domain.Config, error) {
	return s.cfg, s.err
}

type stubHistory struct {
	saved     []domain.ConversionRecord
	saveErr   error
	lastUser  string
	lastLimit int
	cleared   string
}

func (s *stubHistory) Save(_ context.Context, rec domain.ConversionRecord) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, rec)
	return nil
}

func (s *stubHistory) Records(_ context.Context, user string, limit int) ([]domain.ConversionRecord, error) {
	s.lastUser, s.lastLimit = user, limit
	return s.saved, nil
}

func (s *stubHistory) Clear(_ context.Context, user string) error {
	s.cleared = user
	return nil
}

func (s *stubHistory) PruneOlderThan(context.Context, int) error  { return nil }
func (s *stubHistory) ExportJSON(context.Context, string, string) error { return nil }
func (s *stubHistory) Path() string                                { return "" }

type stubClipboard struct {
	enabled bool
	text    string
}

func (s *stubClipboard) Copy(text string) error {
	s.text = text
	return nil
}

func (s *stubClipboard) Enabled() bool { return s.enabled }

func TestPreviewSkipsHistory(t *testing.T) {
	store := &stubHistory{}
	svc := newService(store)
	resp, err := svc.Preview(Request{Username: "alice", Text: "1010", From: domain.Binary, To: domain.Decimal})
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if resp.Result.Rendered != "10" || resp.Recorded || len(store.saved) != 0 {
		t.Fatalf("unexpected preview %+v / %+v", resp, store.saved)
	}
}
