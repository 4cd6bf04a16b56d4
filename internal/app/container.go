package app

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"path/filepath"

	"github.com/doeshing/baseconv/internal/application/account"
	"github.com/doeshing/baseconv/internal/application/convert"
	"github.com/doeshing/baseconv/internal/application/doctor"
	notesapp "github.com/doeshing/baseconv/internal/application/notes"
	"github.com/doeshing/baseconv/internal/infrastructure/accounts"
	"github.com/doeshing/baseconv/internal/infrastructure/config"
	"github.com/doeshing/baseconv/internal/infrastructure/history"
	"github.com/doeshing/baseconv/internal/infrastructure/notes"
	"github.com/doeshing/baseconv/internal/infrastructure/session"
	"github.com/doeshing/baseconv/internal/infrastructure/storage"
	"github.com/doeshing/baseconv/internal/pkg/logger"
	"github.com/doeshing/baseconv/internal/ports"
)

// HistoryFallbackFile backs history when the database cannot be opened.
const HistoryFallbackFile = "history.jsonl"

// Options configures container construction.
type Options struct {
	// ConfigPath overrides the config file location when set.
	ConfigPath string
	// Verbose forces debug logging.
	Verbose bool
	// LogLevel overrides logging.level from the config when set.
	LogLevel string
	// LogOutput defaults to stderr.
	LogOutput io.Writer
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         *logger.Logger

	HistoryStore ports.HistoryRepository
	UserStore    ports.UserRepository
	NoteStore    ports.NoteRepository
	SessionStore ports.SessionStore

	ConvertService *convert.Service
	AccountService *account.Service
	NotesService   *notesapp.Service
	DoctorService  *doctor.Service

	// Terminal helpers are plugged in by the CLI.
	Prompter  ports.ConfirmationPrompter
	Clipboard ports.Clipboard

	db *sql.DB
}

// Init fills c in place. The CLI allocates the container before flags are
// parsed and initialises it once --config and --log-level are known.
func (c *Container) Init(ctx context.Context, opts Options) error {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logging.Level, opts.LogOutput)
	if err != nil {
		return err
	}
	if opts.Verbose {
		_ = log.SetLevel("debug")
	}
	if err := log.SetLevel(opts.LogLevel); err != nil {
		return err
	}

	dataDir := config.DataDir(cfg)
	dbPath := filepath.Join(dataDir, storage.DatabaseFile)

	var historyStore ports.HistoryRepository
	var userStore ports.UserRepository
	db, err := storage.Open(dbPath)
	if err != nil {
		// conversions still get recorded; accounts need the database
		log.Warn("database unavailable, using jsonl history", map[string]interface{}{
			"path":  dbPath,
			"error": err.Error(),
		})
		historyStore = history.NewFileStore(filepath.Join(dataDir, HistoryFallbackFile))
	} else {
		historyStore = history.NewSQLiteStore(db, dbPath, cfg.History.RetentionDays)
		userStore = accounts.NewSQLiteStore(db)
	}
	log.Debug("container ready", map[string]interface{}{"data_dir": dataDir, "history": historyStore.Path()})

	sessionStore := session.NewFileStore(filepath.Join(dataDir, session.FileName))
	noteStore := notes.NewFileStore(filepath.Join(dataDir, notes.FileName))

	c.ConfigProvider = cfgLoader
	c.ConfigLoader = cfgLoader
	c.Logger = log
	c.HistoryStore = historyStore
	c.UserStore = userStore
	c.NoteStore = noteStore
	c.SessionStore = sessionStore
	c.db = db

	c.ConvertService = &convert.Service{
		ConfigProvider: cfgLoader,
		Store:          historyStore,
		Clipboard:      c.Clipboard,
		Logger:         log,
	}
	c.AccountService = &account.Service{
		Users:    userStore,
		Hasher:   accounts.NewBcryptHasher(),
		Sessions: sessionStore,
		Logger:   log,
	}
	c.NotesService = &notesapp.Service{
		Repo:   noteStore,
		Logger: log,
	}
	c.DoctorService = &doctor.Service{
		ConfigProvider: cfgLoader,
		History:        historyStore,
		Notes:          noteStore,
		Sessions:       sessionStore,
	}
	return nil
}

// SetClipboard plugs in the clipboard used by conversions.
func (c *Container) SetClipboard(clip ports.Clipboard) {
	c.Clipboard = clip
	if c.ConvertService != nil {
		c.ConvertService.Clipboard = clip
	}
}

// Close releases the database handle.
func (c *Container) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	if err != nil && !errors.Is(err, sql.ErrConnDone) {
		return err
	}
	return nil
}
