package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/andy/pomodolist/internal/clock"
	"github.com/andy/pomodolist/internal/config"
	"github.com/andy/pomodolist/internal/crypto"
	"github.com/andy/pomodolist/internal/db"
	"github.com/andy/pomodolist/internal/logging"
	"github.com/andy/pomodolist/internal/repository"
	"github.com/andy/pomodolist/internal/service"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	DB     *db.DB
	Clock  clock.Clock

	// Repositories
	Store    repository.KVStore
	TaskRepo repository.TaskRepository

	// Services
	Countdown service.CountdownService
	Tasks     service.TaskService

	keyring   crypto.Keyring
	logCloser io.Closer
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading config
// 2. Setting up logging
// 3. Getting the encryption key from the keyring (encrypted databases only)
// 4. Opening the database and running migrations
// 5. Creating repositories and services
// 6. Restoring persisted tasks
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logCloser, err := logging.Setup(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	keyring := crypto.NewKeyring()
	password := ""
	if cfg.Database.Encrypted {
		password, err = databaseKey(keyring)
		if err != nil {
			logCloser.Close()
			return nil, err
		}
	}

	database, err := db.Open(cfg.Database.Path, password)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.RunMigrations(); err != nil {
		database.Close()
		logCloser.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	a := NewWithStore(cfg, clock.New(), repository.NewKVRepo(database))
	a.DB = database
	a.logCloser = logCloser
	a.keyring = keyring

	if err := a.Tasks.Restore(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to restore tasks: %w", err)
	}

	log.Info().
		Str("db", cfg.Database.Path).
		Bool("encrypted", cfg.Database.Encrypted).
		Msg("pomodolist started")

	return a, nil
}

// NewWithStore wires the services over an existing store and clock. Tasks are
// not restored; call Tasks.Restore.
func NewWithStore(cfg *config.Config, c clock.Clock, store repository.KVStore) *App {
	taskRepo := repository.NewTaskRepo(store)

	return &App{
		Config:    cfg,
		Clock:     c,
		Store:     store,
		TaskRepo:  taskRepo,
		Countdown: service.NewCountdownService(c, cfg.Timer.DefaultDuration),
		Tasks: service.NewTaskService(c, taskRepo, service.TaskServiceOptions{
			Exclusive: cfg.Tracker.Exclusive,
		}),
	}
}

// Close cancels every scheduled callback and shuts down storage
func (a *App) Close() error {
	if a.Countdown != nil {
		a.Countdown.Close()
	}
	if a.Tasks != nil {
		a.Tasks.Close()
	}

	var errs []error
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	if a.logCloser != nil {
		errs = append(errs, a.logCloser.Close())
	}
	return errors.Join(errs...)
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}

// Wipe closes the app and deletes the database files. For encrypted
// databases the keyring entry goes too, so the next start prompts for a
// new password.
func (a *App) Wipe() error {
	if a.DB == nil {
		// Store-backed app without database files
		a.Tasks.Close()
		return a.Store.Delete(context.Background(), repository.KeyActiveTasks, repository.KeyCompletedTasks)
	}

	path := a.Config.Database.Path
	if err := a.Close(); err != nil {
		return fmt.Errorf("failed to close before wipe: %w", err)
	}
	a.DB = nil
	a.logCloser = nil

	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}

	if a.Config.Database.Encrypted && a.keyring != nil {
		if err := a.keyring.DeleteKey(); err != nil && !errors.Is(err, crypto.ErrKeyNotFound) {
			return err
		}
	}
	return nil
}

// databaseKey fetches the key from the keyring, prompting on first run
func databaseKey(keyring crypto.Keyring) (string, error) {
	password, err := keyring.GetKey()
	if err == nil {
		return password, nil
	}
	if !errors.Is(err, crypto.ErrKeyNotFound) {
		return "", err
	}
	if !keyring.IsAvailable() {
		return "", fmt.Errorf("no system keyring available: export %s or set database.encrypted to false", crypto.EnvKey)
	}

	fmt.Println("Setting up database encryption for the first time...")
	password, err = promptForPassword()
	if err != nil {
		return "", fmt.Errorf("failed to set password: %w", err)
	}

	if err := keyring.SetKey(password); err != nil {
		return "", fmt.Errorf("failed to store encryption key: %w", err)
	}
	return password, nil
}

// promptForPassword prompts user for a new database password (first run)
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Your tasks will be stored in an encrypted database.")
	fmt.Println("The password is kept in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for database encryption: ")

	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Database encryption configured")
	fmt.Println()

	return string(password), nil
}
