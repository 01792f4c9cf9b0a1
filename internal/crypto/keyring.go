package crypto

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

const (
	ServiceName = "pomodolist"
	KeyName     = "db-encryption-key"

	// EnvKey overrides the system keyring, for headless machines and CI
	EnvKey = "POMODOLIST_DB_KEY"
)

var ErrKeyNotFound = errors.New("encryption key not found")

// Keyring stores the database encryption key outside the database
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

// systemKeyring is backed by the OS credential store: Keychain on macOS,
// Secret Service on Linux, Credential Manager on Windows
type systemKeyring struct{}

// NewKeyring returns the system keyring. A non-empty POMODOLIST_DB_KEY wins
// over whatever the keyring holds.
func NewKeyring() Keyring {
	return &systemKeyring{}
}

func (k *systemKeyring) GetKey() (string, error) {
	if key := os.Getenv(EnvKey); key != "" {
		return key, nil
	}

	key, err := keyring.Get(ServiceName, KeyName)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read key from keyring (set %s to bypass): %w", EnvKey, err)
	}
	if key == "" {
		return "", ErrKeyNotFound
	}
	return key, nil
}

func (k *systemKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if err := keyring.Set(ServiceName, KeyName, password); err != nil {
		return fmt.Errorf("failed to store key in keyring (export %s instead): %w", EnvKey, err)
	}
	return nil
}

func (k *systemKeyring) DeleteKey() error {
	err := keyring.Delete(ServiceName, KeyName)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrKeyNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete key from keyring: %w", err)
	}
	return nil
}

// IsAvailable reports whether a key can be read or stored at all
func (k *systemKeyring) IsAvailable() bool {
	if os.Getenv(EnvKey) != "" {
		return true
	}
	probe := "__pomodolist_probe__"
	if err := keyring.Set(ServiceName, probe, "probe"); err != nil {
		return false
	}
	_ = keyring.Delete(ServiceName, probe)
	return true
}
