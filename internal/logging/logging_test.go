package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andy/pomodolist/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupWritesToFile(t *testing.T) {
	prev, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	path := filepath.Join(t.TempDir(), "logs", "app.log")
	closer, err := Setup(config.LogConfig{Level: "debug", Path: path})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	log.Debug().Str("task", "Draft outline").Msg("task started")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"message":"task started"`) {
		t.Fatalf("expected JSON log line, got %s", data)
	}
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	if _, err := Setup(config.LogConfig{Level: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
