package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/gonewx/novadraw/pkg/config"
	"github.com/gonewx/novadraw/pkg/embedded"
)

func TestLoadConfigEmbedded(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"data/novadraw.yaml": {Data: []byte("draw:\n  presentationDelay: 2.5\n")},
	})

	c, err := LoadConfig(Config{})
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if c.Draw.PresentationDelay != 2.5 {
		t.Errorf("PresentationDelay = %v, want 2.5", c.Draw.PresentationDelay)
	}
	// 未出现的字段保留默认值
	if c.Card != config.DefaultDrawConfig().Card {
		t.Errorf("Card = %+v, want defaults", c.Card)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(good, []byte("card:\n  width: 400\n  height: 240\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("scratch:\n  revealThreshold: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(Config{ConfigPath: good})
	if err != nil {
		t.Fatalf("LoadConfig(good) error = %v", err)
	}
	if c.Card.Width != 400 || c.Card.Height != 240 {
		t.Errorf("Card = %+v", c.Card)
	}

	if _, err := LoadConfig(Config{ConfigPath: bad}); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("LoadConfig(bad) error = %v, want ErrInvalidConfig", err)
	}
	if _, err := LoadConfig(Config{ConfigPath: filepath.Join(dir, "missing.yaml")}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadConfig(missing) error = %v, want os.ErrNotExist", err)
	}
}
