package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gonewx/novadraw/pkg/embedded"
)

func TestParseDrawConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *DrawConfig)
	}{
		{
			name:        "empty document keeps defaults",
			yamlContent: ``,
			validate: func(t *testing.T, cfg *DrawConfig) {
				if cfg.Card.Width != 440 || cfg.Card.Height != 260 {
					t.Errorf("card = %+v", cfg.Card)
				}
				if cfg.Draw.PresentationDelay != 4 {
					t.Errorf("presentationDelay = %v", cfg.Draw.PresentationDelay)
				}
				if cfg.Scratch.CheckInterval() != 200*time.Millisecond {
					t.Errorf("check interval = %v", cfg.Scratch.CheckInterval())
				}
			},
		},
		{
			name: "partial override",
			yamlContent: `
scratch:
  revealThreshold: 0.6
sparkles:
  celebration:
    count: 5
hype:
  model: test-model
`,
			validate: func(t *testing.T, cfg *DrawConfig) {
				if cfg.Scratch.RevealThreshold != 0.6 {
					t.Errorf("revealThreshold = %v", cfg.Scratch.RevealThreshold)
				}
				if cfg.Scratch.StrokeWidth != 55 {
					t.Errorf("strokeWidth default lost: %v", cfg.Scratch.StrokeWidth)
				}
				if cfg.Sparkles.Celebration.Count != 5 || cfg.Sparkles.Celebration.TickMs != 150 {
					t.Errorf("celebration = %+v", cfg.Sparkles.Celebration)
				}
				if cfg.Hype.Model != "test-model" {
					t.Errorf("model = %q", cfg.Hype.Model)
				}
			},
		},
		{
			name: "threshold out of range",
			yamlContent: `
scratch:
  revealThreshold: 1.2
`,
			wantErr:     true,
			errContains: "revealThreshold",
		},
		{
			name: "card larger than screen",
			yamlContent: `
card:
  width: 2000
  height: 260
`,
			wantErr:     true,
			errContains: "does not fit",
		},
		{
			name: "sparkle size range inverted",
			yamlContent: `
sparkles:
  inline:
    minSize: 20
    maxSize: 10
`,
			wantErr:     true,
			errContains: "sparkles.inline",
		},
		{
			name: "negative delay",
			yamlContent: `
draw:
  presentationDelay: -1
`,
			wantErr:     true,
			errContains: "timings",
		},
		{
			name:        "malformed yaml",
			yamlContent: "card: [",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseDrawConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

// TestValidateWrapsSentinel 校验错误可以用 errors.Is 识别
func TestValidateWrapsSentinel(t *testing.T) {
	cfg := DefaultDrawConfig()
	cfg.Scratch.SampleStride = 0
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
	}
	if err := DefaultDrawConfig().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadDrawConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "novadraw.yaml")
	if err := os.WriteFile(path, []byte("draw:\n  presentationDelay: 2.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDrawConfig(path)
	if err != nil {
		t.Fatalf("LoadDrawConfig() error: %v", err)
	}
	if cfg.Draw.PresentationDelay != 2.5 {
		t.Errorf("presentationDelay = %v", cfg.Draw.PresentationDelay)
	}

	if _, err := LoadDrawConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}

// TestDefaultConfigFileMatchesDefaults 仓库内的默认配置文件与内置默认值一致
func TestDefaultConfigFileMatchesDefaults(t *testing.T) {
	cfg, err := LoadDrawConfig(filepath.Join("..", "..", DefaultConfigPath))
	if err != nil {
		t.Fatalf("LoadDrawConfig() error: %v", err)
	}
	want := DefaultDrawConfig()
	if *cfg != *want {
		t.Errorf("data/novadraw.yaml diverges from DefaultDrawConfig():\n got  %+v\n want %+v", *cfg, *want)
	}
}

func TestSparkleDensityDurations(t *testing.T) {
	d := DefaultDrawConfig().Sparkles.Inline
	if d.Tick() != 0.25 || d.Lifetime() != 0.7 {
		t.Errorf("inline tick=%v lifetime=%v", d.Tick(), d.Lifetime())
	}
}

func TestLoadEmbeddedDrawConfig(t *testing.T) {
	embedded.Init(fstest.MapFS{
		DefaultConfigPath: {Data: []byte("vortex:\n  names: 8\n")},
	})

	cfg, err := LoadEmbeddedDrawConfig()
	if err != nil {
		t.Fatalf("LoadEmbeddedDrawConfig() error: %v", err)
	}
	if cfg.Vortex.Names != 8 {
		t.Errorf("vortex names = %d, want 8", cfg.Vortex.Names)
	}
}
