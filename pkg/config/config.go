// Package config loads the configuration file of the minimodeline
// programs.
//
// The configuration is a YAML document. All keys are optional:
//
//	update-interval: 100ms
//	echo-duration: 2s
//	right-padding: 3
//	truncate: true
//	whole-message: false
//	faces:
//	  mode-line: "fg=252 bg=238"
//	left:
//	  - {field: buffer-name, face: mode-line}
//	right:
//	  - {field: position}
//	history-db: ~/.local/state/minimodeline/history.db
//	socket: /tmp/minimodeline.sock
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/liushihao456/emacs-mini-modeline/pkg/face"
	"github.com/liushihao456/emacs-mini-modeline/pkg/modeline"
	"github.com/liushihao456/emacs-mini-modeline/pkg/template"
)

// Duration wraps [time.Duration] so that it unmarshals from YAML strings
// like "100ms" and "2s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("line %d: duration must be a string", value.Line)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config is the parsed configuration.
type Config struct {
	UpdateInterval Duration          `yaml:"update-interval"`
	EchoDuration   Duration          `yaml:"echo-duration"`
	RightPadding   int               `yaml:"right-padding"`
	Truncate       bool              `yaml:"truncate"`
	WholeMessage   bool              `yaml:"whole-message"`
	Faces          map[string]string `yaml:"faces"`
	Left           template.Nodes    `yaml:"left"`
	Right          template.Nodes    `yaml:"right"`
	HistoryDB      string            `yaml:"history-db"`
	Socket         string            `yaml:"socket"`
}

// Default returns the configuration used when no file is given. The left
// segment shows the buffer name and modified state, the right segment the
// position indicator.
func Default() Config {
	return Config{
		UpdateInterval: Duration(modeline.DefaultUpdateInterval),
		EchoDuration:   Duration(modeline.DefaultEchoDuration),
		RightPadding:   modeline.DefaultRightPadding,
		Truncate:       true,
		Left: template.Nodes{
			template.Text{Text: " "},
			template.Field{Name: "buffer-name", Face: "mode-line"},
			template.Cond{
				If:   "modified",
				Then: template.Nodes{template.Text{Text: " *", Face: "warning"}},
			},
		},
		Right: template.Nodes{
			template.Field{Name: "position", Face: "shadow"},
		},
	}
}

// Load reads the configuration from the named file, applied on top of the
// defaults. An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.HistoryDB = expandTilde(cfg.HistoryDB)
	cfg.Socket = expandTilde(cfg.Socket)
	return cfg, nil
}

// Modeline converts the timing and layout settings into a
// [modeline.Config].
func (cfg Config) Modeline() modeline.Config {
	rightPadding := cfg.RightPadding
	if rightPadding == 0 {
		rightPadding = -1
	}
	return modeline.Config{
		EchoDuration:   time.Duration(cfg.EchoDuration),
		UpdateInterval: time.Duration(cfg.UpdateInterval),
		RightPadding:   rightPadding,
		Wrap:           !cfg.Truncate,
		WholeMessage:   cfg.WholeMessage,
	}
}

// ApplyFaces defines the configured faces in reg. The first malformed face
// spec aborts with an error.
func (cfg Config) ApplyFaces(reg *face.Registry) error {
	for name, spec := range cfg.Faces {
		if err := reg.Define(name, spec); err != nil {
			return fmt.Errorf("face %s: %w", name, err)
		}
	}
	return nil
}

func expandTilde(path string) string {
	if path == "~" || len(path) >= 2 && path[0] == '~' && path[1] == filepath.Separator {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
