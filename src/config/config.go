// Package config holds the editor settings: built-in defaults, optionally
// overridden by a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "SE_CONFIG"

// Config is the set of user settings.
type Config struct {
	TabWidth    int    `toml:"tab_width"`
	SpareDir    string `toml:"spare_dir"`    // where S saves when the file itself is not writable
	QuitPresses int    `toml:"quit_presses"` // q presses needed to leave a dirty file
	StatusFg    string `toml:"status_fg"`
	StatusBg    string `toml:"status_bg"`
	LogFile     string `toml:"log_file"` // empty discards log output
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		TabWidth:    8,
		SpareDir:    os.TempDir(),
		QuitPresses: 3,
		StatusFg:    "#1e1e1e",
		StatusBg:    "#c8c8c8",
	}
}

// Path returns $SE_CONFIG if set, else se/config.toml under the user config
// directory. It returns "" when neither can be determined.
func Path() string {
	if p := strings.TrimSpace(os.Getenv(EnvPath)); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, "se", "config.toml")
}

// Load reads path over the defaults. A missing file, or an empty path,
// yields the defaults. Unknown keys are an error so typos do not pass
// silently.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("loading config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Default(), fmt.Errorf("loading config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if c.TabWidth < 1 {
		return fmt.Errorf("tab_width must be at least 1, got %d", c.TabWidth)
	}
	if c.QuitPresses < 1 {
		return fmt.Errorf("quit_presses must be at least 1, got %d", c.QuitPresses)
	}
	if c.SpareDir == "" {
		return errors.New("spare_dir must not be empty")
	}
	if _, err := ParseColor(c.StatusFg); err != nil {
		return fmt.Errorf("status_fg: %w", err)
	}
	if _, err := ParseColor(c.StatusBg); err != nil {
		return fmt.Errorf("status_bg: %w", err)
	}
	return nil
}

// ParseColor parses a "#rrggbb" hex color.
func ParseColor(s string) (ansi.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("bad color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return ansi.RGBColor{R: r, G: g, B: b}, nil
}

// StatusColors returns the parsed status line colors. Invalid values fall
// back to the defaults.
func (c Config) StatusColors() (fg, bg ansi.Color) {
	def := Default()
	var err error
	if fg, err = ParseColor(c.StatusFg); err != nil {
		fg, _ = ParseColor(def.StatusFg)
	}
	if bg, err = ParseColor(c.StatusBg); err != nil {
		bg, _ = ParseColor(def.StatusBg)
	}
	return fg, bg
}
