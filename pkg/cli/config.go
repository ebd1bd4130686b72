package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jarvisfriends/replxx/pkg/cli/histutil"
	"github.com/jarvisfriends/replxx/pkg/cli/killring"
	"github.com/jarvisfriends/replxx/pkg/cli/linebuf"
	"github.com/jarvisfriends/replxx/pkg/ui"
)

// Config holds the options of the editor.
type Config struct {
	// Characters that separate words. Only ASCII characters are considered.
	BreakChars string `yaml:"break-chars"`
	// Maximum number of rows used to show multiple hints; 0 shows multiple
	// hints only through selection.
	MaxHintRows int `yaml:"max-hint-rows"`
	// Number of candidates above which the user is asked before they are
	// listed.
	CompletionCountCutoff int `yaml:"completion-count-cutoff"`
	// Whether a second Tab is required to list ambiguous candidates.
	DoubleTabCompletion bool `yaml:"double-tab-completion"`
	// Whether Tab completes at the start of the line.
	CompleteOnEmpty bool `yaml:"complete-on-empty"`
	// Whether to beep when completion is ambiguous.
	BeepOnAmbiguousCompletion bool `yaml:"beep-on-ambiguous-completion"`
	// Disables colors, and with them hints.
	NoColor bool `yaml:"no-color"`
	// Maximum number of history entries; 0 disables history.
	MaxHistorySize int `yaml:"max-history-size"`
	// Number of killed fragments kept.
	KillRingSize int `yaml:"kill-ring-size"`
	// Additional key bindings, from key names such as "Ctrl-X" or "Alt-f" to
	// action names such as "kill-line-right". The action "none" removes a
	// default binding.
	Bindings map[string]string `yaml:"bindings"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		BreakChars:            linebuf.DefaultBreakChars,
		MaxHintRows:           4,
		CompletionCountCutoff: 100,
		CompleteOnEmpty:       true,
		MaxHistorySize:        histutil.DefaultMaxSize,
		KillRingSize:          killring.DefaultCapacity,
	}
}

// Action name used to remove a binding.
const unbindAction = "none"

// Validate checks that sizes are not negative and that every binding names a
// valid key and a known action.
func (c Config) Validate() error {
	var errs []error
	for _, f := range []struct {
		name  string
		value int
	}{
		{"max-hint-rows", c.MaxHintRows},
		{"completion-count-cutoff", c.CompletionCountCutoff},
		{"max-history-size", c.MaxHistorySize},
		{"kill-ring-size", c.KillRingSize},
	} {
		if f.value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", f.name, f.value))
		}
	}
	for key, action := range c.Bindings {
		if _, err := ui.ParseKey(key); err != nil {
			errs = append(errs, fmt.Errorf("bindings: %w", err))
		}
		if _, ok := actions[action]; !ok && action != unbindAction {
			errs = append(errs, fmt.Errorf("bindings: unknown action %q for %s", action, key))
		}
	}
	return errors.Join(errs...)
}

// ParseConfig reads a YAML configuration on top of the default one. Unknown
// fields are errors.
func ParseConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML configuration file with ParseConfig.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	cfg, err := ParseConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// bindings resolves the key bindings: the defaults, overridden by the
// configured ones. Invalid entries are logged and skipped.
func (c Config) bindings() map[ui.Key]string {
	m := make(map[ui.Key]string, len(defaultBindings)+len(c.Bindings))
	for k, a := range defaultBindings {
		m[k] = a
	}
	for name, a := range c.Bindings {
		k, err := ui.ParseKey(name)
		if err != nil {
			logger.Println("skipping binding:", err)
			continue
		}
		if a == unbindAction {
			delete(m, k)
			continue
		}
		if _, ok := actions[a]; !ok {
			logger.Printf("skipping binding of %s to unknown action %q", k, a)
			continue
		}
		m[k] = a
	}
	return m
}
