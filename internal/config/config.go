package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lexkit-labs/lexkit/internal/branding"
	"github.com/lexkit-labs/lexkit/internal/scaffold"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyWorkers = "workers"
	KeyRetries = "retries"
	KeyColor   = "color"
)

// Settings is the resolved configuration.
type Settings struct {
	Workers int
	Retries int
	Color   bool
}

// key describes one known setting.
type key struct {
	def      any
	validate func(string) (any, error)
	usage    string
}

var known = map[string]key{
	KeyWorkers: {def: scaffold.DefaultWorkers, validate: positiveInt, usage: "concurrent filesystem operations"},
	KeyRetries: {def: scaffold.DefaultRetries, validate: nonNegativeInt, usage: "retries for transient filesystem errors"},
	KeyColor:   {def: true, validate: boolean, usage: "colour status tags"},
}

// Dir returns the path to the lexkit config directory (~/.lexkit/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.lexkit/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() error {
	for k, spec := range known {
		viper.SetDefault(k, spec.def)
	}
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file just means nothing has been set yet.
		if _, statErr := os.Stat(FilePath()); os.IsNotExist(statErr) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", FilePath(), err)
	}
	return nil
}

// BindFlags lets flags in fs that share a name with a known key override
// the environment and the settings file.
func BindFlags(fs *pflag.FlagSet) error {
	for k := range known {
		f := fs.Lookup(k)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(k, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", k, err)
		}
	}
	return nil
}

// Current returns the resolved settings.
func Current() (Settings, error) {
	workers, err := cast.ToIntE(viper.Get(KeyWorkers))
	if err != nil || workers < 1 {
		return Settings{}, fmt.Errorf("invalid %s value %v: must be a positive integer", KeyWorkers, viper.Get(KeyWorkers))
	}
	retries, err := cast.ToIntE(viper.Get(KeyRetries))
	if err != nil || retries < 0 {
		return Settings{}, fmt.Errorf("invalid %s value %v: must be a non-negative integer", KeyRetries, viper.Get(KeyRetries))
	}
	color, err := cast.ToBoolE(viper.Get(KeyColor))
	if err != nil {
		return Settings{}, fmt.Errorf("invalid %s value %v: %w", KeyColor, viper.Get(KeyColor), err)
	}
	return Settings{Workers: workers, Retries: retries, Color: color}, nil
}

// Get returns a config value by key. Unknown keys are an error.
func Get(key string) (string, error) {
	if _, ok := known[key]; !ok {
		return "", unknownKey(key)
	}
	return viper.GetString(key), nil
}

// Set validates a value for a known key and saves it to the config file.
func Set(key, value string) error {
	spec, ok := known[key]
	if !ok {
		return unknownKey(key)
	}
	v, err := spec.validate(value)
	if err != nil {
		return fmt.Errorf("invalid value %q for %s: %w", value, key, err)
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, v)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Entry is one key with its resolved value.
type Entry struct {
	Key   string
	Value string
	Usage string
}

// List returns every known key with its resolved value, sorted by key.
func List() []Entry {
	keys := make([]string, 0, len(known))
	for k := range known {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, Entry{Key: k, Value: viper.GetString(k), Usage: known[k].usage})
	}
	return out
}

func unknownKey(key string) error {
	keys := make([]string, 0, len(known))
	for k := range known {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(keys, ", "))
}

func positiveInt(s string) (any, error) {
	n, err := cast.ToIntE(s)
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("must be at least 1")
	}
	return n, nil
}

func nonNegativeInt(s string) (any, error) {
	n, err := cast.ToIntE(s)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("must not be negative")
	}
	return n, nil
}

func boolean(s string) (any, error) {
	return cast.ToBoolE(s)
}
