package shared

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
)

var charsets = []string{"windows-1252", "iso-8859-1", "iso-8859-15", "utf-8"}

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Import ImportConfig `toml:"import"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

// ImportConfig controls how the tabular inputs are read and reconciled.
type ImportConfig struct {
	TeamsCSV            string   `toml:"teams_csv"`
	PlayersCSV          string   `toml:"players_csv"`
	Separator           string   `toml:"separator"`
	MinPlayers          int      `toml:"min_players"`
	MinPlaceholders     int      `toml:"min_placeholders"`
	PlayerDateMode      string   `toml:"player_date_mode"`
	LegacyPlayerColumns bool     `toml:"legacy_player_columns"`
	YouthPrefixes       []string `toml:"youth_prefixes"`
}

// OutputConfig controls how team files and CSV exports are written.
type OutputConfig struct {
	Dir              string `toml:"dir"`
	Encoding         string `toml:"encoding"`
	ReadEncoding     string `toml:"read_encoding"`
	CSVEncoding      string `toml:"csv_encoding"`
	DateLayout       string `toml:"date_layout"`
	LineEnding       string `toml:"line_ending"`
	Sort             bool   `toml:"sort"`
	PlaceholdersLast bool   `toml:"placeholders_last"`
	PlaceholderOrder string `toml:"placeholder_order"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: config file at %s", ErrFileExists, path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig encodes config as TOML and writes it to path.
func SaveConfig(path string, config *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks value ranges and enumerations that TOML decoding cannot express.
func (c *Config) Validate() error {
	if c.Import.MinPlayers < 0 {
		return fmt.Errorf("%w: min_players must not be negative", ErrInvalidConfig)
	}
	if c.Import.MinPlaceholders < 0 {
		return fmt.Errorf("%w: min_placeholders must not be negative", ErrInvalidConfig)
	}
	if len([]rune(c.Import.Separator)) != 1 {
		return fmt.Errorf("%w: separator must be a single character, got %q", ErrInvalidConfig, c.Import.Separator)
	}
	if !slices.Contains([]string{"auto", "numeric", "iso", "worded"}, c.Import.PlayerDateMode) {
		return fmt.Errorf("%w: unknown player_date_mode %q", ErrInvalidConfig, c.Import.PlayerDateMode)
	}
	if !slices.Contains([]string{"lf", "crlf"}, c.Output.LineEnding) {
		return fmt.Errorf("%w: unknown line_ending %q", ErrInvalidConfig, c.Output.LineEnding)
	}
	if !slices.Contains([]string{"name", "insertion"}, c.Output.PlaceholderOrder) {
		return fmt.Errorf("%w: unknown placeholder_order %q", ErrInvalidConfig, c.Output.PlaceholderOrder)
	}
	for key, value := range map[string]string{
		"encoding":      c.Output.Encoding,
		"csv_encoding":  c.Output.CSVEncoding,
		"read_encoding": c.Output.ReadEncoding,
	} {
		if !slices.Contains(charsets, value) && (key != "read_encoding" || value != "auto") {
			return fmt.Errorf("%w: unknown %s %q", ErrInvalidConfig, key, value)
		}
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("%w: output dir must not be empty", ErrInvalidConfig)
	}
	return nil
}
