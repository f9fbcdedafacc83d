package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/core/model"
)

const (
	configFileBase = "schedule_config"

	// DefaultLabelLayout formats slot calendar occurrences, e.g. "Mon 18:00"
	DefaultLabelLayout = "Mon 15:04"

	// maxCalendarSlots guards against recurrences that expand to huge universes
	maxCalendarSlots = 500

	defaultNameColumn  = 1
	defaultSlotsColumn = 2
	defaultSeparator   = ","
	defaultLogDir      = "logs"
)

// SlotCalendar generates the slot universe from a recurrence rule.
// Each occurrence becomes one slot labelled with LabelLayout.
type SlotCalendar struct {
	RRule       string `yaml:"rrule" validate:"required"`
	LabelLayout string `yaml:"labelLayout,omitempty"`
}

// ResponsesLayout describes where fields live in a response row (0-based columns)
type ResponsesLayout struct {
	SkipHeader  bool   `yaml:"skipHeader,omitempty"`
	NameColumn  *int   `yaml:"nameColumn,omitempty" validate:"omitempty,min=0"`
	SlotsColumn *int   `yaml:"slotsColumn,omitempty" validate:"omitempty,min=0"`
	Separator   string `yaml:"separator,omitempty" validate:"omitempty,len=1"`
}

// DatabaseConfig selects where run history is stored
type DatabaseConfig struct {
	Driver string `yaml:"driver" validate:"required,oneof=postgres sqlite"`
	DSN    string `yaml:"dsn" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	Slots            []string        `yaml:"slots,omitempty" validate:"omitempty,unique,dive,required"`
	SlotCalendar     *SlotCalendar   `yaml:"slotCalendar,omitempty"`
	TieBreak         string          `yaml:"tieBreak,omitempty" validate:"omitempty,oneof=input name"`
	SearchMode       string          `yaml:"searchMode,omitempty" validate:"omitempty,oneof=augmenting greedy"`
	MaxSearchDepth   int             `yaml:"maxSearchDepth,omitempty" validate:"min=0"`
	Responses        ResponsesLayout `yaml:"responses,omitempty"`
	ResponsesSheetID string          `yaml:"responsesSheetID,omitempty"`
	ResponsesTab     string          `yaml:"responsesTab,omitempty" validate:"required_with=ResponsesSheetID"`
	ResultsSheetID   string          `yaml:"resultsSheetID,omitempty"`
	Database         *DatabaseConfig `yaml:"database,omitempty"`
	LogDir           string          `yaml:"logDir,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from schedule_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration with an environment suffix
// For example, env="test" will look for "schedule_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, the slot calendar rrule and the resulting universe
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if len(cfg.Slots) > 0 && cfg.SlotCalendar != nil {
		return fmt.Errorf("config validation failed: slots and slotCalendar are mutually exclusive")
	}

	if _, err := cfg.Universe(); err != nil {
		return fmt.Errorf("invalid slot universe: %w", err)
	}

	return nil
}

// Universe builds the fixed slot universe described by the config.
// Without slots or a slot calendar it falls back to the A..R sign-up slots.
func (c *Config) Universe() (*model.Universe, error) {
	if c.SlotCalendar != nil {
		labels, err := c.SlotCalendar.Labels()
		if err != nil {
			return nil, err
		}
		return model.NewUniverse(labels)
	}

	if len(c.Slots) > 0 {
		return model.NewUniverse(c.Slots)
	}

	return model.DefaultUniverse(), nil
}

// Labels expands the recurrence into chronologically ordered slot labels.
// The rule must set DTSTART and be bounded by COUNT or UNTIL so that the
// universe is fixed regardless of when the tool runs.
func (sc *SlotCalendar) Labels() ([]string, error) {
	opt, err := rrule.StrToROption(sc.RRule)
	if err != nil {
		return nil, fmt.Errorf("invalid rrule in slotCalendar: %w", err)
	}
	if opt.Dtstart.IsZero() {
		return nil, fmt.Errorf("slotCalendar rrule must set DTSTART")
	}
	if opt.Count == 0 && opt.Until.IsZero() {
		return nil, fmt.Errorf("slotCalendar rrule must be bounded by COUNT or UNTIL")
	}

	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("invalid rrule in slotCalendar: %w", err)
	}

	occurrences := rule.All()
	if len(occurrences) > maxCalendarSlots {
		return nil, fmt.Errorf("slotCalendar expands to %d slots (max %d)", len(occurrences), maxCalendarSlots)
	}

	layout := sc.LabelLayout
	if layout == "" {
		layout = DefaultLabelLayout
	}

	labels := make([]string, len(occurrences))
	for i, occurrence := range occurrences {
		labels[i] = occurrence.Format(layout)
	}
	return labels, nil
}

// NameColumnIndex returns the 0-based column holding the participant name
func (r ResponsesLayout) NameColumnIndex() int {
	if r.NameColumn != nil {
		return *r.NameColumn
	}
	return defaultNameColumn
}

// SlotsColumnIndex returns the 0-based column holding the acceptable slots
func (r ResponsesLayout) SlotsColumnIndex() int {
	if r.SlotsColumn != nil {
		return *r.SlotsColumn
	}
	return defaultSlotsColumn
}

// SlotSeparator returns the separator between slot labels in the slots column
func (r ResponsesLayout) SlotSeparator() string {
	if r.Separator != "" {
		return r.Separator
	}
	return defaultSeparator
}

// LogDirectory returns the directory log files are written to
func (c *Config) LogDirectory() string {
	if c.LogDir != "" {
		return c.LogDir
	}
	return defaultLogDir
}

// findConfigFile searches for the config file in current directory and home directory
// If env is provided, it adds it as an extension (e.g., "schedule_config.test.yaml")
func findConfigFile(env string) (string, error) {
	configFileName := configFileBase + ".yaml"
	if env != "" {
		configFileName = configFileBase + "." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
