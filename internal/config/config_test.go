package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/core/model"
)

func TestValidate_ValidConfig(t *testing.T) {
	nameColumn := 0
	cfg := &Config{
		Slots:          []string{"A", "B", "C"},
		TieBreak:       "name",
		SearchMode:     "augmenting",
		MaxSearchDepth: 5,
		Responses: ResponsesLayout{
			SkipHeader: true,
			NameColumn: &nameColumn,
			Separator:  ";",
		},
		ResponsesSheetID: "sheet123",
		ResponsesTab:     "Form responses 1",
		Database: &DatabaseConfig{
			Driver: "sqlite",
			DSN:    "history.db",
		},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MinimalConfig(t *testing.T) {
	cfg := &Config{}

	err := Validate(cfg)
	assert.NoError(t, err)

	universe, err := cfg.Universe()
	require.NoError(t, err)
	assert.Equal(t, 18, universe.Len())
}

func TestValidate_InvalidEnums(t *testing.T) {
	err := Validate(&Config{TieBreak: "age"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	err = Validate(&Config{SearchMode: "random"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	err = Validate(&Config{MaxSearchDepth: -1})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_DuplicateSlots(t *testing.T) {
	err := Validate(&Config{Slots: []string{"A", "B", "A"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_ResponsesTabRequiredWithSheet(t *testing.T) {
	err := Validate(&Config{ResponsesSheetID: "sheet123"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_DatabaseDriver(t *testing.T) {
	err := Validate(&Config{Database: &DatabaseConfig{Driver: "mysql", DSN: "x"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	err = Validate(&Config{Database: &DatabaseConfig{Driver: "postgres"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_SlotsAndCalendarExclusive(t *testing.T) {
	cfg := &Config{
		Slots: []string{"A"},
		SlotCalendar: &SlotCalendar{
			RRule: "DTSTART=20250106T180000Z;FREQ=DAILY;COUNT=3",
		},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestSlotCalendar_Labels(t *testing.T) {
	cal := &SlotCalendar{
		RRule: "DTSTART=20250106T180000Z;FREQ=DAILY;COUNT=3",
	}

	labels, err := cal.Labels()
	require.NoError(t, err)
	assert.Equal(t, []string{"Mon 18:00", "Tue 18:00", "Wed 18:00"}, labels)
}

func TestSlotCalendar_CustomLayout(t *testing.T) {
	cal := &SlotCalendar{
		RRule:       "DTSTART=20250106T180000Z;FREQ=WEEKLY;COUNT=2",
		LabelLayout: "2006-01-02",
	}

	labels, err := cal.Labels()
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-06", "2025-01-13"}, labels)
}

func TestSlotCalendar_InvalidRRule(t *testing.T) {
	cfg := &Config{SlotCalendar: &SlotCalendar{RRule: "INVALID_RRULE_SYNTAX"}}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestSlotCalendar_RequiresDtstart(t *testing.T) {
	cal := &SlotCalendar{RRule: "FREQ=DAILY;COUNT=3"}

	_, err := cal.Labels()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DTSTART")
}

func TestSlotCalendar_RequiresBound(t *testing.T) {
	cal := &SlotCalendar{RRule: "DTSTART=20250106T180000Z;FREQ=DAILY"}

	_, err := cal.Labels()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "COUNT or UNTIL")
}

func TestSlotCalendar_DuplicateLabelsRejected(t *testing.T) {
	// Two occurrences on the same weekday produce the same "Mon 15:04" label
	cfg := &Config{SlotCalendar: &SlotCalendar{
		RRule: "DTSTART=20250106T180000Z;FREQ=WEEKLY;COUNT=2",
	}}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate label")
}

func TestResponsesLayout_Defaults(t *testing.T) {
	layout := ResponsesLayout{}

	assert.Equal(t, 1, layout.NameColumnIndex())
	assert.Equal(t, 2, layout.SlotsColumnIndex())
	assert.Equal(t, ",", layout.SlotSeparator())
	assert.Equal(t, "logs", (&Config{}).LogDirectory())
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	validConfig := `
slots: ["A", "B", "C", "D"]
tieBreak: "name"
searchMode: "greedy"
maxSearchDepth: 10
responses:
  skipHeader: true
  nameColumn: 0
  slotsColumn: 1
resultsSheetID: "results123"
database:
  driver: "postgres"
  dsn: "postgres://localhost/schedule"
logDir: "/tmp/logs"
`

	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C", "D"}, cfg.Slots)
	assert.Equal(t, "name", cfg.TieBreak)
	assert.Equal(t, "greedy", cfg.SearchMode)
	assert.Equal(t, 10, cfg.MaxSearchDepth)
	assert.True(t, cfg.Responses.SkipHeader)
	assert.Equal(t, 0, cfg.Responses.NameColumnIndex())
	assert.Equal(t, 1, cfg.Responses.SlotsColumnIndex())
	assert.Equal(t, "results123", cfg.ResultsSheetID)
	require.NotNil(t, cfg.Database)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "/tmp/logs", cfg.LogDirectory())

	universe, err := cfg.Universe()
	require.NoError(t, err)
	assert.Equal(t, []model.Slot{"A", "B", "C", "D"}, universe.Slots())
}

func TestLoadFromPath_CalendarConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "calendar_config.yaml")

	calendarConfig := `
slotCalendar:
  rrule: "DTSTART=20250106T170000Z;FREQ=DAILY;BYHOUR=17,19;COUNT=4"
  labelLayout: "Mon 15:04"
`

	err := os.WriteFile(configPath, []byte(calendarConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	universe, err := cfg.Universe()
	require.NoError(t, err)
	assert.Equal(t, []model.Slot{"Mon 17:00", "Mon 19:00", "Tue 17:00", "Tue 19:00"}, universe.Slots())
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_yaml.yaml")

	invalidYAML := `
slots: ["A"]
  invalid indentation
tieBreak: "name"
`

	err := os.WriteFile(configPath, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadWithEnv_FindsFileInCurrentDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	chdirForTest(t, tmpDir)

	err := os.WriteFile("schedule_config.test.yaml", []byte("tieBreak: name\n"), 0644)
	require.NoError(t, err)

	cfg, err := LoadWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, "name", cfg.TieBreak)
}

// chdirForTest changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir, which needs Go 1.24).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
