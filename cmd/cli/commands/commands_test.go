package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nicksheldon/CUClimbingWallSchedule/internal/config"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/db"
)

const responsesCSV = `Timestamp,Name,Slots
2025/01/06 10:00,P1,"A, B"
2025/01/06 10:01,P2,"B, C"
2025/01/06 10:02,P3,"A, B"
2025/01/06 10:03,P4,A
`

func newTestApp(t *testing.T, withDatabase bool) *AppContext {
	t.Helper()

	app := &AppContext{
		Cfg: &config.Config{
			Slots:     []string{"A", "B", "C"},
			Responses: config.ResponsesLayout{SkipHeader: true},
		},
		Logger: zap.NewNop(),
		Ctx:    context.Background(),
	}

	if withDatabase {
		database, err := OpenDatabase(app.Ctx, &config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"}, app.Logger)
		require.NoError(t, err)
		t.Cleanup(func() { database.Close() })
		app.Database = database
	}

	return app
}

func writeResponses(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "responses.csv")
	require.NoError(t, os.WriteFile(path, []byte(responsesCSV), 0644))
	return path
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScheduleCmd_PrintsAndExports(t *testing.T) {
	app := newTestApp(t, false)
	outPath := filepath.Join(t.TempDir(), "solution.csv")

	out, err := execute(t, ScheduleCmd(app), writeResponses(t), "--out", outPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Scheduled 3 of 4 participants")
	assert.Contains(t, out, "Unscheduled (1):")
	assert.Contains(t, out, "Schedule written to "+outPath)

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "slot,participant\nA,P4\nB,P1\nC,P2\nUNSCHEDULED,P3\n", string(content))
}

func TestScheduleCmd_GreedyFlag(t *testing.T) {
	app := newTestApp(t, false)

	out, err := execute(t, ScheduleCmd(app), writeResponses(t), "--greedy")
	require.NoError(t, err)
	assert.Contains(t, out, "mode: greedy")
}

func TestScheduleCmd_RequiresSource(t *testing.T) {
	app := newTestApp(t, false)

	_, err := execute(t, ScheduleCmd(app))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "responses CSV file is required")

	_, err = execute(t, ScheduleCmd(app), "--sheet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "responsesSheetID")
}

func TestScheduleCmd_SaveRequiresDatabase(t *testing.T) {
	app := newTestApp(t, false)

	_, err := execute(t, ScheduleCmd(app), writeResponses(t), "--save")
	require.Error(t, err)
	assert.True(t, errors.Is(err, db.ErrNoDatabase))
}

func TestScheduleCmd_SaveThenShowRun(t *testing.T) {
	app := newTestApp(t, true)

	out, err := execute(t, ScheduleCmd(app), writeResponses(t), "--save")
	require.NoError(t, err)

	match := regexp.MustCompile(`Run saved with ID (\S+)`).FindStringSubmatch(out)
	require.Len(t, match, 2)
	runID := match[1]

	out, err = execute(t, RunsCmd(app))
	require.NoError(t, err)
	assert.Contains(t, out, runID)
	assert.Contains(t, out, "3/4")

	exportPath := filepath.Join(t.TempDir(), "saved.csv")
	out, err = execute(t, ShowRunCmd(app), runID, "--out", exportPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Run:     "+runID)
	assert.Contains(t, out, "Scheduled 3 of 4 participants")

	content, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Equal(t, "slot,participant\nA,P4\nB,P1\nC,P2\nUNSCHEDULED,P3\n", string(content))
}

func TestShowRunCmd_NotFound(t *testing.T) {
	app := newTestApp(t, true)

	_, err := execute(t, ShowRunCmd(app), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, db.ErrRunNotFound))
}

func TestMandatoryCmd(t *testing.T) {
	app := newTestApp(t, false)

	out, err := execute(t, MandatoryCmd(app), writeResponses(t))
	require.NoError(t, err)
	assert.Contains(t, out, "every maximum schedule")
}

func TestOpenDatabase(t *testing.T) {
	database, err := OpenDatabase(context.Background(), nil, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, database)

	_, err = OpenDatabase(context.Background(), &config.DatabaseConfig{Driver: "mysql", DSN: "x"}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown database driver")
}
