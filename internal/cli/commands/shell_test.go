package commands

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/monhealth/internal/cli/output"
	"github.com/leapstack-labs/monhealth/internal/shell"
	"github.com/leapstack-labs/monhealth/internal/state"
	"github.com/leapstack-labs/monhealth/internal/testutil"
)

// scriptedReader replays lines and errors in order, then reports EOF.
type scriptedReader struct {
	steps []any // string or error
	calls int
}

func (r *scriptedReader) Readline() (string, error) {
	r.calls++
	if len(r.steps) == 0 {
		return "", io.EOF
	}
	step := r.steps[0]
	r.steps = r.steps[1:]
	if err, ok := step.(error); ok {
		return "", err
	}
	return step.(string), nil
}

func newTestSession(t *testing.T) (*shell.Session, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()
	logger := testutil.NewTestLogger(t)

	store := state.NewSQLStore(logger)
	require.NoError(t, store.Open(ctx, state.DriverSQLite, ":memory:"))
	require.NoError(t, store.Migrate(ctx))
	t.Cleanup(func() { _ = store.Close() })

	buf := new(bytes.Buffer)
	r := output.NewRendererWithTTY(buf, output.ModeCSV, false)
	return shell.New(store, r, buf, shell.Options{Logger: logger}), buf
}

func TestRunLoop(t *testing.T) {
	session, buf := newTestSession(t)
	rl := &scriptedReader{steps: []any{
		"insert coffee",
		readline.ErrInterrupt,
		"find | name; bogus",
	}}

	require.NoError(t, runLoop(context.Background(), rl, session, buf, "1.0.0"))

	out := buf.String()
	assert.Contains(t, out, "monhealth 1.0.0. Type 'help' for help.\n")
	assert.Contains(t, out, "inserted 1 entry")
	assert.Contains(t, out, "coffee")
	assert.Contains(t, out, "error: command not found")
	assert.True(t, session.Done(), "EOF should run exit")
	assert.Equal(t, 4, rl.calls)
}

func TestRunLoop_ExitStopsReading(t *testing.T) {
	session, buf := newTestSession(t)
	rl := &scriptedReader{steps: []any{"exit", "insert never"}}

	require.NoError(t, runLoop(context.Background(), rl, session, buf, "dev"))
	assert.Equal(t, 1, rl.calls)
	assert.NotContains(t, buf.String(), "inserted")
}

func TestRunLoop_ReadError(t *testing.T) {
	session, buf := newTestSession(t)
	rl := &scriptedReader{steps: []any{io.ErrClosedPipe}}

	err := runLoop(context.Background(), rl, session, buf, "dev")
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestNewCompleter(t *testing.T) {
	session, _ := newTestSession(t)
	pc := newCompleter(session.Commands())

	assert.Len(t, pc.GetChildren(), len(session.Commands().Commands()))
}
