package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/monhealth/pkg/core"
)

var testFoods = []core.Food{
	{ID: 1, Name: "coffee", Date: core.Date{Year: 2026, Month: time.October, Day: 18}, Time: core.Clock{Hour: 7, Minute: 30}},
	{ID: 2, Name: "apple", Date: core.Date{Year: 2026, Month: time.October, Day: 19}, Time: core.Clock{Hour: 18, Minute: 5}},
}

func newTestRenderer(mode Mode) (*Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewRendererWithTTY(&buf, mode, false), &buf
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input string
		want  Mode
	}{
		{"", ModeAuto},
		{"auto", ModeAuto},
		{"TEXT", ModeText},
		{"md", ModeMarkdown},
		{"markdown", ModeMarkdown},
		{"csv", ModeCSV},
		{"json", ModeJSON},
		{" yaml ", ModeYAML},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseMode("xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestRenderer_EffectiveMode(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, ModeText, NewRendererWithTTY(&buf, ModeAuto, true).EffectiveMode())
	assert.Equal(t, ModeMarkdown, NewRendererWithTTY(&buf, ModeAuto, false).EffectiveMode())
	assert.Equal(t, ModeJSON, NewRendererWithTTY(&buf, ModeJSON, true).EffectiveMode())
	assert.Equal(t, ModeAuto, NewRendererWithTTY(&buf, "", false).mode)
	assert.False(t, NewRenderer(&buf, ModeAuto).IsTTY())
}

func TestRenderFoods_Text(t *testing.T) {
	r, buf := newTestRenderer(ModeText)

	require.NoError(t, r.RenderFoods(buf, testFoods, core.AllFields))
	out := buf.String()
	assert.Contains(t, out, "coffee")
	assert.Contains(t, out, "18/10/2026")
	assert.Contains(t, out, "07:30")
	assert.Contains(t, out, "(2 rows)")
	assert.NotContains(t, out, "\x1b[")

	buf.Reset()
	require.NoError(t, r.RenderFoods(buf, nil, core.AllFields))
	assert.Equal(t, "(0 rows)\n", buf.String())
}

func TestRenderFoods_Projection(t *testing.T) {
	r, buf := newTestRenderer(ModeCSV)

	require.NoError(t, r.RenderFoods(buf, testFoods, []core.Field{core.FieldName}))
	out := buf.String()
	assert.Contains(t, out, "coffee")
	assert.Contains(t, out, "apple")
	assert.NotContains(t, out, "07:30")
	assert.NotContains(t, out, "2026")
}

func TestRenderFoods_Markdown(t *testing.T) {
	r, buf := newTestRenderer(ModeMarkdown)

	require.NoError(t, r.RenderFoods(buf, testFoods, core.AllFields))
	assert.Contains(t, buf.String(), "| coffee |")
}

func TestRenderFoods_JSON(t *testing.T) {
	r, buf := newTestRenderer(ModeJSON)

	require.NoError(t, r.RenderFoods(buf, testFoods, []core.Field{core.FieldID, core.FieldDate}))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []map[string]any{
		{"id": float64(1), "date": "2026-10-18"},
		{"id": float64(2), "date": "2026-10-19"},
	}, got)

	buf.Reset()
	require.NoError(t, r.RenderFoods(buf, nil, core.AllFields))
	assert.JSONEq(t, "[]", buf.String())
}

func TestRenderFoods_YAML(t *testing.T) {
	r, buf := newTestRenderer(ModeYAML)

	require.NoError(t, r.RenderFoods(buf, testFoods[:1], []core.Field{core.FieldID, core.FieldName}))
	assert.Equal(t, "- id: 1\n  name: coffee\n", buf.String())
}

func TestRenderer_StatusAndErrors(t *testing.T) {
	r, buf := newTestRenderer(ModeText)

	require.NoError(t, r.RenderStatus(buf, "inserted 1 entry"))
	require.NoError(t, r.RenderError(buf, errors.New("boom")))
	require.NoError(t, r.RenderLines(buf, []string{"a", "b"}))
	assert.Equal(t, "inserted 1 entry\nerror: boom\na\nb\n", buf.String())

	j, jbuf := newTestRenderer(ModeJSON)
	require.NoError(t, j.RenderStatus(jbuf, "query reset"))
	assert.JSONEq(t, `{"status": "query reset"}`, jbuf.String())

	jbuf.Reset()
	require.NoError(t, j.RenderError(jbuf, errors.New("boom")))
	assert.JSONEq(t, `{"error": "boom"}`, jbuf.String())

	jbuf.Reset()
	require.NoError(t, j.RenderLines(jbuf, nil))
	assert.JSONEq(t, `[]`, jbuf.String())
}
