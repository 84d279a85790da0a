package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/monhealth/pkg/core"
)

// cell formats one value. Text output uses the display date format;
// machine formats use ISO dates.
func cell(f core.Food, field core.Field, display bool) string {
	switch field {
	case core.FieldID:
		return strconv.FormatInt(f.ID, 10)
	case core.FieldName:
		return f.Name
	case core.FieldDate:
		if display {
			return f.Date.Display()
		}
		return f.Date.String()
	case core.FieldTime:
		return f.Time.String()
	}
	return ""
}

// record holds one food keyed by column name for JSON output.
func record(f core.Food, columns []core.Field) map[string]any {
	m := make(map[string]any, len(columns))
	for _, c := range columns {
		if c == core.FieldID {
			m[c.String()] = f.ID
			continue
		}
		m[c.String()] = cell(f, c, false)
	}
	return m
}

// RenderFoods writes foods restricted to columns in the renderer's mode.
func (r *Renderer) RenderFoods(w io.Writer, foods []core.Food, columns []core.Field) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		records := make([]map[string]any, len(foods))
		for i, f := range foods {
			records[i] = record(f, columns)
		}
		return writeJSON(w, records)
	case ModeYAML:
		return renderFoodsYAML(w, foods, columns)
	case ModeCSV:
		t := foodTable(w, foods, columns, false)
		t.RenderCSV()
		return nil
	case ModeMarkdown:
		if len(foods) == 0 {
			_, _ = fmt.Fprintln(w, "(0 rows)")
			return nil
		}
		t := foodTable(w, foods, columns, true)
		t.RenderMarkdown()
		return nil
	default:
		if len(foods) == 0 {
			_, _ = fmt.Fprintln(w, r.styles.Muted.Render("(0 rows)"))
			return nil
		}
		t := foodTable(w, foods, columns, true)
		t.SetStyle(table.StyleLight)
		t.Render()
		_, _ = fmt.Fprintln(w, r.styles.Muted.Render(fmt.Sprintf("(%d rows)", len(foods))))
		return nil
	}
}

func foodTable(w io.Writer, foods []core.Food, columns []core.Field, display bool) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := make(table.Row, len(columns))
	for i, c := range columns {
		header[i] = c.String()
	}
	t.AppendHeader(header)

	for _, f := range foods {
		row := make(table.Row, len(columns))
		for i, c := range columns {
			row[i] = cell(f, c, display)
		}
		t.AppendRow(row)
	}
	return t
}

// renderFoodsYAML builds the document node by node to keep column order.
func renderFoodsYAML(w io.Writer, foods []core.Food, columns []core.Field) error {
	doc := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, f := range foods {
		item := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, c := range columns {
			value := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: cell(f, c, false)}
			if c == core.FieldID {
				value.Tag = "!!int"
			}
			item.Content = append(item.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.String()},
				value,
			)
		}
		doc.Content = append(doc.Content, item)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

// RenderLines writes plain lines, or a JSON array of them in JSON mode.
func (r *Renderer) RenderLines(w io.Writer, lines []string) error {
	if r.EffectiveMode() == ModeJSON {
		if lines == nil {
			lines = []string{}
		}
		return writeJSON(w, lines)
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

// RenderStatus writes the outcome of a command that changed data.
func (r *Renderer) RenderStatus(w io.Writer, msg string) error {
	if r.EffectiveMode() == ModeJSON {
		return writeJSON(w, map[string]string{"status": msg})
	}
	_, err := fmt.Fprintln(w, r.styles.Success.Render(msg))
	return err
}

// RenderError writes a failed command's error on one line.
func (r *Renderer) RenderError(w io.Writer, err error) error {
	if r.EffectiveMode() == ModeJSON {
		return writeJSON(w, map[string]string{"error": err.Error()})
	}
	_, werr := fmt.Fprintln(w, r.styles.Error.Render("error: "+err.Error()))
	return werr
}
