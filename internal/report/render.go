// Package report renders report results for terminals and scripts.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want table, yaml or json)", s)
	}
}

type Field struct {
	Name  string
	Value string
}

// Section is one report. Err is set instead of Fields when the report failed.
type Section struct {
	Name   string
	Title  string
	Fields []Field
	Err    string
}

// Render writes sections to w in the given format.
func Render(w io.Writer, format Format, sections []Section) error {
	switch format {
	case FormatTable:
		return renderTable(w, sections)
	case FormatYAML:
		return renderYAML(w, sections)
	case FormatJSON:
		return renderJSON(w, sections)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func renderTable(w io.Writer, sections []Section) error {
	var sb strings.Builder
	for i, s := range sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("## " + s.Title + "\n\n")
		if s.Err != "" {
			sb.WriteString("error: " + s.Err + "\n")
			continue
		}

		rows := [][2]string{{"field", "value"}}
		for _, f := range s.Fields {
			rows = append(rows, [2]string{cell(f.Name), cell(f.Value)})
		}
		writeTable(&sb, rows)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// writeTable writes a two-column markdown table whose first row is the header.
// Columns are padded to display width so wide characters line up.
func writeTable(sb *strings.Builder, rows [][2]string) {
	widths := [2]int{3, 3}
	for _, row := range rows {
		for j, c := range row {
			if w := runewidth.StringWidth(c); w > widths[j] {
				widths[j] = w
			}
		}
	}

	writeRow := func(row [2]string) {
		sb.WriteString("|")
		for j, c := range row {
			sb.WriteString(" " + c)
			sb.WriteString(strings.Repeat(" ", widths[j]-runewidth.StringWidth(c)))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	writeRow(rows[0])
	sb.WriteString("| " + strings.Repeat("-", widths[0]) + " | " + strings.Repeat("-", widths[1]) + " |\n")
	for _, row := range rows[1:] {
		writeRow(row)
	}
}

// cell keeps a value on one table row.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

func renderYAML(w io.Writer, sections []Section) error {
	doc := &yaml.Node{Kind: yaml.SequenceNode}
	for _, s := range sections {
		item := mapping(
			"name", scalar(s.Name),
			"title", scalar(s.Title),
		)
		if s.Err != "" {
			item.Content = append(item.Content, scalar("error"), scalar(s.Err))
		} else {
			result := &yaml.Node{Kind: yaml.MappingNode}
			for _, f := range s.Fields {
				result.Content = append(result.Content, scalar(f.Name), scalar(f.Value))
			}
			item.Content = append(item.Content, scalar("result"), result)
		}
		doc.Content = append(doc.Content, item)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func mapping(kv ...any) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Content = append(n.Content, scalar(kv[i].(string)), kv[i+1].(*yaml.Node))
	}
	return n
}

type jsonSection struct {
	Name   string            `json:"name"`
	Title  string            `json:"title"`
	Result map[string]string `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}

func renderJSON(w io.Writer, sections []Section) error {
	out := make([]jsonSection, 0, len(sections))
	for _, s := range sections {
		js := jsonSection{Name: s.Name, Title: s.Title, Error: s.Err}
		if s.Err == "" {
			js.Result = make(map[string]string, len(s.Fields))
			for _, f := range s.Fields {
				js.Result[f.Name] = f.Value
			}
		}
		out = append(out, js)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}
