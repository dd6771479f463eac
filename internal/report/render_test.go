package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var sections = []Section{
	{
		Name:  "most_expensive_book",
		Title: "most expensive book",
		Fields: []Field{
			{Name: "title", Value: "日本語の本"},
			{Name: "price", Value: "30.00"},
		},
	},
	{
		Name:  "cheapest_book",
		Title: "cheapest book",
		Err:   "catalogdb server returned HTTP 404",
	},
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"table", "YAML", "json"} {
		_, err := ParseFormat(name)
		assert.NoError(t, err, name)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestRender_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatTable, sections))

	want := strings.Join([]string{
		"## most expensive book",
		"",
		"| field | value      |",
		"| ----- | ---------- |",
		"| title | 日本語の本 |",
		"| price | 30.00      |",
		"",
		"## cheapest book",
		"",
		"error: catalogdb server returned HTTP 404",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestRender_TableKeepsCellsOnOneLine(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, FormatTable, []Section{{
		Name:   "r",
		Title:  "r",
		Fields: []Field{{Name: "review", Value: "line one\nline | two"}},
	}})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `| review | line one line \| two |`)
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatYAML, sections))

	out := buf.String()
	assert.Less(t, strings.Index(out, "title: 日本語の本"), strings.Index(out, "price: \"30.00\""), "field order is kept")

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "most_expensive_book", decoded[0]["name"])
	assert.Equal(t, map[string]any{"title": "日本語の本", "price": "30.00"}, decoded[0]["result"])
	assert.Equal(t, "catalogdb server returned HTTP 404", decoded[1]["error"])
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, sections))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, map[string]any{"title": "日本語の本", "price": "30.00"}, decoded[0]["result"])
	assert.NotContains(t, decoded[1], "result")
	assert.Equal(t, "catalogdb server returned HTTP 404", decoded[1]["error"])
}

func TestRender_UnknownFormat(t *testing.T) {
	assert.Error(t, Render(&bytes.Buffer{}, Format("xml"), sections))
}
