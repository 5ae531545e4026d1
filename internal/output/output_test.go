// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIDs = []string{"apa", "chicago-author-date", "chicago-note-bibliography", "ieee"}

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []Filter
	}{
		{"empty", "", nil},
		{"bare prefix", "chicago", []Filter{{Key: "id", Operand: "^", Target: "chicago"}}},
		{"keyed", "id=apa", []Filter{{Key: "id", Operand: "=", Target: "apa"}}},
		{"keyless operator", "@note", []Filter{{Key: "id", Operand: "@", Target: "note"}}},
		{"negated", "id!^chicago", []Filter{{Key: "id", Negate: true, Operand: "^", Target: "chicago"}}},
		{
			"multiple",
			"chicago, active=true",
			[]Filter{
				{Key: "id", Operand: "^", Target: "chicago"},
				{Key: "active", Operand: "=", Target: "true"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildFilters(tt.spec))
		})
	}
}

func TestBuildFilters_Delimiter(t *testing.T) {
	t.Setenv("CITECTL_FILTER_DELIM", ";")
	filters := BuildFilters("chicago;@note")
	assert.Len(t, filters, 2)
}

func TestFilterRows(t *testing.T) {
	rows := NewRows(testIDs, "ieee")

	tests := []struct {
		name string
		spec string
		want []string
	}{
		{"no filter", "", testIDs},
		{"prefix", "chicago", []string{"chicago-author-date", "chicago-note-bibliography"}},
		{"contains", "@note", []string{"chicago-note-bibliography"}},
		{"negated prefix", "!^chicago", []string{"apa", "ieee"}},
		{"regex", "/^(apa|ieee)$", []string{"apa", "ieee"}},
		{"active", "active=true", []string{"ieee"}},
		{"unknown key ignored", "nope=x", testIDs},
		{"nothing", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, r := range FilterRows(rows, tt.spec) {
				got = append(got, r.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStyles_Raw(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Styles(&buf, testIDs, "", Options{Format: "raw", Filter: "chicago"}))
	assert.Equal(t, "chicago-author-date\nchicago-note-bibliography\n", buf.String())
}

func TestStyles_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Styles(&buf, []string{"apa", "ieee"}, "apa", Options{Format: "json"}))
	assert.JSONEq(t, `[{"id":"apa","active":true},{"id":"ieee"}]`, buf.String())
}

func TestStyles_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Styles(&buf, []string{"apa"}, "", Options{Format: "yaml"}))
	assert.Equal(t, "- id: apa\n", buf.String())
}

func TestStyles_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Styles(&buf, []string{"apa", "ieee"}, "ieee", Options{Format: "text", Titles: true}))

	out := buf.String()
	assert.Contains(t, out, "style")
	assert.Contains(t, out, "active")
	assert.Contains(t, out, "apa")

	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "ieee") {
			assert.Contains(t, line, "*")
		}
	}
}

func TestStyles_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Styles(&buf, testIDs, "", Options{Filter: "zzz"}))
	assert.Empty(t, buf.String())
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{name: "string", value: "hello", want: "hello"},
		{name: "int", value: 42, want: "42"},
		{name: "float64", value: 42.5, want: "42"},
		{name: "bool true", value: true, want: "true"},
		{name: "bool false is zero value", value: false, want: ""},
		{name: "nil default", value: nil, want: ""},
		{name: "nil custom", value: nil, emptyVal: "-", want: "-"},
		{name: "slice", value: []string{"a", "b"}, want: `["a","b"]`},
		{name: "empty string custom", value: "", emptyVal: "-", want: "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetColors(t *testing.T) {
	header, even, odd := getColors("colors")
	assert.NotEmpty(t, header)
	assert.NotEmpty(t, even)
	assert.NotEmpty(t, odd)
}

func BenchmarkFilterRows(b *testing.B) {
	rows := NewRows(testIDs, "")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		FilterRows(rows, "chicago,@note")
	}
}
