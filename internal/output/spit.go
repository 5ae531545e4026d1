// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v2"

	"github.com/staranto/citectl/internal/config"
)

// Row is one style in a listing.
type Row struct {
	ID     string `json:"id" yaml:"id"`
	Active bool   `json:"active,omitempty" yaml:"active,omitempty"`
}

// Options mirrors the output flags of the styles command.
type Options struct {
	Format string
	Filter string
	Titles bool
	Color  bool
}

// NewRows builds rows for ids, marking active.
func NewRows(ids []string, active string) []Row {
	rows := make([]Row, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, Row{ID: id, Active: active != "" && id == active})
	}
	return rows
}

// Styles filters ids and renders them to w in the requested format. ids are
// expected to be sorted already.
func Styles(w io.Writer, ids []string, active string, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	rows := FilterRows(NewRows(ids, active), opts.Filter)
	log.Debugf("%s of %s styles after filtering",
		humanize.Comma(int64(len(rows))), humanize.Comma(int64(len(ids))))

	switch opts.Format {
	case "raw":
		for _, r := range rows {
			fmt.Fprintln(w, r.ID)
		}
	case "json":
		jsonOutput, err := json.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to marshal styles: %w", err)
		}
		fmt.Fprintln(w, string(jsonOutput))
	case "yaml":
		yamlOutput, err := yaml.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to marshal styles: %w", err)
		}
		_, _ = w.Write(yamlOutput)
	default:
		TableWriter(w, rows, active != "", opts)
	}
	return nil
}

// TableWriter renders rows in tabular form honoring color, titles and
// padding options. The active column is only shown when withActive is set.
func TableWriter(w io.Writer, rows []Row, withActive bool, opts Options) {
	if len(rows) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	pad, _ := config.GetInt("padding", 0)
	log.Debugf("padding: %v", pad)

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := []string{r.ID}
		if withActive {
			marker := ""
			if r.Active {
				marker = "*"
			}
			row = append(row, InterfaceToString(marker, "-"))
		}
		cells = append(cells, row)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(cells...)

	if opts.Titles {
		headers := []string{"style"}
		if withActive {
			headers = append(headers, "active")
		}
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}
