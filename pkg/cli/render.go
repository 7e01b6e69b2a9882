package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/perceptlab/stimkit/pkg/stim"
)

// Theme defines the color scheme for rendered tables.
type Theme struct {
	Primary lipgloss.Color // header and accent color
	Dim     lipgloss.Color // secondary text color
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Header lipgloss.Style
	Cell   lipgloss.Style
	Trail  lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Cell:   lipgloss.NewStyle(),
		Trail:  lipgloss.NewStyle().Foreground(t.Dim),
	}
}

// RenderTable renders a flattened provenance table with a styled header
// row and one line per transformation, columns padded to their widest
// cell.
func RenderTable(t *stim.Table, styles Styles) string {
	cells := make([][]string, 0, len(t.Rows)+1)
	cells = append(cells, t.Columns)
	for _, row := range t.Rows {
		line := make([]string, len(row))
		for i, v := range row {
			line[i] = cellString(v)
		}
		cells = append(cells, line)
	}

	widths := make([]int, len(t.Columns))
	for _, line := range cells {
		for i, c := range line {
			if len(c) > widths[i] {
				widths[i] = len(c)
			}
		}
	}

	var sb strings.Builder
	for r, line := range cells {
		padded := make([]string, len(line))
		for i, c := range line {
			padded[i] = c + strings.Repeat(" ", widths[i]-len(c))
		}
		row := strings.TrimRight(strings.Join(padded, "  "), " ")
		if r == 0 {
			sb.WriteString(styles.Header.Render(row))
		} else {
			sb.WriteString(styles.Cell.Render(row))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderTrail renders the readable lineage string of an entry.
func RenderTrail(e *stim.Entry, styles Styles) string {
	return styles.Trail.Render(e.String())
}

// cellString formats one table value. Parameter maps are rendered as
// key=value pairs in key order so output is stable.
func cellString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		if len(t) == 0 {
			return ""
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, t[k]))
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprintf("%v", v)
	}
}
