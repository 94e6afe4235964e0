package diagram

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexiusacademia/gosfd/internal/beam"
	"github.com/guptarohit/asciigraph"
)

// Renderer draws the sampled diagrams against their stations
type Renderer interface {
	Render(grid beam.Grid, series beam.Series) error
}

// ASCIIRenderer draws the SFD and BMD as terminal line charts
type ASCIIRenderer struct {
	W      io.Writer
	Width  int // chart columns, 0 keeps one column per station
	Height int // chart rows
}

// NewASCIIRenderer creates a renderer with the default chart size
func NewASCIIRenderer(w io.Writer) *ASCIIRenderer {
	return &ASCIIRenderer{W: w, Width: 70, Height: 12}
}

// Render writes both charts to the renderer's writer
func (r *ASCIIRenderer) Render(grid beam.Grid, series beam.Series) error {
	if len(grid) == 0 {
		return fmt.Errorf("empty diagram")
	}
	if len(series.Shear) != len(grid) || len(series.Moment) != len(grid) {
		return fmt.Errorf("series length mismatch: grid=%d, shear=%d, moment=%d",
			len(grid), len(series.Shear), len(series.Moment))
	}

	span := grid[len(grid)-1] - grid[0]
	_, err := io.WriteString(r.W, DrawChart(series.Shear, r.Width, r.Height,
		fmt.Sprintf("Shear Force (N) along 0 ≤ x ≤ %.2f m", span)))
	if err != nil {
		return err
	}
	_, err = io.WriteString(r.W, DrawChart(series.Moment, r.Width, r.Height,
		fmt.Sprintf("Bending Moment (Nm) along 0 ≤ x ≤ %.2f m", span)))
	return err
}

// DrawChart plots one series with asciigraph
func DrawChart(values []float64, width, height int, caption string) string {
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
	}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(asciigraph.Plot(values, opts...))
	sb.WriteString("\n")
	return sb.String()
}

// DrawBeamSketch creates an ASCII sketch of the beam with the load position
func DrawBeamSketch(s beam.Input, r beam.Reactions) string {
	var sb strings.Builder

	widthChars := 50
	pos := 0
	if s.L > 0 {
		pos = int(s.A / s.L * float64(widthChars))
	}
	if pos > widthChars {
		pos = widthChars
	}

	label := fmt.Sprintf("P = %.2f N", s.P)
	labelStart := pos - len(label)/2
	if labelStart < 0 {
		labelStart = 0
	}

	sb.WriteString("\n")
	sb.WriteString("  " + strings.Repeat(" ", labelStart+1) + label + "\n")
	sb.WriteString("  " + strings.Repeat(" ", pos+1) + "│\n")
	sb.WriteString("  " + strings.Repeat(" ", pos+1) + "▼\n")
	sb.WriteString(fmt.Sprintf("  ╞%s╡\n", strings.Repeat("═", widthChars)))
	sb.WriteString(fmt.Sprintf("  △%s○\n", strings.Repeat(" ", widthChars)))
	sb.WriteString(fmt.Sprintf("  A%sB\n", strings.Repeat(" ", widthChars)))
	sb.WriteString(fmt.Sprintf("  Ra = %.2f N%sRb = %.2f N\n",
		r.Ra, strings.Repeat(" ", max(1, widthChars-24)), r.Rb))
	sb.WriteString(fmt.Sprintf("  ├%s┤\n", strings.Repeat("─", widthChars)))
	sb.WriteString(fmt.Sprintf("  L = %.2f m, a = %.2f m\n", s.L, s.A))

	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := runeLen(title)
	for _, line := range lines {
		if n := runeLen(line); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

func runeLen(s string) int {
	return len([]rune(s))
}

func pad(s string, width int) string {
	if n := runeLen(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
