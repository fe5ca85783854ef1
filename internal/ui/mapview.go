// Package ui provides the terminal map view using Bubble Tea.
package ui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-astrocarto/internal/acg"
	"github.com/litescript/ls-astrocarto/internal/engine"
)

// Angle glyphs and colors for the map canvas.
const (
	glyphMC     = '▲'
	glyphIC     = '▽'
	glyphAC     = '◆'
	glyphDC     = '◇'
	glyphAspect = '·'
	glyphParan  = '─'

	colorMC     = "229"     // gold
	colorIC     = "60"      // muted purple
	colorAC     = "#d0c8ff" // soft lavender
	colorDC     = "135"     // violet
	colorAspect = "244"     // gray
	colorParan  = "46"      // green
	colorDim    = "240"
)

// MapModel renders computed lines and parans on an equirectangular world
// grid. Tab cycles the focused body; only its lines render in full color,
// the rest are dimmed.
type MapModel struct {
	width  int
	height int
	ready  bool

	result *engine.Result

	// Focus cycles through the distinct body ids present in the result.
	bodies   []string
	focusIdx int
}

// NewMapModel creates a map view over a computed result.
func NewMapModel(res *engine.Result) MapModel {
	seen := map[string]bool{}
	var bodies []string
	for _, f := range res.Features {
		if !seen[f.BodyID] {
			seen[f.BodyID] = true
			bodies = append(bodies, f.BodyID)
		}
	}
	sort.Strings(bodies)

	return MapModel{result: res, bodies: bodies}
}

// Init implements tea.Model.
func (m MapModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MapModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			if len(m.bodies) > 0 {
				m.focusIdx = (m.focusIdx + 1) % len(m.bodies)
			}
		case "shift+tab":
			if len(m.bodies) > 0 {
				m.focusIdx--
				if m.focusIdx < 0 {
					m.focusIdx = len(m.bodies) - 1
				}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
	}

	return m, nil
}

// View implements tea.Model.
func (m MapModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.width < 40 || m.height < 12 {
		return "Map view requires a larger terminal"
	}

	// Header and footer take two lines each.
	canvasH := m.height - 4
	canvas := m.renderCanvas(m.width, canvasH)

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(canvas)
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m MapModel) focusedBody() string {
	if len(m.bodies) == 0 {
		return ""
	}
	return m.bodies[m.focusIdx]
}

func (m MapModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorAC))

	title := titleStyle.Render("Astro Map")
	epoch := dimStyle.Render(m.result.Epoch)

	focus := dimStyle.Render("no bodies")
	if b := m.focusedBody(); b != "" {
		focus = accentStyle.Render("focus: " + b)
	}

	return fmt.Sprintf("%s | %s | %s", title, epoch, focus)
}

func (m MapModel) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	legend := fmt.Sprintf("%c MC  %c IC  %c AC  %c DC  %c aspect  %c paran",
		glyphMC, glyphIC, glyphAC, glyphDC, glyphAspect, glyphParan)
	help := "tab: cycle body | q: quit"

	line := dimStyle.Render(legend + "  |  " + help)
	if n := len(m.result.Skipped); n > 0 {
		warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
		line += "\n" + warnStyle.Render(fmt.Sprintf("partial result: %d items skipped", n))
	}
	return line
}

func (m MapModel) renderCanvas(width, height int) string {
	canvas := make([][]rune, height)
	colors := make([][]lipgloss.Color, height)
	for y := 0; y < height; y++ {
		canvas[y] = make([]rune, width)
		colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			canvas[y][x] = ' '
			colors[y][x] = "236"
		}
	}

	// Equator and prime meridian as faint grid reference.
	eqY := project(0, 90, height)
	for x := 0; x < width; x++ {
		canvas[eqY][x] = '·'
		colors[eqY][x] = colorDim
	}
	pmX := project(0, 180, width)
	for y := 0; y < height; y++ {
		if canvas[y][pmX] == ' ' {
			canvas[y][pmX] = '·'
			colors[y][pmX] = colorDim
		}
	}

	focused := m.focusedBody()

	// Unfocused lines first so the focused body paints over them.
	for _, f := range m.result.Features {
		if f.BodyID != focused {
			m.drawFeature(canvas, colors, width, height, f, false)
		}
	}
	for _, p := range m.result.Parans {
		m.drawParan(canvas, colors, width, height, p)
	}
	for _, f := range m.result.Features {
		if f.BodyID == focused {
			m.drawFeature(canvas, colors, width, height, f, true)
		}
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			style := lipgloss.NewStyle().Foreground(colors[y][x])
			b.WriteString(style.Render(string(canvas[y][x])))
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m MapModel) drawFeature(canvas [][]rune, colors [][]lipgloss.Color, width, height int, f acg.LineFeature, focused bool) {
	glyph, color := angleGlyph(f.Angle)
	if !focused {
		color = colorDim
	}

	for _, p := range f.Coordinates {
		x := project(p.Lon, 180, width)
		y := project(-p.Lat, 90, height)
		if x < 0 || x >= width || y < 0 || y >= height {
			continue
		}
		canvas[y][x] = glyph
		colors[y][x] = lipgloss.Color(color)
	}
}

func (m MapModel) drawParan(canvas [][]rune, colors [][]lipgloss.Color, width, height int, p acg.ParanResult) {
	y := project(-p.LatitudeDeg, 90, height)
	if y < 0 || y >= height {
		return
	}
	for x := 0; x < width; x++ {
		if canvas[y][x] == ' ' || canvas[y][x] == '·' {
			canvas[y][x] = glyphParan
			colors[y][x] = colorParan
		}
	}
}

func angleGlyph(angle acg.AngleType) (rune, string) {
	switch angle {
	case acg.AngleMC:
		return glyphMC, colorMC
	case acg.AngleIC:
		return glyphIC, colorIC
	case acg.AngleAC:
		return glyphAC, colorAC
	case acg.AngleDC:
		return glyphDC, colorDC
	default:
		return glyphAspect, colorAspect
	}
}

// project maps a value in [-half, half] onto a pixel index in [0, size).
func project(v, half float64, size int) int {
	x := int((v + half) / (2 * half) * float64(size-1))
	if x < 0 {
		x = 0
	}
	if x >= size {
		x = size - 1
	}
	return x
}
