package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/runemaze/engine"
	"github.com/nathoo/runemaze/types"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarration = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleGood = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	styleWarning = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	styleMapFrame = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	styleDark = lipgloss.NewStyle().
			Background(lipgloss.Color("16")).
			Foreground(lipgloss.Color("238"))

	styleEndWon = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("220")).
			Foreground(lipgloss.Color("220")).
			Bold(true).
			Padding(1, 4)

	styleEndLost = styleEndWon.
			BorderForeground(lipgloss.Color("196")).
			Foreground(lipgloss.Color("196"))
)

// Map glyph colors.
var glyphStyles = map[byte]lipgloss.Style{
	engine.GlyphWall:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	engine.GlyphFloor:     lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
	engine.GlyphTreasure:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	engine.GlyphRune:      lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Bold(true),
	engine.GlyphMechanism: lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true),
	engine.GlyphTrapRune:  lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Bold(true),
	engine.GlyphObstacle:  lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	engine.GlyphBreakable: lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
	engine.GlyphPassage:   lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
	engine.GlyphLowWall:   lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
	engine.GlyphQuicksand: lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
	engine.GlyphDoorLocked: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	engine.GlyphDoorShut:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	engine.GlyphDoorOpen:   lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
}

var stylePlayer = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarration lineKind = iota
	kindGood
	kindWarning
	kindSystem
	kindError
	kindTrace
	kindInput
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "> "):
		return kindInput
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "Treasure found"),
		strings.HasPrefix(line, "Picked up"),
		strings.HasPrefix(line, "All treasures"),
		strings.HasPrefix(line, "*** "):
		return kindGood
	case strings.HasPrefix(line, "You still need"),
		strings.HasPrefix(line, "You already"),
		strings.HasPrefix(line, "No rune"),
		strings.HasPrefix(line, "That's too far"),
		strings.HasPrefix(line, "Something blocks"),
		strings.HasPrefix(line, "I don't understand"),
		strings.Contains(line, "is locked"):
		return kindError
	case strings.HasSuffix(line, "!"):
		return kindWarning
	default:
		return kindNarration
	}
}

func renderLineKind(line string) string {
	switch classifyLine(line) {
	case kindInput:
		return stylePlayerInput.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindGood:
		return styleGood.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindWarning:
		return styleWarning.Render(line)
	default:
		return styleNarration.Render(line)
	}
}

// colorMap renders the ASCII map rows with per-glyph colors. Rune glyphs
// take their kind's colour from tints, keyed by tile.
func colorMap(rows []string, tints map[types.Tile]string) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j := 0; j < len(row); j++ {
			ch := row[j]
			s, ok := glyphStyles[ch]
			tint, tinted := tints[types.Tile{X: j, Z: i}]
			switch {
			case isPlayerGlyph(ch):
				b.WriteString(stylePlayer.Render(string(ch)))
			case tinted && isRuneGlyph(ch):
				b.WriteString(runeStyle(tint).Render(string(ch)))
			case ok:
				b.WriteString(s.Render(string(ch)))
			default:
				b.WriteString(styleNarration.Render(string(ch)))
			}
		}
	}
	return b.String()
}

func isPlayerGlyph(ch byte) bool {
	return ch == '^' || ch == 'v' || ch == '<' || ch == '>'
}

func isRuneGlyph(ch byte) bool {
	return ch == engine.GlyphRune || ch == engine.GlyphTrapRune
}

func runeStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(true)
}

// darkMap is shown in place of the map while sight is gone.
func darkMap(width, height int) string {
	if width < 1 {
		width = 1
	}
	row := strings.Repeat(" ", width)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = row
	}
	return styleDark.Render(strings.Join(rows, "\n"))
}
