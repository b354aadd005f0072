// Package parser converts command strings into Intent structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strconv"
	"strings"

	"github.com/nathoo/runemaze/types"
)

// Bare words that mean "move <direction>".
var moveShortcuts = map[string]string{
	"w":         "forward",
	"f":         "forward",
	"fwd":       "forward",
	"forward":   "forward",
	"forwards":  "forward",
	"ahead":     "forward",
	"s":         "back",
	"b":         "back",
	"back":      "back",
	"backward":  "back",
	"backwards": "back",
	"a":         "left",
	"left":      "left",
	"d":         "right",
	"right":     "right",
}

var turnShortcuts = map[string]string{
	"q":  "left",
	"tl": "left",
	"tr": "right",
	"u":  "around",
}

var verbAliases = map[string]string{
	// Movement
	"go":     "move",
	"walk":   "move",
	"run":    "move",
	"step":   "move",
	"strafe": "move",

	// Turning
	"rotate": "turn",
	"spin":   "turn",
	"face":   "turn",

	// Look
	"l":    "look",
	"tilt": "look",

	// Interact
	"e":        "interact",
	"take":     "interact",
	"get":      "interact",
	"grab":     "interact",
	"open":     "interact",
	"activate": "interact",
	"press":    "interact",
	"pull":     "interact",
	"collect":  "interact",
	"touch":    "interact",
	"break":    "interact",

	// Rune use
	"r":      "use",
	"cast":   "use",
	"invoke": "use",

	// Miscellaneous
	"z":         "wait",
	"sleep":     "wait",
	"rest":      "wait",
	"i":         "status",
	"inv":       "status",
	"inventory": "status",
	"hud":       "status",
	"m":         "map",
}

var fillers = map[string]bool{
	"the": true, "a": true, "an": true, "at": true, "to": true,
	"rune": true, "seconds": true, "second": true, "sec": true,
	"degrees": true, "deg": true, "steps": true, "tiles": true,
}

// Parse converts a raw command string into an Intent.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := strings.Fields(strings.ToLower(input))

	// Direction shortcut: bare "w", "left", etc. → move <direction> [n]
	if dir, ok := moveShortcuts[words[0]]; ok {
		return withAmount(types.Intent{Verb: "move", Object: dir}, words[1:])
	}
	if dir, ok := turnShortcuts[words[0]]; ok && len(words) == 1 {
		return types.Intent{Verb: "turn", Object: dir}
	}

	// Handle multi-word verb phrases before general parsing.
	words = expandMultiWordVerbs(words)

	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]
	rest := stripFillers(words[1:])

	switch verb {
	case "move":
		if len(rest) == 0 {
			return types.Intent{Verb: "move", Object: "forward"}
		}
		dir := rest[0]
		if d, ok := moveShortcuts[dir]; ok {
			dir = d
		}
		return withAmount(types.Intent{Verb: "move", Object: dir}, rest[1:])
	case "turn", "look", "wait":
		in := types.Intent{Verb: verb}
		if len(rest) > 0 {
			if _, err := strconv.ParseFloat(rest[0], 64); err != nil {
				in.Object = rest[0]
				rest = rest[1:]
			}
		}
		return withAmount(in, rest)
	}

	return types.Intent{Verb: verb, Object: strings.Join(rest, " ")}
}

// expandMultiWordVerbs handles "pick up", "turn around", "use rune" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "pick":
		if words[1] == "up" {
			return append([]string{"interact"}, words[2:]...)
		}
	case "look":
		if words[1] == "around" {
			return []string{"look"}
		}
	case "turn":
		if words[1] == "around" {
			return []string{"turn", "around"}
		}
	case "move", "go", "walk", "step":
		if words[1] == "back" || words[1] == "backward" || words[1] == "backwards" {
			return append([]string{"move", "back"}, words[2:]...)
		}
	}

	return words
}

// stripFillers removes articles and unit words.
func stripFillers(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !fillers[w] {
			result = append(result, w)
		}
	}
	return result
}

// withAmount reads an optional leading number from rest.
func withAmount(in types.Intent, rest []string) types.Intent {
	rest = stripFillers(rest)
	if len(rest) > 0 {
		if n, err := strconv.ParseFloat(rest[0], 64); err == nil && n > 0 {
			in.Amount = n
		}
	}
	return in
}
