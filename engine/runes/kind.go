package runes

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when a rune key names no known kind.
var ErrUnknownKind = errors.New("unknown rune kind")

// Kind is the closed set of rune identities, real and trap.
type Kind int

const (
	None Kind = iota

	Flight
	Blink
	Strength
	Speed
	Vision

	Confusion
	PathBlock
	Silence
	Gravity
	Void
	Collapse
)

// Info is how a rune kind presents itself.
type Info struct {
	Key         string
	Label       string
	Icon        string
	Color       string // hex; tints the rune on the map
	Description string
	Clue        string // hint shown when a disguised trap is revealed
	Trap        bool
}

var catalog = map[Kind]Info{
	Flight: {
		Key: "rune_flight", Label: "Rune of Flight", Icon: "🕊", Color: "#8a2be2",
		Description: "Float above obstacles. Great for crossing pits.",
	},
	Blink: {
		Key: "rune_blink", Label: "Rune of Blink", Icon: "⚡", Color: "#00bcd4",
		Description: "Teleport a short distance forward.",
	},
	Strength: {
		Key: "rune_strength", Label: "Rune of Strength", Icon: "🔨", Color: "#e57373",
		Description: "Break weak or marked walls to reveal secret paths.",
	},
	Speed: {
		Key: "rune_speed", Label: "Rune of Speed", Icon: "🏃", Color: "#fbc02d",
		Description: "Sprint for 4 seconds. Use to escape traps or explore faster.",
	},
	Vision: {
		Key: "rune_vision", Label: "Rune of Vision", Icon: "🔍", Color: "#4caf50",
		Description: "Reveal hidden walls and false runes briefly.",
	},
	Confusion: {
		Key: "rune_confusion", Label: "Confusion Rune", Icon: "🔄", Color: "#ff7043",
		Description: "Inverts controls. You feel disoriented.",
		Clue:        "Flickers unnaturally.", Trap: true,
	},
	PathBlock: {
		Key: "rune_pathblock", Label: "Pathblock Rune", Icon: "🧱", Color: "#795548",
		Description: "Seals the corridors around you.",
		Clue:        "Dust gathers around it.", Trap: true,
	},
	Silence: {
		Key: "rune_silence", Label: "Silence Rune", Icon: "🔇", Color: "#90a4ae",
		Description: "Disables the HUD for a few seconds.",
		Clue:        "It glitches slightly.", Trap: true,
	},
	Gravity: {
		Key: "rune_gravity", Label: "Gravity Rune", Icon: "🪨", Color: "#5c6bc0",
		Description: "Pins you to the ground.",
		Clue:        "It sits heavier than it should.", Trap: true,
	},
	Void: {
		Key: "rune_void", Label: "Void Rune", Icon: "🌑", Color: "#212121",
		Description: "Swallows all light.",
		Clue:        "Light bends around it.", Trap: true,
	},
	Collapse: {
		Key: "rune_collapse", Label: "Collapse Rune", Icon: "💥", Color: "#a1887f",
		Description: "Triggers falling debris in front of you.",
		Clue:        "The air feels unstable nearby.", Trap: true,
	},
}

// Info returns the catalogue entry for k.
func (k Kind) Info() Info { return catalog[k] }

// Label is the display name.
func (k Kind) Label() string { return catalog[k].Label }

// IsTrap reports whether k is a trap.
func (k Kind) IsTrap() bool { return catalog[k].Trap }

func (k Kind) String() string {
	if k == None {
		return "none"
	}
	if info, ok := catalog[k]; ok {
		return info.Key
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Real returns the real rune kinds in declaration order.
func Real() []Kind {
	return []Kind{Flight, Blink, Strength, Speed, Vision}
}

// Traps returns the trap kinds in declaration order.
func Traps() []Kind {
	return []Kind{Confusion, PathBlock, Silence, Gravity, Void, Collapse}
}

// ParseKind resolves a rune key. "rune_speed", "speed" and, for traps,
// "fake_confusion" are all accepted.
func ParseKind(key string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(key))
	name = strings.TrimPrefix(name, "rune_")
	name = strings.TrimPrefix(name, "fake_")
	for k, info := range catalog {
		if strings.TrimPrefix(info.Key, "rune_") == name {
			return k, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownKind, key)
}
