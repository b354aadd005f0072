package parser

import (
	"testing"

	"github.com/nathoo/runemaze/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Intent
	}{
		// Empty / whitespace
		{
			name:  "empty string",
			input: "",
			want:  types.Intent{},
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  types.Intent{},
		},

		// Movement shortcuts
		{
			name:  "w → move forward",
			input: "w",
			want:  types.Intent{Verb: "move", Object: "forward"},
		},
		{
			name:  "forward with distance",
			input: "forward 3",
			want:  types.Intent{Verb: "move", Object: "forward", Amount: 3},
		},
		{
			name:  "back with units",
			input: "back 2 steps",
			want:  types.Intent{Verb: "move", Object: "back", Amount: 2},
		},
		{
			name:  "d → strafe right",
			input: "d",
			want:  types.Intent{Verb: "move", Object: "right"},
		},
		{
			name:  "left strafes",
			input: "left 0.5",
			want:  types.Intent{Verb: "move", Object: "left", Amount: 0.5},
		},

		// Movement verbs
		{
			name:  "go forward",
			input: "go forward 4",
			want:  types.Intent{Verb: "move", Object: "forward", Amount: 4},
		},
		{
			name:  "walk backwards",
			input: "walk backwards",
			want:  types.Intent{Verb: "move", Object: "back"},
		},
		{
			name:  "bare move defaults forward",
			input: "move",
			want:  types.Intent{Verb: "move", Object: "forward"},
		},
		{
			name:  "move with shortcut direction",
			input: "move s",
			want:  types.Intent{Verb: "move", Object: "back"},
		},

		// Turning
		{
			name:  "turn left",
			input: "turn left",
			want:  types.Intent{Verb: "turn", Object: "left"},
		},
		{
			name:  "turn right by degrees",
			input: "turn right 45 degrees",
			want:  types.Intent{Verb: "turn", Object: "right", Amount: 45},
		},
		{
			name:  "turn around",
			input: "turn around",
			want:  types.Intent{Verb: "turn", Object: "around"},
		},
		{
			name:  "q → turn left",
			input: "q",
			want:  types.Intent{Verb: "turn", Object: "left"},
		},

		// Look
		{
			name:  "look",
			input: "look",
			want:  types.Intent{Verb: "look"},
		},
		{
			name:  "l → look",
			input: "l",
			want:  types.Intent{Verb: "look"},
		},
		{
			name:  "look down",
			input: "look down",
			want:  types.Intent{Verb: "look", Object: "down"},
		},
		{
			name:  "look up by degrees",
			input: "look up 20",
			want:  types.Intent{Verb: "look", Object: "up", Amount: 20},
		},
		{
			name:  "look around",
			input: "look around",
			want:  types.Intent{Verb: "look"},
		},

		// Interact
		{
			name:  "interact",
			input: "interact",
			want:  types.Intent{Verb: "interact"},
		},
		{
			name:  "e → interact",
			input: "e",
			want:  types.Intent{Verb: "interact"},
		},
		{
			name:  "pick up the rune",
			input: "pick up the rune",
			want:  types.Intent{Verb: "interact"},
		},
		{
			name:  "open door",
			input: "open the door",
			want:  types.Intent{Verb: "interact", Object: "door"},
		},

		// Use
		{
			name:  "use",
			input: "use",
			want:  types.Intent{Verb: "use"},
		},
		{
			name:  "use rune",
			input: "use rune",
			want:  types.Intent{Verb: "use"},
		},
		{
			name:  "r → use",
			input: "r",
			want:  types.Intent{Verb: "use"},
		},

		// Miscellaneous
		{
			name:  "wait seconds",
			input: "wait 5 seconds",
			want:  types.Intent{Verb: "wait", Amount: 5},
		},
		{
			name:  "z → wait",
			input: "z",
			want:  types.Intent{Verb: "wait"},
		},
		{
			name:  "i → status",
			input: "i",
			want:  types.Intent{Verb: "status"},
		},
		{
			name:  "m → map",
			input: "m",
			want:  types.Intent{Verb: "map"},
		},
		{
			name:  "case insensitive",
			input: "TURN LEFT",
			want:  types.Intent{Verb: "turn", Object: "left"},
		},
		{
			name:  "unknown verb passes through",
			input: "dance wildly",
			want:  types.Intent{Verb: "dance", Object: "wildly"},
		},
		{
			name:  "negative distance ignored",
			input: "forward -3",
			want:  types.Intent{Verb: "move", Object: "forward"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}
