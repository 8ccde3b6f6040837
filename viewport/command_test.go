package viewport

import (
	"encoding/json"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"reset", Command{Kind: Reset}},
		{"zoom-out", Command{Kind: ZoomOut}},
		{"Increase-Budget", Command{Kind: IncreaseBudget}},
		{"decrease-budget", Command{Kind: DecreaseBudget}},
		{"zoom-in:400,300", Command{Kind: ZoomIn, Column: 400, Row: 300}},
		{"zoom-in: 12 , -7", Command{Kind: ZoomIn, Column: 12, Row: -7}},
	}

	for _, tt := range tests {
		got, err := ParseCommand(tt.input)
		if err != nil {
			t.Errorf("ParseCommand(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCommand(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestParseCommandErrors(t *testing.T) {
	inputs := []string{
		"",
		"pan",
		"reset:1,2",
		"zoom-in",
		"zoom-in:400",
		"zoom-in:a,3",
		"zoom-in:3,b",
	}
	for _, input := range inputs {
		if got, err := ParseCommand(input); err == nil {
			t.Errorf("ParseCommand(%q) = %+v, want an error", input, got)
		}
	}
}

func TestCommandString(t *testing.T) {
	for _, input := range []string{"reset", "zoom-out", "zoom-in:5,6", "increase-budget"} {
		command, err := ParseCommand(input)
		if err != nil {
			t.Fatalf("ParseCommand(%q): %v", input, err)
		}
		if command.String() != input {
			t.Errorf("String() = %q, want %q", command.String(), input)
		}
	}
}

func TestCommandJSON(t *testing.T) {
	var command Command
	if err := json.Unmarshal([]byte(`{"command":"zoom-in","column":3,"row":4}`), &command); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if want := (Command{Kind: ZoomIn, Column: 3, Row: 4}); command != want {
		t.Errorf("Unmarshal = %+v, want %+v", command, want)
	}

	encoded, err := json.Marshal(Command{Kind: DecreaseBudget})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(encoded) != `{"command":"decrease-budget"}` {
		t.Errorf("Marshal = %s", encoded)
	}

	if err := json.Unmarshal([]byte(`{"command":"spin"}`), &command); err == nil {
		t.Error("unknown command decoded without an error")
	}
}
