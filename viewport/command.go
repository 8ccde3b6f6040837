package viewport

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	Reset Kind = iota
	ZoomIn
	ZoomOut
	IncreaseBudget
	DecreaseBudget
)

// Kind is one of the transitions the controller understands.
type Kind int

var kindNames = []string{
	"reset", "zoom-in", "zoom-out", "increase-budget", "decrease-budget",
}

func (k Kind) String() string {
	if k < Reset || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return Reset, fmt.Errorf("unknown command %q", name)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Command is a discrete request from the input layer. Column and Row are only
// read by ZoomIn and name the pixel the new view is centered on.
type Command struct {
	Kind   Kind `json:"command"`
	Column int  `json:"column,omitempty"`
	Row    int  `json:"row,omitempty"`
}

func (c Command) String() string {
	if c.Kind == ZoomIn {
		return fmt.Sprintf("%s:%d,%d", c.Kind, c.Column, c.Row)
	}
	return c.Kind.String()
}

// ParseCommand reads the command line form of a command: the name of the kind,
// followed by ":column,row" for zoom-in.
func ParseCommand(s string) (Command, error) {
	name, pixel, hasPixel := strings.Cut(s, ":")
	kind, err := ParseKind(name)
	if err != nil {
		return Command{}, err
	}

	command := Command{Kind: kind}
	if kind != ZoomIn {
		if hasPixel {
			return Command{}, fmt.Errorf("command %s takes no pixel", kind)
		}
		return command, nil
	}

	if !hasPixel {
		return Command{}, fmt.Errorf("command %s needs a pixel, as in %s:400,300", kind, kind)
	}
	column, row, found := strings.Cut(pixel, ",")
	if !found {
		return Command{}, fmt.Errorf("error parsing pixel %q", pixel)
	}
	if command.Column, err = strconv.Atoi(strings.TrimSpace(column)); err != nil {
		return Command{}, fmt.Errorf("error parsing column %q: %w", column, err)
	}
	if command.Row, err = strconv.Atoi(strings.TrimSpace(row)); err != nil {
		return Command{}, fmt.Errorf("error parsing row %q: %w", row, err)
	}
	return command, nil
}
