package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BrugadaSyndrome/bslogger"

	"mandelbrot/mandelbrot"
	"mandelbrot/misc"
	"mandelbrot/viewport"
)

type settings struct {
	given  map[string]bool
	logger bslogger.Logger

	MandelbrotSettings mandelbrot.Settings
	ViewportSettings   viewport.Settings
}

// NewSettings reads settingsFile when one is given. Missing values are filled in
// by Verify once the command line has been applied.
func NewSettings(settingsFile string) (settings, error) {
	s := settings{
		given:  make(map[string]bool),
		logger: bslogger.NewLogger("Settings", bslogger.Normal, nil),
	}
	if settingsFile == "" {
		return s, nil
	}

	fileBytes, err := misc.ReadFile(settingsFile)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(fileBytes, &s); err != nil {
		return s, fmt.Errorf("unable to parse %s: %w", settingsFile, err)
	}
	s.given = givenFields(fileBytes)
	return s, nil
}

// givenFields lists the "section.field" names, lower cased, that a settings
// file sets explicitly. A zero in the file is then told apart from a field that
// was left out.
func givenFields(fileBytes []byte) map[string]bool {
	given := make(map[string]bool)

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(fileBytes, &sections); err != nil {
		return given
	}
	for section, raw := range sections {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			continue
		}
		for field := range fields {
			given[strings.ToLower(section+"."+field)] = true
		}
	}
	return given
}

func (s *settings) String() string {
	output := "\nSettings\n"
	output += s.MandelbrotSettings.String()
	output += s.ViewportSettings.String()
	return output
}

// apply overrides the file with the flags given on the command line.
func (s *settings) apply(args arguments) error {
	if args.visited["mode"] {
		mode, err := mandelbrot.ParseColorMode(args.colorMode)
		if err != nil {
			return err
		}
		s.MandelbrotSettings.ColorMode = mode
	} else if args.mode() == batchMode && !s.given["mandelbrotsettings.colormode"] {
		s.MandelbrotSettings.ColorMode = mandelbrot.Grayscale
	}
	if args.visited["partition"] {
		partition, err := mandelbrot.ParsePartition(args.partition)
		if err != nil {
			return err
		}
		s.MandelbrotSettings.Partition = partition
	}
	if args.visited["rows"] {
		s.MandelbrotSettings.RowsPerBand = args.rowsPerBand
	}
	if args.visited["workers"] {
		s.MandelbrotSettings.Workers = args.workers
	}
	if args.visited["iterations"] {
		if args.iterations == 0 {
			return fmt.Errorf("-iterations 0: %w", mandelbrot.ErrInvalidBudget)
		}
		s.ViewportSettings.Budget = args.iterations
	} else if s.given["viewportsettings.budget"] && s.ViewportSettings.Budget == 0 {
		return fmt.Errorf("settings file budget 0: %w", mandelbrot.ErrInvalidBudget)
	}
	return nil
}

func (s *settings) Verify() error {
	if err := s.MandelbrotSettings.Verify(); err != nil {
		return err
	}
	if err := s.ViewportSettings.Verify(); err != nil {
		return err
	}
	s.logger.Debug(s.String())
	return nil
}
