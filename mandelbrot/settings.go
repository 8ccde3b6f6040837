package mandelbrot

import (
	"fmt"

	"github.com/BrugadaSyndrome/bslogger"
)

type Settings struct {
	logger bslogger.Logger

	ColorMode      ColorMode
	MaxBufferBytes int
	Partition      Partition
	RowsPerBand    int
	Workers        int
}

func (s *Settings) String() string {
	output := "\nMandelbrot settings\n"
	output += fmt.Sprintf("Color Mode: %s\n", s.ColorMode)
	output += fmt.Sprintf("Max Buffer Bytes: %d\n", s.MaxBufferBytes)
	output += fmt.Sprintf("Partition: %s\n", s.Partition)
	output += fmt.Sprintf("Rows Per Band: %d\n", s.RowsPerBand)
	output += fmt.Sprintf("Workers: %d\n", s.Workers)
	return output
}

func (s *Settings) Verify() error {
	s.logger = bslogger.NewLogger("MandelbrotSettings", bslogger.Normal, nil)

	if s.ColorMode < Gradient || s.ColorMode > Grayscale {
		s.logger.Info(fmt.Sprintf("Unknown color mode %d, using %s", s.ColorMode, Gradient))
		s.ColorMode = Gradient
	}
	if s.MaxBufferBytes <= 0 {
		s.MaxBufferBytes = 1 << 30
	}
	if s.Partition < Row || s.Partition > Chunk {
		s.logger.Info(fmt.Sprintf("Unknown partition %d, using %s", s.Partition, Row))
		s.Partition = Row
	}
	switch s.Partition {
	case Row:
		s.RowsPerBand = 1
	case Chunk:
		if s.RowsPerBand < 1 {
			s.RowsPerBand = 16
		}
	}
	// s.Workers <= 0 is resolved to GOMAXPROCS by the worker pool

	s.logger.Debug(s.String())
	return nil
}
