package viewport

import (
	"fmt"

	"github.com/BrugadaSyndrome/bslogger"

	"mandelbrot/mandelbrot"
)

var DefaultView = mandelbrot.ViewRectangle{
	UpperLeft:  complex(-3, 2),
	LowerRight: complex(1, -2),
}

type Settings struct {
	logger bslogger.Logger

	Budget         uint
	HomeView       mandelbrot.ViewRectangle
	MaxBudget      uint
	ZoomHalfExtent int
}

func (s *Settings) String() string {
	output := "\nViewport settings\n"
	output += fmt.Sprintf("Budget: %d\n", s.Budget)
	output += fmt.Sprintf("Home View: %s\n", s.HomeView)
	output += fmt.Sprintf("Max Budget: %d\n", s.MaxBudget)
	output += fmt.Sprintf("Zoom Half Extent: %d\n", s.ZoomHalfExtent)
	return output
}

func (s *Settings) Verify() error {
	s.logger = bslogger.NewLogger("ViewportSettings", bslogger.Normal, nil)

	if s.MaxBudget == 0 || s.MaxBudget > mandelbrot.MaxIterationBudget {
		s.MaxBudget = mandelbrot.MaxIterationBudget
	}
	if s.Budget == 0 {
		s.Budget = 256
	}
	if s.Budget > s.MaxBudget {
		s.logger.Info(fmt.Sprintf("Budget %d is above the maximum, using %d", s.Budget, s.MaxBudget))
		s.Budget = s.MaxBudget
	}
	if s.HomeView == (mandelbrot.ViewRectangle{}) {
		s.HomeView = DefaultView
	}
	if s.ZoomHalfExtent <= 0 {
		s.ZoomHalfExtent = 100
	}

	s.logger.Debug(s.String())
	return s.HomeView.Verify()
}
