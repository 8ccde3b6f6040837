package viewport

import (
	"fmt"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"

	"mandelbrot/mandelbrot"
)

// Renderer produces a pixel buffer for a view. *mandelbrot.Mandelbrot is the
// production implementation.
type Renderer interface {
	Render(bounds mandelbrot.Bounds, view mandelbrot.ViewRectangle, budget uint) ([]byte, error)
}

// State is everything a render depends on besides the pixel bounds. A State is a
// value: every command produces a new one.
type State struct {
	Budget uint
	View   mandelbrot.ViewRectangle
}

func (s State) String() string {
	return fmt.Sprintf("{State Budget: %d View: %s}", s.Budget, s.View)
}

// Frame is a finished render together with the state it was rendered from.
// Pixels belongs to whoever received the frame.
type Frame struct {
	Bounds mandelbrot.Bounds
	Pixels []byte
	State  State
}

// Controller owns the current view and iteration budget of one session and
// re-renders whenever a command changes them. Commands are handled one at a
// time; a command sent while a render is running waits for it to finish.
type Controller struct {
	bounds   mandelbrot.Bounds
	logger   bslogger.Logger
	mutex    sync.Mutex
	renderer Renderer
	settings Settings
	state    State
}

func NewController(renderer Renderer, bounds mandelbrot.Bounds, settings Settings) (*Controller, error) {
	if err := bounds.Verify(); err != nil {
		return nil, err
	}
	if err := settings.Verify(); err != nil {
		return nil, err
	}

	return &Controller{
		bounds:   bounds,
		logger:   bslogger.NewLogger("Viewport", bslogger.Normal, nil),
		renderer: renderer,
		settings: settings,
		state: State{
			Budget: settings.Budget,
			View:   settings.HomeView,
		},
	}, nil
}

func (c *Controller) Bounds() mandelbrot.Bounds {
	return c.bounds
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.state
}

// Render renders the current state without changing it.
func (c *Controller) Render() (Frame, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.render(c.state)
}

// Apply moves to the state cmd leads to and renders it. When the transition or
// the render fails the controller stays in its previous state.
func (c *Controller) Apply(cmd Command) (Frame, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	next, err := c.transition(c.state, cmd)
	if err != nil {
		return Frame{}, fmt.Errorf("%s: %w", cmd, err)
	}

	frame, err := c.render(next)
	if err != nil {
		return Frame{}, fmt.Errorf("%s: %w", cmd, err)
	}

	c.logger.Debug(fmt.Sprintf("Applied %s: %s -> %s", cmd, c.state, next))
	c.state = next
	return frame, nil
}

func (c *Controller) render(state State) (Frame, error) {
	startTime := time.Now()
	pixels, err := c.renderer.Render(c.bounds, state.View, state.Budget)
	if err != nil {
		return Frame{}, err
	}
	c.logger.Debug(fmt.Sprintf("Rendered %s in %s", state, time.Since(startTime)))

	return Frame{
		Bounds: c.bounds,
		Pixels: pixels,
		State:  state,
	}, nil
}

// transition computes the state cmd leads to from state. It never modifies
// state.
func (c *Controller) transition(state State, cmd Command) (State, error) {
	next := state

	switch cmd.Kind {
	case Reset:
		next.View = c.settings.HomeView

	case ZoomIn:
		h := c.settings.ZoomHalfExtent
		next.View = mandelbrot.ViewRectangle{
			UpperLeft:  mandelbrot.PixelToPoint(c.bounds, cmd.Column-h, cmd.Row-h, state.View),
			LowerRight: mandelbrot.PixelToPoint(c.bounds, cmd.Column+h, cmd.Row+h, state.View),
		}

	case ZoomOut:
		diagonal := state.View.UpperLeft - state.View.LowerRight
		next.View = mandelbrot.ViewRectangle{
			UpperLeft:  state.View.UpperLeft + diagonal,
			LowerRight: state.View.LowerRight - diagonal,
		}

	case IncreaseBudget:
		next.Budget = min(state.Budget*2, c.settings.MaxBudget)

	case DecreaseBudget:
		next.Budget = max(1, state.Budget/2)

	default:
		return state, fmt.Errorf("unknown command kind %d", cmd.Kind)
	}

	if err := next.View.Verify(); err != nil {
		return state, err
	}
	return next, nil
}
