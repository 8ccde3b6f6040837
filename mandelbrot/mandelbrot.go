package mandelbrot

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/BrugadaSyndrome/bslogger"

	"mandelbrot/misc"
	"mandelbrot/worker"
)

// MaxIterationBudget bounds the iteration budget so repeated doubling stays far
// away from overflow.
const MaxIterationBudget uint = 1 << 24

var (
	ErrInvalidBounds  = errors.New("pixel bounds must be at least 1x1")
	ErrDegenerateView = errors.New("view rectangle is degenerate")
	ErrInvalidBudget  = errors.New("iteration budget must be at least 1")
	ErrBufferTooLarge = errors.New("pixel buffer is too large")
)

// Mandelbrot renders RGBA pixel buffers of the Mandelbrot set. Render is safe to
// call from several goroutines; every call works on its own buffer.
type Mandelbrot struct {
	logger   bslogger.Logger
	pool     *worker.Pool
	settings Settings
}

func NewMandelbrot(settings Settings) *Mandelbrot {
	m := &Mandelbrot{
		logger: bslogger.NewLogger("Mandelbrot", bslogger.Normal, nil),
	}
	misc.CheckError(settings.Verify(), m.logger, misc.Fatal, "Verifying mandelbrot settings")

	m.pool = worker.NewPool(worker.Settings{Workers: settings.Workers})
	m.settings = settings
	return m
}

func (m *Mandelbrot) Settings() Settings {
	return m.settings
}

// Close stops the worker pool. Renders started afterwards still complete, on the
// calling goroutine.
func (m *Mandelbrot) Close() {
	m.pool.Close()
}

// Render allocates a fresh buffer of 4*width*height bytes and fills it in
// parallel, one job per band. The returned buffer belongs to the caller.
func (m *Mandelbrot) Render(bounds Bounds, view ViewRectangle, budget uint) ([]byte, error) {
	startTime := time.Now()

	pixels, bands, colors, err := m.prepare(bounds, view, budget)
	if err != nil {
		return nil, err
	}

	jobs := make([]func(), len(bands))
	for i, band := range bands {
		jobs[i] = func() {
			renderBand(band, bounds, view, budget, &colors)
		}
	}
	m.pool.Execute(jobs)

	m.logger.Debug(fmt.Sprintf("Rendered %s %s with budget %d in %d bands on %d workers in %s", bounds, view, budget, len(bands), m.pool.Size(), time.Since(startTime)))
	return pixels, nil
}

// RenderSequential fills the same bands as Render one after another on the
// calling goroutine. Its output is byte for byte the output of Render.
func (m *Mandelbrot) RenderSequential(bounds Bounds, view ViewRectangle, budget uint) ([]byte, error) {
	pixels, bands, colors, err := m.prepare(bounds, view, budget)
	if err != nil {
		return nil, err
	}
	for _, band := range bands {
		renderBand(band, bounds, view, budget, &colors)
	}
	return pixels, nil
}

func (m *Mandelbrot) prepare(bounds Bounds, view ViewRectangle, budget uint) ([]byte, []Band, ColorMapper, error) {
	if err := bounds.Verify(); err != nil {
		return nil, nil, ColorMapper{}, err
	}
	if err := view.Verify(); err != nil {
		return nil, nil, ColorMapper{}, err
	}
	if budget < 1 {
		return nil, nil, ColorMapper{}, ErrInvalidBudget
	}

	size, err := m.bufferSize(bounds)
	if err != nil {
		return nil, nil, ColorMapper{}, err
	}

	pixels := make([]byte, size)
	bands := SplitBands(pixels, bounds, m.settings.RowsPerBand)
	return pixels, bands, NewColorMapper(m.settings.ColorMode, budget), nil
}

func (m *Mandelbrot) bufferSize(bounds Bounds) (int, error) {
	if bounds.Width > math.MaxInt/4/bounds.Height {
		return 0, fmt.Errorf("%w: %s overflows", ErrBufferTooLarge, bounds)
	}
	size := 4 * bounds.Width * bounds.Height
	if size > m.settings.MaxBufferBytes {
		return 0, fmt.Errorf("%w: %s needs %d bytes, limit is %d", ErrBufferTooLarge, bounds, size, m.settings.MaxBufferBytes)
	}
	return size, nil
}
