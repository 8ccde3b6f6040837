package mandelbrot

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

var scenarioView = ViewRectangle{UpperLeft: complex(-1, 1), LowerRight: complex(1, -1)}

func newTestMandelbrot(t *testing.T, settings Settings) *Mandelbrot {
	t.Helper()
	m := NewMandelbrot(settings)
	t.Cleanup(m.Close)
	return m
}

func pixelAt(pixels []byte, bounds Bounds, column int, row int) [4]byte {
	offset := 4 * (row*bounds.Width + column)
	return [4]byte(pixels[offset : offset+4])
}

func TestRenderScenario(t *testing.T) {
	bounds := Bounds{Width: 100, Height: 100}

	tests := []struct {
		mode   ColorMode
		inside [4]byte
	}{
		{Gradient, [4]byte{0, 0, 0, 255}},
		{Grayscale, [4]byte{255, 255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			m := newTestMandelbrot(t, Settings{ColorMode: tt.mode, Workers: 4})
			pixels, err := m.Render(bounds, scenarioView, 255)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if len(pixels) != 4*100*100 {
				t.Fatalf("buffer has %d bytes, want %d", len(pixels), 4*100*100)
			}
			if got := pixelAt(pixels, bounds, 50, 50); got != tt.inside {
				t.Errorf("pixel (50, 50) = %v, want %v", got, tt.inside)
			}
		})
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	bounds := Bounds{Width: 64, Height: 48}
	view := ViewRectangle{UpperLeft: complex(-2.2, 1.2), LowerRight: complex(0.8, -1.2)}
	m := newTestMandelbrot(t, Settings{Workers: 8})

	first, err := m.Render(bounds, view, 200)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := m.Render(bounds, view, 200)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("render %d differs from the first", i+2)
		}
	}
}

func TestRenderMatchesSequential(t *testing.T) {
	bounds := Bounds{Width: 37, Height: 29}
	view := ViewRectangle{UpperLeft: complex(-0.75, 0.2), LowerRight: complex(-0.7, 0.15)}

	settings := []Settings{
		{Partition: Row, Workers: 1},
		{Partition: Row, Workers: 7},
		{Partition: Chunk, RowsPerBand: 4, Workers: 3},
		{Partition: Chunk, RowsPerBand: 100, Workers: 2},
		{ColorMode: Grayscale, Partition: Chunk, RowsPerBand: 5, Workers: 4},
	}

	for _, s := range settings {
		m := newTestMandelbrot(t, s)
		parallel, err := m.Render(bounds, view, 500)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		sequential, err := m.RenderSequential(bounds, view, 500)
		if err != nil {
			t.Fatalf("RenderSequential: %v", err)
		}
		if !bytes.Equal(parallel, sequential) {
			t.Errorf("parallel and sequential renders differ with %s", s.String())
		}
	}
}

func TestRenderAfterClose(t *testing.T) {
	bounds := Bounds{Width: 10, Height: 10}
	m := NewMandelbrot(Settings{Workers: 2})
	want, err := m.Render(bounds, scenarioView, 50)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	m.Close()

	got, err := m.Render(bounds, scenarioView, 50)
	if err != nil {
		t.Fatalf("Render after Close: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Error("render after Close differs")
	}
}

func TestRenderRejectsInvalidInput(t *testing.T) {
	m := newTestMandelbrot(t, Settings{MaxBufferBytes: 4 * 1000, Workers: 2})

	tests := []struct {
		name   string
		bounds Bounds
		view   ViewRectangle
		budget uint
		want   error
	}{
		{"zero width", Bounds{0, 10}, scenarioView, 10, ErrInvalidBounds},
		{"negative height", Bounds{10, -1}, scenarioView, 10, ErrInvalidBounds},
		{"inverted view", Bounds{10, 10}, ViewRectangle{complex(1, -1), complex(-1, 1)}, 10, ErrDegenerateView},
		{"flat view", Bounds{10, 10}, ViewRectangle{complex(-1, 1), complex(1, 1)}, 10, ErrDegenerateView},
		{"zero budget", Bounds{10, 10}, scenarioView, 0, ErrInvalidBudget},
		{"over the limit", Bounds{40, 26}, scenarioView, 10, ErrBufferTooLarge},
		{"overflow", Bounds{math.MaxInt / 2, 3}, scenarioView, 10, ErrBufferTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pixels, err := m.Render(tt.bounds, tt.view, tt.budget)
			if !errors.Is(err, tt.want) {
				t.Errorf("Render = %v, want %v", err, tt.want)
			}
			if pixels != nil {
				t.Errorf("Render returned %d bytes along with an error", len(pixels))
			}
		})
	}
}

func TestSettingsVerify(t *testing.T) {
	row := Settings{Partition: Row, RowsPerBand: 9}
	if err := row.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if row.RowsPerBand != 1 {
		t.Errorf("row partition has %d rows per band, want 1", row.RowsPerBand)
	}
	if row.MaxBufferBytes != 1<<30 {
		t.Errorf("MaxBufferBytes = %d, want %d", row.MaxBufferBytes, 1<<30)
	}

	chunk := Settings{Partition: Chunk}
	if err := chunk.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if chunk.RowsPerBand != 16 {
		t.Errorf("chunk partition has %d rows per band, want 16", chunk.RowsPerBand)
	}

	unknown := Settings{ColorMode: 7, Partition: -2}
	if err := unknown.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if unknown.ColorMode != Gradient || unknown.Partition != Row {
		t.Errorf("unknown values became %s and %s", unknown.ColorMode, unknown.Partition)
	}
}

func TestNewMandelbrotVerifiesSettings(t *testing.T) {
	m := newTestMandelbrot(t, Settings{ColorMode: 9, Partition: Chunk})

	s := m.Settings()
	if s.ColorMode != Gradient {
		t.Errorf("ColorMode = %s, want %s", s.ColorMode, Gradient)
	}
	if s.RowsPerBand != 16 {
		t.Errorf("RowsPerBand = %d, want 16", s.RowsPerBand)
	}
	if s.MaxBufferBytes != 1<<30 {
		t.Errorf("MaxBufferBytes = %d, want %d", s.MaxBufferBytes, 1<<30)
	}
}
