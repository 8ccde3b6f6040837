package mandelbrot

import "fmt"

const (
	Row Partition = iota
	Chunk
)

// Partition decides how a buffer is cut into bands for the worker pool.
type Partition int

func (p Partition) String() string {
	switch p {
	case Row:
		return "row"
	case Chunk:
		return "chunk"
	}
	return fmt.Sprintf("Partition(%d)", int(p))
}

func ParsePartition(name string) (Partition, error) {
	switch name {
	case "row":
		return Row, nil
	case "chunk":
		return Chunk, nil
	}
	return Row, fmt.Errorf("unknown partition %q", name)
}

func (p Partition) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Partition) UnmarshalText(text []byte) error {
	partition, err := ParsePartition(string(text))
	if err != nil {
		return err
	}
	*p = partition
	return nil
}

// Band is a run of whole rows of a pixel buffer starting at row Top. Bands of one
// buffer never share memory, so each can be filled on its own goroutine.
type Band struct {
	Pixels []byte
	Rows   int
	Top    int
}

func (b *Band) String() string {
	return fmt.Sprintf("{Band Top: %d Rows: %d Bytes: %d}", b.Top, b.Rows, len(b.Pixels))
}

// SplitBands cuts pixels into bands of rowsPerBand rows. The last band holds
// whatever rows are left over.
func SplitBands(pixels []byte, bounds Bounds, rowsPerBand int) []Band {
	if rowsPerBand < 1 {
		rowsPerBand = 1
	}
	stride := 4 * bounds.Width
	bands := make([]Band, 0, (bounds.Height+rowsPerBand-1)/rowsPerBand)
	for top := 0; top < bounds.Height; top += rowsPerBand {
		rows := min(rowsPerBand, bounds.Height-top)
		bands = append(bands, Band{
			Pixels: pixels[top*stride : (top+rows)*stride : (top+rows)*stride],
			Rows:   rows,
			Top:    top,
		})
	}
	return bands
}

// renderBand fills every pixel of band. It reads and writes nothing outside of
// band.Pixels.
func renderBand(band Band, bounds Bounds, view ViewRectangle, budget uint, colors *ColorMapper) {
	for r := 0; r < band.Rows; r++ {
		for column := 0; column < bounds.Width; column++ {
			point := PixelToPoint(bounds, column, band.Top+r, view)
			step, escaped := EscapeTime(point, budget)
			c := colors.Color(step, escaped)

			offset := 4 * (r*bounds.Width + column)
			band.Pixels[offset] = c.R
			band.Pixels[offset+1] = c.G
			band.Pixels[offset+2] = c.B
			band.Pixels[offset+3] = c.A
		}
	}
}
