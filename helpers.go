package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"mandelbrot/mandelbrot"
	"mandelbrot/misc"
)

const usage = `Usage: mandelbrot [flags] FILE PIXELS UPPERLEFT LOWERRIGHT
Example: mandelbrot mandel.png 1000x750 -1.20,0.35 -1,0.20

Interactive: mandelbrot -web :8080 [-rpc :51000] [-size 800x600]
Remote:      mandelbrot -remote host:51000 -command zoom-in:400,300 [-out frame.png]

Flags:
`

type mode int

const (
	batchMode mode = iota
	interactiveMode
	remoteMode
)

type arguments struct {
	command      string
	iterations   uint
	colorMode    string
	output       string
	partition    string
	remote       string
	rowsPerBand  int
	rpcAddress   string
	settingsFile string
	size         string
	webAddress   string
	workers      int

	bounds  mandelbrot.Bounds
	view    mandelbrot.ViewRectangle
	visited map[string]bool
}

func (a *arguments) mode() mode {
	switch {
	case a.remote != "":
		return remoteMode
	case a.webAddress != "" || a.rpcAddress != "":
		return interactiveMode
	}
	return batchMode
}

// parseArguments reads the command line. Flags come first, then for batch runs
// exactly four positional arguments.
func parseArguments(args []string, output io.Writer) (arguments, error) {
	var a arguments

	fs := flag.NewFlagSet("mandelbrot", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, usage)
		fs.PrintDefaults()
	}

	fs.StringVar(&a.colorMode, "mode", "", "Color mode: gradient or grayscale (default grayscale for files, gradient when interactive)")
	fs.StringVar(&a.command, "command", "render", "Command sent with -remote: render, reset, zoom-in:COLUMN,ROW, zoom-out, increase-budget, decrease-budget")
	fs.UintVar(&a.iterations, "iterations", 0, "Iteration budget (default from settings, 256)")
	fs.StringVar(&a.output, "out", "frame.png", "File the frame returned by -remote is written to")
	fs.StringVar(&a.partition, "partition", "", "How the buffer is split for the workers: row or chunk")
	fs.StringVar(&a.remote, "remote", "", "Address of a running -rpc server to send -command to")
	fs.IntVar(&a.rowsPerBand, "rows", 0, "Rows per band with -partition chunk")
	fs.StringVar(&a.rpcAddress, "rpc", "", "Address to serve viewport commands over rpc on")
	fs.StringVar(&a.settingsFile, "settings", "", "Json file with settings")
	fs.StringVar(&a.size, "size", "800x600", "Frame size of interactive sessions")
	fs.StringVar(&a.webAddress, "web", "", "Address to serve the interactive viewer on")
	fs.IntVar(&a.workers, "workers", 0, "Number of render workers (default GOMAXPROCS)")

	if err := fs.Parse(args); err != nil {
		return a, err
	}

	a.visited = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		a.visited[f.Name] = true
	})

	var err error
	switch a.mode() {
	case remoteMode:
		if fs.NArg() != 0 {
			return a, errors.New("-remote takes no positional arguments")
		}
	case interactiveMode:
		if fs.NArg() != 0 {
			return a, errors.New("-web and -rpc take no positional arguments")
		}
		if a.bounds, err = ParseBounds(a.size); err != nil {
			return a, fmt.Errorf("error parsing -size: %w", err)
		}
	case batchMode:
		if fs.NArg() != 4 {
			fs.Usage()
			return a, fmt.Errorf("expected 4 arguments, got %d", fs.NArg())
		}
		a.output = fs.Arg(0)
		if a.bounds, err = ParseBounds(fs.Arg(1)); err != nil {
			return a, fmt.Errorf("error parsing image dimensions: %w", err)
		}
		if a.view.UpperLeft, err = ParseComplex(fs.Arg(2)); err != nil {
			return a, fmt.Errorf("error parsing upper left corner point: %w", err)
		}
		if a.view.LowerRight, err = ParseComplex(fs.Arg(3)); err != nil {
			return a, fmt.Errorf("error parsing lower right corner point: %w", err)
		}
		if err = a.view.Verify(); err != nil {
			return a, err
		}
	}

	return a, nil
}

// rpcListenAddress fills in a free port when address asks for port 0, so the
// address that gets logged is one clients can dial.
func rpcListenAddress(address string) (string, error) {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return "", fmt.Errorf("error parsing -rpc address %q: %w", address, err)
	}
	if port != "0" {
		return address, nil
	}
	free, err := misc.GetFreePort()
	if err != nil {
		return "", err
	}
	return net.JoinHostPort(host, strconv.Itoa(free)), nil
}

// ParsePair splits s at the first separator into two values parsed by parse,
// as in "400x600" or "1.0,0.5".
func ParsePair[T any](s string, separator string, parse func(string) (T, error)) (T, T, error) {
	var zero T
	left, right, found := strings.Cut(s, separator)
	if !found {
		return zero, zero, fmt.Errorf("%q has no %q separator", s, separator)
	}
	l, err := parse(left)
	if err != nil {
		return zero, zero, err
	}
	r, err := parse(right)
	if err != nil {
		return zero, zero, err
	}
	return l, r, nil
}

func ParseBounds(s string) (mandelbrot.Bounds, error) {
	width, height, err := ParsePair(s, "x", strconv.Atoi)
	if err != nil {
		return mandelbrot.Bounds{}, err
	}
	bounds := mandelbrot.Bounds{Width: width, Height: height}
	return bounds, bounds.Verify()
}

func ParseComplex(s string) (complex128, error) {
	re, im, err := ParsePair(s, ",", func(v string) (float64, error) {
		return strconv.ParseFloat(v, 64)
	})
	if err != nil {
		return 0, err
	}
	return complex(re, im), nil
}
