package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/BrugadaSyndrome/multirpc"

	"mandelbrot/mandelbrot"
	"mandelbrot/misc"
	"mandelbrot/viewport"
	"mandelbrot/web"
)

func main() {
	logger := bslogger.NewLogger("Main", bslogger.Normal, nil)

	args, err := parseArguments(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	misc.CheckError(err, logger, misc.Fatal, "Parsing arguments")

	s, err := NewSettings(args.settingsFile)
	misc.CheckError(err, logger, misc.Fatal, "Loading settings")
	misc.CheckError(s.apply(args), logger, misc.Fatal, "Applying flags")
	misc.CheckError(s.Verify(), logger, misc.Fatal, "Verifying settings")

	switch args.mode() {
	case remoteMode:
		err = runRemote(args, logger)
	case interactiveMode:
		err = runInteractive(args, s, logger)
	default:
		err = runBatch(args, s, logger)
	}
	misc.CheckError(err, logger, misc.Fatal, "")
}

func runBatch(args arguments, s settings, logger bslogger.Logger) error {
	engine := mandelbrot.NewMandelbrot(s.MandelbrotSettings)
	defer engine.Close()

	startTime := time.Now()
	pixels, err := engine.Render(args.bounds, args.view, s.ViewportSettings.Budget)
	if err != nil {
		return err
	}
	if err := misc.WritePNG(args.output, pixels, args.bounds.Width, args.bounds.Height); err != nil {
		return err
	}

	logger.Info(fmt.Sprintf("Saved %s image of %s to %s in %s", args.bounds, args.view, args.output, time.Since(startTime)))
	return nil
}

func runInteractive(args arguments, s settings, logger bslogger.Logger) error {
	engine := mandelbrot.NewMandelbrot(s.MandelbrotSettings)
	defer engine.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if args.webAddress != "" {
		viewer, err := web.NewServer(engine, args.bounds, s.ViewportSettings, args.webAddress)
		if err != nil {
			return err
		}
		if err := viewer.Run(); err != nil {
			return err
		}
		logger.Info(fmt.Sprintf("Open http://%s to explore", misc.DisplayAddress(viewer.Addr())))
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			misc.CheckError(viewer.Stop(shutdownCtx), logger, misc.Warning, "Stopping viewer")
		}()
	}

	if args.rpcAddress != "" {
		controller, err := viewport.NewController(engine, args.bounds, s.ViewportSettings)
		if err != nil {
			return err
		}
		address, err := rpcListenAddress(args.rpcAddress)
		if err != nil {
			return err
		}
		server := multirpc.NewTcpServer(viewport.NewViewport(controller), address, "ViewportServer")
		if err := server.Run(); err != nil {
			return err
		}
		logger.Info(fmt.Sprintf("Serving viewport commands at %s", misc.DisplayAddress(address)))
		defer func() {
			misc.CheckError(server.Stop(), logger, misc.Warning, "Stopping rpc server")
			server.Wait()
		}()
	}

	<-ctx.Done()
	logger.Info("Shutting down")
	return nil
}

func runRemote(args arguments, logger bslogger.Logger) error {
	client := multirpc.NewTcpClient(args.remote, "ViewportClient")
	if err := client.Connect(); err != nil {
		return err
	}
	defer client.Disconnect()

	var frame viewport.Frame
	if args.command == "render" {
		var nothing misc.Nothing
		if err := client.Call("Viewport.Render", nothing, &frame); err != nil {
			return err
		}
	} else {
		command, err := viewport.ParseCommand(args.command)
		if err != nil {
			return err
		}
		if err := client.Call("Viewport.Apply", command, &frame); err != nil {
			return err
		}
	}

	if err := misc.WritePNG(args.output, frame.Pixels, frame.Bounds.Width, frame.Bounds.Height); err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("Saved %s frame of %s to %s", frame.Bounds, frame.State, args.output))
	return nil
}
