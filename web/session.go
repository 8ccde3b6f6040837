package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"mandelbrot/misc"
	"mandelbrot/viewport"
)

type errorMessage struct {
	Error string `json:"error"`
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	if !s.beginSession() {
		http.Error(w, "viewer is shutting down", http.StatusServiceUnavailable)
		return
	}
	defer s.sessions.Done()

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("Accepting websocket from %s - %s", r.RemoteAddr, err))
		return
	}
	defer conn.CloseNow()

	// Sessions end with the request or when the viewer stops, whichever is first
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	s.logger.Info(fmt.Sprintf("Session opened for %s", r.RemoteAddr))
	err = s.serveSession(ctx, conn)
	switch {
	case websocket.CloseStatus(err) == websocket.StatusNormalClosure, websocket.CloseStatus(err) == websocket.StatusGoingAway:
		s.logger.Info(fmt.Sprintf("Session closed for %s", r.RemoteAddr))
	case errors.Is(err, context.Canceled):
		s.logger.Info(fmt.Sprintf("Session for %s cancelled", r.RemoteAddr))
	default:
		s.logger.Warning(fmt.Sprintf("Session for %s ended - %s", r.RemoteAddr, err))
		conn.Close(websocket.StatusInternalError, "session failed")
	}
}

// serveSession sends the initial frame, then answers every command with either
// a new frame or an error message.
func (s *Server) serveSession(ctx context.Context, conn *websocket.Conn) error {
	controller, err := viewport.NewController(s.renderer, s.bounds, s.settings)
	if err != nil {
		return err
	}

	frame, err := controller.Render()
	if err != nil {
		return err
	}
	if err := s.sendFrame(ctx, conn, frame); err != nil {
		return err
	}

	for {
		command, err := readCommand(ctx, conn)
		if err != nil {
			var decodeErr *commandError
			if !errors.As(err, &decodeErr) {
				return err
			}
			if err := wsjson.Write(ctx, conn, errorMessage{Error: err.Error()}); err != nil {
				return err
			}
			continue
		}

		frame, err := controller.Apply(command)
		if err != nil {
			if err := wsjson.Write(ctx, conn, errorMessage{Error: err.Error()}); err != nil {
				return err
			}
			continue
		}
		if err := s.sendFrame(ctx, conn, frame); err != nil {
			return err
		}
	}
}

// commandError is a message that arrived but is not a command. The session
// reports it to the client and carries on.
type commandError struct {
	err error
}

func (e *commandError) Error() string {
	return fmt.Sprintf("invalid command: %s", e.err)
}

func (e *commandError) Unwrap() error {
	return e.err
}

func readCommand(ctx context.Context, conn *websocket.Conn) (viewport.Command, error) {
	messageType, data, err := conn.Read(ctx)
	if err != nil {
		return viewport.Command{}, err
	}
	if messageType != websocket.MessageText {
		return viewport.Command{}, &commandError{err: errors.New("expected a text message")}
	}

	var command viewport.Command
	if err := json.Unmarshal(data, &command); err != nil {
		return viewport.Command{}, &commandError{err: err}
	}
	return command, nil
}

func (s *Server) sendFrame(ctx context.Context, conn *websocket.Conn, frame viewport.Frame) error {
	img, err := misc.NewImage(frame.Pixels, frame.Bounds.Width, frame.Bounds.Height)
	if err != nil {
		return err
	}
	DrawHUD(img, frame.State)

	encoded, err := misc.EncodePNG(img)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageBinary, encoded)
}
