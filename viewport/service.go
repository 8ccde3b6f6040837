package viewport

import "mandelbrot/misc"

// Viewport exposes a Controller over rpc. Servers register it by its type name,
// so remote callers use "Viewport.Apply", "Viewport.Render" and
// "Viewport.State".
type Viewport struct {
	controller *Controller
}

func NewViewport(controller *Controller) *Viewport {
	return &Viewport{controller: controller}
}

func (v *Viewport) Apply(command Command, frame *Frame) error {
	applied, err := v.controller.Apply(command)
	if err != nil {
		return err
	}
	*frame = applied
	return nil
}

func (v *Viewport) Render(nothing misc.Nothing, frame *Frame) error {
	rendered, err := v.controller.Render()
	if err != nil {
		return err
	}
	*frame = rendered
	return nil
}

func (v *Viewport) State(nothing misc.Nothing, state *State) error {
	*state = v.controller.State()
	return nil
}
