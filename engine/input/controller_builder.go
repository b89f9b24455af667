package input

// ControllerBuilderOption configures a Controller.
type ControllerBuilderOption func(*controllerImpl)

// WithDragScale sets the orbit input per viewport unit dragged.
func WithDragScale(scale float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.dragScale = scale
	}
}

// WithClickSlop sets how far the pointer may move between press and release and still count as a click.
func WithClickSlop(slop float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.clickSlop = slop
	}
}

// WithPickRadius sets the hit radius around a facet's projected center.
func WithPickRadius(radius float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.pickRadius = radius
	}
}
