package processor

// ControllerConfig selects the substitutions a [Controller] runs.
type ControllerConfig struct {
	Helm  bool
	Array bool
	Octal bool
}

// Controller runs the enabled substitutions over a document. Preprocess
// applies them in the order helm, array, octal; Postprocess undoes them in
// reverse. Disabled substitutions are never constructed.
type Controller struct {
	processors []*Substitution
}

// NewController creates a [Controller] for one document.
func NewController(cfg ControllerConfig) *Controller {
	c := &Controller{}

	if cfg.Helm {
		c.processors = append(c.processors, NewHelm())
	}

	if cfg.Array {
		c.processors = append(c.processors, NewArray())
	}

	if cfg.Octal {
		c.processors = append(c.processors, NewOctal())
	}

	return c
}

// Preprocess shields text with every enabled substitution.
func (c *Controller) Preprocess(text string) string {
	for _, p := range c.processors {
		text = p.Preprocess(text)
	}

	return text
}

// Postprocess restores shielded text in reverse order.
func (c *Controller) Postprocess(text string) string {
	for i := len(c.processors) - 1; i >= 0; i-- {
		text = c.processors[i].Postprocess(text)
	}

	return text
}

// Kinds returns the token kinds of the enabled substitutions, in
// preprocessing order.
func (c *Controller) Kinds() []string {
	kinds := make([]string, 0, len(c.processors))
	for _, p := range c.processors {
		kinds = append(kinds, p.Kind())
	}

	return kinds
}
