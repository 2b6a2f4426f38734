package build

import (
	"os/exec"
)

// Cmd is a wrapper of exec.Cmd that integrates with the interrogation
// context for logging, the config's private environment, and the
// sandbox configuration.
type Cmd struct {
	*exec.Cmd

	Environment *Environment
	Sandbox     Sandbox

	ctx    Context
	config Config
	name   string
}

func Command(ctx Context, config Config, name string, executable string, args ...string) *Cmd {
	ret := &Cmd{
		Cmd:         exec.CommandContext(ctx.Context, executable, args...),
		Environment: config.Environment().Copy(),
		Sandbox:     noSandbox,

		ctx:    ctx,
		config: config,
		name:   name,
	}

	return ret
}

func (c *Cmd) prepare() {
	if c.Env == nil {
		c.Env = c.Environment.Environ()
	}
	if c.sandboxSupported() {
		c.wrapSandbox()
	}

	c.ctx.Verbosef("%q executing %q %v\n", c.name, c.Path, c.Args[1:])
}

func (c *Cmd) Start() error {
	c.prepare()
	return c.Cmd.Start()
}

func (c *Cmd) Run() error {
	c.prepare()
	return c.Cmd.Run()
}

func (c *Cmd) reportError(err error) {
	if err == nil {
		return
	}
	if e, ok := err.(*exec.ExitError); ok {
		c.ctx.Fatalf("%q failed with: %v", c.name, e.ProcessState.String())
	} else {
		c.ctx.Fatalf("Failed to run %q: %v", c.name, err)
	}
}

// StartOrFatal is equivalent to Start, but handles the error with a
// call to ctx.Fatal
func (c *Cmd) StartOrFatal() {
	if err := c.Start(); err != nil {
		c.reportError(err)
	}
}

// RunOrFatal is equivalent to Run, but handles the error with a call
// to ctx.Fatal
func (c *Cmd) RunOrFatal() {
	c.reportError(c.Run())
}

// WaitOrFatal is equivalent to Wait, but handles the error with a
// call to ctx.Fatal
func (c *Cmd) WaitOrFatal() {
	c.reportError(c.Wait())
}
