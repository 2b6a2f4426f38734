package build

type Sandbox bool

const (
	noSandbox          = false
	interrogateSandbox = false
)

func (c *Cmd) sandboxSupported() bool {
	return false
}

func (c *Cmd) wrapSandbox() {
}
