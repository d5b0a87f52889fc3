package modes

import (
	"src.lined.dev/pkg/cli/clitest"
	"src.lined.dev/pkg/term"
)

func bb() *term.BufferBuilder {
	return term.NewBufferBuilder(clitest.FakeTTYWidth)
}

func setup() *clitest.Fixture {
	return clitest.Setup()
}
