package clitest

import (
	"src.lined.dev/pkg/cli"
)

// Fixture is a test fixture for testing the App of an Editor. It dispatches
// the ReadCode loop to a background goroutine so that the test can inject
// events and assert on the terminal output concurrently.
type Fixture struct {
	App    cli.App
	TTY    TTYCtrl
	codeCh <-chan string
	errCh  <-chan error
}

// Setup sets up a Fixture, applying the given functions to the AppSpec
// before creating the App, and starts the ReadCode loop.
func Setup(fns ...func(*cli.AppSpec, TTYCtrl)) *Fixture {
	tty, ttyCtrl := NewFakeTTY()
	spec := cli.AppSpec{TTY: tty}
	for _, fn := range fns {
		fn(&spec, ttyCtrl)
	}
	app := cli.NewApp(spec)
	codeCh, errCh := StartReadCode(app.ReadCode)
	return &Fixture{app, ttyCtrl, codeCh, errCh}
}

// NewFixture wraps an already-created App whose TTY is a fake terminal,
// and starts the given read function, which is typically the ReadCode
// method of the App or the ReadLine method of an editor built on it.
func NewFixture(app cli.App, tty TTYCtrl, read func() (string, error)) *Fixture {
	codeCh, errCh := StartReadCode(read)
	return &Fixture{app, tty, codeCh, errCh}
}

// WithSpec takes a function that operates on the AppSpec, and wraps it into
// a form suitable for passing to Setup.
func WithSpec(f func(*cli.AppSpec)) func(*cli.AppSpec, TTYCtrl) {
	return func(spec *cli.AppSpec, _ TTYCtrl) { f(spec) }
}

// WithTTY takes a function that operates on the TTYCtrl, and wraps it to a
// form suitable for passing to Setup.
func WithTTY(f func(TTYCtrl)) func(*cli.AppSpec, TTYCtrl) {
	return func(_ *cli.AppSpec, tty TTYCtrl) { f(tty) }
}

// StartReadCode starts the given function, which should be the ReadCode
// method of an App, in a goroutine, and returns two channels that deliver
// its return values.
func StartReadCode(readCode func() (string, error)) (<-chan string, <-chan error) {
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		code, err := readCode()
		codeCh <- code
		errCh <- err
		close(codeCh)
		close(errCh)
	}()
	return codeCh, errCh
}

// Wait waits for ReadCode to finish, and returns its return values.
func (f *Fixture) Wait() (string, error) {
	return <-f.codeCh, <-f.errCh
}

// Stop stops ReadCode and waits for it to finish. If ReadCode has already
// been stopped, this method is a no-op.
func (f *Fixture) Stop() {
	f.App.CommitEOF()
	f.Wait()
}
