package tk

import (
	"reflect"
	"testing"

	"src.lined.dev/pkg/term"
)

// renderTest is a test case to be used in testRender.
type renderTest struct {
	Name   string
	Given  Renderer
	Width  int
	Height int
	Want   interface{ Buffer() *term.Buffer }
}

// testRender runs the given Renderer tests.
func testRender(t *testing.T, tests []renderTest) {
	t.Helper()
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			t.Helper()
			buf := test.Given.Render(test.Width, test.Height)
			wantBuf := test.Want.Buffer()
			if !reflect.DeepEqual(buf, wantBuf) {
				t.Errorf("Buffer mismatch")
				t.Logf("Got: %s", buf.TTYString())
				t.Logf("Want: %s", wantBuf.TTYString())
			}
		})
	}
}

// handler is the subset of Widget that testHandle exercises.
type handler interface {
	Handle(event term.Event) bool
}

// handleTest is a test case to be used in testHandle.
type handleTest struct {
	Name   string
	Given  handler
	Event  term.Event
	Events []term.Event

	WantNewState  any
	WantUnhandled bool
}

// testHandle runs the given handler tests.
func testHandle(t *testing.T, tests []handleTest) {
	t.Helper()

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			t.Helper()

			h := test.Given
			oldState := getState(h)
			defer setState(h, oldState)

			var handled bool
			switch {
			case test.Event != nil && test.Events != nil:
				t.Fatal("Malformed test case: both Event and Events non-nil:",
					test.Event, test.Events)
			case test.Event == nil && test.Events == nil:
				t.Fatal("Malformed test case: both Event and Events nil")
			case test.Event != nil:
				handled = h.Handle(test.Event)
			default: // test.Events != nil
				for _, event := range test.Events {
					handled = h.Handle(event)
				}
			}
			if handled != !test.WantUnhandled {
				t.Errorf("Got handled %v, want %v", handled, !test.WantUnhandled)
			}
			if test.WantNewState != nil {
				state := getState(test.Given)
				if !reflect.DeepEqual(state, test.WantNewState) {
					t.Errorf("Got state %v, want %v", state, test.WantNewState)
				}
			}
		})
	}
}

func getState(v any) any {
	return reflectState(v).Interface()
}

func setState(v, state any) {
	reflectState(v).Set(reflect.ValueOf(state))
}

func reflectState(v any) reflect.Value {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = reflect.Indirect(rv)
	}
	return rv.FieldByName("State")
}
