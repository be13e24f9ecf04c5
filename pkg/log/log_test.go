package log

import "testing"

func TestVerboseMsg_NilLogger(t *testing.T) {
	t.Parallel()

	var l *Logger
	l.VerboseMsg("must not panic: %s", "x") // no output, no panic
}

func TestVerboseMsg_Disabled(t *testing.T) {
	t.Parallel()

	l := NewLogger(false)
	l.VerboseMsg("dropped %d", 1)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	if l := NewLogger(true); l == nil {
		t.Fatal("NewLogger(true) = nil")
	}
}
