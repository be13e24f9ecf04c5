package pipeio

import (
	"io"
	"net"
	"testing"
	"time"
)

func TestPipe_RelaysBothDirections(t *testing.T) {
	t.Parallel()

	// outerA <-> innerA are piped to innerB <-> outerB.
	outerA, innerA := net.Pipe()
	innerB, outerB := net.Pipe()

	done := make(chan struct{})
	go func() {
		Pipe(innerA, innerB, func(error) {})
		close(done)
	}()

	go outerA.Write([]byte("ping"))
	buf := make([]byte, 4)
	if _, err := io.ReadFull(outerB, buf); err != nil {
		t.Fatalf("reading forwarded bytes: %v", err)
	}
	if string(buf) != "ping" {
		t.Errorf("forwarded %q, want %q", buf, "ping")
	}

	go outerB.Write([]byte("pong"))
	if _, err := io.ReadFull(outerA, buf); err != nil {
		t.Fatalf("reading return bytes: %v", err)
	}
	if string(buf) != "pong" {
		t.Errorf("returned %q, want %q", buf, "pong")
	}

	// Ending one side unblocks the pump and closes both endpoints.
	outerA.Close()
	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Pipe() did not return after endpoint close")
	}

	if _, err := outerB.Read(buf); err == nil {
		t.Error("far endpoint still open after Pipe returned")
	}
}
