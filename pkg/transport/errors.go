package transport

import (
	"errors"
	"io"
	"io/fs"
	"net"
	"os"
)

// Sentinel errors of the shared taxonomy. Socket errors from the net package
// are not represented here: they pass through every call unchanged, keeping
// their original kind and detail.
var (
	// ErrInvalidScheme reports a Connect scheme outside the supported
	// vocabulary of "http" and "https".
	ErrInvalidScheme = errors.New("invalid scheme")

	// ErrConnectionAborted reports a secure session torn down by the peer
	// without an orderly TLS shutdown.
	ErrConnectionAborted = errors.New("secure connection closed by peer")
)

// SecureError is an opaque failure inside the TLS layer. Detail is a textual
// rendering of the underlying error; the structured form is not preserved
// across this boundary.
type SecureError struct {
	Detail string
}

func (e *SecureError) Error() string {
	return "secure transport: " + e.Detail
}

// normSecure maps an error crossing the TLS boundary onto the shared
// taxonomy. It is the single place that interprets the TLS library's error
// shapes; if that library changes, this function changes.
//
// io.EOF stays io.EOF: an orderly close_notify is an ordinary end of stream
// and readers depend on seeing it. An abrupt teardown of the session
// (truncated record stream, closed connection) becomes ErrConnectionAborted
// with no extra detail. Errors of the underlying socket pass through
// unchanged. Everything else is opaque TLS failure.
func normSecure(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) {
		return err
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) {
		return ErrConnectionAborted
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return err
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return err
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return err
	}

	return &SecureError{Detail: err.Error()}
}
