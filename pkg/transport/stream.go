package transport

import (
	"crypto/tls"
	"errors"
	"io"
	"net"
)

// Stream is one open duplex byte connection, plain or secured. Obtain
// streams from Acceptor.Accept, Connector.Connect, or the New* constructors;
// the zero value is not usable.
//
// A Stream is a handle, not the connection itself: Clone returns a second
// handle aliasing the same OS connection. No lock guards read or write here;
// one concurrent reader plus one concurrent writer is the supported pattern,
// anything beyond that is the caller's problem.
type Stream struct {
	kind Kind
	conn net.Conn
}

var _ io.ReadWriteCloser = (*Stream)(nil)

// NewPlainStream wraps an established connection as a plain stream.
func NewPlainStream(conn net.Conn) *Stream {
	return &Stream{kind: KindPlain, conn: conn}
}

// NewSecureStream wraps an established TLS session as a secure stream.
func NewSecureStream(conn *tls.Conn) *Stream {
	return &Stream{kind: KindSecure, conn: conn}
}

// NewMockStream wraps an arbitrary connection as a mock stream. Mock streams
// behave like plain ones but carry their own kind, so a checked recovery
// never confuses a test double with a production connection.
func NewMockStream(conn net.Conn) *Stream {
	return &Stream{kind: KindMock, conn: conn}
}

// Kind reports the concrete connection type behind the stream. The kind is
// fixed for the lifetime of the handle and preserved exactly by Clone.
func (s *Stream) Kind() Kind {
	return s.kind
}

// Read reads from the underlying connection. Blocking and partial-read
// semantics are those of the connection. On secure streams, errors from the
// TLS layer are normalized.
func (s *Stream) Read(p []byte) (int, error) {
	n, err := s.conn.Read(p)
	if s.kind == KindSecure {
		err = normSecure(err)
	}
	return n, err
}

// Write writes to the underlying connection. On secure streams, errors from
// the TLS layer are normalized.
func (s *Stream) Write(p []byte) (int, error) {
	n, err := s.conn.Write(p)
	if s.kind == KindSecure {
		err = normSecure(err)
	}
	return n, err
}

// Flush flushes buffered data if the underlying connection buffers writes.
// TCP and TLS connections write through, so for them this is a no-op; mock
// connections may implement `Flush() error` to participate.
func (s *Stream) Flush() error {
	if f, ok := s.conn.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close closes the underlying connection. Every clone of this handle
// observes the closure.
func (s *Stream) Close() error {
	err := s.conn.Close()
	if s.kind == KindSecure {
		err = normSecure(err)
	}
	return err
}

// PeerName returns the remote address of the connection. On secure streams
// the inner TCP connection is queried, since the TLS session itself does not
// track network addressing.
func (s *Stream) PeerName() (net.Addr, error) {
	conn := s.conn
	if s.kind == KindSecure {
		if inner := s.conn.(*tls.Conn).NetConn(); inner != nil {
			conn = inner
		}
	}

	addr := conn.RemoteAddr()
	if addr == nil {
		return nil, errors.New("peer address unavailable")
	}
	return addr, nil
}

// Clone returns a second handle to the same underlying connection. No new
// connection is made, and both handles read from and write to one shared
// byte stream.
func (s *Stream) Clone() *Stream {
	return &Stream{kind: s.kind, conn: s.conn}
}

// PlainConn recovers the concrete connection of a plain stream. When the
// stream holds another kind, ok is false and the stream is left untouched,
// so a later recovery with the right kind still succeeds.
func (s *Stream) PlainConn() (net.Conn, bool) {
	if s.kind != KindPlain {
		return nil, false
	}
	return s.conn, true
}

// SecureConn recovers the TLS session of a secure stream. When the stream
// holds another kind, ok is false and the stream is left untouched.
func (s *Stream) SecureConn() (*tls.Conn, bool) {
	if s.kind != KindSecure {
		return nil, false
	}
	return s.conn.(*tls.Conn), true
}

// MockConn recovers the connection injected via NewMockStream. When the
// stream holds another kind, ok is false and the stream is left untouched.
func (s *Stream) MockConn() (net.Conn, bool) {
	if s.kind != KindMock {
		return nil, false
	}
	return s.conn, true
}

// UncheckedConn returns the underlying connection without checking the
// stream kind. On a secure stream this is the TLS session, not the inner TCP
// connection. Only for callers that already know the kind, such as test
// harnesses.
func (s *Stream) UncheckedConn() net.Conn {
	return s.conn
}

// UncheckedSecureConn returns the underlying TLS session without checking
// the stream kind and panics when the stream is not secure. Only for callers
// that already know the kind; never reachable from untrusted input.
func (s *Stream) UncheckedSecureConn() *tls.Conn {
	return s.conn.(*tls.Conn)
}
