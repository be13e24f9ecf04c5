package transport

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net"

	"wirecat/pkg/log"
)

// Acceptor hands out connections accepted on a previously bound address.
// Clones share the same OS accept queue and the same security context; the
// context is never copied.
type Acceptor struct {
	kind Kind
	nl   net.Listener
	sec  *tls.Config
}

// Accept blocks until a connection arrives and wraps it as a Stream. In
// secure mode the server-side handshake runs first; a handshake failure
// closes that one connection and becomes this call's error, leaving the
// acceptor usable for further Accept calls.
func (a *Acceptor) Accept() (*Stream, error) {
	conn, err := a.nl.Accept()
	if err != nil {
		return nil, fmt.Errorf("Accept(): %w", err)
	}

	if a.kind != KindSecure {
		return NewPlainStream(conn), nil
	}

	tlsConn := tls.Server(conn, a.sec)
	if err := tlsConn.Handshake(); err != nil {
		tlsConn.Close()
		return nil, normSecure(err)
	}

	return NewSecureStream(tlsConn), nil
}

// Close stops further accepts on the underlying queue; blocked Accept and
// Serve calls return. Close is not idempotent: a second call may error,
// matching the underlying OS resource.
func (a *Acceptor) Close() error {
	return a.nl.Close()
}

// Clone returns a second handle on the same accept queue. Both handles may
// accept concurrently and both stop when either is closed.
func (a *Acceptor) Clone() *Acceptor {
	return &Acceptor{kind: a.kind, nl: a.nl, sec: a.sec}
}

// SocketName returns the local address connections are accepted on.
func (a *Acceptor) SocketName() (net.Addr, error) {
	addr := a.nl.Addr()
	if addr == nil {
		return nil, net.ErrClosed
	}
	return addr, nil
}

// Serve accepts connections until the acceptor is closed and runs handler
// for each stream in its own goroutine, closing the stream when the handler
// returns. Handshake and handler failures are logged and do not stop the
// loop. Serve returns nil after Close and the error otherwise.
func (a *Acceptor) Serve(handler Handler, logger *log.Logger) error {
	if logger == nil {
		logger = log.NewLogger(false)
	}

	for {
		stream, err := a.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			if IsConnectionError(err) {
				logger.ErrorMsg("Accepting connection: %s\n", err)
				continue
			}
			return err
		}

		if peer, err := stream.PeerName(); err == nil {
			logger.InfoMsg("New %s connection from %s\n", stream.Kind(), peer)
		}

		go func() {
			defer stream.Close()
			if err := handler(stream); err != nil {
				logger.ErrorMsg("Handling connection: %s\n", err)
			}
		}()
	}
}

// IsConnectionError reports whether err concerns a single connection rather
// than the accept queue itself. Callers running their own accept loop can
// use it to decide between retrying and giving up.
func IsConnectionError(err error) bool {
	var se *SecureError
	return errors.Is(err, ErrConnectionAborted) || errors.As(err, &se)
}
