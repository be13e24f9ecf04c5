// Package transport abstracts plain and TLS-encrypted TCP connections behind
// one stream type, so servers and clients can treat both uniformly while
// still being able to recover the concrete connection when they need it.
//
// The building blocks, server side first:
//
//   - Bind / BindTLS create a Listener on a local address. BindTLS also
//     builds the security context (certificate, key, cipher policy) every
//     accepted connection will share.
//   - Listener.Listen consumes the Listener and yields an Acceptor.
//   - Acceptor.Accept blocks for the next connection, runs the server-side
//     handshake in secure mode, and yields a Stream.
//   - Connector.Connect is the client side: scheme "http" dials a plain
//     stream, "https" dials and handshakes a secure one.
//
// All calls block; there is no scheduling inside this layer. A typical
// server runs one Accept loop and hands each Stream to its own goroutine
// (Acceptor.Serve does exactly that). Streams and Acceptors may be passed
// between goroutines and cloned; clones alias the same OS resource and the
// underlying connection is the only point of serialization.
//
// Errors from the TLS layer are normalized in one place (errors.go) so the
// rest of the system only ever sees the shared taxonomy: ErrInvalidScheme,
// ErrConnectionAborted, SecureError, and unchanged socket errors.
package transport

// Kind identifies the concrete connection type behind a Stream. The set is
// deliberately closed: all dispatch is an exhaustive switch, and test code
// injects doubles through KindMock instead of an open-ended interface.
type Kind int

const (
	// KindPlain is an unencrypted TCP connection.
	KindPlain Kind = iota
	// KindSecure is a TLS session over a TCP connection.
	KindSecure
	// KindMock is a caller-injected test connection.
	KindMock
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindSecure:
		return "secure"
	case KindMock:
		return "mock"
	default:
		return "unknown"
	}
}

// Schemes recognized by the Connector. Anything else is rejected with
// ErrInvalidScheme before a connection attempt is made.
const (
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
)

// CipherPolicy is the fixed cipher policy applied to every security context:
// the default suite selection of the TLS stack. It is not configurable.
const CipherPolicy = "DEFAULT"

// Handler processes one accepted stream on behalf of Acceptor.Serve.
// The stream is closed after the handler returns.
type Handler func(*Stream) error
