package transport

import (
	"crypto/tls"
	"fmt"
	"net"

	"wirecat/pkg/config"
)

// Listener is a passive socket bound to a local address, not yet handing out
// connections. Listen consumes it; after Listen the Listener is spent and
// every call on it returns net.ErrClosed.
type Listener struct {
	kind Kind
	nl   net.Listener
	sec  *tls.Config // shared security context, secure mode only, read-only
}

// Bind opens a plain passive socket on addr. addr is anything resolvable to
// a TCP address; port 0 requests an ephemeral port, readable back through
// SocketName.
func Bind(addr string, deps *config.Dependencies) (*Listener, error) {
	nl, err := bindSocket(addr, deps)
	if err != nil {
		return nil, err
	}
	return &Listener{kind: KindPlain, nl: nl}, nil
}

// BindTLS opens a passive socket on addr and builds the security context
// every connection accepted from it will share: the fixed default cipher
// policy, the PEM-encoded certificate and private key at the given paths,
// and no client verification. When the context cannot be built, the socket
// is closed before the error is returned.
func BindTLS(addr, certFile, keyFile string, deps *config.Dependencies) (*Listener, error) {
	nl, err := bindSocket(addr, deps)
	if err != nil {
		return nil, err
	}

	sec, err := newSecurityContext(certFile, keyFile)
	if err != nil {
		nl.Close()
		return nil, err
	}

	return &Listener{kind: KindSecure, nl: nl, sec: sec}, nil
}

func bindSocket(addr string, deps *config.Dependencies) (net.Listener, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("net.ResolveTCPAddr(tcp, %s): %w", addr, err)
	}

	nl, err := config.GetTCPListenerFunc(deps)("tcp", tcpAddr)
	if err != nil {
		return nil, fmt.Errorf("listen(tcp, %s): %w", addr, err)
	}

	return nl, nil
}

// newSecurityContext builds the immutable server-side TLS configuration.
// Context construction crosses the TLS error boundary, so failures are
// normalized. Nothing mutates the returned config after this point.
func newSecurityContext(certFile, keyFile string) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, normSecure(err)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		ClientAuth:   tls.NoClientCert,
		CipherSuites: nil, // CipherPolicy: the stack's default suites
	}, nil
}

// SocketName returns the address actually bound, which carries the real port
// when addr requested an ephemeral one.
func (l *Listener) SocketName() (net.Addr, error) {
	if l.nl == nil {
		return nil, net.ErrClosed
	}
	return l.nl.Addr(), nil
}

// Listen transitions the bound socket into accepting state. It consumes the
// Listener: the returned Acceptor owns the socket and, in secure mode, a
// shared reference to the already-built security context. The context is not
// validated again here.
func (l *Listener) Listen() (*Acceptor, error) {
	if l.nl == nil {
		return nil, net.ErrClosed
	}

	a := &Acceptor{kind: l.kind, nl: l.nl, sec: l.sec}
	l.nl = nil
	l.sec = nil
	return a, nil
}
