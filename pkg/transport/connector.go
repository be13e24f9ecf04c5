package transport

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"

	"wirecat/pkg/config"
	"wirecat/pkg/format"
)

// VerifyPeerFunc checks the server's raw certificate chain during the client
// handshake. It follows the tls.Config.VerifyPeerCertificate contract:
// rawCerts holds the DER certificates presented by the peer, and a non-nil
// return aborts the handshake.
type VerifyPeerFunc func(rawCerts [][]byte, verifiedChains [][]*x509.Certificate) error

// Connector opens outbound streams. The zero value is usable and performs no
// peer verification. A Connector is immutable once in use.
type Connector struct {
	// Verify, when set, is called with the server's certificate chain
	// during the https handshake. When nil, verification is disabled.
	Verify VerifyPeerFunc

	// Deps carries injectable network primitives for tests.
	Deps *config.Dependencies
}

// Connect opens a stream to host:port. Scheme "http" yields a plain stream.
// Scheme "https" dials, builds a one-shot client security context with the
// default cipher policy and host as the handshake identity, performs the
// client-side handshake, and yields a secure stream. Any other scheme fails
// with ErrInvalidScheme before a socket is opened.
//
// Once the dial succeeded, no failure path leaks the connection: it is
// closed as part of unwinding.
func (c *Connector) Connect(host string, port int, scheme string) (*Stream, error) {
	switch scheme {
	case SchemeHTTP:
		conn, err := c.dial(host, port)
		if err != nil {
			return nil, err
		}
		return NewPlainStream(conn), nil

	case SchemeHTTPS:
		conn, err := c.dial(host, port)
		if err != nil {
			return nil, err
		}

		tlsConn := tls.Client(conn, c.clientContext(host))
		if err := tlsConn.Handshake(); err != nil {
			tlsConn.Close()
			return nil, normSecure(err)
		}
		return NewSecureStream(tlsConn), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidScheme, scheme)
	}
}

func (c *Connector) dial(host string, port int) (net.Conn, error) {
	addr := format.Addr(host, port)

	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("net.ResolveTCPAddr(tcp, %s): %w", addr, err)
	}

	conn, err := config.GetTCPDialerFunc(c.Deps)("tcp", nil, tcpAddr)
	if err != nil {
		return nil, fmt.Errorf("dial(tcp, %s): %w", addr, err)
	}

	return conn, nil
}

// clientContext builds the one-shot client security context for one https
// dial. Certificate verification always runs through Verify: with no
// callback installed, the handshake accepts any certificate.
func (c *Connector) clientContext(host string) *tls.Config {
	cfg := &tls.Config{
		ServerName:         host,
		InsecureSkipVerify: true, // verification is Verify's job
		CipherSuites:       nil,  // CipherPolicy: the stack's default suites
	}
	if c.Verify != nil {
		cfg.VerifyPeerCertificate = c.Verify
	}
	return cfg
}
