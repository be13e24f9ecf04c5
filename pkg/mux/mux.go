// Package mux multiplexes one transport stream into independent logical byte
// streams, for callers that hold exactly one connection but need several
// concurrent exchanges over it. One side of the connection runs the client
// session and opens streams; the other runs the server session and accepts
// them.
package mux

import (
	"fmt"
	"io"
	stdlog "log"
	"net"

	"github.com/hashicorp/yamux"

	"wirecat/pkg/transport"
)

// Session is one multiplexing session over a transport stream. Closing the
// session closes every logical stream and the carrier stream.
type Session struct {
	sess *yamux.Session
}

// Client starts the client side of a session on the given stream.
func Client(stream *transport.Stream) (*Session, error) {
	sess, err := yamux.Client(stream, config())
	if err != nil {
		return nil, fmt.Errorf("yamux.Client(stream): %w", err)
	}
	return &Session{sess: sess}, nil
}

// Server starts the server side of a session on the given stream.
func Server(stream *transport.Stream) (*Session, error) {
	sess, err := yamux.Server(stream, config())
	if err != nil {
		return nil, fmt.Errorf("yamux.Server(stream): %w", err)
	}
	return &Session{sess: sess}, nil
}

// Open opens a new logical stream. Only the client side may open.
func (s *Session) Open() (net.Conn, error) {
	conn, err := s.sess.Open()
	if err != nil {
		return nil, fmt.Errorf("session.Open(): %w", err)
	}
	return conn, nil
}

// Accept blocks for the next logical stream opened by the peer.
func (s *Session) Accept() (net.Conn, error) {
	conn, err := s.sess.Accept()
	if err != nil {
		return nil, fmt.Errorf("session.Accept(): %w", err)
	}
	return conn, nil
}

// Close tears down the session and its carrier stream.
func (s *Session) Close() error {
	return s.sess.Close()
}

func config() *yamux.Config {
	cfg := yamux.DefaultConfig()
	cfg.LogOutput = nil
	cfg.Logger = stdlog.New(io.Discard, "", stdlog.LstdFlags) // discard all console logging in yamux
	return cfg
}
