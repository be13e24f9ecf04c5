package tcp

import (
	"net"
	"sync"
)

// MockTCPListener is an in-memory replacement for a *net.TCPListener.
type MockTCPListener struct {
	addr    *net.TCPAddr
	connCh  chan *MockTCPConn
	closeCh chan struct{}
	closed  bool
	mu      sync.Mutex
	network *MockTCPNetwork
}

// Accept waits for and returns the next connection dialed to the listener.
func (l *MockTCPListener) Accept() (net.Conn, error) {
	select {
	case conn := <-l.connCh:
		return conn, nil
	case <-l.closeCh:
		return nil, net.ErrClosed
	}
}

// Close closes the listener and unregisters it from the network.
// A second Close returns net.ErrClosed.
func (l *MockTCPListener) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return net.ErrClosed
	}
	l.closed = true
	close(l.closeCh)

	l.network.mu.Lock()
	delete(l.network.listeners, l.addr.String())
	l.network.mu.Unlock()

	return nil
}

// Addr returns the listener's network address.
func (l *MockTCPListener) Addr() net.Addr {
	return l.addr
}

var _ net.Listener = (*MockTCPListener)(nil)
