// Package tcp provides an in-memory TCP network for tests. Listeners and
// dialers communicate through net.Pipe pairs, so tests can observe dial
// attempts and exercise accept loops without touching the OS network.
package tcp

import (
	"fmt"
	"net"
	"sync"
)

// MockTCPNetwork simulates a TCP network. Its ListenTCP and DialTCP methods
// match the signatures of config.Dependencies fields.
type MockTCPNetwork struct {
	listeners map[string]*MockTCPListener
	mu        sync.Mutex

	dials     int
	nextPort  int
	nextLocal int
}

// NewMockTCPNetwork creates an empty mock network.
func NewMockTCPNetwork() *MockTCPNetwork {
	return &MockTCPNetwork{
		listeners: make(map[string]*MockTCPListener),
		nextPort:  42000,
		nextLocal: 50000,
	}
}

// ListenTCP creates a mock listener on laddr. Port 0 is assigned a fresh
// ephemeral port, like a real bind.
func (m *MockTCPNetwork) ListenTCP(network string, laddr *net.TCPAddr) (net.Listener, error) {
	if network != "tcp" {
		return nil, fmt.Errorf("unsupported network type: %s", network)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	addr := *laddr
	if addr.Port == 0 {
		addr.Port = m.nextPort
		m.nextPort++
	}
	if _, exists := m.listeners[addr.String()]; exists {
		return nil, fmt.Errorf("address already in use: %s", addr.String())
	}

	listener := &MockTCPListener{
		addr:    &addr,
		connCh:  make(chan *MockTCPConn, 16),
		closeCh: make(chan struct{}),
		network: m,
	}
	m.listeners[addr.String()] = listener

	return listener, nil
}

// DialTCP connects to a mock listener on raddr through a net.Pipe pair.
// Every call is counted, whether it succeeds or not.
func (m *MockTCPNetwork) DialTCP(network string, laddr, raddr *net.TCPAddr) (net.Conn, error) {
	m.mu.Lock()
	m.dials++
	listener, exists := m.listeners[raddr.String()]
	if laddr == nil {
		laddr = &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: m.nextLocal}
		m.nextLocal++
	}
	m.mu.Unlock()

	if network != "tcp" {
		return nil, fmt.Errorf("unsupported network type: %s", network)
	}
	if !exists {
		return nil, fmt.Errorf("connection refused: no listener on %s", raddr.String())
	}

	clientConn, serverConn := net.Pipe()
	mockClient := &MockTCPConn{Conn: clientConn, localAddr: laddr, remoteAddr: raddr}
	mockServer := &MockTCPConn{Conn: serverConn, localAddr: raddr, remoteAddr: laddr}

	select {
	case listener.connCh <- mockServer:
		return mockClient, nil
	case <-listener.closeCh:
		clientConn.Close()
		serverConn.Close()
		return nil, fmt.Errorf("connection refused: listener closed")
	}
}

// DialCount returns how many dial attempts the network has seen.
func (m *MockTCPNetwork) DialCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dials
}
