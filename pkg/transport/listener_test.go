package transport

import (
	"errors"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"testing"

	mocks_tcp "wirecat/mocks/tcp"
	"wirecat/pkg/config"
	"wirecat/pkg/crypto"
)

// writeTestCertificate generates a loopback certificate pair and writes it
// into a temp dir, returning the PEM file paths.
func writeTestCertificate(t *testing.T) (certFile, keyFile string) {
	t.Helper()

	certPEM, keyPEM, err := crypto.GenerateCertificate("127.0.0.1", "localhost")
	if err != nil {
		t.Fatalf("crypto.GenerateCertificate(): %v", err)
	}
	certFile, keyFile, err = crypto.WriteFiles(t.TempDir(), certPEM, keyPEM)
	if err != nil {
		t.Fatalf("crypto.WriteFiles(): %v", err)
	}
	return certFile, keyFile
}

func TestBind_SocketNameHasRealPort(t *testing.T) {
	t.Parallel()

	l, err := Bind("127.0.0.1:0", nil)
	if err != nil {
		t.Fatalf("Bind(): %v", err)
	}

	addr, err := l.SocketName()
	if err != nil {
		t.Fatalf("SocketName(): %v", err)
	}
	port := addr.(*net.TCPAddr).Port
	if port == 0 {
		t.Error("SocketName() port = 0 after ephemeral bind")
	}

	a, err := l.Listen()
	if err != nil {
		t.Fatalf("Listen(): %v", err)
	}
	defer a.Close()

	acceptorAddr, err := a.SocketName()
	if err != nil {
		t.Fatalf("Acceptor.SocketName(): %v", err)
	}
	if acceptorAddr.(*net.TCPAddr).Port != port {
		t.Errorf("acceptor port = %d, listener port = %d", acceptorAddr.(*net.TCPAddr).Port, port)
	}
}

func TestBind_InvalidAddress(t *testing.T) {
	t.Parallel()

	if _, err := Bind("invalid:abc", nil); err == nil {
		t.Error("Bind(invalid:abc) succeeded")
	}
}

func TestListener_SpentAfterListen(t *testing.T) {
	t.Parallel()

	l, err := Bind("127.0.0.1:0", nil)
	if err != nil {
		t.Fatalf("Bind(): %v", err)
	}

	a, err := l.Listen()
	if err != nil {
		t.Fatalf("Listen(): %v", err)
	}
	defer a.Close()

	if _, err := l.SocketName(); !errors.Is(err, net.ErrClosed) {
		t.Errorf("SocketName() after Listen = %v, want net.ErrClosed", err)
	}
	if _, err := l.Listen(); !errors.Is(err, net.ErrClosed) {
		t.Errorf("second Listen() = %v, want net.ErrClosed", err)
	}
}

func TestBind_UsesInjectedNetwork(t *testing.T) {
	t.Parallel()

	m := mocks_tcp.NewMockTCPNetwork()
	deps := &config.Dependencies{TCPListener: m.ListenTCP}

	l, err := Bind("127.0.0.1:0", deps)
	if err != nil {
		t.Fatalf("Bind(): %v", err)
	}

	addr, err := l.SocketName()
	if err != nil {
		t.Fatalf("SocketName(): %v", err)
	}
	if addr.(*net.TCPAddr).Port == 0 {
		t.Error("mock bind kept port 0")
	}
}

func TestBindTLS_Valid(t *testing.T) {
	t.Parallel()

	certFile, keyFile := writeTestCertificate(t)

	l, err := BindTLS("127.0.0.1:0", certFile, keyFile, nil)
	if err != nil {
		t.Fatalf("BindTLS(): %v", err)
	}

	a, err := l.Listen()
	if err != nil {
		t.Fatalf("Listen(): %v", err)
	}
	a.Close()
}

func TestBindTLS_MissingCertClosesSocket(t *testing.T) {
	t.Parallel()

	m := mocks_tcp.NewMockTCPNetwork()
	deps := &config.Dependencies{
		TCPListener: m.ListenTCP,
		TCPDialer:   m.DialTCP,
	}

	missing := filepath.Join(t.TempDir(), "missing.pem")
	addr := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 4443}

	_, err := BindTLS(addr.String(), missing, missing, deps)
	if err == nil {
		t.Fatal("BindTLS() with missing certificate succeeded")
	}

	var pathErr *fs.PathError
	var se *SecureError
	if !errors.As(err, &pathErr) && !errors.As(err, &se) {
		t.Errorf("BindTLS() error = %T (%v), want passthrough file error or *SecureError", err, err)
	}
	if errors.As(err, &pathErr) && !errors.Is(err, os.ErrNotExist) {
		t.Errorf("BindTLS() error = %v, want not-exist", err)
	}

	// The failed bind must not leave a listening socket behind.
	if _, err := m.DialTCP("tcp", nil, addr); err == nil {
		t.Error("socket still accepts connections after failed BindTLS")
	}
}

func TestBindTLS_GarbagePEM(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	certFile := filepath.Join(dir, "cert.pem")
	keyFile := filepath.Join(dir, "key.pem")
	for _, f := range []string{certFile, keyFile} {
		if err := os.WriteFile(f, []byte("not pem data"), 0600); err != nil {
			t.Fatalf("writing %s: %v", f, err)
		}
	}

	_, err := BindTLS("127.0.0.1:0", certFile, keyFile, nil)
	if err == nil {
		t.Fatal("BindTLS() with garbage PEM succeeded")
	}

	var se *SecureError
	if !errors.As(err, &se) {
		t.Errorf("BindTLS() error = %T (%v), want *SecureError", err, err)
	}
}
