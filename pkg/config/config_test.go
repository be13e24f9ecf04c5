package config

import (
	"net"
	"testing"
)

func TestShared_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      Shared
		wantErrs int
	}{
		{
			name:     "valid",
			cfg:      Shared{Host: "localhost", Port: 8080},
			wantErrs: 0,
		},
		{
			name:     "port zero",
			cfg:      Shared{Port: 0},
			wantErrs: 1,
		},
		{
			name:     "port too large",
			cfg:      Shared{Port: 70000},
			wantErrs: 1,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if errs := tc.cfg.Validate(); len(errs) != tc.wantErrs {
				t.Errorf("Validate() = %v, want %d errors", errs, tc.wantErrs)
			}
		})
	}
}

func TestListen_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      Listen
		wantErrs int
	}{
		{
			name:     "plain",
			cfg:      Listen{Shared: Shared{Port: 8080}},
			wantErrs: 0,
		},
		{
			name: "tls with cert and key",
			cfg: Listen{
				Shared:   Shared{Port: 8443},
				TLS:      true,
				CertFile: "cert.pem",
				KeyFile:  "key.pem",
			},
			wantErrs: 0,
		},
		{
			name: "tls without key",
			cfg: Listen{
				Shared:   Shared{Port: 8443},
				TLS:      true,
				CertFile: "cert.pem",
			},
			wantErrs: 1,
		},
		{
			name: "cert without tls",
			cfg: Listen{
				Shared:   Shared{Port: 8080},
				CertFile: "cert.pem",
			},
			wantErrs: 1,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if errs := tc.cfg.Validate(); len(errs) != tc.wantErrs {
				t.Errorf("Validate() = %v, want %d errors", errs, tc.wantErrs)
			}
		})
	}
}

func TestConnect_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      Connect
		wantErrs int
	}{
		{
			name:     "http",
			cfg:      Connect{Shared: Shared{Host: "example.com", Port: 80}, Scheme: "http"},
			wantErrs: 0,
		},
		{
			name:     "https with ca",
			cfg:      Connect{Shared: Shared{Host: "example.com", Port: 443}, Scheme: "https", CAFile: "ca.pem"},
			wantErrs: 0,
		},
		{
			name:     "unknown scheme",
			cfg:      Connect{Shared: Shared{Port: 21}, Scheme: "ftp"},
			wantErrs: 1,
		},
		{
			name:     "ca without https",
			cfg:      Connect{Shared: Shared{Port: 80}, Scheme: "http", CAFile: "ca.pem"},
			wantErrs: 1,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if errs := tc.cfg.Validate(); len(errs) != tc.wantErrs {
				t.Errorf("Validate() = %v, want %d errors", errs, tc.wantErrs)
			}
		})
	}
}

func TestGetTCPDialerFunc_Default(t *testing.T) {
	t.Parallel()

	if GetTCPDialerFunc(nil) == nil {
		t.Fatal("GetTCPDialerFunc(nil) = nil, want default dialer")
	}
	if GetTCPDialerFunc(&Dependencies{}) == nil {
		t.Fatal("GetTCPDialerFunc(&Dependencies{}) = nil, want default dialer")
	}
}

func TestGetTCPDialerFunc_Injected(t *testing.T) {
	t.Parallel()

	called := false
	deps := &Dependencies{
		TCPDialer: func(network string, laddr, raddr *net.TCPAddr) (net.Conn, error) {
			called = true
			return nil, nil
		},
	}

	f := GetTCPDialerFunc(deps)
	f("tcp", nil, &net.TCPAddr{})
	if !called {
		t.Error("injected dialer was not used")
	}
}

func TestGetTCPListenerFunc_Injected(t *testing.T) {
	t.Parallel()

	called := false
	deps := &Dependencies{
		TCPListener: func(network string, laddr *net.TCPAddr) (net.Listener, error) {
			called = true
			return nil, nil
		},
	}

	f := GetTCPListenerFunc(deps)
	f("tcp", &net.TCPAddr{})
	if !called {
		t.Error("injected listener was not used")
	}
}
