package crypto

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFiles writes a PEM certificate and key into dir as cert.pem and
// key.pem and returns both paths. The key file is created with mode 0600.
func WriteFiles(dir string, certPEM, keyPEM []byte) (certFile, keyFile string, err error) {
	certFile = filepath.Join(dir, "cert.pem")
	keyFile = filepath.Join(dir, "key.pem")

	if err := os.WriteFile(certFile, certPEM, 0644); err != nil {
		return "", "", fmt.Errorf("writing %s: %w", certFile, err)
	}
	if err := os.WriteFile(keyFile, keyPEM, 0600); err != nil {
		return "", "", fmt.Errorf("writing %s: %w", keyFile, err)
	}

	return certFile, keyFile, nil
}
