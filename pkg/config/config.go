// Package config defines configuration structures for wirecat commands and
// the injectable network dependencies used in tests.
package config

import "fmt"

// Shared holds settings common to the listen and connect commands.
type Shared struct {
	Host    string
	Port    int
	Verbose bool
}

// Validate checks the shared settings and returns all problems found.
func (c *Shared) Validate() []error {
	var errors []error

	if c.Port < 1 || c.Port > 65535 {
		errors = append(errors, fmt.Errorf("'--port' must be in [1, 65535]"))
	}

	return errors
}

// Listen holds the settings of the listen command.
type Listen struct {
	Shared

	TLS      bool
	CertFile string
	KeyFile  string
}

// Validate checks the listen settings and returns all problems found.
func (c *Listen) Validate() []error {
	errors := c.Shared.Validate()

	if c.TLS && (c.CertFile == "" || c.KeyFile == "") {
		errors = append(errors, fmt.Errorf("'--tls' requires both '--cert' and '--key'"))
	}
	if !c.TLS && (c.CertFile != "" || c.KeyFile != "") {
		errors = append(errors, fmt.Errorf("You must use '--tls' to use '--cert' and '--key'"))
	}

	return errors
}

// Connect holds the settings of the connect command.
type Connect struct {
	Shared

	Scheme string
	CAFile string
}

// Validate checks the connect settings and returns all problems found.
func (c *Connect) Validate() []error {
	errors := c.Shared.Validate()

	if c.Scheme != "http" && c.Scheme != "https" {
		errors = append(errors, fmt.Errorf("'--scheme' must be http or https"))
	}
	if c.CAFile != "" && c.Scheme != "https" {
		errors = append(errors, fmt.Errorf("You must use '--scheme https' to use '--ca'"))
	}

	return errors
}
