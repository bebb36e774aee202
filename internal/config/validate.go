package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Validate checks the configuration for errors. It is called after defaults
// are applied, so every field it inspects is either user-supplied or defaulted.
func (c *Config) Validate() error {
	if c.Domain == "" {
		return fmt.Errorf("domain is required")
	}
	if err := ValidateDomain(c.Domain); err != nil {
		return err
	}

	if c.PublicIP == "" {
		return fmt.Errorf("public IP is required")
	}
	if err := ValidateIPv4(c.PublicIP); err != nil {
		return err
	}

	if c.Service.Name == "" {
		return fmt.Errorf("service name is required")
	}
	if !strings.HasPrefix(c.Service.Version, "v") {
		return fmt.Errorf("service version should start with 'v' (e.g. 'v0.12.1'), got %q", c.Service.Version)
	}

	u, err := url.Parse(c.Service.Mirror)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("service mirror must be an absolute URL, got %q", c.Service.Mirror)
	}

	if c.Service.AdminPort <= 0 || c.Service.AdminPort > 65535 {
		return fmt.Errorf("admin port must be between 1 and 65535, got %d", c.Service.AdminPort)
	}

	return nil
}

// ValidateDomain validates a fully qualified domain name.
func ValidateDomain(s string) error {
	if s == "" {
		return fmt.Errorf("domain is required")
	}
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return fmt.Errorf("invalid domain format (expected example.com)")
	}
	for _, part := range parts {
		if part == "" {
			return fmt.Errorf("invalid domain format (empty label in %q)", s)
		}
	}
	return nil
}

// ValidateIPv4 validates a dotted-quad IPv4 address.
func ValidateIPv4(s string) error {
	if s == "" {
		return fmt.Errorf("IP address is required")
	}
	ip := net.ParseIP(s)
	if ip == nil || ip.To4() == nil {
		return fmt.Errorf("invalid IPv4 address: %q", s)
	}
	return nil
}
