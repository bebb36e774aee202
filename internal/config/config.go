// Package config defines the provisioning configuration, its defaults,
// loading, validation, and the interactive setup wizard.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config is the complete configuration for a provisioning run.
// It is resolved once at startup and passed by reference into every stage;
// no stage reads ambient environment state.
type Config struct {
	// Domain is the fully qualified domain the host will serve.
	Domain string `mapstructure:"domain" yaml:"domain"`

	// PublicIP is the host's expected public IPv4 address. The DNS
	// validation stage compares the domain's A record against it.
	PublicIP string `mapstructure:"public_ip" yaml:"public_ip"`

	// WorkDir is the directory owned by the run. It caches downloaded
	// archives across runs. Defaults to ~/.hostprep.
	WorkDir string `mapstructure:"work_dir" yaml:"work_dir"`

	// Packages are the OS packages required on the host. Installing an
	// already-installed package is a no-op.
	Packages []string `mapstructure:"packages" yaml:"packages"`

	// Service describes the release being provisioned.
	Service ServiceConfig `mapstructure:"service" yaml:"service"`

	// Cert configures the external certificate client.
	Cert CertConfig `mapstructure:"cert" yaml:"cert"`

	// Configure holds the optional post-install configuration transcript.
	Configure ConfigureConfig `mapstructure:"configure" yaml:"configure,omitempty"`
}

// ServiceConfig describes the single-binary release to download and install.
type ServiceConfig struct {
	// Name of the service. Used in archive and binary defaults.
	Name string `mapstructure:"name" yaml:"name"`

	// Version is the release version tag (e.g. "v0.12.1").
	Version string `mapstructure:"version" yaml:"version"`

	// Mirror is the base URL releases are downloaded from.
	Mirror string `mapstructure:"mirror" yaml:"mirror"`

	// Archive is the release archive filename. Defaults to
	// <name>-<version>-linux-64bit.zip.
	Archive string `mapstructure:"archive" yaml:"archive,omitempty"`

	// Binary is the executable expected inside the archive. Defaults to Name.
	Binary string `mapstructure:"binary" yaml:"binary,omitempty"`

	// SmokeFlag is the harmless flag passed to the binary after extraction
	// to prove it runs at all.
	SmokeFlag string `mapstructure:"smoke_flag" yaml:"smoke_flag,omitempty"`

	// SHA256 is an optional hex digest for fresh downloads. Cached archives
	// are not re-validated.
	SHA256 string `mapstructure:"sha256" yaml:"sha256,omitempty"`

	// AdminPort is the port the service's admin interface listens on.
	AdminPort int `mapstructure:"admin_port" yaml:"admin_port,omitempty"`
}

// CertConfig configures domain-validated TLS issuance.
type CertConfig struct {
	// Email is the registration email passed to the ACME client.
	Email string `mapstructure:"email" yaml:"email,omitempty"`

	// Skip disables the certificate stage entirely.
	Skip bool `mapstructure:"skip" yaml:"skip,omitempty"`
}

// ConfigureConfig holds the scripted transcript fed to the installed binary.
type ConfigureConfig struct {
	// Args are passed to the binary when running the transcript.
	Args []string `mapstructure:"args" yaml:"args,omitempty"`

	// Transcript lines are written to the binary's stdin, one per line.
	// Empty means the configure stage is skipped.
	Transcript []string `mapstructure:"transcript" yaml:"transcript,omitempty"`
}

// ArchiveName returns the configured archive filename, deriving the
// conventional <name>-<version>-linux-64bit.zip when unset.
func (s ServiceConfig) ArchiveName() string {
	if s.Archive != "" {
		return s.Archive
	}
	return fmt.Sprintf("%s-%s-linux-64bit.zip", s.Name, s.Version)
}

// BinaryName returns the configured binary name, defaulting to the service name.
func (s ServiceConfig) BinaryName() string {
	if s.Binary != "" {
		return s.Binary
	}
	return s.Name
}

// DownloadURL returns the full release download URL.
func (s ServiceConfig) DownloadURL() string {
	return fmt.Sprintf("%s/%s/%s", s.Mirror, s.Version, s.ArchiveName())
}

// applyDefaults fills in every unset field with its default value.
func (c *Config) applyDefaults() {
	if c.WorkDir == "" {
		c.WorkDir = DefaultWorkDir()
	}
	if c.Packages == nil {
		c.Packages = append([]string(nil), DefaultPackages...)
	}
	if c.Service.Name == "" {
		c.Service.Name = DefaultServiceName
	}
	if c.Service.Version == "" {
		c.Service.Version = DefaultServiceVersion
	}
	if c.Service.Mirror == "" {
		c.Service.Mirror = DefaultMirror
	}
	if c.Service.SmokeFlag == "" {
		c.Service.SmokeFlag = DefaultSmokeFlag
	}
	if c.Service.AdminPort == 0 {
		c.Service.AdminPort = DefaultAdminPort
	}
}

// DefaultWorkDir returns the default working directory under the invoking
// user's home directory. Falls back to a relative path if the home
// directory cannot be determined.
func DefaultWorkDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hostprep"
	}
	return filepath.Join(home, ".hostprep")
}

// New returns a configuration with all defaults applied.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
