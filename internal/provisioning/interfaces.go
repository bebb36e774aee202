// Package provisioning provides shared types and interfaces for host provisioning.
//
// The provisioning domain is organized into focused subpackages:
//   - packages/ — OS package installation for required tools
//   - artifact/ — release archive download, extraction, and verification
//   - dnscheck/ — DNS A-record validation against the expected public IP
//   - cert/ — TLS certificate issuance via the external ACME client
//   - configure/ — post-install service configuration over stdin
//
// This root package contains the stage runner, shared state, and
// observability types used across subpackages.
package provisioning

// Stage defines the interface for a provisioning stage.
type Stage interface {
	// Name returns the human-readable name of this stage.
	Name() string

	// Run executes the provisioning logic for this stage.
	Run(ctx *Context) error
}
