package provisioning

// DNSResult records the outcome of the DNS validation stage.
// ResolvedIP is empty when no A record was found.
type DNSResult struct {
	ResolvedIP string
	Matches    bool
}

// State holds the shared results of provisioning stages.
// It is progressively populated as each stage completes and is passed
// to subsequent stages that need earlier results.
type State struct {
	// Environment results (resolved once before any stage mutates the host)
	UseSudo        bool   // privileged commands are prefixed with sudo
	PackageManager string // resolved package manager binary (apt-get, dnf, yum)

	// Package results (populated by the packages stage)
	PackagesInstalled []string // packages that were actually installed this run

	// Artifact results (populated by the fetch and extract stages)
	ArchivePath string
	Downloaded  bool // false when the archive was already cached
	BinaryPath  string

	// Validation results (populated by the dnscheck stage)
	DNS *DNSResult

	// Certificate results (populated by the cert stage)
	FullchainPath string
	PrivkeyPath   string
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}
