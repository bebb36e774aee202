package config

// Defaults for the release being provisioned. All of them are overridable
// through the config file or command-line flags.
const (
	DefaultServiceName    = "gophish"
	DefaultServiceVersion = "v0.12.1"
	DefaultMirror         = "https://github.com/gophish/gophish/releases/download"
	DefaultSmokeFlag      = "--help"

	// DefaultAdminPort is the port the stock release serves its admin UI on.
	DefaultAdminPort = 3333

	// DefaultConfigFile is the config filename looked up in the current directory.
	DefaultConfigFile = "hostprep.yaml"
)

// DefaultPackages are the OS packages required on the host. The archive,
// download, and DNS steps are performed natively, so only the external
// certificate client remains a hard OS-level dependency.
var DefaultPackages = []string{"certbot"}

// FirewallPorts are the ports the operator must open for the provisioned
// service: HTTP and HTTPS for the public listeners plus the admin port.
var FirewallPorts = []int{80, 443}
