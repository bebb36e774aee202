package config

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
)

// WizardResult holds the user's choices from the guided setup wizard.
type WizardResult struct {
	Domain     string
	PublicIP   string
	SaveConfig bool
	Confirmed  bool
}

// RunWizard runs the guided setup wizard. It prompts for the domain and the
// expected public IPv4 address, offers to save the answers to hostprep.yaml,
// and gates the run behind a final confirmation. The confirmation blocks
// until answered; declining is not an error, the caller checks Confirmed.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		SaveConfig: true,
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Domain").
				Description("The domain the host will serve (A record must point here eventually)").
				Placeholder("example.com").
				Value(&result.Domain).
				Validate(ValidateDomain),

			huh.NewInput().
				Title("Public IPv4 address").
				Description("This host's public address, compared against the domain's A record").
				Placeholder("203.0.113.10").
				Value(&result.PublicIP).
				Validate(ValidateIPv4),
		),

		huh.NewGroup(
			huh.NewConfirm().
				Title("Save these answers to hostprep.yaml?").
				Value(&result.SaveConfig),
		),

		huh.NewGroup(
			huh.NewConfirm().
				Title("Start provisioning now?").
				Description("Installs packages, downloads the release, and requests a certificate").
				Value(&result.Confirmed),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("setup canceled: %w", err)
	}

	return result, nil
}

// ToConfig converts the wizard result to a full configuration with defaults.
func (r *WizardResult) ToConfig() *Config {
	cfg := New()
	cfg.Domain = r.Domain
	cfg.PublicIP = r.PublicIP
	return cfg
}
