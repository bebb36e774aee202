package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWizardResult_ToConfig(t *testing.T) {
	t.Parallel()
	r := &WizardResult{
		Domain:   "example.com",
		PublicIP: "203.0.113.10",
	}

	cfg := r.ToConfig()

	assert.Equal(t, "example.com", cfg.Domain)
	assert.Equal(t, "203.0.113.10", cfg.PublicIP)
	// Everything else keeps its defaults
	assert.Equal(t, DefaultServiceVersion, cfg.Service.Version)
	assert.NoError(t, cfg.Validate())
}
