package handlers

import (
	"context"
	"fmt"
	"log"
)

// Setup runs the guided provisioning variant.
//
// The wizard prompts for the domain and public IP, offers to save the
// answers, and requires an explicit confirmation before the host is
// touched. Declining the confirmation exits cleanly without side effects.
func Setup(ctx context.Context, outputPath string) error {
	result, err := runWizard(ctx)
	if err != nil {
		return err
	}

	cfg := result.ToConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	if result.SaveConfig {
		if err := saveConfigFile(cfg, outputPath); err != nil {
			return err
		}
		log.Printf("Configuration saved to %s", outputPath)
	}

	if !result.Confirmed {
		fmt.Println("Nothing changed. Run 'hostprep provision' when you are ready.")
		return nil
	}

	manager, err := detectManager()
	if err != nil {
		return fmt.Errorf("environment check failed: %w", err)
	}

	return runPipeline(ctx, cfg, manager)
}
