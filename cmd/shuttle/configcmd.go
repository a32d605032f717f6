package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/entrhq/shuttle/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyVerbosity(cmd)

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		fmt.Printf("url:                 %s\n", cfg.URL)
		fmt.Printf("username:            %s\n", cfg.Username)
		fmt.Printf("password:            %s\n", redact(cfg.Password))
		fmt.Printf("recipient email:     %s\n", cfg.RecipientEmail)
		fmt.Printf("headless:            %t\n", cfg.Headless)
		fmt.Printf("timeout:             %.0f ms\n", cfg.Timeout)
		fmt.Printf("max retries:         %d\n", cfg.MaxRetries)
		fmt.Printf("screenshot on error: %t\n", cfg.ScreenshotOnError)

		return cfg.Validate()
	},
}

func redact(secret string) string {
	if secret == "" {
		return "(unset)"
	}
	return "********"
}
