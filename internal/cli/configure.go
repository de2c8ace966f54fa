package cli

import (
	"fmt"

	"github.com/aranaskd/blogctl/internal/config"
	"github.com/spf13/cobra"
)

var (
	configureBaseURL string
	configureTimeout int
	configureCache   bool
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Update the client configuration",
	Long: `Update the client configuration file. Only values given as flags are
changed; everything else keeps its current (or default) value.`,
	RunE: runConfigure,
}

func init() {
	configureCmd.Flags().StringVar(&configureBaseURL, "base-url", "", "base URL of the blog API")
	configureCmd.Flags().IntVar(&configureTimeout, "timeout", 0, "HTTP timeout in seconds")
	configureCmd.Flags().BoolVar(&configureCache, "cache", true, "enable the local post cache")
	rootCmd.AddCommand(configureCmd)
}

func runConfigure(cmd *cobra.Command, args []string) error {
	loader := config.NewLoader(cfgFile)
	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	if configureBaseURL != "" {
		cfg.BaseURL = configureBaseURL
	}
	if configureTimeout != 0 {
		cfg.TimeoutSeconds = configureTimeout
	}
	if cmd.Flags().Changed("cache") {
		cfg.Cache.Enabled = configureCache
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	path, err := loader.ConfigPath()
	if err != nil {
		return err
	}
	fmt.Printf("Configuration saved to: %s\n", path)
	return nil
}
