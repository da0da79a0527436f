package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Version information (set at build time via ldflags)
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "smoketest",
	Short: "Smoke tests for a deployed backend API environment",
	Long: `smoketest verifies that a deployed backend API environment is healthy.

It checks two things:
  - The ECS service reached a steady state: the running task count
    matches the desired count and a single deployment is active
  - The public endpoints respond correctly through the load balancer

Typical usage after a deploy:
  smoketest verify --base-url http://<load-balancer-dns>`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
