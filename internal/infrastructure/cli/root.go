package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "studio",
	Version: Version,
	Short:   "A workspace engine for creative campaign work",
	Long: `Studio is the workspace engine behind the Creative Co-Pilot.
It keeps a portfolio of campaign projects, each broken into modules
and steps: source intake, briefing, personas, concept exploration,
board reviews, critique, scene outlines and script drafts.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}
