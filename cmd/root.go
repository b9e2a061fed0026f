package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "leonidas",
	Short: "A CLI tool for orchestrating issue-driven coding workflows on GitHub",
	Long: `leonidas coordinates the GitHub side of an issue-driven coding workflow:
it discovers plan comments, gates sub-issues on their dependencies, links
decomposed sub-issues to their parent, and post-processes pull requests.`,
}

func Execute() error {
	return rootCmd.Execute()
}
