package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewOpenPRCmd creates the open-pr command
func NewOpenPRCmd(c *container) *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "open-pr <issue-number>",
		Short: "Open a draft pull request from an issue branch",
		Long: `Open a draft pull request from the issue's branch onto the base branch.

The pull request body references the issue so merging closes it. If a pull
request for the branch already exists, the command reports it and exits
successfully.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			issueNumber, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid issue number %q: %w", args[0], err)
			}
			url, err := c.workflow.OpenDraftPR(cmd.Context(), issueNumber, title)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if url == "" {
				fmt.Fprintln(out, "Pull request already exists")
				return nil
			}
			fmt.Fprintf(out, "Created draft pull request: %s\n", url)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Pull request title (defaults to \"Resolve #<issue-number>\")")
	return cmd
}
