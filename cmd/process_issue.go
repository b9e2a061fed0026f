package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/JeremyDev87/leonidas/internal/orchestrator"
	"github.com/spf13/cobra"
)

// NewProcessIssueCmd creates the process-issue command
func NewProcessIssueCmd(c *container) *cobra.Command {
	return &cobra.Command{
		Use:   "process-issue <issue-number>",
		Short: "Run the pre-work workflow for an issue",
		Long: `Run the pre-work workflow for an issue.

This command orchestrates the phase before coding starts:
- Parses sub-issue metadata from the issue body
- Gates on the declared dependency issue, stopping while it is open
- Discovers the authoritative plan comment
- Classifies the plan and, for decomposition plans, links the referenced
  sub-issues to the parent issue

A blocked dependency or a missing plan stops the run without error; the
command can be re-run once the situation changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			issueNumber, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid issue number %q: %w", args[0], err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), orchestrator.DefaultWorkflowTimeout)
			defer cancel()
			return c.workflow.ProcessIssue(ctx, issueNumber)
		},
	}
}
