package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/JeremyDev87/leonidas/internal/orchestrator"
	"github.com/spf13/cobra"
)

// NewPostMergeCmd creates the post-merge command
func NewPostMergeCmd(c *container) *cobra.Command {
	var workflowFile string
	cmd := &cobra.Command{
		Use:   "post-merge <issue-number>",
		Short: "Post-process the pull request for an issue and trigger CI",
		Long: `Post-process the pull request for an issue and trigger CI.

This command runs after the coding agent has pushed the issue branch:
- Finds the pull request opened from the issue branch
- Copies the issue's labels onto the pull request, minus the tracking label
- Assigns the issue author to the pull request
- Dispatches the CI workflow against the issue branch (best-effort)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			issueNumber, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid issue number %q: %w", args[0], err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), orchestrator.DefaultWorkflowTimeout)
			defer cancel()
			return c.workflow.PostMerge(ctx, issueNumber, workflowFile)
		},
	}
	cmd.Flags().StringVar(&workflowFile, "workflow", "", "Workflow file to dispatch (defaults to the configured workflow_file)")
	return cmd
}
