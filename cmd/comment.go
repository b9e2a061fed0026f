package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewCommentCmd creates the comment command
func NewCommentCmd(c *container) *cobra.Command {
	return &cobra.Command{
		Use:   "comment <issue-number> <body>",
		Short: "Post a comment on an issue",
		Long: `Post a comment on an issue, retrying transient remote failures.

Useful for publishing workflow status back to the issue thread from CI.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			issueNumber, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid issue number %q: %w", args[0], err)
			}
			return c.workflow.PostComment(cmd.Context(), issueNumber, args[1])
		},
	}
}
