package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewTriggerCICmd creates the trigger-ci command
func NewTriggerCICmd(c *container) *cobra.Command {
	var workflowFile string
	cmd := &cobra.Command{
		Use:   "trigger-ci [branch]",
		Short: "Dispatch the CI workflow against a branch",
		Long: `Dispatch the CI workflow against a branch.

When no branch is given, the currently checked-out branch is used. The
dispatch is best-effort: a missing branch or a failed dispatch is logged
and the command still exits successfully.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var branch string
			if len(args) > 0 {
				branch = args[0]
			} else {
				if c.gitRepo == nil {
					return fmt.Errorf("no branch given and no local git repository to derive one from")
				}
				current, err := c.gitRepo.CurrentBranch(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to determine current branch: %w", err)
				}
				branch = current
			}
			return c.workflow.TriggerCI(cmd.Context(), branch, workflowFile)
		},
	}
	cmd.Flags().StringVar(&workflowFile, "workflow", "", "Workflow file to dispatch (defaults to the configured workflow_file)")
	return cmd
}
