package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zuul-tools/zuul-ls/internal/repo"
	"github.com/zuul-tools/zuul-ls/internal/search"
)

var jobPlaybooksCmd = &cobra.Command{
	Use:   "job-playbooks NAME",
	Short: "List the playbooks a job runs",
	Long: `List the playbooks a job runs as path, phase and declaring job.

Pre-run and run playbooks of ancestors come first; post-run playbooks of
the job itself come first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := loadWorkspace(cmd.Context())
		if err != nil {
			return err
		}

		if _, ok := ws.Jobs.ByName(args[0]); !ok {
			return fmt.Errorf("job %q not found", args[0])
		}

		out := newRowWriter(cmd.OutOrStdout())
		for _, row := range search.JobPlaybooks(ws.Jobs, args[0]) {
			out.row(repo.ShortenPath(row.Playbook.Path), string(row.Phase), row.Job)
		}
		return out.Flush()
	},
}

func init() {
	rootCmd.AddCommand(jobPlaybooksCmd)
}
