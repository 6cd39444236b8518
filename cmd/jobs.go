package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zuul-tools/zuul-ls/internal/zuul"
)

var localJobs bool

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List job definitions",
	Long: `List every job definition in discovery order as name and location.

Use --local to list only jobs defined below the working directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := loadWorkspace(cmd.Context())
		if err != nil {
			return err
		}

		jobs := ws.Jobs.All()
		if localJobs {
			jobs = ws.Jobs.Under(ws.WorkDir)
		}
		return printJobs(cmd, jobs)
	},
}

var jobHierarchyCmd = &cobra.Command{
	Use:   "job-hierarchy NAME",
	Short: "Show the parent chain of a job",
	Long:  "Show a job followed by its ancestors, nearest parent first.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := loadWorkspace(cmd.Context())
		if err != nil {
			return err
		}

		hierarchy := ws.Jobs.Hierarchy(args[0])
		if len(hierarchy) == 0 {
			return fmt.Errorf("job %q not found", args[0])
		}
		return printJobs(cmd, hierarchy)
	},
}

func init() {
	jobsCmd.Flags().BoolVar(&localJobs, "local", false, "only jobs defined below the working directory")
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(jobHierarchyCmd)
}

func printJobs(cmd *cobra.Command, jobs []*zuul.Job) error {
	out := newRowWriter(cmd.OutOrStdout())
	for _, job := range jobs {
		out.row(job.Name.Value, position(job.Name))
	}
	return out.Flush()
}
