package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zuul-tools/zuul-ls/internal/render"
	"github.com/zuul-tools/zuul-ls/internal/search"
)

var graphTitle string

var jobGraphCmd = &cobra.Command{
	Use:   "job-graph",
	Short: "Render the job hierarchy as PlantUML",
	Long: `Render the jobs defined below the working directory and their
ancestors as a PlantUML diagram with one arrow per child to parent edge.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := loadWorkspace(cmd.Context())
		if err != nil {
			return err
		}

		graph := search.JobGraph(ws.Jobs.WorkDirJobs(ws.WorkDir))
		out, err := render.JobGraph(graph, graphTitle)
		if err != nil {
			return fmt.Errorf("rendering job graph: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	jobGraphCmd.Flags().StringVar(&graphTitle, "title", "", "diagram title")
	rootCmd.AddCommand(jobGraphCmd)
}
