package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zuul-tools/zuul-ls/internal/search"
	"github.com/zuul-tools/zuul-ls/internal/variable"
)

var jobVarsCmd = &cobra.Command{
	Use:   "job-vars NAME",
	Short: "Show the variables visible to a job",
	Long: `Show the variables visible to a job, one row per definition.

Columns: name, defining job or role, value, path, line, col.

Job vars along the hierarchy take precedence over variables set by the
job's playbooks, which take precedence over defaults of roles those
playbooks run. Registered task results come last.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := loadWorkspace(cmd.Context())
		if err != nil {
			return err
		}

		if _, ok := ws.Jobs.ByName(args[0]); !ok {
			return fmt.Errorf("job %q not found", args[0])
		}
		group := search.JobVars(ws.Jobs, args[0], ws)
		return printVars(cmd, group.Flatten())
	},
}

var workDirVarsCmd = &cobra.Command{
	Use:   "workdir-vars",
	Short: "Show the vars of jobs defined in the working directory",
	Long: `Show the vars of every job defined below the working directory and of
their ancestors, parents before children.

Columns: name, job, value, path, line, col.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := loadWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		return printVars(cmd, search.WorkDirVarRows(ws.Jobs, ws.WorkDir))
	},
}

func init() {
	rootCmd.AddCommand(jobVarsCmd)
	rootCmd.AddCommand(workDirVarsCmd)
}

func printVars(cmd *cobra.Command, infos []variable.Info) error {
	out := newRowWriter(cmd.OutOrStdout())
	for _, info := range infos {
		out.row(append([]string{info.Name.Value, info.Source.Label(), info.Value}, locationCols(info.Name)...)...)
	}
	return out.Flush()
}
