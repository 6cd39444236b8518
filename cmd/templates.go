package cmd

import (
	"github.com/spf13/cobra"
)

var localTemplates bool

var projectTemplatesCmd = &cobra.Command{
	Use:   "project-templates",
	Short: "List project templates",
	Long: `List project templates as name, path, line and col.

Use --local to list only templates defined below the working directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := loadWorkspace(cmd.Context())
		if err != nil {
			return err
		}

		out := newRowWriter(cmd.OutOrStdout())
		for _, pt := range ws.ProjectTemplates(localTemplates) {
			out.row(append([]string{pt.Name.Value}, locationCols(pt.Name)...)...)
		}
		return out.Flush()
	},
}

func init() {
	projectTemplatesCmd.Flags().BoolVar(&localTemplates, "local", false, "only templates defined below the working directory")
	rootCmd.AddCommand(projectTemplatesCmd)
}
