package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zuul-tools/zuul-ls/internal/repo"
)

var localRoles bool

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List Ansible roles",
	Long: `List the roles found in the working directory and the tenant's extra
role directories, sorted by name.

Use --local to list only roles below the working directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := loadWorkspace(cmd.Context())
		if err != nil {
			return err
		}

		roles := ws.Roles
		if localRoles {
			roles = ws.LocalRoles()
		}

		out := newRowWriter(cmd.OutOrStdout())
		for _, r := range roles {
			out.row(r.Name, repo.ShortenPath(r.Dir))
		}
		return out.Flush()
	},
}

func init() {
	rolesCmd.Flags().BoolVar(&localRoles, "local", false, "only roles below the working directory")
	rootCmd.AddCommand(rolesCmd)
}
