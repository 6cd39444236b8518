package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zuul-tools/zuul-ls/internal/config"
	"github.com/zuul-tools/zuul-ls/internal/logging"
	"github.com/zuul-tools/zuul-ls/internal/search"
)

var (
	workDir    string
	configPath string
	verbose    bool

	logger   *slog.Logger
	closeLog = func() {}
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "zuul-ls",
	Short: "Zuul CI configuration search tool and language server",
	Long: `zuul-ls indexes the Zuul configuration, playbooks and Ansible roles
visible from a working directory.

It performs the following core functions:
  - Job listing, hierarchy and playbook queries
  - Variable resolution for a job or a whole working directory
  - Role and project-template listing
  - Job graph rendering as PlantUML
  - A language server with go-to-definition and workspace symbols`,
	SilenceUsage: true, // Don't print usage on errors unrelated to flags
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, closer, err := logging.Setup(verbose)
		if err != nil {
			return fmt.Errorf("setting up logging: %w", err)
		}
		logger, closeLog = l, closer
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLog()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&workDir, "work-dir", ".", "working directory to search from")
	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", "", "config file path (default $"+config.PathEnv+" or the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}

// loadConfig reads the tenant configuration.
func loadConfig() (*config.Config, error) {
	path := config.ResolvePath(configPath)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// loadWorkspace loads the configuration and scans the working directory.
func loadWorkspace(ctx context.Context) (*search.Workspace, error) {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	// Scan repositories
	if logger != nil {
		ctx = logging.WithLogger(ctx, logger)
	}
	ws, err := search.Scan(ctx, workDir, cfg)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", workDir, err)
	}
	if IsVerbose() {
		fmt.Fprintf(os.Stderr, "Found %d repositories, %d jobs and %d roles\n",
			len(ws.RepoDirs), len(ws.Jobs.All()), len(ws.Roles))
	}
	return ws, nil
}
