package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var datasetFlag string
	var logLevelFlag string

	ctx := newCommandContext(&configFlag, &datasetFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "greenline",
		Short:         "Manutenção do catálogo de projetos Greenline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&datasetFlag, "dataset", "", "Path to projects.json (overrides paths.dataset)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level for diagnostics on stderr (debug, info, warn, error)")

	for _, cmd := range newProjectCommands(ctx) {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(newVideosCommand(ctx))
	rootCmd.AddCommand(newSubmissionsCommand(ctx))
	rootCmd.AddCommand(newTestContactCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
