package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"greenline/internal/preflight"
	"greenline/internal/services"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var probe bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verifica caminhos e provedor de e-mail configurados",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(operationContext(cmd), cfg, preflight.Options{Probe: probe})

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Greenline", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, result := range results {
				fmt.Fprintln(out, renderStatusLine(result.Name, preflightKind(result), result.Detail, colorize))
			}

			if failed := preflight.Failed(results); len(failed) > 0 {
				return services.Wrap(services.ErrConfiguration, "cli", "check",
					fmt.Sprintf("%d verificação(ões) falharam", len(failed)), nil)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&probe, "probe", false, "Also contact the email provider over the network")
	return cmd
}
