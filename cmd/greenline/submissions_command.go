package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"greenline/internal/archive"
	"greenline/internal/services"
)

func newSubmissionsCommand(ctx *commandContext) *cobra.Command {
	submissionsCmd := &cobra.Command{
		Use:   "submissions",
		Short: "Inspeciona o arquivo de mensagens do formulário de contato",
	}
	submissionsCmd.AddCommand(newSubmissionsListCommand(ctx))
	return submissionsCmd
}

func newSubmissionsListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista as mensagens mais recentes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.Contact.ArchivePath) == "" {
				return services.Wrap(services.ErrConfiguration, "cli", "submissions list",
					"contact.archive_path não configurado", nil)
			}
			store, err := archive.Open(cfg.Contact.ArchivePath)
			if err != nil {
				return services.Wrap(services.ErrInternal, "cli", "submissions list",
					"Não foi possível abrir o arquivo de mensagens: "+err.Error(), err)
			}
			defer store.Close()

			subs, err := store.List(operationContext(cmd), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(subs) == 0 {
				fmt.Fprintln(out, "Nenhuma mensagem registrada.")
				return nil
			}
			colorize := shouldColorize(out)
			rows := make([][]string, 0, len(subs))
			for _, sub := range subs {
				rows = append(rows, []string{
					sub.ReceivedAt.Local().Format(time.DateTime),
					sub.Nome,
					sub.Email,
					sub.Assunto,
					paint(sub.Status, statusColor(sub.Status), colorize),
					sub.Provider,
				})
			}
			fmt.Fprintln(out, renderTable(submissionColumns, rows))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of submissions (0 for all)")
	return cmd
}

var submissionColumns = []column{
	{title: "Recebido"},
	{title: "Nome"},
	{title: "E-mail"},
	{title: "Assunto"},
	{title: "Status"},
	{title: "Provedor"},
}
