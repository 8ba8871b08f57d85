package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"greenline/internal/contact"
)

func newTestContactCommand(ctx *commandContext) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "test-contact",
		Short: "Envia uma mensagem de teste pelo provedor configurado",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			sender, err := contact.NewSender(cfg)
			if err != nil {
				return err
			}
			sub := contact.Submission{
				Nome:     "Greenline CLI",
				Email:    email,
				Assunto:  "Teste",
				Mensagem: "Mensagem de teste enviada por greenline test-contact.",
			}
			if err := sub.Validate(); err != nil {
				return err
			}
			receipt, err := sender.Send(operationContext(cmd), contact.NewMessage(sub))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if receipt.ID != "" {
				fmt.Fprintf(out, "Mensagem de teste enviada via %s (id %s)\n", sender.Name(), receipt.ID)
			} else {
				fmt.Fprintf(out, "Mensagem de teste enviada via %s\n", sender.Name())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "teste@greenlinewy.com", "Reply-to address for the test message")
	return cmd
}
