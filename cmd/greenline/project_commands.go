package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"greenline/internal/projects"
	"greenline/internal/services"
)

func newProjectCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newListCommand(ctx),
		newGetCommand(ctx),
		newAddCommand(ctx),
		newUpdateCommand(ctx),
		newRenameCommand(ctx),
		newRemoveCommand(ctx),
		newIncCommand(ctx),
	}
}

func operationContext(cmd *cobra.Command) context.Context {
	return services.WithOperation(cmd.Context(), "cli."+cmd.Name())
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var asTable bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista todos os projetos (nome + créditos)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.projectService(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asTable {
				records, err := svc.Records(operationContext(cmd))
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Total: %d\n", len(records))
				fmt.Fprintln(out, renderProjectTable(records))
				return nil
			}

			total, lines, err := svc.List(operationContext(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Total: %d\n", total)
			for line := range lines {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asTable, "table", false, "Render the dataset as a table")
	return cmd
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var in projects.NewRecord

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Adiciona um projeto",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.projectService(cmd)
			if err != nil {
				return err
			}
			if _, err := svc.Add(operationContext(cmd), in); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Adicionado.")
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&in.Name, "name", "", "Project name")
	flags.StringVar(&in.Link, "link", "", "Project page URL")
	flags.StringVar(&in.Country, "country", "", "Country (default Brasil)")
	flags.StringVar(&in.State, "state", "", "State")
	flags.StringVar(&in.Biome, "biome", "", "Biome")
	flags.StringVar(&in.Vintage, "vintage", "", "Vintage (MM/YYYY)")
	flags.StringVar(&in.Credits, "credits", "", "Carbon credits")
	flags.StringVar(&in.Video, "video", "", "Background video file")
	return cmd
}

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	var name string
	var sets []string

	cmd := &cobra.Command{
		Use:   "update --name N --set campo=valor [campo=valor ...]",
		Short: "Atualiza campos de um projeto",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				return services.Wrap(services.ErrValidation, "cli", "update", "É necessário fornecer --name", nil)
			}
			if !cmd.Flags().Changed("set") && len(args) == 0 {
				return services.Wrap(services.ErrValidation, "cli", "update", "Use --set campo=valor ...", nil)
			}
			items := append(append([]string{}, sets...), args...)
			assignments, err := projects.ParseAssignments(items)
			if err != nil {
				return err
			}
			svc, err := ctx.projectService(cmd)
			if err != nil {
				return err
			}
			if _, err := svc.Update(operationContext(cmd), name, assignments); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Atualizado.")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Assignment campo=valor (repeatable; extra assignments may follow)")
	return cmd
}

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var name, to string

	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Renomeia um projeto",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.projectService(cmd)
			if err != nil {
				return err
			}
			if _, err := svc.Rename(operationContext(cmd), name, to); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Renomeado.")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Current project name")
	cmd.Flags().StringVar(&to, "to", "", "New project name")
	return cmd
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove um projeto",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.projectService(cmd)
			if err != nil {
				return err
			}
			if err := svc.Remove(operationContext(cmd), name); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removido.")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	return cmd
}

func newIncCommand(ctx *commandContext) *cobra.Command {
	var name, delta string

	cmd := &cobra.Command{
		Use:   "inc",
		Short: "Incrementa (ou decrementa se negativo) créditos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.projectService(cmd)
			if err != nil {
				return err
			}
			rec, err := svc.Inc(operationContext(cmd), name, delta)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Créditos atualizados para %s\n", rec.Credits)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&delta, "credits", "", "Amount to add (negative subtracts)")
	return cmd
}
