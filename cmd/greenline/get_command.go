package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"greenline/internal/projects"
	"greenline/internal/services"
)

func newGetCommand(ctx *commandContext) *cobra.Command {
	var name string
	var format string
	var resolveVideo bool

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Mostra o registro completo de um projeto",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.projectService(cmd)
			if err != nil {
				return err
			}
			rec, err := svc.Get(operationContext(cmd), name)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(strings.TrimSpace(format)) {
			case "", "json":
				enc := json.NewEncoder(out)
				enc.SetEscapeHTML(false)
				enc.SetIndent("", "  ")
				if err := enc.Encode(rec); err != nil {
					return fmt.Errorf("encode record: %w", err)
				}
			case "yaml", "yml":
				data, err := recordYAML(rec)
				if err != nil {
					return err
				}
				fmt.Fprint(out, string(data))
			default:
				return services.Wrap(services.ErrValidation, "cli", "get",
					fmt.Sprintf("Formato desconhecido: %s (use json ou yaml)", format), nil)
			}

			if resolveVideo {
				cfg, _ := ctx.ensureConfig()
				matcher, err := buildMatcher(cfg, cfg.Paths.VideosDir, false, true)
				if err != nil {
					return err
				}
				res := matcher.Resolve(rec)
				fmt.Fprintf(out, "Vídeo: %s (%s)\n", res.File, res.Strategy)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json, yaml)")
	cmd.Flags().BoolVar(&resolveVideo, "resolve-video", false, "Also print the video the site would show for this project")
	return cmd
}

// recordYAML renders rec as block YAML keeping the dataset's field order.
func recordYAML(rec projects.Record) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("convert record: %w", err)
	}
	clearStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// clearStyle drops the flow/quoted styles inherited from JSON input.
func clearStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		clearStyle(child)
	}
}
