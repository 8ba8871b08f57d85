package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"greenline/internal/config"
	"greenline/internal/projects"
	"greenline/internal/services"
	"greenline/internal/slug"
	"greenline/internal/videomatch"
)

func newVideosCommand(ctx *commandContext) *cobra.Command {
	var fromName bool
	var dryRun bool
	var videosDir string
	var watch bool

	cmd := &cobra.Command{
		Use:   "videos",
		Short: "Associa vídeos de fundo aos projetos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			svc, err := ctx.projectService(cmd)
			if err != nil {
				return err
			}
			dir := cfg.Paths.VideosDir
			if strings.TrimSpace(videosDir) != "" {
				if dir, err = config.ExpandPath(videosDir); err != nil {
					return services.Wrap(services.ErrValidation, "cli", "videos",
						"Caminho inválido para --videos-dir: "+videosDir, err)
				}
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			run := func(runCtx context.Context) error {
				report, err := mapVideos(runCtx, svc, cfg, dir, fromName, dryRun)
				if err != nil {
					return err
				}
				renderVideoReport(out, report, dryRun, colorize)
				return nil
			}

			opCtx := operationContext(cmd)
			if err := run(opCtx); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			watcher := &videomatch.Watcher{
				Dir:       dir,
				Extension: cfg.Videos.Extension,
				Debounce:  cfg.WatchDebounce(),
				Logger:    ctx.loggerFor(cmd),
				OnChange:  run,
			}
			if err := watcher.Run(opCtx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&fromName, "from-name", false, "Derive every video file name from the project name")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report changes without writing projects.json")
	cmd.Flags().StringVar(&videosDir, "videos-dir", "", "Videos directory (overrides paths.videos_dir)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep running and remap when the videos directory changes")
	return cmd
}

func buildMatcher(cfg *config.Config, dir string, forceFromName, tolerateMissing bool) (*videomatch.Matcher, error) {
	files, err := videomatch.ScanDir(dir)
	if err != nil {
		if !tolerateMissing || !errors.Is(err, services.ErrNotFound) {
			return nil, err
		}
		files = nil
	}
	tok := slug.NewTokenizer(slug.Tables{Synonyms: cfg.Videos.Synonyms, Stopwords: cfg.Videos.Stopwords})
	index := videomatch.BuildIndex(files, cfg.Videos.Extension, tok)
	return videomatch.NewMatcher(index, tok, videomatch.Options{
		Extension:     cfg.Videos.Extension,
		FallbackFile:  cfg.Videos.FallbackFile,
		ForceFromName: forceFromName,
	}), nil
}

func mapVideos(ctx context.Context, svc *projects.Service, cfg *config.Config, dir string, fromName, dryRun bool) (videomatch.Report, error) {
	var report videomatch.Report
	// Force mode does not need the directory; the file names come from the records.
	matcher, err := buildMatcher(cfg, dir, fromName, fromName)
	if err != nil {
		return report, err
	}
	err = svc.MapVideos(ctx, func(records []projects.Record) int {
		report = matcher.Apply(records)
		return report.Updated
	}, dryRun)
	return report, err
}

func renderVideoReport(out io.Writer, report videomatch.Report, dryRun, colorize bool) {
	fmt.Fprintf(out, "Videos indexed: %d\n", report.Indexed)
	fmt.Fprintf(out, "Projects: %d\n", report.Projects)
	fmt.Fprintf(out, "Updated: %d\n", report.Updated)
	if dryRun {
		fmt.Fprintln(out, paint("Dry run: projects.json não foi alterado", ansiYellow, colorize))
	}
	if len(report.Corrected) > 0 {
		fmt.Fprintln(out, paint("Corrected existing video entries:", ansiBlue, colorize))
		for _, c := range report.Corrected {
			fmt.Fprintf(out, " - %s: %s -> %s\n", c.Project, c.From, c.To)
		}
	}
	if len(report.Matched) > 0 {
		fmt.Fprintln(out, paint("Matched by name/relaxed:", ansiGreen, colorize))
		for _, m := range report.Matched {
			fmt.Fprintf(out, " - %s: %s (%s)\n", m.Project, m.To, m.Strategy)
		}
	}
	if len(report.Unmatched) > 0 {
		fmt.Fprintln(out, paint("No match found for:", ansiYellow, colorize))
		for _, name := range report.Unmatched {
			fmt.Fprintf(out, " - %s\n", name)
		}
	}
}
