package preflight

import (
	"context"
	"path/filepath"

	"greenline/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	// Skipped marks checks for features that are turned off.
	Skipped bool
	Detail  string
}

// Options selects optional checks.
type Options struct {
	// Probe contacts the configured email provider over the network.
	Probe bool
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config, opts Options) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDataset(cfg.Paths.Dataset),
		CheckDirectoryAccess("Dataset directory", filepath.Dir(cfg.Paths.Dataset), AccessWrite),
		CheckDirectoryAccess("Videos directory", cfg.Paths.VideosDir, AccessRead),
		CheckArchive(cfg.Contact.ArchivePath),
		CheckProviderConfig(cfg),
	}

	if opts.Probe {
		results = append(results, ProbeProvider(ctx, cfg))
	}
	return results
}

// Failed returns the results that neither passed nor were skipped.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed && !r.Skipped {
			out = append(out, r)
		}
	}
	return out
}
