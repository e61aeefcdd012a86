package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajaybhargavb/Razor/internal/baseline"
	"github.com/ajaybhargavb/Razor/internal/fixture"
	"github.com/ajaybhargavb/Razor/internal/pipeline"
	"github.com/ajaybhargavb/Razor/internal/project"
)

const defaultSuiteName = "razor"

// suiteConfig is the resolved configuration for one verify/accept run:
// command flags merged with the nearest razor.toml, flags winning.
type suiteConfig struct {
	name      string
	fixtures  string
	baselines string
	ext       string
	jobs      int
	noCache   bool
	uiValue   string
	maxDiag   int
	disabled  func(string) bool
}

// resolveSuiteConfig reads the suite flags and the optional manifest. With
// no manifest the start directory is treated as a project root with the
// conventional testdata layout.
func resolveSuiteConfig(cmd *cobra.Command, args []string) (suiteConfig, error) {
	var cfg suiteConfig

	startDir := "."
	if len(args) == 1 {
		startDir = args[0]
	}

	fixturesFlag, err := cmd.Flags().GetString("fixtures")
	if err != nil {
		return cfg, fmt.Errorf("failed to get fixtures flag: %w", err)
	}
	baselinesFlag, err := cmd.Flags().GetString("baselines")
	if err != nil {
		return cfg, fmt.Errorf("failed to get baselines flag: %w", err)
	}
	cfg.jobs, err = cmd.Flags().GetInt("jobs")
	if err != nil {
		return cfg, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	cfg.noCache, err = cmd.Flags().GetBool("no-cache")
	if err != nil {
		return cfg, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	cfg.uiValue, err = cmd.Flags().GetString("ui")
	if err != nil {
		return cfg, fmt.Errorf("failed to get ui flag: %w", err)
	}
	cfg.maxDiag, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return cfg, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	cfg.name = defaultSuiteName
	cfg.ext = fixture.Ext
	cfg.fixtures = filepath.Join(startDir, "testdata", "vectors")
	cfg.baselines = filepath.Join(startDir, "testdata", "baselines")

	manifest, found, err := project.Load(startDir)
	if err != nil {
		return cfg, err
	}
	if found {
		cfg.name = manifest.Config.Project.Name
		cfg.ext = manifest.Config.Fixtures.Ext
		cfg.fixtures = manifest.FixturesDir()
		cfg.baselines = manifest.BaselinesDir()
		cfg.disabled = manifest.Config.PassDisabled
		if manifest.Config.Limits.MaxDiagnostics > 0 && !cmd.Root().PersistentFlags().Changed("max-diagnostics") {
			cfg.maxDiag = manifest.Config.Limits.MaxDiagnostics
		}
	}

	if fixturesFlag != "" {
		cfg.fixtures = fixturesFlag
	}
	if baselinesFlag != "" {
		cfg.baselines = baselinesFlag
	}
	return cfg, nil
}

// runSuite executes a verify or accept round over every vector the resolved
// configuration names. Per-vector failures are printed and turn into a
// silent non-zero exit; the returned error covers setup and cancellation.
func runSuite(cmd *cobra.Command, args []string, update bool) error {
	cfg, err := resolveSuiteConfig(cmd, args)
	if err != nil {
		return err
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	uiModeValue, err := readUIMode(cfg.uiValue)
	if err != nil {
		return err
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	profCleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer profCleanup()

	var cache *baseline.ReceiptCache
	if !cfg.noCache {
		cache, err = baseline.OpenReceiptCache(defaultSuiteName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "receipt cache disabled: %v\n", err)
			cache = nil
		}
	}

	files, err := baseline.ListVectors(cfg.fixtures, cfg.ext)
	if err != nil {
		return fmt.Errorf("failed to list vectors: %w", err)
	}
	if len(files) == 0 {
		if !quiet {
			fmt.Fprintf(os.Stdout, "no %s vectors under %s\n", cfg.ext, cfg.fixtures)
		}
		return nil
	}

	suite := baseline.Suite{
		Fixtures: cfg.fixtures,
		Ext:      cfg.ext,
		Context: baseline.Context{
			Name:   cfg.name,
			Dir:    cfg.baselines,
			Update: update,
		},
		Parser: fixture.Loader{},
		Passes: assemblePasses(true, cfg.disabled),
		Options: pipeline.ParseOptions{
			DesignTime:     true,
			MaxDiagnostics: cfg.maxDiag,
		},
		Jobs:  cfg.jobs,
		Cache: cache,
	}

	verb := "verify"
	if update {
		verb = "accept"
	}

	start := time.Now()
	var results []baseline.FileResult
	if shouldUseTUI(uiModeValue) && !quiet {
		results, err = runSuiteWithUI(cmd.Context(), "razor "+verb, files, suite)
	} else {
		results, err = suite.Run(cmd.Context())
	}
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("%s failed: %w", verb, err)
	}

	cached := 0
	for _, r := range results {
		if r.Cached {
			cached++
		}
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", r.Name, r.Err)
		}
	}
	failed := baseline.Failed(results)

	if !quiet {
		verbed := "verified"
		if update {
			verbed = "accepted"
		}
		fmt.Fprintf(os.Stdout, "%s %d vectors (%d cached, %d failed) in %.1f ms\n",
			verbed, len(results), cached, failed, toMillis(elapsed))
	}

	if failed > 0 {
		// Suppress cobra usage output; the failures are already printed.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}
