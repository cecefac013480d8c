package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"flint/internal/diag"
	"flint/internal/diagfmt"
	"flint/internal/driver"
	"flint/internal/project"
)

var checkCmd = &cobra.Command{
	Use:   "check [path...]",
	Short: "Analyze files or directories and report findings",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Bool("follow-includes", false, "follow include(...) graphs from the given entry files")
	checkCmd.Flags().Bool("no-cache", false, "bypass the on-disk result cache")
	checkCmd.Flags().Bool("dedup", false, "drop exact duplicate findings")
}

func buildOptions(cmd *cobra.Command, manifest project.Manifest) *driver.Options {
	opts := &driver.Options{
		TargetVersion:  manifest.TargetVersion,
		MaxDiagnostics: manifest.MaxDiagnostics,
		Disabled:       manifest.DisabledSet(),
		SideChannel:    os.Stdout,
	}
	if v, _ := cmd.Flags().GetString("target-version"); v != "" {
		opts.TargetVersion = v
	}
	if n, _ := cmd.Flags().GetInt("max-diagnostics"); cmd.Flags().Changed("max-diagnostics") {
		opts.MaxDiagnostics = n
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); !noCache {
		if cache, err := driver.OpenDiskCache("flint"); err == nil {
			opts.Cache = cache
		}
	}
	return opts
}

func loadManifest(start string) project.Manifest {
	if path, ok := project.FindManifest(start); ok {
		if m, err := project.LoadManifest(path); err == nil {
			return m
		}
	}
	return project.DefaultManifest()
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	if len(args) == 0 {
		args = []string{"."}
	}
	quiet, _ := cmd.Flags().GetBool("quiet")
	dedup, _ := cmd.Flags().GetBool("dedup")
	followIncludes, _ := cmd.Flags().GetBool("follow-includes")
	fmtOpts := diagfmt.Options{Color: colorEnabled(cmd)}

	manifest := loadManifest(filepath.Dir(firstPath(args)))
	opts := buildOptions(cmd, manifest)

	var results []driver.Result
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return err
		}
		switch {
		case info.IsDir():
			res, err := runDir(cmd.Context(), arg, opts)
			if err != nil {
				return err
			}
			results = append(results, res...)
		case followIncludes:
			results = append(results, driver.AnalyzePackage(arg, opts)...)
		default:
			results = append(results, driver.AnalyzeFile(arg, opts))
		}
	}

	errs, warns, infos := 0, 0, 0
	analysisFailed := false
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "flint: %s: %v\n", res.Path, res.Err)
			analysisFailed = true
			continue
		}
		if dedup {
			res.Bag.Dedup()
		}
		diagfmt.Write(os.Stdout, res.Path, res.Bag, fmtOpts)
		for _, d := range res.Bag.Items() {
			switch d.Severity {
			case diag.SevError:
				errs++
			case diag.SevWarning:
				warns++
			default:
				infos++
			}
		}
	}
	if !quiet {
		diagfmt.Summary(os.Stderr, errs, warns, infos, fmtOpts)
	}
	if errs > 0 || analysisFailed {
		return fmt.Errorf("check failed")
	}
	return nil
}

func runDir(ctx context.Context, dir string, opts *driver.Options) ([]driver.Result, error) {
	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	if isTerminal(os.Stdout) && len(files) > 1 {
		return runFilesWithUI(ctx, "flint check "+dir, files, opts)
	}
	return driver.AnalyzeFiles(ctx, files, opts, nil)
}

func firstPath(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
