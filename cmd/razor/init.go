package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajaybhargavb/Razor/scaffold"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new razor project",
	Long: `Initialize a new razor project by creating a project manifest (razor.toml)
and a starter tree vector. If [path|name] is omitted, initializes the current
directory. If a non-existing name is provided, a directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit initializes a project at the specified target path (or the
// current working directory when no argument or "." is provided) by
// creating a razor.toml manifest and the conventional testdata layout with
// one starter vector.
//
// It resolves the target path, creates the directory if it does not exist,
// derives a project name from the directory basename (falling back to
// "razor-project" for invalid names), and refuses to initialize if
// razor.toml already exists.
func runInit(cmd *cobra.Command, args []string) error {
	// Resolve target directory
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		// treat as path or name relative to cwd
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	// Ensure directory exists
	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// Determine project name from directory basename
	name := filepath.Base(target)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "razor-project"
	}

	// Create manifest file if not exists
	manifestPath := filepath.Join(target, "razor.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	manifest := buildDefaultManifest(name)
	if err := os.WriteFile(manifestPath, []byte(manifest), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	// Create the conventional vector layout with the starter vector
	vectorDir := filepath.Join(target, "testdata", "vectors")
	if err := os.MkdirAll(vectorDir, 0o755); err != nil {
		return fmt.Errorf("failed to create vector directory: %w", err)
	}
	vectorPath := filepath.Join(vectorDir, "example.tree")
	createdVector := false
	if _, err := os.Stat(vectorPath); errors.Is(err, os.ErrNotExist) {
		starter, err := fs.ReadFile(scaffold.TemplatesFS(), "templates/example.tree")
		if err != nil {
			return fmt.Errorf("failed to read starter vector: %w", err)
		}
		if err := os.WriteFile(vectorPath, starter, 0o600); err != nil {
			return fmt.Errorf("failed to write starter vector: %w", err)
		}
		createdVector = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized razor project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - razor.toml\n")
	if createdVector {
		fmt.Fprintf(os.Stdout, "  - testdata/vectors/example.tree\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - testdata/vectors/example.tree (existing)\n")
	}
	fmt.Fprintf(os.Stdout, "run \"razor accept\" to record its first baseline\n")
	return nil
}

// buildDefaultManifest returns a minimal TOML manifest for a razor project
// using the provided project name. The manifest pins the conventional
// vector and baseline directories so later edits have something to start
// from.
func buildDefaultManifest(name string) string {
	// Minimal TOML manifest used as a project marker.
	return fmt.Sprintf(`# Razor project manifest
[project]
name = "%s"

[fixtures]
dir = "testdata/vectors"
ext = ".tree"

[baselines]
dir = "testdata/baselines"
`, name)
}
