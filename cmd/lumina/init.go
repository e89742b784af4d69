package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lumina/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new Lumina project",
	Long: `Initialize a new Lumina project by creating a project manifest (lumina.toml)
and a starter component (src/app.lum). If [path|name] is omitted, initializes
the current directory. If a non-existing name is provided, a directory will be
created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
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

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "lumina-app"
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	if err := os.WriteFile(manifestPath, []byte(defaultManifest(name)), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	appPath := filepath.Join(target, "src", "app.lum")
	createdApp := false
	if _, err := os.Stat(appPath); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(appPath), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(appPath, []byte(starterComponent(name)), 0o644); err != nil {
			return fmt.Errorf("failed to write starter component: %w", err)
		}
		createdApp = true
	}

	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", manifestPath)
		if createdApp {
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", appPath)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "run `lumina serve` to start the dev server")
	}
	return nil
}

func defaultManifest(name string) string {
	return fmt.Sprintf(`[package]
name = %q

[build]
entry = "src"
out = "dist"

[serve]
addr = "127.0.0.1:3000"
`, name)
}

func starterComponent(name string) string {
	return fmt.Sprintf(`component App {
  state count = 0

  fn bump() {
    count = count + 1
  }

  style {
    padding: 24
  }

  <div>
    <h1>%s</h1>
    <button @click={bump}>clicked {count} times</button>
  </div>
}
`, name)
}
