package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/A31Nesta/EcLang/diag"
	"github.com/A31Nesta/EcLang/eclang"
	"github.com/A31Nesta/EcLang/eclangcfg"
)

// diskLoader resolves #include*/#template* targets relative to a base
// directory, the CLI's stand-in for spec.md §1's file-system
// collaborator.
type diskLoader struct{ baseDir string }

func (l diskLoader) Load(path string) (string, []byte, error) {
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(l.baseDir, path)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", nil, err
	}
	return full, data, nil
}

// newCoordinator builds an *eclang.EcLang rooted at the directory
// containing inputPath, with every manifest-listed and --lang binding
// registered, manifest first, in a single register pass before
// inputPath is touched.
func newCoordinator(cmd *cobra.Command, inputPath string) (*eclang.EcLang, error) {
	langPaths, err := cmd.Flags().GetStringArray("lang")
	if err != nil {
		return nil, err
	}
	manifestPath, err := cmd.Flags().GetString("lang-manifest")
	if err != nil {
		return nil, err
	}

	if manifestPath != "" {
		data, err := os.ReadFile(manifestPath)
		if err != nil {
			return nil, fmt.Errorf("reading language manifest %s: %w", manifestPath, err)
		}
		listed, err := eclangcfg.LoadManifest(data)
		if err != nil {
			return nil, fmt.Errorf("loading language manifest %s: %w", manifestPath, err)
		}
		manifestDir := filepath.Dir(manifestPath)
		resolved := make([]string, len(listed))
		for i, p := range listed {
			if !filepath.IsAbs(p) {
				p = filepath.Join(manifestDir, p)
			}
			resolved[i] = p
		}
		langPaths = append(resolved, langPaths...)
	}
	if len(langPaths) == 0 {
		return nil, fmt.Errorf("at least one --lang or --lang-manifest YAML binding is required")
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: verbosity(cmd)}))
	sink := diag.NewSlog(logger, "")

	loader := diskLoader{baseDir: filepath.Dir(inputPath)}
	e := eclang.New(loader, sink)

	for _, p := range langPaths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading language binding %s: %w", p, err)
		}
		l, err := eclangcfg.LoadLanguage(data)
		if err != nil {
			return nil, fmt.Errorf("loading language binding %s: %w", p, err)
		}
		if err := e.RegisterLanguage(l); err != nil {
			return nil, fmt.Errorf("registering language from %s: %w", p, err)
		}
	}
	return e, nil
}

// loadAndCompile reads inputPath and fully compiles it.
func loadAndCompile(cmd *cobra.Command, inputPath string) (*eclang.EcLang, error) {
	e, err := newCoordinator(cmd, inputPath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", inputPath, err)
	}
	if err := e.Compile(inputPath, data); err != nil {
		return nil, fmt.Errorf("compiling %s: %w", inputPath, err)
	}
	return e, nil
}

// writeOutput writes data to outputPath, or to stdout when outputPath
// is empty or "-".
func writeOutput(cmd *cobra.Command, outputPath string, data []byte) error {
	if outputPath == "" || outputPath == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
