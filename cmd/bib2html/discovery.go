package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileToRender is one BibTeX input and its destination.
type FileToRender struct {
	InputPath  string
	OutputPath string
}

// discoverAll expands every argument and rejects duplicate inputs.
func discoverAll(args []string, outputDir, ext string) ([]FileToRender, error) {
	var files []FileToRender
	seen := make(map[string]bool)
	for _, arg := range args {
		found, err := discoverFiles(arg, outputDir, ext)
		if err != nil {
			return nil, fmt.Errorf("discovering files: %w", err)
		}
		for _, f := range found {
			if !seen[f.InputPath] {
				seen[f.InputPath] = true
				files = append(files, f)
			}
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no .bib files in %s", ErrNoInput, strings.Join(args, ", "))
	}
	if len(files) > 1 && strings.HasSuffix(outputDir, ext) {
		return nil, fmt.Errorf("%w: --output %s names a file but %d inputs were found", ErrInvalidFlag, outputDir, len(files))
	}
	return files, nil
}

// discoverFiles finds the .bib files under inputPath.
func discoverFiles(inputPath, outputDir, ext string) ([]FileToRender, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateBibExtension(inputPath); err != nil {
			return nil, err
		}
		return []FileToRender{{InputPath: inputPath, OutputPath: resolveOutputPath(inputPath, outputDir, "", ext)}}, nil
	}

	var files []FileToRender
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".bib") {
			return nil
		}
		files = append(files, FileToRender{InputPath: path, OutputPath: resolveOutputPath(path, outputDir, inputPath, ext)})
		return nil
	})
	return files, err
}

// resolveOutputPath determines the output path for a .bib file.
// Without an output directory the result sits next to the input.
func resolveOutputPath(inputPath, outputDir, baseInputDir, ext string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	switch {
	case outputDir == "":
		return filepath.Join(filepath.Dir(inputPath), base+ext)
	case outputDir == stdoutPath, strings.HasSuffix(outputDir, ext):
		return outputDir
	}

	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(rel), base+ext)
		}
	}
	return filepath.Join(outputDir, base+ext)
}

// validateBibExtension checks that the file has a .bib extension.
func validateBibExtension(path string) error {
	if ext := filepath.Ext(path); !strings.EqualFold(ext, ".bib") {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}
