package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileValidator provides input and output file checks for the CLI
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputFile checks that the input file exists, is a regular file,
// and carries a supported extension
func (v *FileValidator) ValidateInputFile(path string, allowedExtensions []string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("input file does not exist",
			slog.String("file", path))
		return fmt.Errorf("input file %s does not exist", path)
	}
	if err != nil {
		v.logger.Error("failed to stat input file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		v.logger.Error("input path is a directory, not a file",
			slog.String("path", path))
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	if len(allowedExtensions) > 0 {
		ext := strings.ToLower(filepath.Ext(path))
		allowed := false
		for _, candidate := range allowedExtensions {
			if ext == strings.ToLower(candidate) {
				allowed = true
				break
			}
		}
		if !allowed {
			v.logger.Error("unsupported input file extension",
				slog.String("file", path),
				slog.String("extension", ext))
			return fmt.Errorf("unsupported input extension %s (allowed: %s)", ext, strings.Join(allowedExtensions, ", "))
		}
	}

	v.logger.Info("input file validated",
		slog.String("file", path),
		slog.Int64("size_bytes", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures the output directory exists or can be
// created, and is writable
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Info("output directory validated",
		slog.String("directory", dir))
	return nil
}
