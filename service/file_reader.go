package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/dupliscan/dupliscan/domain"
)

// FileReaderImpl implements the domain.FileReader interface
type FileReaderImpl struct{}

// NewFileReader creates a new file reader service
func NewFileReader() *FileReaderImpl {
	return &FileReaderImpl{}
}

// CollectSourceFiles finds source files with one of the given extensions
// in the given paths, honoring include/exclude glob patterns. Patterns
// support doublestar globs ("**/generated/*.py").
func (f *FileReaderImpl) CollectSourceFiles(paths []string, recursive bool, extensions, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if info.IsDir() {
			dirFiles, err := f.collectFromDirectory(path, recursive, extensions, includePatterns, excludePatterns)
			if err != nil {
				return nil, err
			}
			files = append(files, dirFiles...)
		} else {
			if f.hasSourceExtension(path, extensions) && f.shouldIncludeFile(path, includePatterns, excludePatterns) {
				files = append(files, path)
			}
		}
	}

	return files, nil
}

// LoadCodeUnits reads the given files into ordered code units. Files that
// cannot be read are skipped with a warning so one missing file does not
// abort the whole run.
func (f *FileReaderImpl) LoadCodeUnits(filePaths []string) ([]domain.CodeUnit, error) {
	units := make([]domain.CodeUnit, 0, len(filePaths))

	for _, path := range filePaths {
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to read file %s: %v\n", path, err)
			continue
		}

		units = append(units, domain.CodeUnit{
			ID:    path,
			Lines: splitLines(string(content)),
		})
	}

	return units, nil
}

// ReadLineRange reads lines [startLine, endLine] (1-based, inclusive) from
// the file at path.
func (f *FileReaderImpl) ReadLineRange(path string, startLine, endLine int) ([]string, error) {
	if startLine < 1 || endLine < startLine {
		return nil, domain.NewInvalidInputError(
			fmt.Sprintf("invalid line range %d-%d", startLine, endLine), nil)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewFileNotFoundError(path, err)
		}
		return nil, domain.NewUnexpectedFailureError(fmt.Sprintf("failed to read %s", path), err)
	}

	lines := splitLines(string(content))
	if endLine > len(lines) {
		return nil, domain.NewLineRangeError(path, startLine, endLine, len(lines))
	}

	return lines[startLine-1 : endLine], nil
}

// FileExists checks if a file exists
func (f *FileReaderImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

// collectFromDirectory collects source files from a directory
func (f *FileReaderImpl) collectFromDirectory(dirPath string, recursive bool, extensions, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	walkFunc := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal
			return nil
		}

		if info.IsDir() && !recursive && path != dirPath {
			return filepath.SkipDir
		}

		if strings.HasPrefix(info.Name(), ".") && path != dirPath {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() && f.shouldSkipDirectory(info.Name()) {
			return filepath.SkipDir
		}

		if !info.IsDir() && f.hasSourceExtension(path, extensions) {
			if f.shouldIncludeFile(path, includePatterns, excludePatterns) {
				files = append(files, path)
			}
		}

		return nil
	}

	if err := filepath.Walk(dirPath, walkFunc); err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}

	return files, nil
}

// hasSourceExtension checks if a file carries one of the configured extensions
func (f *FileReaderImpl) hasSourceExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range extensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// shouldIncludeFile checks a file against include/exclude glob patterns
func (f *FileReaderImpl) shouldIncludeFile(path string, includePatterns, excludePatterns []string) bool {
	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)

	for _, pattern := range excludePatterns {
		if matched, _ := doublestar.Match(pattern, base); matched {
			return false
		}
		if matched, _ := doublestar.Match(pattern, slashed); matched {
			return false
		}
	}

	if len(includePatterns) == 0 {
		return true
	}

	for _, pattern := range includePatterns {
		if matched, _ := doublestar.Match(pattern, base); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, slashed); matched {
			return true
		}
	}

	return false
}

// shouldSkipDirectory checks if a directory should be skipped entirely
func (f *FileReaderImpl) shouldSkipDirectory(dirName string) bool {
	skipDirs := []string{
		"__pycache__",
		".git",
		".svn",
		".hg",
		"node_modules",
		".tox",
		".pytest_cache",
		"venv",
		"env",
		".venv",
		"build",
		"dist",
		"target",
	}

	dirLower := strings.ToLower(dirName)
	for _, skipDir := range skipDirs {
		if dirLower == skipDir {
			return true
		}
	}

	return false
}

// splitLines splits file content into lines without the trailing newline
// producing a phantom empty line.
func splitLines(content string) []string {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return []string{}
	}
	return strings.Split(content, "\n")
}
