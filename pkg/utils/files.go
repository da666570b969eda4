package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	// Get the directory containing the file
	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// ReadSource reads program text from relPath, or from stdin when relPath is
// empty or "-". The returned name is the absolute path, or "<stdin>".
func ReadSource(relPath string, stdin io.Reader) (src string, name string, err error) {
	if relPath == "" || relPath == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}

	fullPath, _, err := GetPathInfo(relPath)
	if err != nil {
		return "", "", err
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return "", "", fmt.Errorf("read source: %w", err)
	}
	return string(data), fullPath, nil
}

// IsScript reports whether path names a Lua script rather than program text.
func IsScript(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".lua")
}
