package dvid

import (
	"fmt"
	"path/filepath"
)

const (
	Kilo = 1 << 10
	Mega = 1 << 20
	Giga = 1 << 30
	Tera = 1 << 40
)

// ConvertToAbsolute returns an absolute path given a possibly relative path and the
// directory it is relative to.
func ConvertToAbsolute(path, relativeTo string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("can't convert empty path to absolute path")
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	return filepath.Abs(filepath.Join(relativeTo, path))
}
