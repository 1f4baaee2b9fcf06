package connectors

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type FileMeta struct {
	Path     string
	Size     int64
	Modified time.Time
	IsDir    bool
}

type DiscoveryOptions struct {
	Recursive      bool
	MinSize        int64
	MaxSize        int64
	ModifiedAfter  time.Time
	ModifiedBefore time.Time
}

// ParseExtensions splits a comma separated list such as "csv,.json" into
// normalized extensions without the leading dot.
func ParseExtensions(list string) []string {
	var exts []string
	for _, part := range strings.Split(list, ",") {
		ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(part), "."))
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}

// DiscoverFiles walks root and returns the files whose extension is one of
// exts, along with their count. Finding nothing is not an error.
func DiscoverFiles(root string, exts []string, options DiscoveryOptions) ([]FileMeta, int, error) {
	if root == "" {
		return nil, 0, fmt.Errorf("root directory cannot be empty")
	}

	stat, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, 0, fmt.Errorf("directory does not exist: %s", root)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !stat.IsDir() {
		return nil, 0, fmt.Errorf("path is not a directory: %s", root)
	}

	wanted := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		if ext != "" {
			wanted["."+ext] = true
		}
	}
	if len(wanted) == 0 {
		return nil, 0, fmt.Errorf("file extension cannot be empty")
	}

	var files []FileMeta
	walkFunc := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if d.IsDir() {
			if path != root && !options.Recursive {
				return filepath.SkipDir
			}
			return nil
		}

		if !wanted[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("error getting file info for %s: %w", path, err)
		}
		if !options.accepts(info) {
			return nil
		}

		files = append(files, FileMeta{
			Path:     path,
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
		return nil
	}

	if err := filepath.WalkDir(root, walkFunc); err != nil {
		return nil, 0, fmt.Errorf("directory walk error: %w", err)
	}

	return files, len(files), nil
}

func (o DiscoveryOptions) accepts(info fs.FileInfo) bool {
	if o.MinSize > 0 && info.Size() < o.MinSize {
		return false
	}
	if o.MaxSize > 0 && info.Size() > o.MaxSize {
		return false
	}
	if !o.ModifiedAfter.IsZero() && info.ModTime().Before(o.ModifiedAfter) {
		return false
	}
	if !o.ModifiedBefore.IsZero() && info.ModTime().After(o.ModifiedBefore) {
		return false
	}
	return true
}

// TotalSize sums the sizes of files.
func TotalSize(files []FileMeta) int64 {
	var total int64
	for _, f := range files {
		total += f.Size
	}
	return total
}
