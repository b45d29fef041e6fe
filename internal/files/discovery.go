package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo represents information about a discovered workbook
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides source workbook discovery operations
type Discovery struct {
	dataDir       string
	referenceName string
}

// NewDiscovery creates a new discovery instance. referenceFile is the path
// of the stronghold reference workbook; its base name is excluded from the
// source set even when it lives inside dataDir.
func NewDiscovery(dataDir, referenceFile string) *Discovery {
	return &Discovery{
		dataDir:       dataDir,
		referenceName: filepath.Base(referenceFile),
	}
}

// DataDir returns the directory this discovery scans.
func (d *Discovery) DataDir() string {
	return d.dataDir
}

// FindSourceWorkbooks finds all eligible extract workbooks in the data
// directory, sorted by file name ascending.
func (d *Discovery) FindSourceWorkbooks() ([]FileInfo, error) {
	entries, err := os.ReadDir(d.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", d.dataDir, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !d.isEligible(name) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(d.dataDir, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	// First-seen dedup downstream requires a deterministic order
	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// isEligible applies the source eligibility rules to a file name.
func (d *Discovery) isEligible(name string) bool {
	if !strings.HasSuffix(strings.ToLower(name), ".xlsx") {
		return false
	}
	// Excel lock files left by open workbooks
	if strings.HasPrefix(name, "~$") {
		return false
	}
	if name == d.referenceName {
		return false
	}
	return true
}
