package ingest

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// spreadsheet extensions the scanner picks up.
var scanExtensions = map[string]bool{
	".xlsx": true,
	".xls":  true,
	".csv":  true,
}

// ScanDir lists the spreadsheet files directly inside dir, sorted by name.
// Office lock files ("~$...") are skipped. A missing directory is an error;
// an empty one returns an empty list.
func ScanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "~$") {
			continue
		}
		if scanExtensions[strings.ToLower(filepath.Ext(name))] {
			files = append(files, filepath.Join(dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}
