// Package discover finds input files and computes their provenance
// hashes for the ingest pipeline.
package discover

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Files resolves the given paths to a flat list of input files.
// A path that is a file is kept when its extension is in exts; a
// directory is walked recursively and its matching files collected in
// sorted order. Extension comparison is case-insensitive. The same
// file reachable through multiple input paths appears multiple times:
// discovery never deduplicates.
func Files(paths []string, exts []string) ([]string, error) {
	extSet := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		extSet[strings.ToLower(ext)] = struct{}{}
	}
	supported := func(path string) bool {
		_, ok := extSet[strings.ToLower(filepath.Ext(path))]
		return ok
	}

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if !info.IsDir() {
			if supported(path) {
				files = append(files, path)
			}
			continue
		}

		var found []string
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && supported(p) {
				found = append(found, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", path, err)
		}
		sort.Strings(found)
		files = append(files, found...)
	}

	return files, nil
}

// FileSHA256 computes the whole-file content hash as 64 lowercase hex
// characters. Used for provenance, never for deduplication.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
