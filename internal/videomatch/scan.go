package videomatch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"greenline/internal/services"
)

// ScanDir lists the regular files of dir sorted by name. Subdirectories are
// skipped.
func ScanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "videos", "scan",
				fmt.Sprintf("Diretório de vídeos não encontrado: %s", dir), err)
		}
		return nil, services.Wrap(services.ErrInternal, "videos", "scan", "", err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(filepath.Join(dir, entry.Name()))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		} else if !entry.Type().IsRegular() {
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}
