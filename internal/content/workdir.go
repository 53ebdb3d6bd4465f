package content

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

func workdirFiles(root string) ([]file, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "content directory not accessible").
			WithContext("content_dir", root).
			Build()
	}
	if !info.IsDir() {
		return nil, errors.FileSystemError("content path is not a directory").
			WithContext("content_dir", root).
			Build()
	}

	var files []file
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, file{
			rel:  filepath.ToSlash(rel),
			read: func() ([]byte, error) { return os.ReadFile(p) },
		})
		return nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to walk content directory").
			WithContext("content_dir", root).
			Build()
	}
	return files, nil
}
