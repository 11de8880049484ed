package site

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// StaticDirs are the asset directories copied from the static root.
var StaticDirs = []string{"css", "js", "images"}

// CopyStatic copies the regular files of each static directory into the
// output directory of the same name. Missing source directories are skipped.
func (s *Site) CopyStatic() (int, error) {
	copied := 0
	for _, dir := range StaticDirs {
		src := filepath.Join(s.cfg.StaticDir, dir)
		entries, err := os.ReadDir(src)
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Debug("static dir missing, skipped", "dir", src)
			continue
		}
		if err != nil {
			return copied, fmt.Errorf("read static dir %s: %w", src, err)
		}

		dst := filepath.Join(s.cfg.OutputDir, dir)
		if err := os.MkdirAll(dst, 0o755); err != nil {
			return copied, fmt.Errorf("create %s: %w", dst, err)
		}
		for _, e := range entries {
			if !e.Type().IsRegular() {
				continue
			}
			if err := copyFile(filepath.Join(src, e.Name()), filepath.Join(dst, e.Name())); err != nil {
				return copied, err
			}
			copied++
			if s.metrics != nil {
				s.metrics.StaticFilesCopied.Inc()
			}
		}
	}
	s.log.Info("static files copied", "files", copied)
	return copied, nil
}

// copyFile overwrites dst with src, keeping its mode and modification time.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
