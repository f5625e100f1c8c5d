// Package artifact inspects an export's output directory (which page
// images it holds and how large they are) and publishes a finished export
// into the user's folder.
package artifact

import (
	"fmt"
	"image"
	_ "image/png" // Register the PNG header decoder; Spine writes PNG pages.
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Find returns the regular files directly inside dir whose extension matches
// ext (case-insensitive, with leading dot), sorted by name. A missing dir
// yields no files and no error.
func Find(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read output directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ext) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Count returns how many artifacts of kind ext are in dir.
func Count(dir, ext string) (int, error) {
	files, err := Find(dir, ext)
	return len(files), err
}

// Publish moves every regular file under src into dst, keeping relative
// paths, and returns the destination paths. Files already in dst with other
// names are left alone; same-named files are replaced. A missing src
// publishes nothing.
func Publish(src, dst string) ([]string, error) {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return nil, nil
	}
	var moved []string
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create output folder: %w", err)
		}
		if err := move(path, target); err != nil {
			return fmt.Errorf("publish %s: %w", rel, err)
		}
		moved = append(moved, target)
		return nil
	})
	return moved, err
}

// move renames src to dst, copying when they sit on different filesystems.
func move(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}

// Dimensions reads only the image header of path and returns its pixel
// width and height.
func Dimensions(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("read image header %s: %w", filepath.Base(path), err)
	}
	return cfg.Width, cfg.Height, nil
}
