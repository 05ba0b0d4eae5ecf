package writer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultPrefix is the leading part of every generated filename
const DefaultPrefix = "Dockerfile"

// Confirmer answers whether an existing file may be overwritten
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// Writer persists Dockerfile content without silently replacing existing files
type Writer struct {
	dir       string
	prefix    string
	confirmer Confirmer
}

// Result describes where content ended up
type Result struct {
	Path        string
	Index       int
	Overwritten bool
}

// New creates a writer for dir; an empty dir means the working directory and
// an empty prefix means DefaultPrefix.
func New(dir, prefix string, confirmer Confirmer) *Writer {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Writer{
		dir:       dir,
		prefix:    prefix,
		confirmer: confirmer,
	}
}

// Filename returns the candidate name for the given suffix index:
// Dockerfile-<name> for 0 and Dockerfile<i>-<name> after that.
// Path separators in name are replaced so the file stays in the output dir.
func (w *Writer) Filename(name string, index int) string {
	name = strings.NewReplacer("/", "_", `\`, "_").Replace(name)
	if index == 0 {
		return w.prefix + "-" + name
	}
	return w.prefix + strconv.Itoa(index) + "-" + name
}

// Save writes content to the first candidate file that either does not exist
// yet or that the confirmer agrees to overwrite. Declining moves on to the
// next suffix index.
func (w *Writer) Save(ctx context.Context, content, name string) (*Result, error) {
	for index := 0; ; index++ {
		path := filepath.Join(w.dir, w.Filename(name, index))

		err := writeFile(path, content, os.O_WRONLY|os.O_CREATE|os.O_EXCL)
		if err == nil {
			return &Result{Path: path, Index: index}, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, err
		}

		overwrite, err := w.confirmer.Confirm(ctx, fmt.Sprintf("File '%s' already exists. Overwrite it?", path))
		if err != nil {
			return nil, fmt.Errorf("failed to confirm overwrite of %s: %w", path, err)
		}
		if !overwrite {
			continue
		}

		if err := writeFile(path, content, os.O_WRONLY|os.O_CREATE|os.O_TRUNC); err != nil {
			return nil, err
		}
		return &Result{Path: path, Index: index, Overwritten: true}, nil
	}
}

func writeFile(path, content string, flag int) error {
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return err
		}
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	return nil
}
