package templates

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
)

// overlayLoader resolves template names against several file systems, the
// first one holding a file wins.
type overlayLoader struct {
	layers []fs.FS
}

func (l *overlayLoader) Abs(_, name string) string {
	return path.Clean(strings.TrimPrefix(strings.TrimSpace(name), "/"))
}

func (l *overlayLoader) Get(name string) (io.Reader, error) {
	for _, layer := range l.layers {
		if layer == nil {
			continue
		}
		data, err := fs.ReadFile(layer, name)
		if err == nil {
			return bytes.NewReader(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("templates: read %s: %w", name, err)
		}
	}
	return nil, fmt.Errorf("templates: %s: %w", name, fs.ErrNotExist)
}
