// Package upload keeps the original CV files next to the parsed profiles.
package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/cybersoft/talentmatch/pkg/apperr"
)

// Store saves an uploaded file and returns a URI pointing at it.
type Store interface {
	Save(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// objectName keeps the original extension but never the client supplied name.
func objectName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	return uuid.NewString() + ext
}

// Local writes files into a directory on disk.
type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir}, nil
}

func (l *Local) Save(ctx context.Context, filename, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(l.dir, objectName(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", apperr.Wrap(apperr.ErrPersistence, err, "Could not store the uploaded file")
	}
	return "file://" + path, nil
}
