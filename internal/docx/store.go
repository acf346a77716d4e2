// internal/docx/store.go
package docx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// ErrStorage reports an I/O failure while persisting an uploaded document.
var ErrStorage = errors.New("document storage failed")

const timestampLayout = "20060102_150405"

// Store writes uploaded documents under root, one subdirectory per
// sanitized sender name. The clock is injectable so collision behavior is
// testable.
type Store struct {
	root string
	now  func() time.Time
}

func NewStore(root string, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{root: root, now: now}
}

// Save writes fileBytes verbatim as {basename}_{timestamp}{ext} under the
// sender's subdirectory, creating it if absent, and returns the path.
// Directory creation is idempotent; two senders racing on the same name do
// not fail each other.
func (s *Store) Save(fileBytes []byte, fileName, senderName string) (string, error) {
	dir := filepath.Join(s.root, SanitizeName(senderName))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}

	ext := filepath.Ext(fileName)
	base := strings.TrimSuffix(filepath.Base(fileName), ext)
	stamp := s.now().Format(timestampLayout)
	path := filepath.Join(dir, fmt.Sprintf("%s_%s%s", base, stamp, ext))

	if err := os.WriteFile(path, fileBytes, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return path, nil
}

// SanitizeName keeps letters, digits, and underscores, turns spaces into
// underscores, and drops everything else. Idempotent.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == ' ':
			b.WriteByte('_')
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
