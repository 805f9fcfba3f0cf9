package delivery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DirStore is an ObjectStore over a local directory, keyed by file name.
// It backs the CLI; a production deployment plugs in its own store.
type DirStore struct {
	Root string
}

func (s *DirStore) Get(_ context.Context, key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.Root, key))
}

func (s *DirStore) Delete(_ context.Context, key string) error {
	return os.Remove(filepath.Join(s.Root, key))
}

// FileMailer writes outbound mail to files instead of sending it: one .txt
// and one .html per message, named after the recipient.
type FileMailer struct {
	Dir string
}

func (m *FileMailer) Send(_ context.Context, mail OutboundMail) error {
	if err := os.MkdirAll(m.Dir, 0o755); err != nil {
		return err
	}

	base := fmt.Sprintf("%s_%d", slug(mail.To), time.Now().UnixNano())
	header := fmt.Sprintf("From: %s\nTo: %s\nSubject: %s\n\n", mail.From, mail.To, mail.Subject)

	if err := os.WriteFile(filepath.Join(m.Dir, base+".txt"), []byte(header+mail.TextBody), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(m.Dir, base+".html"), []byte(mail.HTMLBody), 0o644)
}

func slug(addr string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, addr)
}
