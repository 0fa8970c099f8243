package email

import (
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9@._-]+`)

// FileSender writes each email as an .html file into an outbox directory.
// It is meant for local development and end-to-end tests.
type FileSender struct {
	fs            afero.Fs
	dir           string
	senderAddress string
	now           func() time.Time
}

// NewFileSender creates a FileSender writing into dir on fs.
func NewFileSender(fs afero.Fs, dir, senderAddress string) *FileSender {
	return &FileSender{fs: fs, dir: dir, senderAddress: senderAddress, now: time.Now}
}

// Send writes the message to <dir>/<timestamp>-<recipient>-<id>.html.
func (s *FileSender) Send(to, subject, htmlBody string) error {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create outbox: %w", err)
	}
	name := fmt.Sprintf("%s-%s-%s.html",
		s.now().UTC().Format("20060102T150405"),
		unsafeFileChars.ReplaceAllString(to, "_"),
		uuid.NewString()[:8])

	content := fmt.Sprintf("<!-- from: %s -->\n<!-- to: %s -->\n<!-- subject: %s -->\n%s\n",
		s.senderAddress, to, subject, htmlBody)

	if err := afero.WriteFile(s.fs, filepath.Join(s.dir, name), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write outbox file: %w", err)
	}
	return nil
}
