package mailer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DryRunMailer prints what would be sent without opening any connection
type DryRunMailer struct {
	out   io.Writer
	count int
}

// NewDryRunMailer creates a dry-run mailer writing previews to stdout
func NewDryRunMailer() *DryRunMailer {
	return &DryRunMailer{out: os.Stdout}
}

// NewDryRunMailerTo creates a dry-run mailer writing previews to w
func NewDryRunMailerTo(w io.Writer) *DryRunMailer {
	return &DryRunMailer{out: w}
}

// Send prints a preview of the message
func (m *DryRunMailer) Send(msg *Message) error {
	m.count++
	fmt.Fprintf(m.out, "--- Message %d ---\n", m.count)
	fmt.Fprintf(m.out, "From: %s\n", msg.From)
	fmt.Fprintf(m.out, "To: %s\n", msg.To)
	fmt.Fprintf(m.out, "Subject: %s\n", msg.Subject)
	if msg.AttachmentPath != "" {
		fmt.Fprintf(m.out, "Attachment: %s\n", filepath.Base(msg.AttachmentPath))
	}
	fmt.Fprintf(m.out, "\n%s\n\n", msg.Body)
	return nil
}
