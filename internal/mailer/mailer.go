package mailer

// Message is one rendered application email.
type Message struct {
	From           string
	To             string
	Subject        string
	Body           string
	AttachmentPath string // empty means no attachment
}

// Mailer defines the interface for delivering one message at a time
type Mailer interface {
	// Send delivers a single message; failures affect only that message
	Send(msg *Message) error
}
