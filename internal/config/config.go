// Package config loads the emailer's configuration from the environment
// into a single Options struct at startup. Defaults are documented on the
// struct; required-field validation happens separately so dry runs work
// without SMTP credentials.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultSMTPPort is the standard submission port (STARTTLS).
const DefaultSMTPPort = 587

// DefaultSubject is used when SUBJECT is not set.
const DefaultSubject = "Intérêt pour votre entreprise"

// DefaultBodyTemplate is used when BODY_TEMPLATE is not set. Placeholders
// are substituted per recipient.
const DefaultBodyTemplate = `Bonjour {contact_name},

Je m'appelle {your_name} et je souhaite vous exprimer mon vif intérêt pour les activités de {company}. Votre travail dans le secteur {sector} m'inspire particulièrement et j'aimerais savoir si vous avez des opportunités ou des besoins auxquels je pourrais contribuer.

Je joins mon CV en pièce jointe. Je suis disponible pour un échange (visio ou téléphone) afin de vous présenter plus en détail mon expérience et la valeur que je peux apporter à votre équipe.

Merci beaucoup pour votre temps et votre considération.

Bien cordialement,
{your_name}
`

// Options holds every recognized configuration key.
//
//	SMTP_SERVER    SMTP host (required for real sends)
//	SMTP_PORT      SMTP port, default 587
//	SMTP_USER      auth user, optional
//	SMTP_PASS      auth password, optional
//	FROM_EMAIL     sender address, defaults to SMTP_USER
//	CV_PATH        default attachment path
//	SECTOR_CSV     default input CSV
//	YOUR_NAME      default sender display name
//	SUBJECT        subject template
//	BODY_TEMPLATE  body template
type Options struct {
	SMTPServer   string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	FromEmail    string
	CVPath       string
	SectorCSV    string
	YourName     string
	Subject      string
	BodyTemplate string
}

// Load reads the environment into an Options struct and applies defaults.
// Missing SMTP settings are not an error here; ValidateForSend enforces
// them when a real send run starts.
func Load() (*Options, error) {
	opts := &Options{
		SMTPServer:   os.Getenv("SMTP_SERVER"),
		SMTPPort:     DefaultSMTPPort,
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPass:     os.Getenv("SMTP_PASS"),
		FromEmail:    os.Getenv("FROM_EMAIL"),
		CVPath:       os.Getenv("CV_PATH"),
		SectorCSV:    os.Getenv("SECTOR_CSV"),
		YourName:     os.Getenv("YOUR_NAME"),
		Subject:      os.Getenv("SUBJECT"),
		BodyTemplate: os.Getenv("BODY_TEMPLATE"),
	}

	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid SMTP_PORT %q", portStr)
		}
		opts.SMTPPort = port
	}

	if opts.FromEmail == "" {
		opts.FromEmail = opts.SMTPUser
	}
	if opts.Subject == "" {
		opts.Subject = DefaultSubject
	}
	if opts.BodyTemplate == "" {
		opts.BodyTemplate = DefaultBodyTemplate
	}

	return opts, nil
}

// ValidateForSend checks the keys a real (non-dry-run) send requires.
func (o *Options) ValidateForSend() error {
	if o.SMTPServer == "" {
		return &MissingKeyError{Key: "SMTP_SERVER"}
	}
	if o.FromEmail == "" {
		return &MissingKeyError{Key: "FROM_EMAIL"}
	}
	return nil
}
