// Package mailer delivers rendered application emails. It exposes a Mailer
// interface with two implementations: an SMTP mailer that sends real mail
// with the CV attached, and a dry-run mailer that prints previews to stdout
// and never opens a network connection.
package mailer
