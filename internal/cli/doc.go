// Package cli implements the outreach-send command: it loads contacts from
// a sector CSV, renders the subject and body templates per recipient, and
// either previews (dry-run) or sends each message over SMTP with the CV
// attached, appending every attempt to the send log.
package cli
