package cli

import (
	"fmt"
	"strings"

	"github.com/ymoudden/startup-outreach/internal/logger"
	"github.com/ymoudden/startup-outreach/internal/store"
	"github.com/ymoudden/startup-outreach/internal/template"
)

// Recipient is one contact with a usable email address and the full row it
// came from, exposed as template variables.
type Recipient struct {
	Email string
	Row   template.Vars
}

// Column aliases accepted for the recipient address. Sector files written
// by outreach-split use "email"; the Entreprise* names cover CSVs exported
// straight from the page payloads.
var emailAliases = []string{"email", "entreprisecontactemail", "contact_email"}

// loadRecipients reads a sector CSV and returns its contacts with non-empty
// emails, deduplicated by lowercased address (first occurrence wins), along
// with the normalized header names for --list-vars.
func loadRecipients(path string) ([]*Recipient, []string, error) {
	headers, rows, err := store.ReadRows(path)
	if err != nil {
		return nil, nil, err
	}
	if len(headers) == 0 {
		return nil, nil, fmt.Errorf("%s has no header row", path)
	}

	norm := make([]string, len(headers))
	for i, h := range headers {
		norm[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var recipients []*Recipient
	seen := make(map[string]bool)

	for _, row := range rows {
		vars := make(template.Vars, len(norm)+4)
		for i, name := range norm {
			if i < len(row) {
				vars[name] = strings.TrimSpace(row[i])
			}
		}

		email := ""
		for _, alias := range emailAliases {
			if vars[alias] != "" {
				email = vars[alias]
				break
			}
		}
		if email == "" {
			logger.Debug("skipping row without email", logger.Fields{
				"company": vars["company"],
			})
			continue
		}

		key := strings.ToLower(email)
		if seen[key] {
			logger.Debug("skipping duplicate recipient", logger.Fields{
				"recipient": email,
			})
			continue
		}
		seen[key] = true

		// Canonical aliases the templates rely on
		vars["email"] = email
		if vars["company"] == "" {
			vars["company"] = vars["entreprisename"]
		}
		if vars["contact_name"] == "" {
			vars["contact_name"] = vars["entreprisecontactname"]
		}
		if vars["contact_name"] == "" {
			vars["contact_name"] = vars["company"]
		}

		recipients = append(recipients, &Recipient{Email: email, Row: vars})
	}

	return recipients, norm, nil
}

// derivedVars are always available to templates regardless of CSV columns.
var derivedVars = []string{"company", "contact_name", "email", "sector", "sector_slug", "your_name"}
