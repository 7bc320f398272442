package sector

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/ymoudden/startup-outreach/internal/company"
)

// ContactRow is one row of a per-sector CSV: the original company columns
// enriched with the contact fields the emailer consumes.
type ContactRow struct {
	Secteur     string
	Company     string
	ContactName string
	Email       string
	Phone       string
	City        string
	Website     string
	Technology  string
	Activity    string
}

// Columns is the per-sector CSV header, in write order.
var Columns = []string{
	"secteur", "company", "contact_name", "email",
	"phone", "city", "website", "technology", "activity",
}

// Values returns the row's fields in Columns order.
func (r *ContactRow) Values() []string {
	return []string{
		r.Secteur, r.Company, r.ContactName, r.Email,
		r.Phone, r.City, r.Website, r.Technology, r.Activity,
	}
}

var sectorSepRe = regexp.MustCompile(`[;,]`)

// Split groups records into contact rows keyed by sector slug. Records whose
// secteur lists several sectors are fanned out to each; records with no
// sector land in the UnknownSlug bucket. Output is deterministic for a given
// input: map iteration aside, membership and per-sector row order follow the
// input order.
func Split(records []*company.Record) map[string][]*ContactRow {
	groups := make(map[string][]*ContactRow)

	for _, rec := range records {
		parts := make([]string, 0, 1)
		for _, p := range sectorSepRe.Split(rec.Secteur, -1) {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			parts = append(parts, UnknownSlug)
		}

		for _, part := range parts {
			slug := Slugify(part)
			row := contactFromRecord(rec)
			row.Secteur = part
			groups[slug] = append(groups[slug], row)
		}
	}

	return groups
}

// Raw-JSON field aliases for contact data. The page payloads use the
// Entreprise* naming; plain names are accepted as a fallback.
var contactAliases = map[string][]string{
	"company":     {"entreprisename", "entreprisenom", "name", "company"},
	"contactName": {"entreprisecontactname", "contact_name", "contact"},
	"email":       {"entreprisecontactemail", "contact_email", "email"},
	"phone":       {"entreprisecontactphone", "contact_phone", "phone"},
	"city":        {"entrepriseville", "ville", "city"},
	"website":     {"entreprisecontactsiteweb", "website", "site"},
	"technology":  {"entreprisetechnologie", "technologie", "technology"},
	"activity":    {"activite", "activity"},
}

// contactFromRecord builds a contact row from a record, pulling contact
// fields out of the preserved raw JSON and falling back to the normalized
// record fields.
func contactFromRecord(rec *company.Record) *ContactRow {
	raw := parseRaw(rec.Raw)

	row := &ContactRow{
		Company:     lookup(raw, "company"),
		ContactName: lookup(raw, "contactName"),
		Email:       lookup(raw, "email"),
		Phone:       lookup(raw, "phone"),
		City:        lookup(raw, "city"),
		Website:     lookup(raw, "website"),
		Technology:  lookup(raw, "technology"),
		Activity:    lookup(raw, "activity"),
	}

	if row.Company == "" {
		row.Company = rec.Name
	}
	if row.Website == "" {
		row.Website = rec.Website
	}
	if row.Activity == "" {
		row.Activity = rec.Description
	}

	return row
}

// parseRaw decodes the raw JSON column with lowercased keys. Tolerates
// double-encoded payloads; anything unparseable yields an empty map so the
// record-level fallbacks apply.
func parseRaw(raw string) map[string]any {
	if raw == "" {
		return nil
	}

	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		trimmed := strings.Trim(raw, `"`)
		if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
			return nil
		}
	}
	if s, ok := v.(string); ok {
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return nil
		}
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	lower := make(map[string]any, len(obj))
	for k, val := range obj {
		lower[strings.ToLower(k)] = val
	}
	return lower
}

func lookup(raw map[string]any, field string) string {
	for _, alias := range contactAliases[field] {
		if s := company.StringValue(raw[alias]); s != "" {
			return s
		}
	}
	return ""
}
