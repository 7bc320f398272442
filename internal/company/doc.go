// Package company defines the startup record shared by the scraper, the
// sector splitter, and the emailer, along with the normalization rules that
// map the loosely-keyed JSON objects embedded in the page onto that record.
package company
