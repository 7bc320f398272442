// Package scraper fetches the startup listing page and extracts company
// records from JSON objects that the page prints through inline script
// logging calls.
//
// The page embeds its data as console.log arguments inside <script> tags
// rather than in markup, so extraction scans script text for balanced JSON
// literals following a logging call, parses each one, and searches the
// decoded value for a list of company objects. Malformed fragments are
// skipped individually; a fetch failure aborts the run.
package scraper
