// Package store reads and writes the toolkit's CSV files: the combined
// companies.csv produced by the scraper and the per-sector contact files
// produced by the splitter. Column order is stable so repeated runs diff
// cleanly.
package store
