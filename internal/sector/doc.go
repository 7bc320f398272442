// Package sector turns sector names into filesystem-safe slugs and groups
// company records into per-sector contact rows for the emailer.
//
// A company whose secteur column lists several sectors separated by ";" or
// "," is written to every listed sector. Companies without a sector fall
// into the "unknown" bucket.
package sector
