// Command outreach-split reads the combined companies.csv and writes one
// CSV per sector into an output directory. Companies listing several
// sectors appear in each; companies without a sector land in the
// "unknown" file.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/ymoudden/startup-outreach/internal/sector"
	"github.com/ymoudden/startup-outreach/internal/store"
)

var (
	inputFile = flag.String("input", store.CompaniesFile, "Combined companies CSV to split")
	outDir    = flag.String("out-dir", store.DefaultSectorDir, "Directory for per-sector files")
)

func main() {
	flag.Parse()

	records, err := store.ReadCompanies(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *inputFile, err)
		os.Exit(1)
	}

	groups := sector.Split(records)
	if len(groups) == 0 {
		fmt.Println("No rows to split.")
		return
	}

	s, err := store.NewSectorStore(*outDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	// Stable output order for readable run logs
	slugs := make([]string, 0, len(groups))
	for slug := range groups {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	for _, slug := range slugs {
		rows := groups[slug]
		path, err := s.WriteSectorFile(slug, rows)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing sector %s: %v\n", slug, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(rows), path)
	}
}
