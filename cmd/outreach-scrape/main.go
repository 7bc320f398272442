// Command outreach-scrape fetches the startup listing page, extracts the
// company records embedded in its inline scripts, and overwrites
// companies.csv in the working directory, grouped by sector. It takes no
// flags; the source URL is fixed.
package main

import (
	"fmt"
	"os"

	"github.com/ymoudden/startup-outreach/internal/logger"
	"github.com/ymoudden/startup-outreach/internal/scraper"
	"github.com/ymoudden/startup-outreach/internal/store"
)

func main() {
	logger.Info("fetching startup listings", logger.Fields{
		"url": scraper.StartupsURL,
	})

	records, err := scraper.New().FetchCompanies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching companies: %v\n", err)
		os.Exit(1)
	}

	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, "No company records found in page scripts.")
		os.Exit(1)
	}

	if err := store.WriteCompanies(store.CompaniesFile, records); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", store.CompaniesFile, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d companies to %s\n", len(records), store.CompaniesFile)
}
