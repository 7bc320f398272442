package scraper

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ymoudden/startup-outreach/internal/company"
	"github.com/ymoudden/startup-outreach/internal/logger"
)

const (
	// StartupsURL is the page listing the startups of the month.
	StartupsURL = "https://www.technopark.ma/start-ups-du-mois/"
	UserAgent   = "startup-outreach/1.0 (github.com/ymoudden/startup-outreach)"
	Timeout     = 30 * time.Second
)

// Scraper fetches the startup page and extracts company records
type Scraper struct {
	client *http.Client
	url    string
}

// New creates a new Scraper instance
func New() *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		url: StartupsURL,
	}
}

// FetchCompanies fetches the page and extracts all company records found in
// inline script logging calls.
func (s *Scraper) FetchCompanies() ([]*company.Record, error) {
	req, err := http.NewRequest("GET", s.url, nil)
	if err != nil {
		return nil, &FetchError{URL: s.url, Cause: err}
	}
	req.Header.Set("User-Agent", UserAgent)

	started := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: s.url, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: s.url, Cause: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}
	logger.RecordTiming("scrape.fetch", time.Since(started))

	return s.parseCompanies(resp.Body)
}

// parseCompanies extracts company records from the document's inline scripts
func (s *Scraper) parseCompanies(r io.Reader) ([]*company.Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &FetchError{URL: s.url, Cause: err}
	}

	records := make([]*company.Record, 0)

	doc.Find("script").Each(func(i int, sel *goquery.Selection) {
		if _, external := sel.Attr("src"); external {
			return
		}

		for _, fragment := range extractLogArguments(sel.Text()) {
			objs, err := decodeFragment(fragment)
			if err != nil {
				logger.Warn("skipping malformed script fragment", logger.Fields{
					"error": (&ParseError{Fragment: fragment, Cause: err}).Error(),
				})
				logger.IncrCounter("scrape.fragments_skipped")
				continue
			}
			if objs == nil {
				continue
			}

			for _, obj := range objs {
				rec, ok := company.Normalize(obj)
				if !ok {
					logger.Warn("skipping object with no recognizable name field", logger.Fields{
						"keys": len(obj),
					})
					logger.IncrCounter("scrape.objects_skipped")
					continue
				}
				records = append(records, rec)
			}
		}
	})

	return records, nil
}

// decodeFragment parses one extracted literal and locates a company list in
// it. String literals that themselves hold JSON are unwrapped and searched
// too. A nil, nil return means the fragment was valid JSON but carried no
// company list.
func decodeFragment(fragment string) ([]map[string]any, error) {
	var v any
	if err := json.Unmarshal([]byte(fragment), &v); err != nil {
		return nil, err
	}

	// Double-encoded payload: a string argument containing JSON text
	if s, ok := v.(string); ok {
		var inner any
		if err := json.Unmarshal([]byte(s), &inner); err != nil {
			return nil, nil // plain log message, not data
		}
		v = inner
	}

	return company.FindList(v), nil
}
