package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ymoudden/startup-outreach/internal/company"
	"github.com/ymoudden/startup-outreach/internal/sector"
)

// CompaniesFile is the default output of the scraper and input of the
// splitter.
const CompaniesFile = "companies.csv"

// DefaultSectorDir is the default output directory for per-sector files.
const DefaultSectorDir = "by_sector"

// companyColumns is the stable column order of companies.csv.
var companyColumns = []string{"secteur", "name", "description", "website", "raw"}

// WriteCompanies overwrites path with the records as CSV, sorted by
// (secteur, name) so output is grouped by sector and stable across runs.
func WriteCompanies(path string, records []*company.Record) error {
	sorted := make([]*company.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Secteur != sorted[j].Secteur {
			return sorted[i].Secteur < sorted[j].Secteur
		}
		return sorted[i].Name < sorted[j].Name
	})

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(companyColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, rec := range sorted {
		row := []string{rec.Secteur, rec.Name, rec.Description, rec.Website, rec.Raw}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing record %q: %w", rec.Name, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

// ReadCompanies reads a companies.csv produced by WriteCompanies. A missing
// file is an error; the caller decides whether that is fatal.
func ReadCompanies(path string) ([]*company.Record, error) {
	headers, rows, err := ReadRows(path)
	if err != nil {
		return nil, err
	}

	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	field := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]*company.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, &company.Record{
			Secteur:     field(row, "secteur"),
			Name:        field(row, "name"),
			Description: field(row, "description"),
			Website:     field(row, "website"),
			Raw:         field(row, "raw"),
		})
	}
	return records, nil
}

// ReadRows reads any CSV file and returns its header row and data rows.
func ReadRows(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows

	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	return all[0], all[1:], nil
}

// SectorStore writes per-sector contact files into a directory.
type SectorStore struct {
	dir string
}

// NewSectorStore creates the output directory if needed.
func NewSectorStore(dir string) (*SectorStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &SectorStore{dir: dir}, nil
}

// WriteSectorFile writes one sector's contact rows and returns the file path.
func (s *SectorStore) WriteSectorFile(slug string, rows []*sector.ContactRow) (string, error) {
	path := filepath.Join(s.dir, sector.FileName(slug))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(sector.Columns); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row.Values()); err != nil {
			return "", fmt.Errorf("writing row for %q: %w", row.Company, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing %s: %w", path, err)
	}
	return path, nil
}
