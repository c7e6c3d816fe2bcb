// internal/app/system/csvutil/missions.go

// Package csvutil parses the bulk-import CSV formats for missions and
// showcase projects. Both formats require a header row; column names are
// matched case-insensitively and list-valued cells split on ';' or ','.
package csvutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dalemusser/makerhub/internal/domain/models"
)

// ParsedMission is a validated mission row from CSV.
type ParsedMission struct {
	Title        string
	Description  string
	Station      string
	CoverImage   string
	Difficulty   string
	Duration     string
	RealWorld    models.RealWorld
	Challenges   []models.TitledText
	Outcomes     []models.TitledText
	Technologies []string
	Skills       []string
	Gallery      []string
}

// ParsedShowcase is a validated showcase row from CSV (no station).
type ParsedShowcase struct {
	Title       string
	Description string
	CoverImage  string
	Gallery     []string
}

// MissionResult holds the outcome of parsing a mission CSV file.
type MissionResult struct {
	Missions []ParsedMission
	Errors   []RowError
}

// HasErrors returns true if there are any validation errors.
func (r *MissionResult) HasErrors() bool { return len(r.Errors) > 0 }

// ShowcaseResult holds the outcome of parsing a showcase CSV file.
type ShowcaseResult struct {
	Showcases []ParsedShowcase
	Errors    []RowError
}

// HasErrors returns true if there are any validation errors.
func (r *ShowcaseResult) HasErrors() bool { return len(r.Errors) > 0 }

// ParseMissionsCSV parses a mission import file. Required columns:
// Title, Description, Station. Optional columns include
// CoverImage/ThumbnailUrl/Image, Difficulty, Duration,
// RealWorld_{Title,Description,Companies}, Challenge_{1..3}_{Title,Desc},
// Outcome_{1..3}_{Title,Desc}, Technologies, Skills, Gallery.
//
// Returns ErrTooManyRows if opts.MaxRows is exceeded (when MaxRows > 0).
func ParseMissionsCSV(r io.Reader, opts ParseOptions) (MissionResult, error) {
	var result MissionResult

	rows, header, err := readRows(r, opts)
	if err != nil {
		return result, err
	}
	if header == nil {
		return result, nil // empty file
	}
	if err := requireColumns(header, "title", "description", "station"); err != nil {
		result.Errors = append(result.Errors, RowError{Line: 1, Reason: err.Error()})
		return result, nil
	}

	for _, row := range rows {
		get := cellGetter(header, row.cells)

		title := strings.TrimSpace(get("title"))
		desc := strings.TrimSpace(get("description"))
		station := strings.TrimSpace(get("station"))
		if title == "" || desc == "" || station == "" {
			result.Errors = append(result.Errors, RowError{
				Line:   row.line,
				Reason: "Title, Description, and Station are required",
			})
			continue
		}

		m := ParsedMission{
			Title:       title,
			Description: desc,
			Station:     station,
			CoverImage:  firstNonEmpty(get("coverimage"), get("thumbnailurl"), get("image")),
			Difficulty:  strings.TrimSpace(get("difficulty")),
			Duration:    strings.TrimSpace(get("duration")),
			RealWorld: models.RealWorld{
				Title:       strings.TrimSpace(get("realworld_title")),
				Description: strings.TrimSpace(get("realworld_description")),
				Companies:   SplitList(get("realworld_companies")),
			},
			Technologies: SplitList(get("technologies")),
			Skills:       SplitList(get("skills")),
			Gallery:      SplitList(get("gallery")),
		}
		for i := 1; i <= 3; i++ {
			if t := strings.TrimSpace(get(fmt.Sprintf("challenge_%d_title", i))); t != "" {
				m.Challenges = append(m.Challenges, models.TitledText{
					Title:       t,
					Description: strings.TrimSpace(get(fmt.Sprintf("challenge_%d_desc", i))),
				})
			}
			if t := strings.TrimSpace(get(fmt.Sprintf("outcome_%d_title", i))); t != "" {
				m.Outcomes = append(m.Outcomes, models.TitledText{
					Title:       t,
					Description: strings.TrimSpace(get(fmt.Sprintf("outcome_%d_desc", i))),
				})
			}
		}

		result.Missions = append(result.Missions, m)
	}

	return result, nil
}

// ParseShowcaseCSV parses a showcase import file. Required columns:
// Title, Description.
func ParseShowcaseCSV(r io.Reader, opts ParseOptions) (ShowcaseResult, error) {
	var result ShowcaseResult

	rows, header, err := readRows(r, opts)
	if err != nil {
		return result, err
	}
	if header == nil {
		return result, nil
	}
	if err := requireColumns(header, "title", "description"); err != nil {
		result.Errors = append(result.Errors, RowError{Line: 1, Reason: err.Error()})
		return result, nil
	}

	for _, row := range rows {
		get := cellGetter(header, row.cells)

		title := strings.TrimSpace(get("title"))
		desc := strings.TrimSpace(get("description"))
		if title == "" || desc == "" {
			result.Errors = append(result.Errors, RowError{
				Line:   row.line,
				Reason: "Title and Description are required",
			})
			continue
		}

		result.Showcases = append(result.Showcases, ParsedShowcase{
			Title:       title,
			Description: desc,
			CoverImage:  firstNonEmpty(get("coverimage"), get("thumbnailurl"), get("image")),
			Gallery:     SplitList(get("gallery")),
		})
	}

	return result, nil
}

// SplitList splits a list-valued cell on ';' or ',', trimming whitespace
// and dropping empty entries. Returns nil for a blank cell.
func SplitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ',' })
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

/* -------------------------------------------------------------------------- */
/* shared row reading                                                         */
/* -------------------------------------------------------------------------- */

type rawRow struct {
	line  int
	cells []string
}

// readRows reads the header and all data rows. header maps a normalized
// column name to its index; it is nil for an empty file.
func readRows(r io.Reader, opts ParseOptions) ([]rawRow, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable fields
	reader.TrimLeadingSpace = true

	first, err := reader.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	// Handle BOM in first cell
	if len(first) > 0 {
		first[0] = strings.TrimPrefix(first[0], "\ufeff")
	}

	header := make(map[string]int, len(first))
	for i, name := range first {
		header[normalizeColumn(name)] = i
	}

	var rows []rawRow
	line := 1
	for {
		rec, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(rec) == 0 || allBlank(rec) {
			continue
		}
		if opts.MaxRows > 0 && len(rows) >= opts.MaxRows {
			return nil, nil, ErrTooManyRows
		}
		rows = append(rows, rawRow{line: line, cells: rec})
	}

	return rows, header, nil
}

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func cellGetter(header map[string]int, cells []string) func(string) string {
	return func(col string) string {
		idx, ok := header[col]
		if !ok || idx >= len(cells) {
			return ""
		}
		return cells[idx]
	}
}

func requireColumns(header map[string]int, cols ...string) error {
	var missing []string
	for _, c := range cols {
		if _, ok := header[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func allBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
