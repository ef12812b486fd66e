// Package rollcsv parses entitlement roll CSV exports. It auto-detects which
// layout (land registry or managing agency) a file uses by matching column
// headers against known profiles.
package rollcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	enc "github.com/MWhitfield89/strata/internal/encoding"
	"github.com/MWhitfield89/strata/internal/entitlement"
)

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]entitlement.LotParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching roll layout: expected registry or agency column headers")
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps column names to their position in the row.
type colIndex map[string]int

// detectProfile scans rows for a header matching a known profile. Some agency
// exports carry preamble lines above the header, so every row is a candidate.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts lot params from data rows. headerRowNum is the 0-based
// index of the header in the original file, used for error messages.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]entitlement.LotParams, error) {
	lotIdx := cols[p.LotCol]
	weightIdx := cols[p.WeightCol]
	ownerIdx := cols[p.OwnerCol]

	emailIdx := -1
	if idx, ok := cols[p.EmailCol]; ok {
		emailIdx = idx
	}

	var lots []entitlement.LotParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, past the header

		lotNumber := cellValue(row, lotIdx)
		if lotNumber == "" {
			// Blank lot number marks a footer or spacer row.
			continue
		}

		weight, err := parseEntitlement(cellValue(row, weightIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		owner := cellValue(row, ownerIdx)
		if owner == "" {
			return nil, fmt.Errorf("row %d: missing owner name", rowNum)
		}

		lots = append(lots, entitlement.LotParams{
			LotNumber:   lotNumber,
			Entitlement: weight,
			OwnerName:   owner,
			OwnerEmail:  parseEmail(cellValue(row, emailIdx)),
		})
	}

	return lots, nil
}

// parseEntitlement reads a positive integer weight. Agency exports sometimes
// pad with thousands separators, which are stripped.
func parseEntitlement(s string) (int64, error) {
	clean := strings.ReplaceAll(s, ",", "")

	w, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unreadable entitlement %q", s)
	}

	if w <= 0 {
		return 0, fmt.Errorf("entitlement must be positive, got %d", w)
	}

	return w, nil
}

// parseEmail keeps only plausible addresses; anything else becomes "no email",
// which the issuance flow treats as a physically delivered notice.
func parseEmail(s string) string {
	if !strings.Contains(s, "@") {
		return ""
	}

	return strings.ToLower(s)
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
