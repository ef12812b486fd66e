package importer

import (
	"io"

	"github.com/MWhitfield89/strata/internal/entitlement"
)

// Format identifies a supported roll-file format.
type Format string

const (
	FormatCSV Format = "csv"
)

// Importer parses one roll-file format into lot params.
type Importer interface {
	Parse(r io.Reader) ([]entitlement.LotParams, error)
}
