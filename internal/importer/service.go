package importer

import (
	"fmt"
	"io"

	"github.com/MWhitfield89/strata/internal/entitlement"
	"github.com/MWhitfield89/strata/internal/importer/rollcsv"
)

type Service struct {
	csvImporter Importer
}

func NewService() *Service {
	return &Service{
		csvImporter: rollcsv.New(),
	}
}

// Import parses an uploaded entitlement roll into lot params.
func (s *Service) Import(format Format, r io.Reader) ([]entitlement.LotParams, error) {
	switch format {
	case FormatCSV:
		return s.csvImporter.Parse(r)
	default:
		return nil, fmt.Errorf("unknown roll format: %s", format)
	}
}
