package entitlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MWhitfield89/strata/internal/levy"
)

// ErrInvalidLot is wrapped by roll-row validation failures.
var ErrInvalidLot = errors.New("invalid lot")

//go:generate mockgen -source=service.go -destination=service_mock.go -package=entitlement
type Repository interface {
	// UpsertLots inserts or updates lots keyed by (scheme, lot number) within
	// one transaction, so a roll import is all-or-nothing.
	UpsertLots(ctx context.Context, schemeID uuid.UUID, params []LotParams) ([]*Lot, error)

	ListLots(ctx context.Context, schemeID uuid.UUID) ([]*Lot, error)
	Totals(ctx context.Context, schemeID uuid.UUID) (Totals, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ImportRoll validates and persists a batch of roll rows. Lots already on the
// roll are updated in place; lots dropped from the incoming file are left
// untouched because issued invoices may still reference them.
func (s *Service) ImportRoll(ctx context.Context, schemeID uuid.UUID, params []LotParams) ([]*Lot, error) {
	if len(params) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(params))

	for i, p := range params {
		if p.LotNumber == "" {
			return nil, fmt.Errorf("%w: row %d has no lot number", ErrInvalidLot, i+1)
		}

		if p.Entitlement <= 0 {
			return nil, fmt.Errorf("%w: lot %s has non-positive entitlement %d", ErrInvalidLot, p.LotNumber, p.Entitlement)
		}

		if _, dup := seen[p.LotNumber]; dup {
			return nil, fmt.Errorf("%w: lot %s appears twice", ErrInvalidLot, p.LotNumber)
		}

		seen[p.LotNumber] = struct{}{}
	}

	lots, err := s.repo.UpsertLots(ctx, schemeID, params)
	if err != nil {
		return nil, fmt.Errorf("importing roll: %w", err)
	}

	return lots, nil
}

func (s *Service) ListLots(ctx context.Context, schemeID uuid.UUID) ([]*Lot, error) {
	return s.repo.ListLots(ctx, schemeID)
}

func (s *Service) Totals(ctx context.Context, schemeID uuid.UUID) (Totals, error) {
	return s.repo.Totals(ctx, schemeID)
}

// ListWeightedLots implements levy.EntitlementSource, exposing the roll in the
// shape the distribution engine consumes. Order is stable (by lot number), so
// allocation tie-breaks are reproducible between preview and confirm.
func (s *Service) ListWeightedLots(ctx context.Context, schemeID uuid.UUID) ([]levy.WeightedLot, error) {
	lots, err := s.repo.ListLots(ctx, schemeID)
	if err != nil {
		return nil, err
	}

	weighted := make([]levy.WeightedLot, len(lots))
	for i, lot := range lots {
		weighted[i] = levy.WeightedLot{
			LotID:      lot.ID,
			LotNumber:  lot.LotNumber,
			Weight:     lot.Entitlement,
			OwnerName:  lot.OwnerName,
			OwnerEmail: lot.OwnerEmail,
		}
	}

	return weighted, nil
}
