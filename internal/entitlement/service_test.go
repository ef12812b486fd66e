package entitlement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MWhitfield89/strata/internal/entitlement"
)

func TestService_ImportRoll(t *testing.T) {
	schemeID := uuid.New()

	type testCase struct {
		name       string
		params     []entitlement.LotParams
		setupMock  func(m *entitlement.MockRepository)
		wantLen    int
		wantErr    error
		wantAnyErr bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: []entitlement.LotParams{
				{LotNumber: "1", Entitlement: 10, OwnerName: "A Owner"},
				{LotNumber: "2", Entitlement: 15, OwnerName: "B Owner", OwnerEmail: "b@x.test"},
			},
			setupMock: func(m *entitlement.MockRepository) {
				m.EXPECT().
					UpsertLots(gomock.Any(), schemeID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, params []entitlement.LotParams) ([]*entitlement.Lot, error) {
						lots := make([]*entitlement.Lot, len(params))
						for i, p := range params {
							lots[i] = &entitlement.Lot{
								ID:          uuid.New(),
								LotNumber:   p.LotNumber,
								Entitlement: p.Entitlement,
							}
						}
						return lots, nil
					})
			},
			wantLen: 2,
		},
		{
			name:   "EmptyBatchIsNoOp",
			params: nil,
		},
		{
			name: "MissingLotNumber",
			params: []entitlement.LotParams{
				{LotNumber: "", Entitlement: 10, OwnerName: "A Owner"},
			},
			wantErr: entitlement.ErrInvalidLot,
		},
		{
			name: "ZeroEntitlement",
			params: []entitlement.LotParams{
				{LotNumber: "1", Entitlement: 0, OwnerName: "A Owner"},
			},
			wantErr: entitlement.ErrInvalidLot,
		},
		{
			name: "DuplicateLotNumber",
			params: []entitlement.LotParams{
				{LotNumber: "1", Entitlement: 10, OwnerName: "A Owner"},
				{LotNumber: "1", Entitlement: 20, OwnerName: "B Owner"},
			},
			wantErr: entitlement.ErrInvalidLot,
		},
		{
			name: "RepoError",
			params: []entitlement.LotParams{
				{LotNumber: "1", Entitlement: 10, OwnerName: "A Owner"},
			},
			setupMock: func(m *entitlement.MockRepository) {
				m.EXPECT().
					UpsertLots(gomock.Any(), schemeID, gomock.Any()).
					Return(nil, errors.New("db error"))
			},
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := entitlement.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := entitlement.NewService(repo)
			got, err := svc.ImportRoll(context.Background(), schemeID, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			if tt.wantAnyErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_ListWeightedLots(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	schemeID := uuid.New()
	repo := entitlement.NewMockRepository(ctrl)

	repo.EXPECT().ListLots(gomock.Any(), schemeID).Return([]*entitlement.Lot{
		{ID: uuid.New(), LotNumber: "1", Entitlement: 10, OwnerName: "A", OwnerEmail: "a@x.test"},
		{ID: uuid.New(), LotNumber: "2", Entitlement: 25, OwnerName: "B"},
	}, nil)

	svc := entitlement.NewService(repo)
	weighted, err := svc.ListWeightedLots(context.Background(), schemeID)
	require.NoError(t, err)

	require.Len(t, weighted, 2)
	assert.Equal(t, "1", weighted[0].LotNumber)
	assert.Equal(t, int64(10), weighted[0].Weight)
	assert.Equal(t, "a@x.test", weighted[0].OwnerEmail)
	assert.Equal(t, int64(25), weighted[1].Weight)
	assert.Empty(t, weighted[1].OwnerEmail)
}
