package levy_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MWhitfield89/strata/internal/levy"
)

func rollOf(weights ...int64) []levy.WeightedLot {
	lots := make([]levy.WeightedLot, len(weights))
	for i, w := range weights {
		lots[i] = levy.WeightedLot{
			LotID:     uuid.New(),
			LotNumber: string(rune('A' + i)),
			Weight:    w,
			OwnerName: "Owner " + string(rune('A'+i)),
		}
	}

	return lots
}

func TestService_Preview(t *testing.T) {
	type args struct {
		budget   int64
		fundType levy.FundType
	}

	type testCase struct {
		name       string
		args       args
		setupMock  func(m *levy.MockEntitlementSource)
		wantTotal  int64
		wantErr    error
		wantAnyErr bool
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{budget: 10_000, fundType: levy.FundAdmin},
			setupMock: func(m *levy.MockEntitlementSource) {
				m.EXPECT().
					ListWeightedLots(gomock.Any(), gomock.Any()).
					Return(rollOf(1, 2, 3), nil)
			},
			wantTotal: 10_000,
		},
		{
			name: "UnevenBudgetStillBalances",
			args: args{budget: 100, fundType: levy.FundCapital},
			setupMock: func(m *levy.MockEntitlementSource) {
				m.EXPECT().
					ListWeightedLots(gomock.Any(), gomock.Any()).
					Return(rollOf(1, 1, 1), nil)
			},
			wantTotal: 100,
		},
		{
			name:    "InvalidFundType",
			args:    args{budget: 10_000, fundType: levy.FundType("sinking")},
			wantErr: levy.ErrInvalidFundType,
		},
		{
			name: "EmptyRoll",
			args: args{budget: 10_000, fundType: levy.FundAdmin},
			setupMock: func(m *levy.MockEntitlementSource) {
				m.EXPECT().
					ListWeightedLots(gomock.Any(), gomock.Any()).
					Return(nil, nil)
			},
			wantErr: levy.ErrNoLotsRegistered,
		},
		{
			name: "SourceError",
			args: args{budget: 10_000, fundType: levy.FundAdmin},
			setupMock: func(m *levy.MockEntitlementSource) {
				m.EXPECT().
					ListWeightedLots(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("db error"))
			},
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := levy.NewMockRepository(ctrl)
			source := levy.NewMockEntitlementSource(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(source)
			}

			svc := levy.NewService(repo, source)
			got, err := svc.Preview(context.Background(), uuid.New(), tt.args.budget, tt.args.fundType)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			if tt.wantAnyErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, got.TotalAmount)
			assert.True(t, got.Balanced)
		})
	}
}

func TestService_Preview_LineAmountsSumExactly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := levy.NewMockRepository(ctrl)
	source := levy.NewMockEntitlementSource(ctrl)

	// 200 total entitlement; a lot with 15 units of a $50,000 budget
	// must get exactly $3,750.00.
	lots := rollOf(15, 185)
	source.EXPECT().
		ListWeightedLots(gomock.Any(), gomock.Any()).
		Return(lots, nil)

	svc := levy.NewService(repo, source)
	got, err := svc.Preview(context.Background(), uuid.New(), 5_000_000, levy.FundAdmin)
	require.NoError(t, err)

	require.Len(t, got.Lines, 2)
	assert.Equal(t, int64(375_000), got.Lines[0].Amount)
	assert.Equal(t, int64(4_625_000), got.Lines[1].Amount)
	assert.Equal(t, int64(200), got.TotalWeight)
	assert.True(t, got.Balanced)
}

func validParams(schemeID uuid.UUID) levy.ConfirmParams {
	return levy.ConfirmParams{
		SchemeID:    schemeID,
		FundType:    levy.FundAdmin,
		TotalAmount: 10_000,
		PeriodLabel: "FY26 Q1",
		PeriodStart: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2026, 7, 28, 0, 0, 0, 0, time.UTC),
	}
}

func TestService_Confirm(t *testing.T) {
	schemeID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := levy.NewMockRepository(ctrl)
		source := levy.NewMockEntitlementSource(ctrl)
		svc := levy.NewService(repo, source)

		source.EXPECT().
			ListWeightedLots(gomock.Any(), schemeID).
			Return(rollOf(1, 2, 3, 5), nil)

		repo.EXPECT().
			CreateRunWithInvoices(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, run *levy.Run, invoices []*levy.Invoice) error {
				run.ID = uuid.New()
				run.CreatedAt = time.Now()

				assert.Equal(t, levy.RunStatusDraft, run.Status)
				require.Len(t, invoices, 4)

				var sum int64
				for _, inv := range invoices {
					assert.Equal(t, levy.InvoiceStatusPending, inv.Status)
					sum += inv.Amount
				}
				assert.Equal(t, int64(10_000), sum)

				return nil
			})

		run, err := svc.Confirm(context.Background(), validParams(schemeID))
		require.NoError(t, err)
		assert.NotEmpty(t, run.ID)
		assert.Equal(t, levy.RunStatusDraft, run.Status)
	})

	t.Run("StartNotBeforeEnd", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := levy.NewService(levy.NewMockRepository(ctrl), levy.NewMockEntitlementSource(ctrl))

		params := validParams(schemeID)
		params.PeriodEnd = params.PeriodStart

		_, err := svc.Confirm(context.Background(), params)
		assert.ErrorIs(t, err, levy.ErrInvalidPeriod)
	})

	t.Run("MissingDueDate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := levy.NewService(levy.NewMockRepository(ctrl), levy.NewMockEntitlementSource(ctrl))

		params := validParams(schemeID)
		params.DueDate = time.Time{}

		_, err := svc.Confirm(context.Background(), params)
		assert.ErrorIs(t, err, levy.ErrInvalidPeriod)
	})

	t.Run("RepoError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := levy.NewMockRepository(ctrl)
		source := levy.NewMockEntitlementSource(ctrl)
		svc := levy.NewService(repo, source)

		source.EXPECT().
			ListWeightedLots(gomock.Any(), schemeID).
			Return(rollOf(1), nil)
		repo.EXPECT().
			CreateRunWithInvoices(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("db error"))

		_, err := svc.Confirm(context.Background(), validParams(schemeID))
		assert.Error(t, err)
	})
}

func TestService_Delete(t *testing.T) {
	runID := uuid.New()

	type testCase struct {
		name      string
		setupMock func(m *levy.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "DraftDeleted",
			setupMock: func(m *levy.MockRepository) {
				m.EXPECT().DeleteDraftRun(gomock.Any(), runID).Return(true, nil)
			},
		},
		{
			name: "NotFound",
			setupMock: func(m *levy.MockRepository) {
				m.EXPECT().DeleteDraftRun(gomock.Any(), runID).Return(false, nil)
				m.EXPECT().GetRun(gomock.Any(), runID).Return(nil, levy.ErrRunNotFound)
			},
			wantErr: levy.ErrRunNotFound,
		},
		{
			name: "AlreadyIssued",
			setupMock: func(m *levy.MockRepository) {
				m.EXPECT().DeleteDraftRun(gomock.Any(), runID).Return(false, nil)
				m.EXPECT().GetRun(gomock.Any(), runID).Return(&levy.Run{ID: runID, Status: levy.RunStatusIssued}, nil)
			},
			wantErr: levy.ErrRunAlreadyIssued,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := levy.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := levy.NewService(repo, levy.NewMockEntitlementSource(ctrl))
			err := svc.Delete(context.Background(), runID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_MarkSent(t *testing.T) {
	invoiceID := uuid.New()

	t.Run("Updated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := levy.NewMockRepository(ctrl)
		repo.EXPECT().MarkInvoiceSent(gomock.Any(), invoiceID).Return(true, nil)

		svc := levy.NewService(repo, levy.NewMockEntitlementSource(ctrl))
		assert.NoError(t, svc.MarkSent(context.Background(), invoiceID))
	})

	t.Run("AlreadySentIsNoOp", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := levy.NewMockRepository(ctrl)
		repo.EXPECT().MarkInvoiceSent(gomock.Any(), invoiceID).Return(false, nil)
		repo.EXPECT().GetInvoice(gomock.Any(), invoiceID).
			Return(&levy.Invoice{ID: invoiceID, Status: levy.InvoiceStatusSent}, nil)

		svc := levy.NewService(repo, levy.NewMockEntitlementSource(ctrl))
		assert.NoError(t, svc.MarkSent(context.Background(), invoiceID))
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := levy.NewMockRepository(ctrl)
		repo.EXPECT().MarkInvoiceSent(gomock.Any(), invoiceID).Return(false, nil)
		repo.EXPECT().GetInvoice(gomock.Any(), invoiceID).Return(nil, levy.ErrInvoiceNotFound)

		svc := levy.NewService(repo, levy.NewMockEntitlementSource(ctrl))
		assert.ErrorIs(t, svc.MarkSent(context.Background(), invoiceID), levy.ErrInvoiceNotFound)
	})
}

func TestService_MarkPaid(t *testing.T) {
	invoiceID := uuid.New()

	t.Run("PaidFromPending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := levy.NewMockRepository(ctrl)
		repo.EXPECT().MarkInvoicePaid(gomock.Any(), invoiceID).Return(true, nil)

		svc := levy.NewService(repo, levy.NewMockEntitlementSource(ctrl))
		assert.NoError(t, svc.MarkPaid(context.Background(), invoiceID))
	})

	t.Run("AlreadyPaidIsNoOp", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := levy.NewMockRepository(ctrl)
		repo.EXPECT().MarkInvoicePaid(gomock.Any(), invoiceID).Return(false, nil)
		repo.EXPECT().GetInvoice(gomock.Any(), invoiceID).
			Return(&levy.Invoice{ID: invoiceID, Status: levy.InvoiceStatusPaid}, nil)

		svc := levy.NewService(repo, levy.NewMockEntitlementSource(ctrl))
		assert.NoError(t, svc.MarkPaid(context.Background(), invoiceID))
	})
}

func TestService_RunDetail(t *testing.T) {
	runID := uuid.New()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := levy.NewMockRepository(ctrl)
	repo.EXPECT().GetRun(gomock.Any(), runID).Return(&levy.Run{ID: runID}, nil)
	repo.EXPECT().ListInvoices(gomock.Any(), runID).Return([]*levy.Invoice{
		{ID: uuid.New(), RunID: runID},
		{ID: uuid.New(), RunID: runID},
	}, nil)

	svc := levy.NewService(repo, levy.NewMockEntitlementSource(ctrl))
	run, invoices, err := svc.RunDetail(context.Background(), runID)
	require.NoError(t, err)
	assert.Equal(t, runID, run.ID)
	assert.Len(t, invoices, 2)
}
