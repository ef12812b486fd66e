package issuance_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MWhitfield89/strata/internal/issuance"
	"github.com/MWhitfield89/strata/internal/levy"
)

func draftRun(id uuid.UUID) *levy.Run {
	return &levy.Run{
		ID:          id,
		SchemeID:    uuid.New(),
		FundType:    levy.FundAdmin,
		PeriodLabel: "FY26 Q1",
		Status:      levy.RunStatusDraft,
	}
}

func invoicesWithEmails(runID uuid.UUID, emails ...string) []*levy.Invoice {
	invoices := make([]*levy.Invoice, len(emails))
	for i, email := range emails {
		invoices[i] = &levy.Invoice{
			ID:         uuid.New(),
			RunID:      runID,
			LotID:      uuid.New(),
			LotNumber:  fmt.Sprintf("L%d", i+1),
			OwnerEmail: email,
			Amount:     1000,
			Status:     levy.InvoiceStatusPending,
		}
	}

	return invoices
}

func TestService_IssuePreview(t *testing.T) {
	runID := uuid.New()

	t.Run("PartitionsByEmail", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := issuance.NewMockRepository(ctrl)
		repo.EXPECT().GetRun(gomock.Any(), runID).Return(draftRun(runID), nil)
		repo.EXPECT().ListInvoices(gomock.Any(), runID).
			Return(invoicesWithEmails(runID, "a@x.test", "", "b@x.test", ""), nil)

		svc := issuance.NewService(repo, issuance.NewMockSender(ctrl), 2)
		preview, err := svc.IssuePreview(context.Background(), runID)
		require.NoError(t, err)

		assert.Equal(t, 2, preview.Sendable)
		assert.Equal(t, 2, preview.Skipped)
		assert.Equal(t, []string{"L2", "L4"}, preview.SkippedLotNumbers)
	})

	t.Run("IssuedRunRejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := issuance.NewMockRepository(ctrl)
		issued := draftRun(runID)
		issued.Status = levy.RunStatusIssued
		repo.EXPECT().GetRun(gomock.Any(), runID).Return(issued, nil)

		svc := issuance.NewService(repo, issuance.NewMockSender(ctrl), 2)
		_, err := svc.IssuePreview(context.Background(), runID)
		assert.ErrorIs(t, err, levy.ErrRunAlreadyIssued)
	})
}

func TestService_ConfirmIssue_AllSent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runID := uuid.New()
	repo := issuance.NewMockRepository(ctrl)
	sender := issuance.NewMockSender(ctrl)

	invoices := invoicesWithEmails(runID, "a@x.test", "b@x.test", "c@x.test")

	repo.EXPECT().GetRun(gomock.Any(), runID).Return(draftRun(runID), nil)
	repo.EXPECT().ListInvoices(gomock.Any(), runID).Return(invoices, nil)
	sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	repo.EXPECT().MarkInvoiceSent(gomock.Any(), gomock.Any()).Return(true, nil).Times(3)
	repo.EXPECT().MarkRunIssued(gomock.Any(), runID).Return(true, nil)

	svc := issuance.NewService(repo, sender, 2)
	result, err := svc.ConfirmIssue(context.Background(), runID)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Sent)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.Failures)
}

func TestService_ConfirmIssue_PartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runID := uuid.New()
	repo := issuance.NewMockRepository(ctrl)
	sender := issuance.NewMockSender(ctrl)

	invoices := invoicesWithEmails(runID, "a@x.test", "bounce@x.test", "c@x.test")
	bounced := invoices[1]

	repo.EXPECT().GetRun(gomock.Any(), runID).Return(draftRun(runID), nil)
	repo.EXPECT().ListInvoices(gomock.Any(), runID).Return(invoices, nil)

	sender.EXPECT().Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, notice issuance.Notice) error {
			if notice.To == "bounce@x.test" {
				return errors.New("mailbox unavailable")
			}
			return nil
		}).
		Times(3)

	// Only the two successful sends are marked.
	repo.EXPECT().MarkInvoiceSent(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)

	// The run still flips to issued despite the failure.
	repo.EXPECT().MarkRunIssued(gomock.Any(), runID).Return(true, nil)

	svc := issuance.NewService(repo, sender, 2)
	result, err := svc.ConfirmIssue(context.Background(), runID)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Sent)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, bounced.ID, result.Failures[0].InvoiceID)
	assert.Equal(t, "L2", result.Failures[0].LotNumber)
	assert.Contains(t, result.Failures[0].Reason, "mailbox unavailable")
}

func TestService_ConfirmIssue_SkipsLotsWithoutEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runID := uuid.New()
	repo := issuance.NewMockRepository(ctrl)
	sender := issuance.NewMockSender(ctrl)

	invoices := invoicesWithEmails(runID,
		"a@x.test", "b@x.test", "c@x.test", "d@x.test",
		"e@x.test", "f@x.test", "g@x.test", "h@x.test",
		"", "")

	repo.EXPECT().GetRun(gomock.Any(), runID).Return(draftRun(runID), nil)
	repo.EXPECT().ListInvoices(gomock.Any(), runID).Return(invoices, nil)
	sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil).Times(8)
	repo.EXPECT().MarkInvoiceSent(gomock.Any(), gomock.Any()).Return(true, nil).Times(8)
	repo.EXPECT().MarkRunIssued(gomock.Any(), runID).Return(true, nil)

	svc := issuance.NewService(repo, sender, 4)
	result, err := svc.ConfirmIssue(context.Background(), runID)
	require.NoError(t, err)

	assert.Equal(t, 8, result.Sent)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, 0, result.Failed)
}

func TestService_ConfirmIssue_SecondCallSendsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runID := uuid.New()
	repo := issuance.NewMockRepository(ctrl)
	sender := issuance.NewMockSender(ctrl)

	issued := draftRun(runID)
	issued.Status = levy.RunStatusIssued
	repo.EXPECT().GetRun(gomock.Any(), runID).Return(issued, nil)

	svc := issuance.NewService(repo, sender, 2)
	result, err := svc.ConfirmIssue(context.Background(), runID)

	assert.ErrorIs(t, err, levy.ErrRunAlreadyIssued)
	assert.Nil(t, result)
}

func TestService_ConfirmIssue_MarkSentFailureStillCountsSent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runID := uuid.New()
	repo := issuance.NewMockRepository(ctrl)
	sender := issuance.NewMockSender(ctrl)

	invoices := invoicesWithEmails(runID, "a@x.test")

	repo.EXPECT().GetRun(gomock.Any(), runID).Return(draftRun(runID), nil)
	repo.EXPECT().ListInvoices(gomock.Any(), runID).Return(invoices, nil)
	sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().MarkInvoiceSent(gomock.Any(), invoices[0].ID).Return(false, errors.New("db down"))
	repo.EXPECT().MarkRunIssued(gomock.Any(), runID).Return(true, nil)

	svc := issuance.NewService(repo, sender, 1)
	result, err := svc.ConfirmIssue(context.Background(), runID)
	require.NoError(t, err)

	// The notice reached the owner; the ledger is behind, not the send.
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 0, result.Failed)
}

func TestService_ConfirmIssue_NothingSendable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runID := uuid.New()
	repo := issuance.NewMockRepository(ctrl)

	repo.EXPECT().GetRun(gomock.Any(), runID).Return(draftRun(runID), nil)
	repo.EXPECT().ListInvoices(gomock.Any(), runID).Return(invoicesWithEmails(runID, "", ""), nil)
	repo.EXPECT().MarkRunIssued(gomock.Any(), runID).Return(true, nil)

	svc := issuance.NewService(repo, issuance.NewMockSender(ctrl), 2)
	result, err := svc.ConfirmIssue(context.Background(), runID)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Sent)
	assert.Equal(t, 2, result.Skipped)
}
