package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MWhitfield89/strata/internal/levy"
)

// ReconcileModel walks the operator through a run's unpaid invoices one at a
// time, marking them paid as bank receipts are matched off.
type ReconcileModel struct {
	CommonModel
	levyService *levy.Service
	schemeID    uuid.UUID

	runs      []*levy.Run
	runCursor int
	run       *levy.Run

	queue      []*levy.Invoice
	current    *levy.Invoice
	totalCount int
	paidCount  int

	loading bool
	status  string
	err     error
}

func NewReconcileModel(levySvc *levy.Service, schemeID uuid.UUID) ReconcileModel {
	return ReconcileModel{
		levyService: levySvc,
		schemeID:    schemeID,
		loading:     true,
	}
}

func (m ReconcileModel) Title() string { return "Reconcile Payments" }

func (m ReconcileModel) ShortHelp() string {
	if m.run == nil {
		return "Esc: back | Enter: select run"
	}

	return "p: mark paid | s: skip | Esc: back"
}

func (m ReconcileModel) Init() tea.Cmd {
	return m.loadRunsCmd()
}

func (m ReconcileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.run == nil {
			return m.updateRunSelect(msg)
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "p":
			if m.current != nil {
				return m, m.markPaidCmd(m.current.ID)
			}
		case "s":
			if m.current != nil {
				m.nextInvoice()
			}
		}

	case reconcileRunsMsg:
		m.loading = false
		m.runs = msg.runs

	case reconcileQueueMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.queue = msg.unpaid
		m.totalCount = len(m.queue)
		m.paidCount = 0
		m.nextInvoice()

	case markPaidMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error marking paid: %v", msg.err)
			break
		}

		m.paidCount++
		m.nextInvoice()
	}

	return m, nil
}

func (m ReconcileModel) updateRunSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, Back
	case "up":
		if m.runCursor > 0 {
			m.runCursor--
		}
	case "down":
		if m.runCursor < len(m.runs)-1 {
			m.runCursor++
		}
	case "enter":
		if m.runCursor < len(m.runs) {
			m.run = m.runs[m.runCursor]
			m.loading = true

			return m, m.loadQueueCmd(m.run.ID)
		}
	}

	return m, nil
}

func (m *ReconcileModel) nextInvoice() {
	if len(m.queue) == 0 {
		m.current = nil
		m.status = fmt.Sprintf("Done. %d of %d invoices marked paid.", m.paidCount, m.totalCount)

		return
	}

	m.current = m.queue[0]
	m.queue = m.queue[1:]
}

func (m ReconcileModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.run == nil {
		return m.viewRunSelect()
	}

	if m.current == nil {
		if m.totalCount == 0 {
			return lipgloss.NewStyle().Padding(2).Render("No unpaid invoices on this run.\n\n(Esc to back)")
		}

		return lipgloss.NewStyle().Padding(2).Render(m.status + "\n\n(Esc to back)")
	}

	info := fmt.Sprintf(
		"Lot: %s\nOwner: %s\nAmount: %s\nStatus: %s\n",
		m.current.LotNumber,
		m.current.OwnerName,
		FormatAmount(m.current.Amount),
		m.current.Status,
	)

	content := fmt.Sprintf("Unpaid invoice (%d remaining) on %s\n\n%s\n('p' to mark paid, 's' to skip, Esc to back)",
		len(m.queue)+1, m.run.PeriodLabel, info)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}

func (m ReconcileModel) viewRunSelect() string {
	if len(m.runs) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("No issued runs to reconcile.\n\n(Esc to back)")
	}

	s := "Select run to reconcile:\n\n"

	for i, run := range m.runs {
		cursor := " "
		if i == m.runCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s (%s fund, %s)\n",
			cursor, run.PeriodLabel, run.FundType, FormatAmount(run.TotalAmount))
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

// Messages

type reconcileQueueMsg struct {
	unpaid []*levy.Invoice
	err    error
}

func (m ReconcileModel) loadRunsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		runs, err := m.levyService.ListRuns(ctx, m.schemeID)
		if err != nil {
			return reconcileQueueMsg{err: err}
		}

		var issued []*levy.Run
		for _, run := range runs {
			if run.Status == levy.RunStatusIssued {
				issued = append(issued, run)
			}
		}

		return reconcileRunsMsg{runs: issued}
	}
}

type reconcileRunsMsg struct {
	runs []*levy.Run
}

func (m ReconcileModel) loadQueueCmd(runID uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, invoices, err := m.levyService.RunDetail(ctx, runID)
		if err != nil {
			return reconcileQueueMsg{err: err}
		}

		var unpaid []*levy.Invoice
		for _, inv := range invoices {
			if inv.Status != levy.InvoiceStatusPaid {
				unpaid = append(unpaid, inv)
			}
		}

		return reconcileQueueMsg{unpaid: unpaid}
	}
}

type markPaidMsg struct {
	err error
}

func (m ReconcileModel) markPaidCmd(invoiceID uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return markPaidMsg{err: m.levyService.MarkPaid(ctx, invoiceID)}
	}
}
