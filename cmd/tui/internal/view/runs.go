package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MWhitfield89/strata/internal/levy"
)

type runsState int

const (
	runsStateBrowse runsState = iota
	runsStateDetail
)

type RunsModel struct {
	CommonModel
	levyService *levy.Service
	schemeID    uuid.UUID

	state        runsState
	table        table.Model
	runs         []*levy.Run
	detailRun    *levy.Run
	detailTable  table.Model
	detailFooter string

	loading bool
	err     error
	status  string
}

func NewRunsModel(levySvc *levy.Service, schemeID uuid.UUID) RunsModel {
	columns := []table.Column{
		{Title: "Period", Width: 14},
		{Title: "Fund", Width: 9},
		{Title: "Start", Width: 12},
		{Title: "Due", Width: 12},
		{Title: "Total", Width: 12},
		{Title: "Status", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(runsTableStyles())

	return RunsModel{
		levyService: levySvc,
		schemeID:    schemeID,
		table:       t,
		loading:     true,
	}
}

func (m RunsModel) Title() string { return "Levy Runs" }

func (m RunsModel) ShortHelp() string {
	if m.state == runsStateDetail {
		return "Esc: back to list"
	}

	return "Esc: back | Enter: detail | x: delete draft | r: refresh"
}

func (m RunsModel) Init() tea.Cmd {
	return m.loadRunsCmd()
}

func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadRunsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.runs = msg.runs
		m.refreshTable()

		return m, nil

	case runDetailMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.detailRun = msg.run
		m.detailTable = buildInvoiceTable(msg.invoices)
		m.detailFooter = invoiceTally(msg.invoices)
		m.state = runsStateDetail

		return m, nil

	case deleteRunMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = "Draft run deleted."

		return m, m.loadRunsCmd()
	}

	switch m.state {
	case runsStateBrowse:
		return m.updateBrowse(msg)
	case runsStateDetail:
		return m.updateDetail(msg)
	}

	return m, nil
}

func (m RunsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadRunsCmd()
		case "enter":
			if run := m.selectedRun(); run != nil {
				return m, m.loadDetailCmd(run.ID)
			}
		case "x":
			if run := m.selectedRun(); run != nil {
				return m, m.deleteCmd(run.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m RunsModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = runsStateBrowse
			m.detailRun = nil

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.detailTable, cmd = m.detailTable.Update(msg)

	return m, cmd
}

func (m RunsModel) selectedRun() *levy.Run {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.runs) {
		return nil
	}

	return m.runs[idx]
}

func (m RunsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading levy runs...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == runsStateDetail {
		return m.viewDetail()
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView
	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m RunsModel) viewDetail() string {
	run := m.detailRun
	header := fmt.Sprintf(
		"%s (%s fund) | %s to %s | due %s | %s | %s",
		run.PeriodLabel,
		run.FundType,
		FormatDate(run.PeriodStart),
		FormatDate(run.PeriodEnd),
		FormatDate(run.DueDate),
		FormatAmount(run.TotalAmount),
		run.Status,
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.detailTable.View())

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			tableView,
			lipgloss.NewStyle().Faint(true).Render(m.detailFooter),
		),
	)
}

func (m *RunsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.runs))
	for _, run := range m.runs {
		rows = append(rows, table.Row{
			run.PeriodLabel,
			string(run.FundType),
			FormatDate(run.PeriodStart),
			FormatDate(run.DueDate),
			FormatAmount(run.TotalAmount),
			string(run.Status),
		})
	}
	m.table.SetRows(rows)
}

func buildInvoiceTable(invoices []*levy.Invoice) table.Model {
	columns := []table.Column{
		{Title: "Lot", Width: 10},
		{Title: "Owner", Width: 25},
		{Title: "Amount", Width: 12},
		{Title: "Status", Width: 9},
		{Title: "Sent", Width: 12},
		{Title: "Paid", Width: 12},
	}

	rows := make([]table.Row, len(invoices))
	for i, inv := range invoices {
		sent, paid := "", ""
		if inv.SentAt != nil {
			sent = FormatDate(*inv.SentAt)
		}
		if inv.PaidAt != nil {
			paid = FormatDate(*inv.PaidAt)
		}

		rows[i] = table.Row{
			inv.LotNumber,
			inv.OwnerName,
			FormatAmount(inv.Amount),
			string(inv.Status),
			sent,
			paid,
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(runsTableStyles())

	return t
}

func invoiceTally(invoices []*levy.Invoice) string {
	var pending, sent, paid int

	for _, inv := range invoices {
		switch inv.Status {
		case levy.InvoiceStatusPending:
			pending++
		case levy.InvoiceStatusSent:
			sent++
		case levy.InvoiceStatusPaid:
			paid++
		}
	}

	return fmt.Sprintf("%d invoices: %d pending, %d sent, %d paid", len(invoices), pending, sent, paid)
}

func runsTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	return s
}

// Messages

type loadRunsMsg struct {
	runs []*levy.Run
	err  error
}

func (m RunsModel) loadRunsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		runs, err := m.levyService.ListRuns(ctx, m.schemeID)

		return loadRunsMsg{runs: runs, err: err}
	}
}

type runDetailMsg struct {
	run      *levy.Run
	invoices []*levy.Invoice
	err      error
}

func (m RunsModel) loadDetailCmd(runID uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		run, invoices, err := m.levyService.RunDetail(ctx, runID)

		return runDetailMsg{run: run, invoices: invoices, err: err}
	}
}

type deleteRunMsg struct {
	err error
}

func (m RunsModel) deleteCmd(runID uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return deleteRunMsg{err: m.levyService.Delete(ctx, runID)}
	}
}
