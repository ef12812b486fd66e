package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MWhitfield89/strata/internal/levy"
	"github.com/MWhitfield89/strata/internal/money"
)

type newRunState int

const (
	newRunStateForm newRunState = iota
	newRunStatePreview
	newRunStateResult
)

type NewRunModel struct {
	CommonModel
	levyService *levy.Service
	schemeID    uuid.UUID

	state newRunState
	form  *huh.Form
	table table.Model

	preview *levy.PreviewResult

	// Form bindings
	formFund   string
	formAmount string
	formLabel  string
	formStart  string
	formEnd    string
	formDue    string

	status string
	err    error
}

func NewNewRunModel(levySvc *levy.Service, schemeID uuid.UUID) NewRunModel {
	m := NewRunModel{
		levyService: levySvc,
		schemeID:    schemeID,
		formFund:    string(levy.FundAdmin),
	}
	m.form = m.buildForm()

	return m
}

func (m NewRunModel) Title() string { return "New Levy Run" }

func (m NewRunModel) ShortHelp() string {
	switch m.state {
	case newRunStatePreview:
		return "Enter: confirm run | Esc: back to form"
	case newRunStateResult:
		return "Esc: back to menu"
	}

	return "Navigate form | Esc: cancel"
}

func (m *NewRunModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("fund").
				Title("Fund").
				Options(
					huh.NewOption("Administrative", string(levy.FundAdmin)),
					huh.NewOption("Capital Works", string(levy.FundCapital)),
				).
				Value(&m.formFund),

			huh.NewInput().
				Key("amount").
				Title("Total Budget").
				Placeholder("50000.00").
				Value(&m.formAmount).
				Validate(func(s string) error {
					cents, err := money.ToCents(s)
					if err != nil {
						return err
					}
					if cents <= 0 {
						return fmt.Errorf("budget must be positive")
					}
					return nil
				}),

			huh.NewInput().
				Key("label").
				Title("Period Label").
				Placeholder("FY26 Q1").
				Value(&m.formLabel).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("label cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("start").
				Title("Period Start").
				Placeholder("2026-07-01").
				Value(&m.formStart).
				Validate(validateDate),

			huh.NewInput().
				Key("end").
				Title("Period End").
				Placeholder("2026-09-30").
				Value(&m.formEnd).
				Validate(validateDate),

			huh.NewInput().
				Key("due").
				Title("Due Date").
				Placeholder("2026-07-28").
				Value(&m.formDue).
				Validate(validateDate),
		),
	).WithWidth(45).WithShowHelp(false)
}

func validateDate(s string) error {
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}

	return nil
}

func (m NewRunModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m NewRunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case previewMsg:
		if msg.err != nil {
			m.state = newRunStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.preview = msg.result
		m.table = buildPreviewTable(msg.result)
		m.state = newRunStatePreview

		return m, nil

	case confirmMsg:
		m.state = newRunStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Created draft run %s for %s.", msg.run.ID, msg.run.PeriodLabel)

		return m, nil
	}

	switch m.state {
	case newRunStateForm:
		return m.updateForm(msg)
	case newRunStatePreview:
		return m.updatePreview(msg)
	case newRunStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m NewRunModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.previewCmd()
}

func (m NewRunModel) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.state = newRunStateForm
			m.form = m.buildForm()

			return m, m.form.Init()
		case "enter":
			return m, m.confirmCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m NewRunModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m NewRunModel) View() string {
	switch m.state {
	case newRunStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	case newRunStatePreview:
		return m.viewPreview()
	case newRunStateResult:
		return m.viewResult()
	}

	return ""
}

func (m NewRunModel) viewPreview() string {
	balance := lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render("balanced")
	if !m.preview.Balanced {
		balance = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("UNBALANCED")
	}

	header := fmt.Sprintf(
		"Proposed allocation for %s\nLots: %d | Total entitlement: %d | Total: %s (%s)",
		m.formLabel,
		len(m.preview.Lines),
		m.preview.TotalWeight,
		FormatAmount(m.preview.TotalAmount),
		balance,
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			tableView,
			"\n(Enter to create draft run, Esc to edit)",
		),
	)
}

func (m NewRunModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) +
				"\n\n(Esc to go back)",
		)
	}

	return style.Render(
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(m.status) +
			"\n\n(Esc to go back)",
	)
}

func buildPreviewTable(result *levy.PreviewResult) table.Model {
	columns := []table.Column{
		{Title: "Lot", Width: 10},
		{Title: "Owner", Width: 25},
		{Title: "Entitlement", Width: 12},
		{Title: "Share", Width: 8},
		{Title: "Amount", Width: 12},
	}

	rows := make([]table.Row, len(result.Lines))
	for i, line := range result.Lines {
		rows[i] = table.Row{
			line.LotNumber,
			line.OwnerName,
			fmt.Sprintf("%d", line.Weight),
			fmt.Sprintf("%.2f%%", line.Percent),
			FormatAmount(line.Amount),
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

// Messages

type previewMsg struct {
	result *levy.PreviewResult
	err    error
}

func (m NewRunModel) previewCmd() tea.Cmd {
	fund := levy.FundType(m.formFund)
	amount := m.formAmount

	return func() tea.Msg {
		cents, err := money.ToCents(amount)
		if err != nil {
			return previewMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		result, err := m.levyService.Preview(ctx, m.schemeID, cents, fund)

		return previewMsg{result: result, err: err}
	}
}

type confirmMsg struct {
	run *levy.Run
	err error
}

func (m NewRunModel) confirmCmd() tea.Cmd {
	params := levy.ConfirmParams{
		SchemeID:    m.schemeID,
		FundType:    levy.FundType(m.formFund),
		PeriodLabel: strings.TrimSpace(m.formLabel),
	}
	amount := m.formAmount
	start, end, due := m.formStart, m.formEnd, m.formDue

	return func() tea.Msg {
		cents, err := money.ToCents(amount)
		if err != nil {
			return confirmMsg{err: err}
		}
		params.TotalAmount = cents

		// Inputs are pre-validated by the form.
		params.PeriodStart, _ = time.Parse(time.DateOnly, strings.TrimSpace(start))
		params.PeriodEnd, _ = time.Parse(time.DateOnly, strings.TrimSpace(end))
		params.DueDate, _ = time.Parse(time.DateOnly, strings.TrimSpace(due))

		ctx, cancel := DbCtx()
		defer cancel()

		run, err := m.levyService.Confirm(ctx, params)

		return confirmMsg{run: run, err: err}
	}
}
