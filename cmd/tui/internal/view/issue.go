package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MWhitfield89/strata/internal/issuance"
	"github.com/MWhitfield89/strata/internal/levy"
)

const dispatchTimeout = 5 * time.Minute

type issueState int

const (
	issueStateSelect issueState = iota
	issueStatePreview
	issueStateDispatching
	issueStateResult
)

type IssueModel struct {
	CommonModel
	levyService  *levy.Service
	issueService *issuance.Service
	schemeID     uuid.UUID

	state   issueState
	drafts  []*levy.Run
	cursor  int
	run     *levy.Run
	preview *issuance.Preview
	result  *issuance.Result
	spinner spinner.Model

	loading bool
	err     error
}

func NewIssueModel(levySvc *levy.Service, issueSvc *issuance.Service, schemeID uuid.UUID) IssueModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return IssueModel{
		levyService:  levySvc,
		issueService: issueSvc,
		schemeID:     schemeID,
		spinner:      s,
		loading:      true,
	}
}

func (m IssueModel) Title() string { return "Issue Levy Run" }

func (m IssueModel) ShortHelp() string {
	switch m.state {
	case issueStatePreview:
		return "Enter: dispatch notices | Esc: back"
	case issueStateDispatching:
		return "Dispatching..."
	case issueStateResult:
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: select draft"
}

func (m IssueModel) Init() tea.Cmd {
	return m.loadDraftsCmd()
}

func (m IssueModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDraftsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.drafts = msg.drafts

		return m, nil

	case issuePreviewMsg:
		if msg.err != nil {
			m.state = issueStateResult
			m.err = msg.err

			return m, nil
		}

		m.preview = msg.preview
		m.state = issueStatePreview

		return m, nil

	case dispatchMsg:
		m.state = issueStateResult
		m.err = msg.err
		m.result = msg.result

		return m, nil
	}

	switch m.state {
	case issueStateSelect:
		return m.updateSelect(msg)
	case issueStatePreview:
		return m.updatePreview(msg)
	case issueStateDispatching:
		return m.updateDispatching(msg)
	case issueStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m IssueModel) updateSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down":
		if m.cursor < len(m.drafts)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(m.drafts) {
			m.run = m.drafts[m.cursor]
			return m, m.previewCmd(m.run.ID)
		}
	}

	return m, nil
}

func (m IssueModel) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		m.state = issueStateSelect
		m.preview = nil

		return m, nil
	case "enter":
		m.state = issueStateDispatching

		return m, tea.Batch(m.spinner.Tick, m.dispatchCmd(m.run.ID))
	}

	return m, nil
}

func (m IssueModel) updateDispatching(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m IssueModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m IssueModel) View() string {
	switch m.state {
	case issueStateSelect:
		return m.viewSelect()
	case issueStatePreview:
		return m.viewPreview()
	case issueStateDispatching:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Dispatching levy notices for %s...", m.spinner.View(), m.run.PeriodLabel),
		)
	case issueStateResult:
		return m.viewResult()
	}

	return ""
}

func (m IssueModel) viewSelect() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading draft runs...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if len(m.drafts) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("No draft runs to issue.\n\n(Esc to back)")
	}

	s := "Select draft run to issue:\n\n"

	for i, run := range m.drafts {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s (%s fund, %s, due %s)\n",
			cursor, run.PeriodLabel, run.FundType, FormatAmount(run.TotalAmount), FormatDate(run.DueDate))
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m IssueModel) viewPreview() string {
	s := fmt.Sprintf(
		"Issue %s?\n\n%d notices will be emailed.\n%d lots have no email address and will be skipped.\n",
		m.run.PeriodLabel, m.preview.Sendable, m.preview.Skipped,
	)

	if len(m.preview.SkippedLotNumbers) > 0 {
		s += fmt.Sprintf("\nSkipped lots: %s\n", strings.Join(m.preview.SkippedLotNumbers, ", "))
	}

	s += "\nIssuing is permanent; the run cannot be edited or deleted afterwards.\n\n(Enter to dispatch, Esc to back)"

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m IssueModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)

	if m.err != nil {
		return style.Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)) +
				"\n\n(Esc to go back)",
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render(fmt.Sprintf("%s issued.", m.run.PeriodLabel))

	body := fmt.Sprintf("Sent: %d\nSkipped (no email): %d\nFailed: %d",
		m.result.Sent, m.result.Skipped, m.result.Failed)

	if len(m.result.Failures) > 0 {
		body += "\n\nFailed recipients (left pending for follow-up):"
		for _, f := range m.result.Failures {
			body += fmt.Sprintf("\n  lot %s <%s>: %s", f.LotNumber, f.Email, f.Reason)
		}
	}

	return style.Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", "(Esc to go back)"),
	)
}

// Messages

type loadDraftsMsg struct {
	drafts []*levy.Run
	err    error
}

func (m IssueModel) loadDraftsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		runs, err := m.levyService.ListRuns(ctx, m.schemeID)
		if err != nil {
			return loadDraftsMsg{err: err}
		}

		var drafts []*levy.Run
		for _, run := range runs {
			if run.Status == levy.RunStatusDraft {
				drafts = append(drafts, run)
			}
		}

		return loadDraftsMsg{drafts: drafts}
	}
}

type issuePreviewMsg struct {
	preview *issuance.Preview
	err     error
}

func (m IssueModel) previewCmd(runID uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		preview, err := m.issueService.IssuePreview(ctx, runID)

		return issuePreviewMsg{preview: preview, err: err}
	}
}

type dispatchMsg struct {
	result *issuance.Result
	err    error
}

func (m IssueModel) dispatchCmd(runID uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		result, err := m.issueService.ConfirmIssue(ctx, runID)

		return dispatchMsg{result: result, err: err}
	}
}
