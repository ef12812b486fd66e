package view

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MWhitfield89/strata/internal/entitlement"
	"github.com/MWhitfield89/strata/internal/importer"
)

type rollState int

const (
	rollStateFilePick rollState = iota
	rollStateImporting
	rollStateResult
)

// RollModel imports an entitlement roll export into the scheme.
type RollModel struct {
	CommonModel
	importService *importer.Service
	rollService   *entitlement.Service
	schemeID      uuid.UUID

	state      rollState
	filePicker filepicker.Model

	status string
	err    error
}

func NewRollModel(impSvc *importer.Service, rollSvc *entitlement.Service, schemeID uuid.UUID) RollModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return RollModel{
		importService: impSvc,
		rollService:   rollSvc,
		schemeID:      schemeID,
		filePicker:    fp,
	}
}

func (m RollModel) Title() string { return "Import Entitlement Roll" }

func (m RollModel) ShortHelp() string {
	if m.state == rollStateResult {
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: select file"
}

func (m RollModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m RollModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			if m.state == rollStateResult {
				m.state = rollStateFilePick
				m.err = nil
				m.status = ""

				return m, m.filePicker.Init()
			}

			return m, Back
		}

	case rollImportMsg:
		m.state = rollStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d lots (total entitlement %d).", msg.count, msg.totalWeight)

		return m, nil
	}

	if m.state != rollStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = rollStateImporting
		m.status = fmt.Sprintf("Importing roll from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m RollModel) View() string {
	switch m.state {
	case rollStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select roll export to import:\n\n%s", m.filePicker.View()),
		)
	case rollStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case rollStateResult:
		return m.viewResult()
	}

	return ""
}

func (m RollModel) viewResult() string {
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

// Messages

type rollImportMsg struct {
	count       int
	totalWeight int64
	err         error
}

func (m RollModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return rollImportMsg{err: err}
		}
		defer f.Close()

		params, err := m.importService.Import(importer.FormatCSV, f)
		if err != nil {
			return rollImportMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		lots, err := m.rollService.ImportRoll(ctx, m.schemeID, params)
		if err != nil {
			return rollImportMsg{err: err}
		}

		var totalWeight int64
		for _, lot := range lots {
			totalWeight += lot.Entitlement
		}

		return rollImportMsg{count: len(lots), totalWeight: totalWeight}
	}
}
