package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/MWhitfield89/strata/cmd/tui/internal/view"
	"github.com/MWhitfield89/strata/internal/config"
	"github.com/MWhitfield89/strata/internal/database"
	"github.com/MWhitfield89/strata/internal/entitlement"
	rollStore "github.com/MWhitfield89/strata/internal/entitlement/store"
	"github.com/MWhitfield89/strata/internal/importer"
	"github.com/MWhitfield89/strata/internal/issuance"
	"github.com/MWhitfield89/strata/internal/levy"
	levyStore "github.com/MWhitfield89/strata/internal/levy/store"
	"github.com/MWhitfield89/strata/internal/notify"
)

type model struct {
	levyService     *levy.Service
	issuanceService *issuance.Service
	rollService     *entitlement.Service
	importService   *importer.Service
	schemeID        uuid.UUID

	currentView View

	rollView      view.RollModel
	newRunView    view.NewRunModel
	runsView      view.RunsModel
	issueView     view.IssueModel
	reconcileView view.ReconcileModel
}

type View int

const (
	ViewMenu      View = 0
	ViewRoll      View = 1
	ViewNewRun    View = 2
	ViewRuns      View = 3
	ViewIssue     View = 4
	ViewReconcile View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	schemeID, err := uuid.Parse(cfg.Scheme.ID)
	if err != nil {
		slog.Error("SCHEME_ID must be set to a valid scheme uuid", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	runStore := levyStore.New(db)
	rollSvc := entitlement.NewService(rollStore.New(db))
	levySvc := levy.NewService(runStore, rollSvc)
	mailer := notify.NewMailer(cfg.Mailer.BaseURL, cfg.Mailer.APIKey, cfg.Mailer.From)
	issueSvc := issuance.NewService(runStore, mailer, cfg.Dispatch.Workers)
	impSvc := importer.NewService()

	return model{
		levyService:     levySvc,
		issuanceService: issueSvc,
		rollService:     rollSvc,
		importService:   impSvc,
		schemeID:        schemeID,
		currentView:     ViewMenu,
		rollView:        view.NewRollModel(impSvc, rollSvc, schemeID),
		newRunView:      view.NewNewRunModel(levySvc, schemeID),
		runsView:        view.NewRunsModel(levySvc, schemeID),
		issueView:       view.NewIssueModel(levySvc, issueSvc, schemeID),
		reconcileView:   view.NewReconcileModel(levySvc, schemeID),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewRoll
				m.rollView = view.NewRollModel(m.importService, m.rollService, m.schemeID)

				return m, m.rollView.Init()
			case "2":
				m.currentView = ViewNewRun
				m.newRunView = view.NewNewRunModel(m.levyService, m.schemeID)

				return m, m.newRunView.Init()
			case "3":
				m.currentView = ViewRuns
				m.runsView = view.NewRunsModel(m.levyService, m.schemeID)

				return m, m.runsView.Init()
			case "4":
				m.currentView = ViewIssue
				m.issueView = view.NewIssueModel(m.levyService, m.issuanceService, m.schemeID)

				return m, m.issueView.Init()
			case "5":
				m.currentView = ViewReconcile
				m.reconcileView = view.NewReconcileModel(m.levyService, m.schemeID)

				return m, m.reconcileView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewRoll:
		var newModel tea.Model
		newModel, cmd = m.rollView.Update(msg)
		m.rollView = newModel.(view.RollModel)
	case ViewNewRun:
		var newModel tea.Model
		newModel, cmd = m.newRunView.Update(msg)
		m.newRunView = newModel.(view.NewRunModel)
	case ViewRuns:
		var newModel tea.Model
		newModel, cmd = m.runsView.Update(msg)
		m.runsView = newModel.(view.RunsModel)
	case ViewIssue:
		var newModel tea.Model
		newModel, cmd = m.issueView.Update(msg)
		m.issueView = newModel.(view.IssueModel)
	case ViewReconcile:
		var newModel tea.Model
		newModel, cmd = m.reconcileView.Update(msg)
		m.reconcileView = newModel.(view.ReconcileModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Strata TUI\n\n" +
				"1. Import Entitlement Roll\n" +
				"2. New Levy Run\n" +
				"3. Browse Levy Runs\n" +
				"4. Issue Levy Run\n" +
				"5. Reconcile Payments\n\n" +
				"q. Quit",
		)
	case ViewRoll:
		return m.rollView.View()
	case ViewNewRun:
		return m.newRunView.View()
	case ViewRuns:
		return m.runsView.View()
	case ViewIssue:
		return m.issueView.View()
	case ViewReconcile:
		return m.reconcileView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
