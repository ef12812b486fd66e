package notify

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/MWhitfield89/strata/internal/issuance"
	"github.com/MWhitfield89/strata/internal/levy"
	"github.com/MWhitfield89/strata/internal/money"
)

var noticeTmpl = template.Must(template.New("notice").Parse(`Dear {{.OwnerName}},

A {{.Fund}} levy has been struck for your lot.

Lot:            {{.LotNumber}}
Billing period: {{.PeriodLabel}}
Amount due:     {{.Amount}}
Due date:       {{.DueDate}}

Please pay by the due date to avoid interest accruing on arrears.

This notice was issued by your strata managing agent.
`))

type noticeData struct {
	OwnerName   string
	Fund        string
	LotNumber   string
	PeriodLabel string
	Amount      string
	DueDate     string
}

func renderNotice(n issuance.Notice) (string, error) {
	var sb strings.Builder

	err := noticeTmpl.Execute(&sb, noticeData{
		OwnerName:   n.OwnerName,
		Fund:        fundLabel(n.FundType),
		LotNumber:   n.LotNumber,
		PeriodLabel: n.PeriodLabel,
		Amount:      "$" + money.FormatCents(n.Amount),
		DueDate:     n.DueDate.Format("2 January 2006"),
	})
	if err != nil {
		return "", err
	}

	return sb.String(), nil
}

func subjectFor(n issuance.Notice) string {
	return fmt.Sprintf("Levy notice for lot %s (%s)", n.LotNumber, n.PeriodLabel)
}

func fundLabel(f levy.FundType) string {
	switch f {
	case levy.FundCapital:
		return "capital works"
	default:
		return "administrative"
	}
}
