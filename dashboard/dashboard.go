// Package dashboard renders a report as a single self-contained HTML page
// with metric cards and Chart.js charts.
package dashboard

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/rustyeddy/walletstats/internal/fileutil"
	"github.com/rustyeddy/walletstats/report"
)

// ChartJS is the script URL loaded by the page.
const ChartJS = "https://cdn.jsdelivr.net/npm/chart.js"

//go:embed dashboard.html.tmpl
var pageSource string

var page = template.Must(template.New("dashboard").Parse(pageSource))

// Card is one metric tile.
type Card struct {
	Title    string
	Value    string
	Subtitle string
	Class    string
}

type view struct {
	Title     string
	ChartJS   string
	RunID     string
	Source    string
	Generated string
	Cards     []Card
	Stats     report.Stats
	Series    report.Series
}

// Render writes the dashboard page for r to w.
func Render(w io.Writer, r *report.Report) error {
	if r == nil {
		return fmt.Errorf("dashboard: nil report")
	}
	return page.Execute(w, view{
		Title:     "Wallet Dashboard",
		ChartJS:   ChartJS,
		RunID:     r.RunID,
		Source:    r.Source,
		Generated: r.Generated.UTC().Format(report.TimeLayout),
		Cards:     Cards(r.Stats),
		Stats:     r.Stats,
		Series:    r.Series,
	})
}

// WriteFile renders the dashboard to path, replacing any previous file only
// once rendering succeeded.
func WriteFile(path string, r *report.Report) error {
	return fileutil.WriteAtomic(path, func(w io.Writer) error {
		return Render(w, r)
	})
}

// Cards builds the metric tiles shown above the charts.
func Cards(s report.Stats) []Card {
	return []Card{
		{
			Title:    "Current Balance",
			Value:    fmt.Sprintf("%.8f BTC", s.EndBalance),
			Subtitle: fmt.Sprintf("From %.8f BTC", s.StartBalance),
		},
		{
			Title:    "Total Growth",
			Value:    fmt.Sprintf("%+.8f BTC", s.Growth),
			Subtitle: fmt.Sprintf("%.2f%%", s.GrowthPct),
			Class:    sign(s.Growth),
		},
		{
			Title:    "Realized PNL",
			Value:    fmt.Sprintf("%+.4f BTC", s.TotalPNL),
			Subtitle: fmt.Sprintf("%d Trades", s.PNLTrades),
			Class:    sign(s.TotalPNL),
		},
		{
			Title:    "Win Rate",
			Value:    fmt.Sprintf("%.2f%%", s.WinRate),
			Subtitle: fmt.Sprintf("%d Wins / %d Losses", s.WinCount, s.LossCount),
		},
		{
			Title:    "Net Deposits",
			Value:    fmt.Sprintf("%+.4f BTC", s.NetFlow),
			Subtitle: fmt.Sprintf("In: %.4f | Out: %.4f", s.DepositSum, s.WithdrawalSum),
			Class:    sign(s.NetFlow),
		},
		{
			Title:    "Peak to Trough",
			Value:    fmt.Sprintf("%.2f%%", s.Drawdown),
			Subtitle: fmt.Sprintf("Peak %.4f BTC on %s, trough %.4f BTC on %s", s.MaxBalance, s.MaxTime, s.MinBalance, s.MinTime),
			Class:    "negative",
		},
		{
			Title:    "Max Drawdown",
			Value:    fmt.Sprintf("%.2f%%", s.MaxDrawdownPct),
			Subtitle: "Worst fall from running peak",
			Class:    sign(s.MaxDrawdownPct),
		},
		{
			Title:    "Funding Income",
			Value:    fmt.Sprintf("%+.4f BTC", s.FundingSum),
			Subtitle: fmt.Sprintf("%d Payments", s.FundingPayments),
			Class:    sign(s.FundingSum),
		},
		{
			Title:    "Total Records",
			Value:    fmt.Sprintf("%d", s.TotalRecords),
			Subtitle: "All Transactions",
		},
	}
}

func sign(x float64) string {
	switch {
	case x > 0:
		return "positive"
	case x < 0:
		return "negative"
	}
	return ""
}
