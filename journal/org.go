// journal/org.go
package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/walletstats/report"
)

// FormatSummaryOrg renders a report summary as an Org-mode block suitable
// for pasting into a journal. Facts go in a PROPERTIES drawer so they stay
// searchable; the Notes heading is left for the reader.
func FormatSummaryOrg(r *report.Report) string {
	s := r.Stats
	heading := fmt.Sprintf("** Wallet Report: %s (%s)", r.Generated.UTC().Format("2006-01-02"), shortID(r.RunID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":ID: %s\n", r.RunID))
	b.WriteString(fmt.Sprintf(":SOURCE: %s\n", r.Source))
	b.WriteString(fmt.Sprintf(":GENERATED: %s\n", r.Generated.UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(":WARMUP_OFFSET: %d\n", r.WarmupOffset))
	b.WriteString(fmt.Sprintf(":START_BALANCE: %.8f\n", s.StartBalance))
	b.WriteString(fmt.Sprintf(":END_BALANCE: %.8f\n", s.EndBalance))
	b.WriteString(fmt.Sprintf(":GROWTH: %.8f\n", s.Growth))
	b.WriteString(fmt.Sprintf(":GROWTH_PCT: %.2f\n", s.GrowthPct))
	b.WriteString(fmt.Sprintf(":DEPOSITS: %.8f\n", s.DepositSum))
	b.WriteString(fmt.Sprintf(":WITHDRAWALS: %.8f\n", s.WithdrawalSum))
	b.WriteString(fmt.Sprintf(":NET_FLOW: %.8f\n", s.NetFlow))
	b.WriteString(fmt.Sprintf(":TOTAL_PNL: %.8f\n", s.TotalPNL))
	b.WriteString(fmt.Sprintf(":WIN_RATE: %.2f\n", s.WinRate))
	b.WriteString(fmt.Sprintf(":WINS: %d\n", s.WinCount))
	b.WriteString(fmt.Sprintf(":LOSSES: %d\n", s.LossCount))
	b.WriteString(fmt.Sprintf(":FUNDING: %.8f\n", s.FundingSum))
	b.WriteString(fmt.Sprintf(":PEAK: %.8f %s\n", s.MaxBalance, s.MaxTime))
	b.WriteString(fmt.Sprintf(":TROUGH: %.8f %s\n", s.MinBalance, s.MinTime))
	b.WriteString(fmt.Sprintf(":DRAWDOWN: %.2f\n", s.Drawdown))
	b.WriteString(fmt.Sprintf(":MAX_DRAWDOWN_PCT: %.2f\n", s.MaxDrawdownPct))
	b.WriteString(fmt.Sprintf(":RECORDS: %d\n", s.TotalRecords))
	b.WriteString(":END:\n")

	if len(r.Series.MonthlyPNL) > 0 {
		b.WriteString("\n*** Monthly PNL\n")
		b.WriteString("| Month | PNL (BTC) | Trades |\n")
		b.WriteString("|-------+-----------+--------|\n")
		for _, m := range r.Series.MonthlyPNL {
			b.WriteString(fmt.Sprintf("| %s | %.8f | %d |\n", m.YearMonth, m.Amount, m.Trades))
		}
	}

	b.WriteString("\n*** Notes\n- \n")
	return b.String()
}

// FormatRunsOrg renders stored runs separated by blank lines.
func FormatRunsOrg(runs []Run) string {
	var b strings.Builder
	for i, run := range runs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatSummaryOrg(&report.Report{
			RunID:        run.RunID,
			Generated:    run.Generated,
			Source:       run.Source,
			WarmupOffset: run.WarmupOffset,
			Stats:        run.Stats,
		}))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
