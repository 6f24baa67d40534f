package report

import (
	"fmt"
	"io"
	"time"
)

func PrintSummary(w io.Writer, r *Report) {
	s := r.Stats

	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Wallet Summary")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Run ID:        %s\n", r.RunID)
	fmt.Fprintf(w, "Generated:     %s\n", r.Generated.Format(time.RFC3339))
	if r.Source != "" {
		fmt.Fprintf(w, "Source:        %s\n", r.Source)
	}
	fmt.Fprintf(w, "Records:       %d\n", s.TotalRecords)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Balance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start:         %.8f BTC\n", s.StartBalance)
	fmt.Fprintf(w, "End:           %.8f BTC\n", s.EndBalance)
	fmt.Fprintf(w, "Growth:        %+.8f BTC (%+.2f%%)\n", s.Growth, s.GrowthPct)
	fmt.Fprintf(w, "Peak:          %.8f BTC (%s)\n", s.MaxBalance, s.MaxTime)
	fmt.Fprintf(w, "Bottom:        %.8f BTC (%s)\n", s.MinBalance, s.MinTime)
	fmt.Fprintf(w, "Drawdown:      %.2f%%\n", s.Drawdown)
	fmt.Fprintf(w, "Max Drawdown:  %.2f%%\n", s.MaxDrawdownPct)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flows")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Deposits:      %.8f BTC\n", s.DepositSum)
	fmt.Fprintf(w, "Withdrawals:   %.8f BTC\n", s.WithdrawalSum)
	fmt.Fprintf(w, "Net Flow:      %.8f BTC\n", s.NetFlow)
	fmt.Fprintf(w, "Funding:       %.8f BTC (%d payments)\n", s.FundingSum, s.FundingPayments)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Realised PNL")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Total PNL:     %.8f BTC\n", s.TotalPNL)
	fmt.Fprintf(w, "Trades:        %d\n", s.PNLTrades)
	fmt.Fprintf(w, "Wins:          %d\n", s.WinCount)
	fmt.Fprintf(w, "Losses:        %d\n", s.LossCount)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", s.WinRate)

	if len(r.Series.TypeMix) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Transaction Types")
		fmt.Fprintln(w, "--------------------------------------------------")
		for _, tc := range r.Series.TypeMix {
			fmt.Fprintf(w, "%-14s %d\n", tc.Type+":", tc.Count)
		}
	}

	fmt.Fprintln(w)
}
