package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gifnar/volunteerlog/internal/logbook"
)

func newReportCmd(v *viper.Viper, cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show total hours per organization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(v, *cfgFile, func(s *session) error {
				lb := s.open()
				printReport(cmd.OutOrStdout(), lb.Summary(), lb.TotalHours())
				return nil
			})
		},
	}
}

func printReport(w io.Writer, summary []logbook.OrgHours, total float64) {
	if len(summary) == 0 {
		fmt.Fprintln(w, "No data yet.")
		return
	}

	fmt.Fprintf(w, "%-30s %10s %9s\n", "Organization", "Hours", "Sessions")
	fmt.Fprintln(w, strings.Repeat("-", 51))
	for _, s := range summary {
		fmt.Fprintf(w, "%-30s %10s %9d\n", s.Org, formatHours(s.Hours), s.Sessions)
	}
	fmt.Fprintln(w, strings.Repeat("-", 51))
	fmt.Fprintf(w, "%-30s %10s\n", "Total", formatHours(total))
}
