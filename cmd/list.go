package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gifnar/volunteerlog/internal/entry"
)

func newListCmd(v *viper.Viper, cfgFile *string) *cobra.Command {
	var limit int

	c := &cobra.Command{
		Use:   "list",
		Short: "Show saved entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(v, *cfgFile, func(s *session) error {
				printEntries(cmd.OutOrStdout(), s.open().Entries(), limit)
				return nil
			})
		},
	}

	c.Flags().IntVarP(&limit, "limit", "n", 0, "show at most this many entries (0 for all)")
	return c
}

func printEntries(w io.Writer, entries []entry.Entry, limit int) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries yet.")
		return
	}

	fmt.Fprintf(w, "Saved Entries (%d), %sh total\n", len(entries), formatHours(entry.TotalHours(entries)))
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	for _, e := range entries {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s  %s  (%sh)\n", e.Date, e.Org, formatHours(e.Hours))
		if strings.TrimSpace(e.Tasks) != "" {
			fmt.Fprintf(w, "  Tasks: %s\n", e.Tasks)
		}
		if strings.TrimSpace(e.Reflection) != "" {
			fmt.Fprintf(w, "  Reflection: %s\n", e.Reflection)
		}
		if strings.TrimSpace(e.Tags) != "" {
			fmt.Fprintf(w, "  Tags: %s\n", e.Tags)
		}
	}
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
