package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gifnar/volunteerlog/internal/logbook"
)

func newClearCmd(v *viper.Viper, cfgFile *string) *cobra.Command {
	var yes bool

	c := &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved entry on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(v, *cfgFile, func(s *session) error {
				confirm := promptConfirmer{in: cmd.InOrStdin(), out: cmd.ErrOrStderr(), yes: yes}
				lb := s.open(logbook.WithConfirmer(confirm))
				n := lb.Len()
				if !lb.ClearAll() {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing cleared.")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d entries.\n", n)
				return nil
			})
		},
	}

	c.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return c
}

// promptConfirmer asks on out and reads the answer from in. Anything other
// than y or yes declines.
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
	yes bool
}

func (p promptConfirmer) Confirm(prompt string) bool {
	if p.yes {
		return true
	}
	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
