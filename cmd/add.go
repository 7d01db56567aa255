package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gifnar/volunteerlog/internal/entry"
	"github.com/gifnar/volunteerlog/internal/logbook"
)

// errEntryRejected is returned after the alert has already explained why.
var errEntryRejected = errors.New("entry not saved")

func newAddCmd(v *viper.Viper, cfgFile *string) *cobra.Command {
	var f entry.Fields

	c := &cobra.Command{
		Use:   "add",
		Short: "Log a volunteer session",
		Long: `Log a volunteer session. Date defaults to today and hours to the
default_hours setting; organization is required.`,
		Example: `  volunteerlog add --org "Houston Food Bank" --hours 2.5 --tags "food, service"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(v, *cfgFile, func(s *session) error {
				if !cmd.Flags().Changed("date") {
					f.Date = time.Now().Format("2006-01-02")
				}
				if !cmd.Flags().Changed("hours") {
					f.Hours = s.store.DefaultHours()
				}
				return runAdd(s, f, cmd.OutOrStdout(), cmd.ErrOrStderr())
			})
		},
	}

	c.Flags().StringVar(&f.Date, "date", "", "session date, YYYY-MM-DD (default today)")
	c.Flags().StringVar(&f.Org, "org", "", "organization")
	c.Flags().StringVar(&f.Hours, "hours", "", "hours served (default from settings)")
	c.Flags().StringVar(&f.Tasks, "tasks", "", "tasks or role")
	c.Flags().StringVar(&f.Reflection, "reflection", "", "what you learned, who you served")
	c.Flags().StringVar(&f.Tags, "tags", "", "comma-separated tags")
	return c
}

// stderrAlerter prints rejected-entry messages where a script will see them.
type stderrAlerter struct {
	w io.Writer
}

func (a stderrAlerter) Alert(msg string) {
	fmt.Fprintln(a.w, msg)
}

func runAdd(s *session, f entry.Fields, out, errOut io.Writer) error {
	lb := s.open(logbook.WithAlerter(stderrAlerter{w: errOut}))
	e, err := lb.Add(f)
	if err != nil {
		return errEntryRejected
	}
	fmt.Fprintf(out, "Added %s, %s (%sh) [%s]\n", e.Date, e.Org, formatHours(e.Hours), e.ID)
	return nil
}
