package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gifnar/volunteerlog/internal/logbook"
)

func newExportCmd(v *viper.Viper, cfgFile *string) *cobra.Command {
	var (
		format string
		save   bool
	)

	c := &cobra.Command{
		Use:   "export",
		Short: "Export all entries as JSON or CSV",
		Long: `Export all entries, newest first. By default the export is written to
stdout; with --save it is written to the export directory instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "csv" {
				return fmt.Errorf("unknown format %q (want json or csv)", format)
			}
			return withSession(v, *cfgFile, func(s *session) error {
				return runExport(s, format, save, cmd.OutOrStdout())
			})
		},
	}

	c.Flags().StringVar(&format, "format", "csv", "output format: csv or json")
	c.Flags().BoolVar(&save, "save", false, "save to the export directory instead of printing")
	return c
}

func runExport(s *session, format string, save bool, out io.Writer) error {
	var (
		d   logbook.Downloader = writerDownloader{w: out}
		dir *logbook.DirDownloader
	)
	if save {
		dir = &logbook.DirDownloader{Dir: s.exportDir()}
		d = dir
	}

	lb := s.open(logbook.WithDownloader(d))
	var err error
	if format == "json" {
		err = lb.ExportJSON()
	} else {
		err = lb.ExportCSV()
	}
	if err != nil {
		return err
	}

	if dir != nil {
		fmt.Fprintf(out, "Exported %d entries to %s\n", lb.Len(), dir.LastPath)
	}
	return nil
}
