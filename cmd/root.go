package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gifnar/volunteerlog/internal/config"
	"github.com/gifnar/volunteerlog/internal/logbook"
	"github.com/gifnar/volunteerlog/internal/logging"
	"github.com/gifnar/volunteerlog/internal/store"
	"github.com/gifnar/volunteerlog/internal/tui"
)

// Execute is the entry point called from main.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree. Without a subcommand it starts the
// terminal UI.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:   "volunteerlog",
		Short: "Volunteer Log – record volunteer sessions on this device",
		Long: `volunteerlog keeps a local log of volunteer sessions: date, organization,
hours, tasks, a reflection and tags. Entries live in a SQLite file under
~/.config/volunteerlog/ and can be exported as JSON or CSV.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(v, cfgFile, runTUI)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (default ~/.config/volunteerlog/config.yaml)")
	f.String("db", "", "SQLite database path")
	f.String("export-dir", "", "directory exports are saved to")
	f.String("log-file", "", "append logs to this file")
	f.String("log-level", "", "debug, info, warn or error")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return bindFlags(v, root)
	}

	root.AddCommand(newAddCmd(v, &cfgFile))
	root.AddCommand(newListCmd(v, &cfgFile))
	root.AddCommand(newReportCmd(v, &cfgFile))
	root.AddCommand(newExportCmd(v, &cfgFile))
	root.AddCommand(newClearCmd(v, &cfgFile))
	return root
}

// flagKeys maps persistent flags to the config keys they override.
var flagKeys = []struct{ flag, key string }{
	{"db", config.KeyDBPath},
	{"export-dir", config.KeyExportDir},
	{"log-file", config.KeyLogFile},
	{"log-level", config.KeyLogLevel},
}

func bindFlags(v *viper.Viper, root *cobra.Command) error {
	for _, fk := range flagKeys {
		if err := v.BindPFlag(fk.key, root.PersistentFlags().Lookup(fk.flag)); err != nil {
			return fmt.Errorf("bind --%s: %w", fk.flag, err)
		}
	}
	return nil
}

// session is what every command runs against: the loaded configuration, the
// logger and the open database.
type session struct {
	cfg   config.Config
	log   *slog.Logger
	store *store.Store
}

func withSession(v *viper.Viper, cfgFile string, fn func(*session) error) error {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	log, logCloser, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	s, err := store.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer s.Close()

	log.Debug("session opened", "db", cfg.DBPath)
	return fn(&session{cfg: cfg, log: log, store: s})
}

func (s *session) repo() *store.Entries {
	return store.NewEntries(s.store, s.log)
}

func (s *session) open(opts ...logbook.Option) *logbook.Logbook {
	opts = append([]logbook.Option{logbook.WithLogger(s.log)}, opts...)
	return logbook.Open(s.repo(), opts...)
}

func (s *session) exportDir() string {
	return s.store.ExportDir(s.cfg.ExportDir)
}

func runTUI(s *session) error {
	app := tui.NewApp(s.repo(), s.store, s.cfg.ExportDir, logbook.WithLogger(s.log))
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// writerDownloader prints an export instead of saving it.
type writerDownloader struct {
	w io.Writer
}

func (d writerDownloader) Download(_, content string) error {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	_, err := io.WriteString(d.w, content)
	return err
}
