package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/its-lee/crony"
	"github.com/its-lee/crony/internal/config"
	"github.com/its-lee/crony/internal/logging"
	"github.com/its-lee/crony/internal/render"
	"github.com/its-lee/crony/internal/source"
	"github.com/its-lee/crony/internal/timeparse"
)

const longDescription = `crony lists the jobs of a crontab that would run within a time window.

The crontab is read from --file, from the crontab of --user, from standard
input when it is not a terminal, or else from the current user's crontab.

Datetimes are preferably given as "YYYY-MM-DD HH:MM:SS"; other absolute forms,
unix timestamps, durations such as -1h and phrases such as "2 days ago" or
"in 3 hours" are accepted too. Both default to now.`

// NewRootCommand creates the crony command with its subcommands.
func NewRootCommand(app *App) *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:     "crony",
		Short:   "Analyse a crontab for the jobs running in a time window",
		Long:    longDescription,
		Version: app.Version,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return &UsageError{Err: err}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, cfgFile)
		},
	}
	cmd.SetVersionTemplate(versionString(app) + "\n")
	cmd.SetIn(app.Stdin)
	cmd.SetOut(app.Stdout)
	cmd.SetErr(app.Stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./crony.yaml, then $XDG_CONFIG_HOME/crony/crony.yaml, then ~/.crony.yaml)")
	flags.BoolP("version", "V", false, "print the version and exit")
	flags.CountP(config.KeyVerbose, "v", "log more: -v warnings, -vv info, -vvv debug")
	flags.String(config.KeyBegin, "now", "the datetime to begin at")
	flags.String(config.KeyEnd, "now", "the datetime to end at")
	flags.String(config.KeyFile, "", "the path to a crontab to be analysed")
	flags.String(config.KeyUser, "", "the user whose crontab is to be analysed")
	flags.BoolP(config.KeyIncludeDisabled, "i", false, "also include disabled cron jobs")
	flags.BoolP(config.KeyExcludeHeader, "x", false, "exclude the header from the output")
	flags.BoolP(config.KeyOnlyCommand, "c", false, "only show the command, not the full line")
	flags.CountP(config.KeyDetail, "d", "add detail: -d occurrence counts, -dd every occurrence")
	flags.String(config.KeyDetailLevel, "", "set the detail level explicitly: none, count or full")
	flags.StringP(config.KeyOutput, "o", "text", "output format: text, yaml or json")

	cmd.AddCommand(NewVersionCommand(app))
	return cmd
}

func run(cmd *cobra.Command, app *App, cfgFile string) error {
	v := config.New()
	if _, err := config.ReadFile(v, cfgFile); err != nil {
		return err
	}
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		if errors.Is(err, config.ErrUsage) {
			return &UsageError{Err: err}
		}
		return err
	}

	logger := logging.New(app.Stderr, cfg.Verbosity)
	if cfg.ConfigFile != "" {
		logger.Debug("using config file", "path", cfg.ConfigFile)
	}

	format, err := render.ParseFormat(cfg.Output)
	if err != nil {
		return &UsageError{Err: err}
	}
	detail, err := render.ParseDetail(cfg.DetailLevel)
	if err != nil {
		return &UsageError{Err: err}
	}

	tp := timeparse.New(app.Clock, app.Location)
	begin, err := tp.Parse(cfg.Begin)
	if err != nil {
		return usageErrorf("invalid --begin: %w", err)
	}
	end, err := tp.Parse(cfg.End)
	if err != nil {
		return usageErrorf("invalid --end: %w", err)
	}
	if end.Before(begin) {
		return usageErrorf("%w: %s is before %s", crony.ErrInvalidWindow,
			end.Format(crony.DateFormat), begin.Format(crony.DateFormat))
	}

	tab, err := source.Read(cmd.Context(), source.Options{
		File:       cfg.File,
		User:       cfg.User,
		Stdin:      app.Stdin,
		IsTerminal: func(r io.Reader) bool { return app.isTerminal(r) },
		Run:        app.Run,
	})
	switch {
	case errors.Is(err, source.ErrNoCrontab):
		logger.Warn("nothing to analyse", "err", err)
	case err != nil:
		return err
	}
	logger.Debug("read crontab", "source", tab.Name, "lines", len(tab.Lines))

	stats := newSummary()
	analyser := crony.NewAnalyser(
		crony.WithParser(crony.NewParser().WithCache()),
		crony.WithLogger(logging.NewAdapter(logger)),
		crony.WithIncludeDisabled(cfg.IncludeDisabled),
		crony.WithHooks(stats.hooks(logger)),
	)
	jobs, err := analyser.Analyse(tab.Lines, begin, end)
	if err != nil {
		if errors.Is(err, crony.ErrInvalidWindow) {
			return &UsageError{Err: err}
		}
		return err
	}
	stats.log(logger, tab.Name, len(tab.Lines), len(jobs))

	report := &render.Report{Source: tab.Name, Begin: begin, End: end, Jobs: jobs}
	return render.Write(cmd.OutOrStdout(), report, render.Options{
		Format:        format,
		Detail:        detail,
		ExcludeHeader: cfg.ExcludeHeader,
		OnlyCommand:   cfg.OnlyCommand,
		Styled:        format == render.FormatText && app.isTerminal(app.Stdout),
	})
}

// summary counts what happened to each line of the crontab.
type summary struct {
	skipped  map[crony.SkipReason]int
	analysed int
}

func newSummary() *summary {
	return &summary{skipped: make(map[crony.SkipReason]int)}
}

func (s *summary) hooks(logger *log.Logger) crony.AnalysisHooks {
	return crony.AnalysisHooks{
		OnLineSkipped: func(job crony.Job, reason crony.SkipReason) {
			s.skipped[reason]++
		},
		OnJobAnalysed: func(job crony.Job, occurrences int) {
			s.analysed++
			logger.Debug("analysed job", "line", job.LineNumber, "schedule", job.Spec, "occurrences", occurrences)
		},
	}
}

func (s *summary) log(logger *log.Logger, name string, lines, jobs int) {
	logger.Info("analysed crontab",
		"source", name,
		"lines", lines,
		"jobs", jobs,
		"invalid", s.skipped[crony.SkipInvalid],
		"disabled", s.skipped[crony.SkipDisabled],
		"idle", s.skipped[crony.SkipNoOccurrences],
	)
	if n := s.skipped[crony.SkipInvalid]; n > 0 {
		logger.Warn(fmt.Sprintf("skipped %d invalid line(s)", n), "source", name)
	}
}
