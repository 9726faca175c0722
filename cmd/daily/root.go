package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/entrhq/daily/pkg/config"
	"github.com/entrhq/daily/pkg/diary"
	"github.com/entrhq/daily/pkg/logging"
	"github.com/entrhq/daily/pkg/tools"
	"github.com/entrhq/daily/pkg/tools/clock"
	diarytools "github.com/entrhq/daily/pkg/tools/diary"
)

// skipConfigAnnotation marks commands that run without loading config.
const skipConfigAnnotation = "daily/skip-config"

// app carries state shared by every subcommand once the root has run.
type app struct {
	configPath string
	diaryPath  string
	timezone   string
	logFile    string
	verbosity  int
	plain      bool

	cfg   *config.Config
	store *diary.FileStore
}

func newRootCmd(version string) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "daily",
		Short: "A personal diary kept as one markdown file per day",
		Long: `daily keeps timestamped, tagged journal entries in plain markdown files,
one per day under <root>/YYYY/MM/YYYY-MM-DD.md.

Entries can be added and searched from the shell, or through the XML tool
interface used by assistants (see "daily tool --help").`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ~/.daily-mcp/config.yaml)")
	flags.StringVar(&a.diaryPath, "diary-path", "", "diary root directory (overrides config)")
	flags.StringVar(&a.timezone, "timezone", "", "IANA time zone for entries (overrides config)")
	flags.StringVar(&a.logFile, "log-file", "", "also write logs to this file")
	flags.CountVarP(&a.verbosity, "verbose", "v", "increase log verbosity (-v info, -vv debug)")
	flags.BoolVar(&a.plain, "plain", false, "disable colored output")

	rootCmd.AddCommand(
		newAddCmd(a),
		newSearchCmd(a),
		newSummaryCmd(a),
		newTimeCmd(a),
		newMigrateCmd(a),
		newToolCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

// setup loads configuration, applies flag overrides and configures logging.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[skipConfigAnnotation] == "true" {
		return nil
	}

	cfg, err := config.Load(a.configPath, a.applyFlags)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, _ := logging.ParseLevel(cfg.Logging.Level)
	if a.verbosity > 0 {
		level = logging.LevelFromVerbosity(a.verbosity)
	}
	if err := logging.Setup(logging.Options{Level: level, File: cfg.Logging.File, Console: cmd.ErrOrStderr()}); err != nil {
		// Continue without file logging
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		a.plain = true
	}
	return nil
}

// applyFlags lets explicit flags win over the config file and environment.
func (a *app) applyFlags(cfg *config.Config) {
	if a.diaryPath != "" {
		cfg.Diary.Root = a.diaryPath
	}
	if a.timezone != "" {
		cfg.Diary.Timezone = a.timezone
	}
	if a.logFile != "" {
		cfg.Logging.File = a.logFile
	}
}

// openStore builds the configured store on first use.
func (a *app) openStore() (*diary.FileStore, error) {
	if a.store != nil {
		return a.store, nil
	}
	codec, err := diary.CodecByName(a.cfg.Diary.Format)
	if err != nil {
		return nil, err
	}
	loc, err := a.cfg.Location()
	if err != nil {
		return nil, err
	}
	store, err := diary.NewFileStore(a.cfg.Diary.Root,
		diary.WithCodec(codec),
		diary.WithLocation(loc),
		diary.WithLogger(logging.NewLogger("diary")),
	)
	if err != nil {
		return nil, err
	}
	logging.NewLogger("cli").Debugf("diary store at %s (%s)", store.Root(), codec.Name())
	a.store = store
	return store, nil
}

// registry exposes the store through the XML tool interface.
func (a *app) registry() (*tools.Registry, error) {
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	return tools.NewRegistry(
		diarytools.NewAddDiaryTool(store),
		diarytools.NewSearchDiaryTool(store),
		diarytools.NewDiarySummaryTool(store),
		clock.NewCurrentTimeTool(store.Now, store.Location()),
	)
}

// print writes a result to stdout, styled unless --plain.
func (a *app) print(cmd *cobra.Command, text string) {
	fmt.Fprintln(cmd.OutOrStdout(), stylize(text, a.plain))
}

// configFile resolves the path used by the config subcommands.
func (a *app) configFile() string {
	if a.configPath != "" {
		return filepath.Clean(config.ExpandHome(a.configPath))
	}
	return config.DefaultPath()
}
