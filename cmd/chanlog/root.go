package main

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/philipp01105/chanlog/config"
	"github.com/philipp01105/chanlog/facade"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgPath string
	envFile string

	cfg    config.Config
	engine *config.Engine
	reg    *facade.Registry
	// log reports on chanlog itself
	log *facade.Facade
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:   "chanlog",
		Short: "Drive the chanlog facade from the command line",
		Long: `chanlog writes through the logging facade over a configurable engine.

Examples:
  # show how abstract levels map to engine levels
  chanlog levels

  # write one message through zap as JSON
  chanlog emit --backend zap --format json --name org.example.Calendar "booked %d rooms" 3

  # capture CBOR to a file and read it back
  chanlog emit --format cbor --output app.cbor hello
  chanlog dump app.cbor`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgPath, "config", "", "config file (json, yaml or toml)")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before the environment is read")
	flags.String("backend", "native", "engine: native, zap, logrus, zerolog or slog")
	flags.String("format", "text", "output format: text, json or cbor")
	flags.String("output", "stdout", "stdout, stderr or a file path")
	flags.String("root-level", "INFO", "root level (OFF, SEVERE .. FINEST, ALL)")
	flags.Bool("caller", false, "record call sites")
	flags.Bool("async", false, "write through a queue (native engine)")

	for key, flag := range map[string]string{
		"backend":   "backend",
		"format":    "format",
		"output":    "output",
		"rootLevel": "root-level",
		"caller":    "caller",
		"async":     "async",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(
		newLevelsCmd(a),
		newEmitCmd(a),
		newConfigCmd(a),
		newDumpCmd(a),
	)
	return root
}

// loadConfig reads the dotenv file, the config file, the environment and
// the flags, in increasing precedence.
func (a *app) loadConfig() error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if a.cfgPath != "" {
		if err := config.ReadFile(a.v, a.cfgPath); err != nil {
			return err
		}
	}
	cfg, err := config.FromViper(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// open starts the configured engine and applies component settings.
func (a *app) open(cmd *cobra.Command) error {
	eng, err := config.Open(a.cfg, config.Console{
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.engine = eng
	a.reg = facade.NewRegistry(eng.Provider)
	if err := a.cfg.Apply(a.reg); err != nil {
		_ = eng.Close()
		return err
	}
	a.log = a.reg.Named("chanlog")
	a.log.Debug("opened %s engine, format %s, output %s", a.cfg.Backend, a.cfg.Format, a.cfg.Output)
	return nil
}

func (a *app) close() error {
	if a.engine == nil {
		return nil
	}
	return a.engine.Close()
}
