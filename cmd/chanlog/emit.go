package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/philipp01105/chanlog/facade"
)

func newEmitCmd(a *app) *cobra.Command {
	var (
		name     string
		level    string
		channels []string
		cause    string
	)

	cmd := &cobra.Command{
		Use:   "emit MESSAGE [PARAMS...]",
		Short: "Write one message through a facade",
		Long: `Write MESSAGE at --level through the facade named --name.

PARAMS are substituted into MESSAGE with fmt verbs; numbers are passed as
numbers. Channels named with --channel are enabled first; SEVERE messages
then also reach the errors channel, and the audit and metrics channels
receive the message as well.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			lvl, err := facade.ParseLevel(level)
			if err != nil {
				return err
			}
			if lvl == facade.LevelOff {
				return errors.New("nothing is written at OFF")
			}
			if err := a.open(cmd); err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, a.close())
			}()

			log := a.reg.Named(name)
			if err := log.Resolve(); err != nil {
				return err
			}
			for _, ch := range channels {
				if _, err := log.EnableChannel(ch); err != nil {
					return err
				}
			}

			msg, params := args[0], parseParams(args[1:])
			emit(log, lvl, msg, cause, params)
			log.Audit(msg, params...)
			log.Metrics(msg, params...)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "chanlog", "facade name")
	cmd.Flags().StringVar(&level, "level", "INFO", "message level (SEVERE .. FINEST)")
	cmd.Flags().StringSliceVar(&channels, "channel", nil, "channels to enable: errors, audit, metrics")
	cmd.Flags().StringVar(&cause, "cause", "", "error text attached to a SEVERE message")
	return cmd
}

func emit(log *facade.Facade, lvl facade.Level, msg, cause string, params []any) {
	switch {
	case lvl == facade.LevelSevere:
		if cause != "" {
			if len(params) > 0 {
				msg = fmt.Sprintf(msg, params...)
			}
			log.ErrorCause(msg, errors.New(cause))
			return
		}
		log.Error(msg, params...)
	case lvl == facade.LevelWarning:
		log.Warn(msg, params...)
	case lvl == facade.LevelInfo:
		log.Info(msg, params...)
	case lvl == facade.LevelFinest || lvl == facade.LevelAll:
		log.Trace(msg, params...)
	default:
		log.Debug(msg, params...)
	}
}

// parseParams turns command line words into ints, floats, bools or
// strings.
func parseParams(words []string) []any {
	params := make([]any, 0, len(words))
	for _, w := range words {
		if i, err := strconv.ParseInt(w, 10, 64); err == nil {
			params = append(params, i)
		} else if f, err := strconv.ParseFloat(w, 64); err == nil {
			params = append(params, f)
		} else if b, err := strconv.ParseBool(w); err == nil {
			params = append(params, b)
		} else {
			params = append(params, w)
		}
	}
	return params
}
