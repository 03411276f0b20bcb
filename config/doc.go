// Package config loads chanlog settings with viper, from a JSON, YAML or
// TOML file overlaid with CHANLOG_* environment variables, and turns them
// into a running engine and configured facades.
//
// Example:
//
//	cfg, err := config.Load("chanlog.yaml")
//	if err != nil {
//		return err
//	}
//	eng, err := config.Open(cfg, config.Console{})
//	if err != nil {
//		return err
//	}
//	defer eng.Close()
//	reg := facade.NewRegistry(eng.Provider)
//	if err := cfg.Apply(reg); err != nil {
//		return err
//	}
//
// A file looks like:
//
//	backend: native
//	format: json
//	output: /var/log/app.log
//	rootLevel: INFO
//	channelOutputs:
//	  audit: /var/log/audit.log
//	components:
//	  - name: org.example.Calendar
//	    level: FINE
//	    channels: [errors, audit]
package config
