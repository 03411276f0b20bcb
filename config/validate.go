package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/philipp01105/chanlog/backend"
	"github.com/philipp01105/chanlog/facade"
)

// ErrInvalid wraps every problem Validate reports.
var ErrInvalid = errors.New("config: invalid")

var (
	backends = []string{"native", "zap", "logrus", "zerolog", "slog"}
	formats  = []string{"text", "json", "cbor"}
	channels = []string{facade.ErrorChannel, facade.AuditChannel, facade.MetricsChannel}
)

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if !slices.Contains(backends, c.Backend) {
		bad("backend %q, want one of %v", c.Backend, backends)
	}
	if !slices.Contains(formats, c.Format) {
		bad("format %q, want one of %v", c.Format, formats)
	}
	if c.Format == "cbor" && c.Backend != "native" {
		bad("format cbor needs the native backend")
	}
	if c.Output == "" {
		bad("empty output")
	}
	if _, err := facade.ParseLevel(c.RootLevel); err != nil {
		bad("rootLevel: %v", err)
	}
	if c.File.MaxSize < 0 || c.File.MaxBackups < 0 || c.File.MaxAge < 0 {
		bad("negative file rotation setting")
	}

	if len(c.ChannelOutputs) > 0 && c.Backend != "native" {
		bad("channelOutputs need the native backend")
	}
	for ch, out := range c.ChannelOutputs {
		if !slices.Contains(channels, ch) {
			bad("channelOutputs: unknown channel %q", ch)
		}
		if out == "" {
			bad("channelOutputs: empty output for %q", ch)
		}
	}

	seen := make(map[string]bool, len(c.Components))
	for i, comp := range c.Components {
		if err := backend.ValidateName(comp.Name); err != nil {
			bad("components[%d]: %v", i, err)
			continue
		}
		if seen[comp.Name] {
			bad("components[%d]: duplicate %q", i, comp.Name)
		}
		seen[comp.Name] = true
		if comp.Level != "" {
			if _, err := facade.ParseLevel(comp.Level); err != nil {
				bad("components[%d]: %v", i, err)
			}
		}
		for _, ch := range comp.Channels {
			if !slices.Contains(channels, ch) {
				bad("components[%d]: unknown channel %q", i, ch)
			}
		}
	}
	return errors.Join(errs...)
}
