package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/chanlog/backend/backendtest"
	"github.com/philipp01105/chanlog/core"
	"github.com/philipp01105/chanlog/facade"
)

func TestApply(t *testing.T) {
	p := backendtest.New(core.OffLevel)
	reg := facade.NewRegistry(p)

	cfg := Default()
	cfg.RootLevel = "WARNING"
	cfg.Components = []Component{
		{Name: "org.example.Calendar", Level: "FINE", Channels: []string{"errors", "metrics"}},
		{Name: "org.example.Scheduler", Channels: []string{"audit"}},
	}
	require.NoError(t, cfg.Apply(reg))

	assert.Equal(t, core.DebugLevel, p.RootLevel(), "component level raised the floor")

	cal := reg.Named("org.example.Calendar")
	assert.True(t, cal.IsDebugEnabled())
	assert.True(t, cal.IsErrorLoggerEnabled())
	assert.True(t, cal.IsMetricsLoggerEnabled())
	assert.False(t, cal.IsAuditLoggerEnabled())

	sched := reg.Named("org.example.Scheduler")
	assert.True(t, sched.IsAuditLoggerEnabled())
	sched.Audit("applied")
	assert.Len(t, p.RecordsOf("audit.org.example.Scheduler"), 1)
}

func TestApplyRootOnly(t *testing.T) {
	p := backendtest.New(core.InfoLevel)
	cfg := Default()
	cfg.RootLevel = "severe"

	require.NoError(t, cfg.Apply(facade.NewRegistry(p)))
	assert.Equal(t, core.ErrorLevel, p.RootLevel(), "the configured root level may be quieter")
}

func TestApplyCollectsFailures(t *testing.T) {
	p := backendtest.New(core.InfoLevel)
	cfg := Default()
	cfg.Components = []Component{
		{Name: "bad..name", Level: "FINE"},
		{Name: "Good", Channels: []string{"audit", "debug"}},
	}

	err := cfg.Apply(facade.NewRegistry(p))
	require.Error(t, err)
	var re *facade.ResolveError
	assert.ErrorAs(t, err, &re)
	assert.ErrorIs(t, err, facade.ErrUnknownChannel)
	assert.Equal(t, 1, p.Resolutions("audit.Good"), "later components are still applied")
}

type calendar struct{}

func TestApplyReachesTypedFacade(t *testing.T) {
	p := backendtest.New(core.InfoLevel)
	reg := facade.NewRegistry(p)
	name := "github.com/philipp01105/chanlog/config.calendar"

	cfg := Default()
	cfg.Components = []Component{{Name: name, Level: "FINE", Channels: []string{"errors"}}}
	require.NoError(t, cfg.Apply(reg))

	log := facade.Of[calendar](reg)
	assert.True(t, log.IsErrorLoggerEnabled())
	assert.True(t, log.IsDebugEnabled())

	log.Error("boom")
	assert.Len(t, p.RecordsOf(name), 1)
	assert.Len(t, p.RecordsOf("errors."+name), 1)
}
