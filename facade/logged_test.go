package facade

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/chanlog/backend/backendtest"
	"github.com/philipp01105/chanlog/core"
)

type scheduler struct {
	*Logged
	jobs int
}

func (s *scheduler) run() {
	s.jobs++
	s.Info("ran job %d", s.jobs)
}

func TestLoggedUsesOwnerType(t *testing.T) {
	p := backendtest.New(core.InfoLevel)
	reg := NewRegistry(p)

	s := &scheduler{}
	s.Logged = reg.Bind(s)
	s.run()
	s.run()

	name := pkgPath + ".scheduler"
	recs := p.RecordsOf(name)
	require.Len(t, recs, 2)
	assert.Equal(t, "ran job 2", recs[1].Text())
	assert.Equal(t, 1, p.Resolutions(name))
	assert.Same(t, s.Logger(), s.Logger())
}

func TestLoggedOwnsItsFacade(t *testing.T) {
	p := backendtest.New(core.InfoLevel)
	reg := NewRegistry(p)

	a := &scheduler{}
	a.Logged = reg.Bind(a)
	b := &scheduler{}
	b.Logged = reg.Bind(b)

	a.EnableAuditLogger()
	assert.True(t, a.IsAuditLoggerEnabled())
	assert.False(t, b.IsAuditLoggerEnabled())

	a.Audit("from a")
	b.Audit("from b")
	recs := p.RecordsOf("audit." + pkgPath + ".scheduler")
	require.Len(t, recs, 1)
	assert.Equal(t, "from a", recs[0].Message)
}

func TestLoggedDelegates(t *testing.T) {
	p := backendtest.New(core.TraceLevel)
	l := NewLogged(p, &scheduler{})
	name := pkgPath + ".scheduler"

	assert.True(t, l.DebugEnabled())
	assert.True(t, l.TraceEnabled())
	assert.False(t, l.IsMetricsDebugEnabled())

	l.EnableErrorLogger()
	l.EnableMetricsLogger()
	assert.True(t, l.IsErrorLoggerEnabled())
	assert.True(t, l.IsMetricsLoggerEnabled())
	assert.True(t, l.IsMetricsDebugEnabled())

	boom := errors.New("boom")
	l.Trace("t")
	l.Debug("d")
	l.Warn("w")
	l.Error("e %d", 1)
	l.ErrorCause("ec", boom)
	l.Err(boom)
	l.Metrics("m")

	assert.Len(t, p.RecordsOf(name), 6)
	errs := p.RecordsOf("errors." + name)
	require.Len(t, errs, 3)
	assert.Equal(t, "boom", errs[2].Message)
	assert.Len(t, p.RecordsOf("metrics."+name), 1)
}

func TestSetLoggerType(t *testing.T) {
	p := backendtest.New(core.InfoLevel)
	l := NewLogged(p, &scheduler{})
	l.SetLoggerType(reflect.TypeOf((*calendar)(nil)).Elem())
	l.Info("x")

	assert.Len(t, p.RecordsOf(pkgPath+".calendar"), 1)
	assert.Empty(t, p.RecordsOf(pkgPath+".scheduler"))
}

func TestLoggedWithoutOwner(t *testing.T) {
	l := NewLogged(backendtest.New(core.InfoLevel), nil)
	assert.PanicsWithValue(t, ErrNoIdentity, func() { l.Info("x") })
}
