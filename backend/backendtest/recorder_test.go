package backendtest_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/chanlog/backend"
	"github.com/philipp01105/chanlog/backend/backendtest"
	"github.com/philipp01105/chanlog/core"
)

func TestProvider_RecordsWrites(t *testing.T) {
	p := backendtest.New(core.InfoLevel)

	s, err := p.Stream("org.example")
	require.NoError(t, err)

	s.Log(core.DebugLevel, "hidden", nil)
	s.Log(core.WarnLevel, "low disk: %d%%", nil, 5)

	recs := p.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, "org.example", recs[0].Stream)
	assert.Equal(t, core.WarnLevel, recs[0].Level)
	assert.Equal(t, "low disk: 5%", recs[0].Text())
}

func TestProvider_HandlesShareState(t *testing.T) {
	p := backendtest.New(core.InfoLevel)

	a, _ := p.Stream("org.example")
	b, _ := p.Stream("org.example")
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, p.Resolutions("org.example"))

	a.SetLevel(core.ErrorLevel)
	assert.Equal(t, core.ErrorLevel, b.Level())

	b.Log(core.ErrorLevel, "from b", nil)
	assert.Len(t, p.RecordsOf("org.example"), 1)
	assert.Empty(t, p.RecordsOf("other"))

	p.Reset()
	assert.Empty(t, p.Records())
	assert.Zero(t, p.Resolutions("org.example"))
	assert.Equal(t, core.ErrorLevel, a.Level(), "Reset keeps levels")
}

func TestProvider_Failures(t *testing.T) {
	p := backendtest.New(core.InfoLevel)
	boom := errors.New("boom")
	p.FailOn("errors.org.example", boom)

	_, err := p.Stream("errors.org.example")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, p.Resolutions("errors.org.example"))

	_, err = p.Stream("bad name")
	assert.ErrorIs(t, err, backend.ErrMalformedName)
	assert.Zero(t, p.Resolutions("bad name"))
}
