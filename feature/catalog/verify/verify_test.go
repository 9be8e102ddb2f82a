package verify

import (
	"context"
	"errors"
	"testing"

	"eprel-mirror/feature/catalog/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMirror struct {
	stats *store.Statistics
	err   error
}

func (m *fakeMirror) Statistics() (*store.Statistics, error) { return m.stats, m.err }

type fakeCounter struct {
	counts map[string]int
	errs   map[string]error
}

func (c *fakeCounter) ProductCount(ctx context.Context, group string) (int, error) {
	if err := c.errs[group]; err != nil {
		return 0, err
	}
	return c.counts[group], nil
}

func TestCheckReportsDrift(t *testing.T) {
	mirror := &fakeMirror{stats: &store.Statistics{ByCategory: []store.CategoryCount{
		{Code: "dishwashers", Products: 90},
		{Code: "tyres", Products: 50},
	}}}
	counter := &fakeCounter{counts: map[string]int{"dishwashers": 100, "tyres": 50}}

	reports, err := New(mirror, counter, zap.NewNop()).Check(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, "dishwashers", reports[0].Code)
	assert.Equal(t, int64(10), reports[0].Drift)
	assert.Equal(t, int64(0), reports[1].Drift)

	drifted := Drifted(reports)
	require.Len(t, drifted, 1)
	assert.Equal(t, "dishwashers", drifted[0].Code)
}

func TestCheckRecordsProbeFailures(t *testing.T) {
	mirror := &fakeMirror{stats: &store.Statistics{ByCategory: []store.CategoryCount{
		{Code: "dishwashers", Products: 90},
		{Code: "tyres", Products: 50},
	}}}
	counter := &fakeCounter{
		counts: map[string]int{"tyres": 50},
		errs:   map[string]error{"dishwashers": errors.New("timeout")},
	}

	reports, err := New(mirror, counter, zap.NewNop()).Check(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "timeout", reports[0].Err)
	assert.Empty(t, reports[1].Err)

	// A failed probe counts as drifted so it is never silently green.
	assert.Len(t, Drifted(reports), 1)
}

func TestCheckMirrorFailure(t *testing.T) {
	mirror := &fakeMirror{err: errors.New("db down")}

	_, err := New(mirror, &fakeCounter{}, zap.NewNop()).Check(context.Background())
	assert.ErrorContains(t, err, "reading mirror statistics")
}
