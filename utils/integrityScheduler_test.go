package utils

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"course-service/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSweeper struct {
	calls atomic.Int32
	err   error
}

func (f *fakeSweeper) Sweep(ctx context.Context) (*services.SweepReport, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &services.SweepReport{OrphanedCategoryIDs: []string{}}, nil
}

func TestStartIntegritySchedulerRejectsBadSpec(t *testing.T) {
	_, err := StartIntegrityScheduler("every now and then", &fakeSweeper{}, NewNopLogger())
	assert.ErrorContains(t, err, "invalid integrity schedule")
}

func TestStartIntegrityScheduler(t *testing.T) {
	c, err := StartIntegrityScheduler("@every 1h", &fakeSweeper{}, NewNopLogger())
	require.NoError(t, err)
	defer c.Stop()

	assert.Len(t, c.Entries(), 1)
}

func TestRunIntegritySweep(t *testing.T) {
	ok := &fakeSweeper{}
	RunIntegritySweep(ok, NewNopLogger())
	assert.EqualValues(t, 1, ok.calls.Load())

	failing := &fakeSweeper{err: errors.New("db down")}
	RunIntegritySweep(failing, NewNopLogger())
	assert.EqualValues(t, 1, failing.calls.Load())
}
