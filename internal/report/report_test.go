package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportIsolatesFailures(t *testing.T) {
	boom := errors.New("boom")
	var r Report[int]

	r.Do("a", func() (int, error) { return 1, nil })
	r.Do("b", func() (int, error) { return 0, boom })
	r.Do("c", func() (int, error) { panic("kaboom") })
	r.Do("d", func() (int, error) { return 4, nil })

	require.Len(t, r.Results, 4)
	assert.Equal(t, []int{1, 4}, r.Values())

	failures := r.Failures()
	require.Len(t, failures, 2)
	assert.Equal(t, "b", failures[0].Key)
	assert.ErrorIs(t, failures[0].Err, boom)
	assert.Equal(t, "c", failures[1].Key)
	assert.Contains(t, failures[1].Err.Error(), "kaboom")
}

func TestReportNoFailures(t *testing.T) {
	var r Report[string]
	r.Succeed("x", "ok")
	assert.Empty(t, r.Failures())
}
