package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybersoft/talentmatch/pkg/health/checkers"
)

type pinger struct{ err error }

func (p pinger) Ping(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("ping without deadline")
	}
	return p.err
}

type named struct {
	name string
	err  error
}

func (n named) Name() string                { return n.name }
func (n named) Check(context.Context) error { return n.err }

func TestReady(t *testing.T) {
	ok := NewService(checkers.NewPostgresChecker(pinger{}))
	require.NoError(t, ok.Ready(context.Background()))

	down := NewService(
		checkers.NewPostgresChecker(pinger{}),
		checkers.NewPostgresChecker(pinger{err: errors.New("connection refused")}),
	)
	err := down.Ready(context.Background())
	require.Error(t, err)
	assert.Equal(t, "postgres: connection refused", err.Error())
}

func TestReportRunsEveryChecker(t *testing.T) {
	svc := NewService(
		named{name: "postgres", err: errors.New("connection refused")},
		named{name: "uploads"},
		named{name: "s3", err: errors.New("bucket missing")},
	)

	r := svc.Report(context.Background())
	assert.False(t, r.Ready)
	assert.Equal(t, map[string]string{
		"postgres": "connection refused",
		"uploads":  StatusOK,
		"s3":       "bucket missing",
	}, r.Checks)

	err := svc.Ready(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: connection refused")
	assert.Contains(t, err.Error(), "s3: bucket missing")
}

func TestReadyWithoutCheckers(t *testing.T) {
	svc := NewService()
	assert.NoError(t, svc.Ready(context.Background()))

	r := svc.Report(context.Background())
	assert.True(t, r.Ready)
	assert.Empty(t, r.Checks)
}
