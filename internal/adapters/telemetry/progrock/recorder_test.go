package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/telemetry/progrock"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
)

func TestRecorder_Record(t *testing.T) {
	recorder := progrock.New()

	ctx, vertex := recorder.Record(context.Background(), "layer pkg-a")
	got, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, got)

	_, err := vertex.Stdout().Write([]byte("transpiling\n"))
	require.NoError(t, err)
	vertex.Log(domain.LogLevelWarn, "types mismatch")
	vertex.Complete(errors.New("boom"))
	vertex.Complete(nil)

	assert.Equal(t, 0, recorder.Pending())
	assert.NoError(t, recorder.Close())
}

func TestRecorder_RepeatedNames(t *testing.T) {
	recorder := progrock.New()

	_, first := recorder.Record(context.Background(), "layer pkg-a")
	_, second := recorder.Record(context.Background(), "layer pkg-a")
	assert.NotSame(t, first, second)
	assert.Equal(t, 2, recorder.Pending())

	first.Cached()
	first.Complete(nil)
	assert.Equal(t, 1, recorder.Pending())
}

func TestRecorder_CloseCompletesPending(t *testing.T) {
	recorder := progrock.New()
	_, _ = recorder.Record(context.Background(), "layer pkg-b")

	require.NoError(t, recorder.Close())
	assert.Equal(t, 0, recorder.Pending())
}
