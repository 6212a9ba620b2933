package execution

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQueue_SuccessfulBuild(t *testing.T) {
	q := NewBuildQueue(zerolog.Nop())

	result, err := q.Enqueue(context.Background(), BuildSpec{Dir: t.TempDir(), Swift: "true"})

	require.NoError(t, err)
	assert.True(t, result.Ran)
	assert.Equal(t, 0, result.ExitCode)
}

func TestBuildQueue_FailedBuildReportsExitStatus(t *testing.T) {
	q := NewBuildQueue(zerolog.Nop())

	result, err := q.Enqueue(context.Background(), BuildSpec{Dir: t.TempDir(), Swift: "false"})

	require.NoError(t, err, "a failing compiler is a result, not an error")
	assert.True(t, result.Ran)
	assert.NotEqual(t, 0, result.ExitCode)
}

func TestBuildQueue_MissingCompilerDidNotRun(t *testing.T) {
	q := NewBuildQueue(zerolog.Nop())

	result, err := q.Enqueue(context.Background(), BuildSpec{Dir: t.TempDir(), Swift: "stp-no-such-compiler"})

	require.Error(t, err)
	assert.False(t, result.Ran)
}

func TestBuildQueue_CancelledWhileWaitingForSlot(t *testing.T) {
	q := NewBuildQueue(zerolog.Nop())
	dir := t.TempDir()

	// Occupy the folder's slot so the enqueue has to wait.
	q.slot(dir) <- struct{}{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := q.Enqueue(ctx, BuildSpec{Dir: dir, Swift: "true"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildQueue_SerializesBuildsPerFolder(t *testing.T) {
	q := NewBuildQueue(zerolog.Nop())
	dir := t.TempDir()

	q.slot(dir) <- struct{}{}

	done := make(chan struct{})
	go func() {
		_, _ = q.Enqueue(context.Background(), BuildSpec{Dir: dir, Swift: "true"})
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("second build must wait for the folder's slot")
	case <-time.After(50 * time.Millisecond):
	}

	<-q.slot(dir)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("build never acquired the released slot")
	}
}

func TestBuildQueue_DistinctFoldersDoNotBlockEachOther(t *testing.T) {
	q := NewBuildQueue(zerolog.Nop())

	q.slot(t.TempDir()) <- struct{}{}

	result, err := q.Enqueue(context.Background(), BuildSpec{Dir: t.TempDir(), Swift: "true"})
	require.NoError(t, err)
	assert.True(t, result.Ran)
}
