package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stp/internal/config"
	"stp/internal/domain"
)

func testStorage(t *testing.T) *JSONStorage {
	t.Helper()
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	cfg.OutputJSONDir = "out"
	return NewJSONStorage(cfg)
}

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	st := testStorage(t)

	saved := &domain.RunSummary{
		Meta: domain.RunMeta{
			TotalTests:  3,
			PassedTests: 2,
			FailedTests: 1,
			Timestamp:   "2026-08-29T10:00:00Z",
		},
		Failures: []domain.TestFailure{
			{TestID: "MyTests/FooTests/testBar", Message: "boom", File: "Tests/FooTests.swift", Line: 9},
		},
	}
	require.NoError(t, st.Save(saved))

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, saved.Meta, loaded.Meta)
	require.Len(t, loaded.Failures, 1)
	assert.Equal(t, saved.Failures[0], loaded.Failures[0])
}

func TestJSONStorage_SavePreservesResolvedFlag(t *testing.T) {
	st := testStorage(t)

	summary := &domain.RunSummary{
		Failures: []domain.TestFailure{
			{TestID: "MyTests/FooTests/testBar", Message: "boom", Resolved: true},
		},
	}
	require.NoError(t, st.Save(summary))

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.True(t, loaded.Failures[0].Resolved)
}

func TestJSONStorage_LoadWithoutRun(t *testing.T) {
	_, err := testStorage(t).Load()
	assert.Error(t, err)
}
