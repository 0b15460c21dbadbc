package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forgeworks-labs/craftdex-cli/internal/core/domain"
)

func TestStatusCmd_Idle(t *testing.T) {
	mock := &mockCatalogSync{
		snapshot: testSnapshot(),
		status:   domain.SyncStatus{State: domain.SyncIdle, LastSync: testLastSync},
	}
	cleanup := setupCLITest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"status"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "State:      idle")
	assert.Contains(t, buf.String(), "2026-03-14 09:30:00")
	assert.Contains(t, buf.String(), "Recipes:    3")
	assert.Contains(t, buf.String(), "Favorites:  1")
}

func TestStatusCmd_FailedShowsError(t *testing.T) {
	mock := &mockCatalogSync{
		status: domain.SyncStatus{State: domain.SyncFailed, Err: domain.ErrNetwork},
	}
	cleanup := setupCLITest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"status"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "State:      failed")
	assert.Contains(t, buf.String(), domain.ErrNetwork.Error())
	assert.Contains(t, buf.String(), "Last sync:  never")
	assert.Contains(t, buf.String(), "no cached catalog")
}
