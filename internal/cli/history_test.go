package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/reel/internal/state"
)

func seedHistory(t *testing.T, cfgPath string, plays ...state.Play) {
	t.Helper()
	hist, err := state.Open(filepath.Join(filepath.Dir(cfgPath), "reel.db"), nil)
	require.NoError(t, err)
	for _, p := range plays {
		hist.RecordPlay(p)
		// Close flushes only the last pending play; reopen to keep each.
		require.NoError(t, hist.Close())
		hist, err = state.Open(filepath.Join(filepath.Dir(cfgPath), "reel.db"), nil)
		require.NoError(t, err)
	}
	require.NoError(t, hist.Close())
}

func TestHistoryCommand_Empty(t *testing.T) {
	out, err := execute(t, "history", "-c", writeTestConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing played yet.")
}

func TestHistoryCommand_Table(t *testing.T) {
	cfgPath := writeTestConfig(t)
	seedHistory(t, cfgPath,
		state.Play{Source: "http://host/a/", URL: "u1", Name: "One", Index: 0, Count: 3, At: time.Now().Add(-time.Hour)},
		state.Play{Source: "http://host/b/", URL: "u2", Index: 1, Count: 2, At: time.Now()},
	)

	out, err := execute(t, "history", "-c", cfgPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3, out)
	assert.Contains(t, lines[0], "LAST ITEM")
	assert.Contains(t, lines[1], "http://host/b/")
	assert.Contains(t, lines[1], "(Noname)")
	assert.Contains(t, lines[1], "2/2")
	assert.Contains(t, lines[2], "One")
	assert.Contains(t, lines[2], "1 hour ago")
}

func TestHistoryCommand_JSONLimit(t *testing.T) {
	cfgPath := writeTestConfig(t)
	seedHistory(t, cfgPath,
		state.Play{Source: "a", URL: "u1", At: time.Now().Add(-time.Minute)},
		state.Play{Source: "b", URL: "u2", At: time.Now()},
	)

	out, err := execute(t, "history", "--json", "-n", "1", "-c", cfgPath)
	require.NoError(t, err)

	var entries []historyEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "b", entries[0].Source)
	assert.Equal(t, int64(1), entries[0].PlayCount)
}
