package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingPage = `<html><body><ul>
<li class="file-item file-video"><a class="link" href="one.mp4">One</a></li>
<li class="file-item"><a class="link" href="notes.txt">notes</a></li>
<li class="file-item file-video"><a class="link" href="two.mkv"></a></li>
</ul></body></html>`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[log]\nfile = \"" + filepath.ToSlash(filepath.Join(dir, "reel.log")) + "\"\n" +
		"[history]\nfile = \"" + filepath.ToSlash(filepath.Join(dir, "reel.db")) + "\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		listJSON = false
		versionJSON = false
		historyJSON = false
		historyLimit = 20
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func listingServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listingPage))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestListCommand_Table(t *testing.T) {
	ts := listingServer(t)

	out, err := execute(t, "list", "-c", writeTestConfig(t), ts.URL+"/videos/")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3, out)
	assert.Contains(t, lines[1], "One")
	assert.Contains(t, lines[1], ts.URL+"/videos/one.mp4")
	assert.Contains(t, lines[2], "(Noname)")
}

func TestListCommand_JSON(t *testing.T) {
	ts := listingServer(t)

	out, err := execute(t, "list", "--json", "-c", writeTestConfig(t), ts.URL+"/videos/")
	require.NoError(t, err)

	var items []listedItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 2)
	assert.Equal(t, 0, items[0].Index)
	assert.Equal(t, "One", items[0].Name)
	assert.Equal(t, ts.URL+"/videos/two.mkv", items[1].URL)
	assert.NotEmpty(t, items[1].ID)
}

func TestListCommand_LoadError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	_, err := execute(t, "list", "-c", writeTestConfig(t), ts.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to load playlist")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "reel dev\n", out)

	out, err = execute(t, "version", "--json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "dev", info["version"])
}
