package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/Belphemur/SuperMusic/internal/models"
	"github.com/Belphemur/SuperMusic/internal/testutil"
)

type cliTestEnv struct {
	configPath string
	outputDir  string
	audio      []byte
}

// setupCLITestEnv starts a fake upstream serving lookup, search and media
// endpoints and writes a config file pointing at it.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	audio := testutil.AudioBytes(20000)
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/url":
			_, _ = w.Write([]byte(testutil.LookupReplyJSON(200, server.URL+"/media/"+r.URL.Query().Get("songId"), "")))
		case r.URL.Path == "/qq":
			_, _ = w.Write([]byte(testutil.QQSearchJSONP("callback",
				testutil.SearchHit{ID: "0039MnYb0qxYhV", Title: "晴天", Artist: "周杰伦", Album: "叶惠美"})))
		case r.URL.Path == "/wy":
			_, _ = w.Write([]byte(testutil.NeteaseEmptyJSON()))
		case strings.HasPrefix(r.URL.Path, "/media/"):
			w.Header().Set("Content-Length", strconv.Itoa(len(audio)))
			_, _ = w.Write(audio)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	base := t.TempDir()
	outputDir := filepath.Join(base, "out")
	configPath := filepath.Join(base, "config.yaml")
	content := fmt.Sprintf(`lookup:
  base_url: %[1]s/api
search:
  qq_url: %[1]s/qq
  netease_url: %[1]s/wy
download:
  output_dir: %[2]s
  tag_metadata: false
client_timeout: 5s
log_level: error
`, server.URL, outputDir)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{configPath: configPath, outputDir: outputDir, audio: audio}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestExtCommand(t *testing.T) {
	tests := []struct {
		quality  string
		expected string
	}{
		{"128k", "mp3"},
		{"320k", "mp3"},
		{"flac24bit", "flac"},
		{"atmos_plus", "flac"},
		{"unknown", "mp3"},
	}
	for _, tt := range tests {
		t.Run(tt.quality, func(t *testing.T) {
			out, err := runCLI(t, "ext", tt.quality)
			if err != nil {
				t.Fatalf("ext failed: %v", err)
			}
			if strings.TrimSpace(out) != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, out)
			}
		})
	}
}

func TestExtCommand_JSON(t *testing.T) {
	out, err := runCLI(t, "--json", "ext", "hires")
	if err != nil {
		t.Fatalf("ext failed: %v", err)
	}
	var decoded extOutput
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if decoded.Quality != "hires" || decoded.Extension != "flac" {
		t.Errorf("Unexpected output %+v", decoded)
	}
}

func TestURLCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, "-c", env.configPath, "url", "kw", "MUSIC_1", "320k")
	if err != nil {
		t.Fatalf("url failed: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "/media/MUSIC_1") {
		t.Errorf("Unexpected URL %q", out)
	}
}

func TestURLCommand_ValidationError(t *testing.T) {
	env := setupCLITestEnv(t)

	_, err := runCLI(t, "-c", env.configPath, "url", "xx", "1", "128k")
	if err == nil || !strings.Contains(err.Error(), "invalid download platform 'xx'") {
		t.Errorf("Expected platform validation error, got %v", err)
	}
}

func TestSearchCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, "-c", env.configPath, "search", "晴天")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	for _, want := range []string{"Title", "晴天", "周杰伦", "叶惠美", "0039MnYb0qxYhV"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected table to contain %q, got:\n%s", want, out)
		}
	}
}

func TestSearchCommand_JSONAndEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, "-c", env.configPath, "--json", "search", "-p", "tx", "晴天")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	var tracks []models.TrackRecord
	if err := json.Unmarshal([]byte(out), &tracks); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if len(tracks) != 1 || tracks[0].SourcePlatform != models.PlatformQQ {
		t.Errorf("Unexpected tracks %+v", tracks)
	}

	out, err = runCLI(t, "-c", env.configPath, "search", "-p", "wy", "晴天")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if strings.TrimSpace(out) != "No tracks found" {
		t.Errorf("Expected empty result message, got %q", out)
	}
}

func TestDownloadCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, "-c", env.configPath, "download", "mg", "600902000", "flac")
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	expected := filepath.Join(env.outputDir, "600902000.flac")
	if strings.TrimSpace(out) != expected {
		t.Errorf("Expected path %q, got %q", expected, out)
	}
	written, err := os.ReadFile(expected)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(written, env.audio) {
		t.Error("Expected downloaded bytes to match the media body")
	}
}

func TestDownloadCommand_OutputPath(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(t.TempDir(), "custom", "song.mp3")

	out, err := runCLI(t, "-c", env.configPath, "--json", "download", "-o", target, "kg", "abc", "128k")
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	var decoded downloadOutput
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if decoded.Path != target || decoded.BytesTransferred != uint64(len(env.audio)) {
		t.Errorf("Unexpected output %+v", decoded)
	}
}

func TestGetCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, "-c", env.configPath, "get", "-q", "320k", "晴天")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	expected := filepath.Join(env.outputDir, "晴天-周杰伦.mp3")
	if !strings.Contains(out, expected) {
		t.Errorf("Expected output to mention %q, got %q", expected, out)
	}
	if _, err := os.Stat(expected); err != nil {
		t.Errorf("Expected file to exist: %v", err)
	}
}
