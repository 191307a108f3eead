package download_test

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adamwoolhether/restpipe/client"
	"github.com/adamwoolhether/restpipe/client/download"
)

const content = "the quick brown fox jumps over the lazy dog"

func sum(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

func setup(t *testing.T) (*client.Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, content)
	}))
	t.Cleanup(srv.Close)

	c, err := client.Build(client.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	t.Cleanup(c.Close)

	return c, srv
}

// leftovers reports files in dir other than keep.
func leftovers(t *testing.T, dir string, keep ...string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}

	var out []string
	for _, e := range entries {
		name := e.Name()
		if len(keep) > 0 && name == keep[0] {
			continue
		}
		out = append(out, name)
	}

	return out
}

func TestFile(t *testing.T) {
	c, srv := setup(t)
	dir := t.TempDir()
	dest := filepath.Join(dir, "fox.txt")

	var logs bytes.Buffer
	res, err := download.File(t.Context(), c, srv.URL+"/fox", dest, nil,
		download.WithChecksum(sha256.New(), strings.ToUpper(sum(content))),
		download.WithProgress(),
		download.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !res.Success {
		t.Errorf("expected success, got %+v", res)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if string(got) != content {
		t.Errorf("expected %q, got %q", content, got)
	}

	if extra := leftovers(t, dir, "fox.txt"); len(extra) != 0 {
		t.Errorf("expected no temp files, got %v", extra)
	}
	if !strings.Contains(logs.String(), "download complete") {
		t.Errorf("expected completion log, got %q", logs.String())
	}
}

func TestFile_Failures(t *testing.T) {
	c, srv := setup(t)

	testCases := map[string]struct {
		path   string
		opts   []download.Option
		expErr error
	}{
		"checksumMismatch": {
			path:   "/fox",
			opts:   []download.Option{download.WithChecksum(sha256.New(), sum("something else"))},
			expErr: download.ErrChecksumMismatch,
		},
		"notFound": {
			path:   "/missing",
			expErr: download.ErrUnexpectedStatus,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			dest := filepath.Join(dir, "out")

			_, err := download.File(t.Context(), c, srv.URL+tc.path, dest, nil, tc.opts...)
			if !errors.Is(err, tc.expErr) {
				t.Fatalf("expected %v, got %v", tc.expErr, err)
			}

			if extra := leftovers(t, dir); len(extra) != 0 {
				t.Errorf("expected an empty dir after failure, got %v", extra)
			}
		})
	}
}

func TestFile_TransportFailure(t *testing.T) {
	c, srv := setup(t)
	url := srv.URL
	srv.Close()

	dir := t.TempDir()

	res, err := download.File(t.Context(), c, url, filepath.Join(dir, "out"), nil)
	if !errors.Is(err, client.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if res == nil || res.Err == nil {
		t.Errorf("expected the failed result to be returned, got %+v", res)
	}
	if extra := leftovers(t, dir); len(extra) != 0 {
		t.Errorf("expected an empty dir after failure, got %v", extra)
	}
}

func TestFile_SkipExisting(t *testing.T) {
	c, srv := setup(t)
	dest := filepath.Join(t.TempDir(), "existing")

	if err := os.WriteFile(dest, []byte("old"), 0o600); err != nil {
		t.Fatalf("writing existing file: %v", err)
	}

	res, err := download.File(t.Context(), c, srv.URL, dest, nil, download.WithSkipExisting())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if res != nil {
		t.Errorf("expected nil result when skipped, got %+v", res)
	}

	got, _ := os.ReadFile(dest)
	if string(got) != "old" {
		t.Errorf("expected existing file untouched, got %q", got)
	}
}

func TestFile_Options(t *testing.T) {
	c, srv := setup(t)

	testCases := map[string]download.Option{
		"nilHash":       download.WithChecksum(nil, "abc"),
		"emptyChecksum": download.WithChecksum(sha256.New(), ""),
		"nilLogger":     download.WithLogger(nil),
	}

	for name, opt := range testCases {
		t.Run(name, func(t *testing.T) {
			if _, err := download.File(t.Context(), c, srv.URL, filepath.Join(t.TempDir(), "x"), nil, opt); err == nil {
				t.Error("expected option error")
			}
		})
	}
}
