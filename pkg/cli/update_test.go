package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

const releasesJSON = `[
  {"tag_name": "v1.2.0", "name": "", "draft": false, "prerelease": false,
   "assets": [{"name": "checksums.txt", "browser_download_url": "https://example.invalid/sums"},
              {"name": "pctrank_linux_amd64", "browser_download_url": "https://example.invalid/linux"}]},
  {"tag_name": "v2.0.0-rc1", "draft": false, "prerelease": true, "assets": []},
  {"tag_name": "nightly", "name": "release 1.10.1", "draft": false, "prerelease": false, "assets": []},
  {"tag_name": "v9.9.9", "draft": true, "prerelease": false, "assets": []}
]`

func serveReleases(t *testing.T, status int, body string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/owner/tool/releases" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	old := releasesAPI
	releasesAPI = srv.URL + "/repos/%s/releases"
	t.Cleanup(func() {
		releasesAPI = old
		srv.Close()
	})
}

func TestDetectLatestPicksHighestStable(t *testing.T) {
	serveReleases(t, http.StatusOK, releasesJSON)
	r, ok, err := detectLatest(context.Background(), "owner/tool")
	if err != nil || !ok {
		t.Fatalf("detectLatest = %v, %v", ok, err)
	}
	if r.Version.String() != "1.10.1" {
		t.Fatalf("picked %s; want 1.10.1", r.Version)
	}
	if r.AssetURL != "" {
		t.Fatalf("release without assets should have no URL, got %q", r.AssetURL)
	}
}

func TestPickReleasePrefersBinaryAsset(t *testing.T) {
	serveReleases(t, http.StatusOK, releasesJSON[:strings.Index(releasesJSON, "},\n  {")+1]+"]")
	r, ok, err := detectLatest(context.Background(), "owner/tool")
	if err != nil || !ok {
		t.Fatalf("detectLatest = %v, %v", ok, err)
	}
	if r.AssetURL != "https://example.invalid/linux" {
		t.Fatalf("asset = %q", r.AssetURL)
	}
}

func TestDetectLatestHTTPError(t *testing.T) {
	serveReleases(t, http.StatusForbidden, "rate limited")
	if _, _, err := detectLatest(context.Background(), "owner/tool"); err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestCheckForUpdates(t *testing.T) {
	serveReleases(t, http.StatusOK, releasesJSON)
	cases := []struct {
		current string
		want    string
	}{
		{"1.10.1", "already running the latest"},
		{"v2.0.0", "already running the latest"},
		{"1.0.0", "no downloadable asset"},
	}
	for _, c := range cases {
		var out bytes.Buffer
		err := CheckForUpdates(context.Background(), UpdateOptions{Repo: "owner/tool", Current: c.current, Out: &out, Log: zerolog.Nop()})
		if err != nil {
			t.Fatalf("%s: %v", c.current, err)
		}
		if !strings.Contains(out.String(), c.want) {
			t.Fatalf("%s: output %q does not mention %q", c.current, out.String(), c.want)
		}
	}
}

func TestCheckForUpdatesDryRunAndCancel(t *testing.T) {
	serveReleases(t, http.StatusOK, `[{"tag_name": "v3.1.0", "assets": [{"name": "pctrank_darwin_arm64", "browser_download_url": "https://example.invalid/mac"}]}]`)
	var out bytes.Buffer
	err := CheckForUpdates(context.Background(), UpdateOptions{Repo: "owner/tool", Current: "dev", Out: &out, Log: zerolog.Nop(), DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Would update to 3.1.0 from https://example.invalid/mac") {
		t.Fatalf("unexpected output %q", out.String())
	}

	out.Reset()
	opts := UpdateOptions{
		Repo:    "owner/tool",
		Current: "3.0.0",
		Out:     &out,
		Log:     zerolog.Nop(),
		Confirm: confirmer(strings.NewReader("n\n"), &out),
	}
	if err := CheckForUpdates(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Update now? (y/N): Update cancelled.") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestPromptLine(t *testing.T) {
	var w bytes.Buffer
	got, err := PromptLine(strings.NewReader("  yes please \nignored\n"), &w, "> ")
	if err != nil || got != "yes please" || w.String() != "> " {
		t.Fatalf("PromptLine = %q, %v (prompt %q)", got, err, w.String())
	}
	if got, err := PromptLine(strings.NewReader("y"), &w, ""); err != nil || got != "y" {
		t.Fatalf("unterminated line = %q, %v", got, err)
	}
	if _, err := PromptLine(strings.NewReader(""), &w, ""); err == nil {
		t.Fatal("expected EOF")
	}
}
