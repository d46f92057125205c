// Package update probes GitHub for a newer published release of the CLI.
// The probe is strictly best-effort: any failure reads as "no update".
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Release describes a published release newer than the running build.
type Release struct {
	Tag        string // e.g. "v0.2.0"
	InstallCmd string // the go install line to suggest
}

// apiBase is swapped out by tests.
var apiBase = "https://api.github.com"

const probeTimeout = time.Second

// LatestRelease asks the GitHub Releases API whether repo (e.g.
// "aegentdev/aivss") has a release newer than current. It reports false for
// dev builds, up-to-date builds, and any network or decode failure, and
// never blocks longer than the probe timeout.
func LatestRelease(current, repo string) (Release, bool) {
	if current == "dev" {
		return Release{}, false
	}
	return latestFrom(apiBase, current, repo)
}

func latestFrom(base, current, repo string) (Release, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/repos/%s/releases/latest", base, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Release{}, false
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Release{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Release{}, false
	}

	var payload struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Release{}, false
	}
	if payload.TagName == "" || payload.TagName == current {
		return Release{}, false
	}

	return Release{
		Tag:        payload.TagName,
		InstallCmd: fmt.Sprintf("go install github.com/%s/cmd/aivss@latest", repo),
	}, true
}
