// Package update checks GitHub Releases for newer stashhub builds and can
// replace the running binary in place.
package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	selfupdate "github.com/creativeprojects/go-selfupdate"
)

// Repo is the GitHub slug stashhub releases are published under.
const Repo = "AnthonyBarbaro/stashhub"

const (
	checkTimeout = 10 * time.Second
	applyTimeout = 2 * time.Minute
)

// Release holds information about an available update.
type Release struct {
	Version string
	URL     string
	Notes   string
}

// Check queries GitHub Releases for a version newer than current.
// Returns nil if current is already the latest, or if it is a dev or
// otherwise unparseable build with nothing sensible to compare against.
func Check(ctx context.Context, current string) (*Release, error) {
	if current == "dev" || current == "" {
		return nil, nil
	}
	cv, err := parseSemver(current)
	if err != nil {
		return nil, nil // dirty build, skip silently
	}

	updater, err := newUpdater()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	latest, found, err := updater.DetectLatest(ctx, selfupdate.ParseSlug(Repo))
	if err != nil {
		return nil, fmt.Errorf("detect latest release: %w", err)
	}
	if !found {
		return nil, nil
	}

	lv, err := semver.NewVersion(latest.Version())
	if err != nil {
		return nil, nil
	}
	if !lv.GreaterThan(cv) {
		return nil, nil
	}

	return &Release{
		Version: latest.Version(),
		URL:     latest.URL,
		Notes:   latest.ReleaseNotes,
	}, nil
}

// Apply downloads the latest release binary and replaces the current executable.
func Apply(ctx context.Context, current string) (*Release, error) {
	if current == "dev" || current == "" {
		return nil, fmt.Errorf("cannot update a development build; install from a release first")
	}

	updater, err := newUpdater()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, applyTimeout)
	defer cancel()

	rel, err := updater.UpdateSelf(ctx, strings.TrimPrefix(current, "v"), selfupdate.ParseSlug(Repo))
	if err != nil {
		return nil, fmt.Errorf("update failed: %w", err)
	}

	return &Release{
		Version: rel.Version(),
		URL:     rel.URL,
		Notes:   rel.ReleaseNotes,
	}, nil
}

func newUpdater() (*selfupdate.Updater, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("create github source: %w", err)
	}
	updater, err := selfupdate.NewUpdater(selfupdate.Config{Source: source})
	if err != nil {
		return nil, fmt.Errorf("create updater: %w", err)
	}
	return updater, nil
}

// parseSemver strips a leading "v" and handles git-describe suffixes
// like "0.1.0-3-gabcdef" by parsing only the base version.
func parseSemver(s string) (*semver.Version, error) {
	s = strings.TrimPrefix(s, "v")
	return semver.NewVersion(s)
}
