//go:build integration

package update

import (
	"context"
	"testing"
)

func TestCheckIntegration(t *testing.T) {
	// Uses a very old version to ensure an update is always found.
	rel, err := Check(context.Background(), "0.0.1")
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if rel == nil {
		t.Fatal("expected a release to be available for v0.0.1, got nil")
	}
	if rel.Version == "" {
		t.Error("release version is empty")
	}
	t.Logf("latest release: v%s", rel.Version)
}
