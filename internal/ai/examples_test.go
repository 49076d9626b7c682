package ai

import (
	"context"
	"errors"
	"testing"
)

func TestExampleBackfill_FetchOnce(t *testing.T) {
	stub := &stubGenerator{resp: textResponse("水を飲みます。 (I drink water.)")}
	backfill := NewExampleBackfill(testClient(stub))

	sentence, ok := backfill.Fetch(context.Background(), "水", "water")
	if !ok {
		t.Fatal("first fetch should succeed")
	}
	if sentence != "水を飲みます。 (I drink water.)" {
		t.Errorf("sentence = %q", sentence)
	}

	// Second attempt for the same pair never reaches the backend.
	if _, ok := backfill.Fetch(context.Background(), "水", "water"); ok {
		t.Error("repeat fetch should be rejected")
	}
	if stub.calls != 1 {
		t.Errorf("backend calls = %d, want 1", stub.calls)
	}
}

func TestExampleBackfill_FailureStillCountsAsAttempted(t *testing.T) {
	stub := &stubGenerator{err: errors.New("backend down")}
	backfill := NewExampleBackfill(testClient(stub))

	if _, ok := backfill.Fetch(context.Background(), "犬", "dog"); ok {
		t.Error("failed fetch reported success")
	}
	if !backfill.Attempted("犬", "dog") {
		t.Error("failed pair not marked attempted")
	}

	// The failure is permanent for this session.
	stub.err = nil
	stub.resp = textResponse("犬が走る。 (The dog runs.)")
	if _, ok := backfill.Fetch(context.Background(), "犬", "dog"); ok {
		t.Error("pair retried after failure")
	}
	if stub.calls != 1 {
		t.Errorf("backend calls = %d, want 1", stub.calls)
	}
}

func TestExampleBackfill_DistinctPairsAreIndependent(t *testing.T) {
	stub := &stubGenerator{resp: textResponse("例文です。 (This is an example.)")}
	backfill := NewExampleBackfill(testClient(stub))

	backfill.Fetch(context.Background(), "本", "book")
	backfill.Fetch(context.Background(), "本", "origin")

	if stub.calls != 2 {
		t.Errorf("backend calls = %d, want 2 (same word, different meanings)", stub.calls)
	}
}
