package scorefeed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestFetchWeeks_OrdersRecordsByWeek(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/seasons/2026/weeks/1/results":
			fmt.Fprint(w, `{"data":[{"game_id":101,"home_team":"GB","away_team":"CHI","kickoff":"2026-09-13T17:00:00Z","slot":"early","home_score":24,"away_score":20,"is_final":true}]}`)
		case "/v1/seasons/2026/weeks/2/results":
			fmt.Fprint(w, `{"data":[{"game_id":201,"home_team":"KC","away_team":"DEN","slot":"late","is_tiebreaker":true}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Token: "feed-token"})

	records, err := client.FetchWeeks(context.Background(), 2026, []int{2, 1})
	if err != nil {
		t.Fatalf("fetch weeks: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Week != 1 || first.ExternalID != 101 {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if !first.IsFinal || first.HomeScore == nil || *first.HomeScore != 24 {
		t.Fatalf("unexpected first record score: %+v", first)
	}
	wantKickoff := time.Date(2026, 9, 13, 17, 0, 0, 0, time.UTC)
	if !first.Kickoff.Equal(wantKickoff) {
		t.Fatalf("unexpected kickoff: %v", first.Kickoff)
	}

	second := records[1]
	if second.Week != 2 || second.ExternalID != 201 {
		t.Fatalf("unexpected second record: %+v", second)
	}
	if !second.Kickoff.IsZero() {
		t.Fatalf("expected zero kickoff when feed omits it, got %v", second.Kickoff)
	}
	if !second.IsTiebreaker {
		t.Fatalf("expected tiebreaker flag on second record")
	}
}

func TestFetchWeeks_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Token: "feed-token", MaxRetries: 1})

	records, err := client.FetchWeeks(context.Background(), 2026, []int{3})
	if err != nil {
		t.Fatalf("fetch weeks: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", got)
	}
}

func TestFetchWeeks_RejectsInvalidWeeks(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "http://feed.test", Token: "feed-token"})

	if _, err := client.FetchWeeks(context.Background(), 2026, nil); err == nil {
		t.Fatal("expected error for empty week list")
	}
	if _, err := client.FetchWeeks(context.Background(), 2026, []int{0}); err == nil {
		t.Fatal("expected error for non-positive week")
	}
	if _, err := client.FetchWeeks(context.Background(), 0, []int{1}); err == nil {
		t.Fatal("expected error for non-positive season")
	}
}

func TestParseFeedTime(t *testing.T) {
	t.Parallel()

	if got := parseFeedTime(""); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
	if got := parseFeedTime("not a time"); got != nil {
		t.Fatalf("expected nil for malformed input, got %v", got)
	}

	got := parseFeedTime("2026-09-13 17:00:00")
	if got == nil || !got.Equal(time.Date(2026, 9, 13, 17, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected parsed time: %v", got)
	}
}
