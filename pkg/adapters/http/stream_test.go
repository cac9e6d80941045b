package http

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sulaimaniyah/undangan/pkg/domain"
)

func receive(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
		return ""
	}
}

func assertSilent(t *testing.T, ch <-chan string) {
	t.Helper()
	select {
	case msg := <-ch:
		t.Fatalf("unexpected message: %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStreamManager_PublishesDiffs(t *testing.T) {
	sm := NewStreamManager(nil)
	ch, cancel := sm.Subscribe("sess-1")
	defer cancel()

	snap := domain.NewSnapshot("sess-1", domain.DefaultRecipient())
	sm.Publish(snap)

	var first domain.SnapshotDiff
	require.NoError(t, json.Unmarshal([]byte(receive(t, ch)), &first))
	require.NotNil(t, first.View)
	assert.Equal(t, domain.ViewBrowsing, *first.View)

	sm.Publish(snap.Clone())
	assertSilent(t, ch)

	next := snap.Clone()
	next.Form.Name = "Budi"
	next.UpdatedAt = snap.UpdatedAt.Add(time.Second)
	sm.Publish(next)

	var second domain.SnapshotDiff
	require.NoError(t, json.Unmarshal([]byte(receive(t, ch)), &second))
	assert.Nil(t, second.View)
	require.NotNil(t, second.Form)
	assert.Equal(t, "Budi", second.Form.Name)
}

func TestStreamManager_SkipsStaleSnapshots(t *testing.T) {
	sm := NewStreamManager(nil)
	ch, cancel := sm.Subscribe("sess-1")
	defer cancel()

	now := time.Now().UTC()
	newer := domain.NewSnapshot("sess-1", domain.DefaultRecipient())
	newer.UpdatedAt = now
	newer.Form.Name = "Budi"
	sm.Publish(newer)
	receive(t, ch)

	older := newer.Clone()
	older.UpdatedAt = now.Add(-time.Second)
	older.Form.Name = "B"
	sm.Publish(older)
	assertSilent(t, ch)
}

func TestStreamManager_SessionsAreIsolated(t *testing.T) {
	sm := NewStreamManager(nil)
	a, cancelA := sm.Subscribe("a")
	defer cancelA()
	b, cancelB := sm.Subscribe("b")
	defer cancelB()

	sm.Broadcast("a", "hello")
	assert.Equal(t, "hello", receive(t, a))
	assertSilent(t, b)

	assert.Equal(t, 1, sm.Subscribers("a"))
	cancelA()
	cancelA()
	assert.Equal(t, 0, sm.Subscribers("a"))
}

func TestMatchesWatch(t *testing.T) {
	view := domain.ViewConfirmed
	formDiff, _ := json.Marshal(domain.SnapshotDiff{SessionID: "s", Form: &domain.FormState{Name: "x"}})
	viewDiff, _ := json.Marshal(domain.SnapshotDiff{SessionID: "s", View: &view, Outcome: &domain.SubmissionOutcome{Message: "ok"}})
	revealDiff, _ := json.Marshal(domain.SnapshotDiff{SessionID: "s", Revealed: []domain.Section{domain.SectionCover}})

	tests := []struct {
		msg   []byte
		watch []string
		want  bool
	}{
		{formDiff, []string{"form"}, true},
		{formDiff, []string{"view", "reveal"}, false},
		{viewDiff, []string{"outcome"}, true},
		{viewDiff, []string{"view"}, true},
		{revealDiff, []string{"reveal"}, true},
		{revealDiff, []string{"form"}, false},
		{[]byte("not json"), []string{"form"}, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchesWatch(string(tt.msg), tt.watch), "msg=%s watch=%v", tt.msg, tt.watch)
	}
}

func TestEvents_StreamsSessionChanges(t *testing.T) {
	h := newHarness(t, nil)
	cookie, _ := h.open(t, "")

	ts := httptest.NewServer(h.server)
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/events?watch=form", nil)
	require.NoError(t, err)
	req.AddCookie(cookie)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string, 16)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	require.Equal(t, "event: ping", receive(t, lines))
	require.Eventually(t, func() bool { return h.streams.Subscribers(cookie.Value) == 1 }, time.Second, 10*time.Millisecond)

	// The first diff carries every field; later reveal-only diffs are dropped by watch=form.
	h.post(t, cookie, "/sections/cover/visibility?ratio=1", nil, false)
	rec := h.post(t, cookie, "/rsvp/field", url.Values{"name": {"Budi"}}, true)
	require.Equal(t, http.StatusNoContent, rec.Code)

	for {
		line := receive(t, lines)
		if !strings.HasPrefix(line, "data: {") {
			continue
		}
		var diff domain.SnapshotDiff
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &diff))
		require.NotNil(t, diff.Form, "only form changes pass the filter")
		if diff.Form.Name == "Budi" {
			return
		}
	}
}

func TestEvents_RequiresSession(t *testing.T) {
	h := newHarness(t, nil)
	rec := httptest.NewRecorder()
	h.server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
