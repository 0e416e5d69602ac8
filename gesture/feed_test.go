package gesture

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/evergreen/core"
	"github.com/lixenwraith/evergreen/status"
)

func postFrame(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/landmarks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func encodeHand(t *testing.T, hand []Landmark) string {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(Frame{Landmarks: hand}); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestFeedAcceptsLandmarks(t *testing.T) {
	reg := status.NewRegistry()
	s := NewFeedServer(FeedOptions{}, nil, reg, nil)

	rec := postFrame(t, s.Handler(), encodeHand(t, handWithSpread(0.4)))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("POST status %d: %s", rec.Code, rec.Body.String())
	}

	select {
	case f := <-s.Frames():
		if len(f.Landmarks) != 21 {
			t.Errorf("Expected 21 landmarks, got %d", len(f.Landmarks))
		}
		if f.At.IsZero() {
			t.Error("Frame timestamp not set")
		}
	default:
		t.Fatal("No frame delivered")
	}
	if reg.Ints.Get(status.KeyFeedFrames).Load() != 1 {
		t.Error("feed.frames not incremented")
	}
}

func TestFeedLatestWins(t *testing.T) {
	s := NewFeedServer(FeedOptions{}, nil, nil, nil)
	postFrame(t, s.Handler(), encodeHand(t, handWithSpread(0.1)))
	postFrame(t, s.Handler(), `{"landmarks":[]}`)

	f := <-s.Frames()
	if len(f.Landmarks) != 0 {
		t.Errorf("Expected the newer empty frame, got %d landmarks", len(f.Landmarks))
	}
	select {
	case <-s.Frames():
		t.Error("Older frame was not dropped")
	default:
	}
}

func TestFeedRejectsBadPayloads(t *testing.T) {
	reg := status.NewRegistry()
	s := NewFeedServer(FeedOptions{MaxBody: 256}, nil, reg, nil)

	for _, body := range []string{
		`not json`,
		`{"landmarks":[{"x":"a"}]}`,
		`{"landmarks":[` + strings.Repeat(`{"x":0.1,"y":0.1,"z":0},`, 50) + `{}]}`,
	} {
		if rec := postFrame(t, s.Handler(), body); rec.Code != http.StatusBadRequest {
			t.Errorf("Body %.20q: status %d, want 400", body, rec.Code)
		}
	}
	if got := reg.Ints.Get(status.KeyFeedRejected).Load(); got != 3 {
		t.Errorf("feed.rejected = %d, want 3", got)
	}

	s.Close()
	if rec := postFrame(t, s.Handler(), `{"landmarks":[]}`); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("POST after Close: status %d, want 503", rec.Code)
	}
}

func TestFeedSampleAndStatus(t *testing.T) {
	box := NewMailbox()
	reg := status.NewRegistry()
	reg.Strings.Get(status.KeyRegime).Store("FORMED")
	s := NewFeedServer(FeedOptions{}, box, reg, nil)

	box.Publish(core.MotionSample{X: 0.5, Y: -0.5, Intensity: 1, Gesture: core.GestureOpenHand})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sample", nil))
	var sample sampleResponse
	if err := json.NewDecoder(rec.Body).Decode(&sample); err != nil {
		t.Fatal(err)
	}
	if !sample.Present || sample.Gesture != "OPEN_HAND" || sample.X != 0.5 {
		t.Errorf("Sample = %+v", sample)
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/status", nil))
	var snap map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if snap[status.KeyRegime] != "FORMED" {
		t.Errorf("Status = %v", snap)
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("healthz status %d", rec.Code)
	}
}

func TestFeedCORSPreflight(t *testing.T) {
	s := NewFeedServer(FeedOptions{AllowedOrigins: []string{"http://localhost:5173"}}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodOptions, "/v1/landmarks", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestFeedServeShutsDown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("listen unavailable: %v", err)
	}
	s := NewFeedServer(FeedOptions{}, nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.ServeListener(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/healthz"
	var resp *http.Response
	for i := 0; i < 100; i++ {
		if resp, err = http.Get(url); err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("GET healthz: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
