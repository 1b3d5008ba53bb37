package preview

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gahane31/my-animation-sub000/internal/director"
	"github.com/gahane31/my-animation-sub000/internal/engine"
	"github.com/gahane31/my-animation-sub000/internal/timing"
)

func testTimeline() *engine.Timeline {
	return &engine.Timeline{
		Version:  engine.Version,
		Title:    "preview",
		Duration: 3,
		Scenes: []engine.SceneTimeline{{
			ID:    "s1",
			Start: 0,
			End:   3,
			Timing: timing.Plan{
				Entities: []timing.EntityTiming{
					{EntityID: "api", Action: timing.ActionAdd, Delay: 0.2, Duration: 0.6, Easing: "easeOutQuad"},
				},
				Connections: []timing.ConnectionTiming{
					{ConnectionID: "c1", Action: timing.ActionAdd, Delay: 0.9, Duration: 0.3, Easing: "linear"},
				},
			},
		}},
		CameraTrack: director.NewTrack(),
	}
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var ev map[string]any
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return ev
}

func TestReplayBroadcastsPlayback(t *testing.T) {
	tl := testTimeline()
	hub := NewHub()
	if err := hub.SetHello(Event{Type: TypeTimeline, Payload: Summary(tl)}); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	srv := httptest.NewServer(Handler(hub, tl))
	t.Cleanup(srv.Close)
	conn := dial(t, srv)

	if ev := readEvent(t, conn); ev["type"] != TypeTimeline {
		t.Fatalf("first event = %v, want %s", ev, TypeTimeline)
	}

	if err := Replay(ctx, hub, tl, ReplayOptions{Step: 0.25}); err != nil {
		t.Fatalf("Replay failed: %v", err)
	}

	counts := map[string]int{}
	starts := 0
	for {
		ev := readEvent(t, conn)
		typ, _ := ev["type"].(string)
		counts[typ]++
		if typ == TypeTask {
			payload := ev["payload"].(map[string]any)
			if payload["kind"] == "start" {
				starts++
			}
		}
		if typ == TypeDone {
			break
		}
	}
	if counts[TypeSceneStart] != 1 || counts[TypeSceneEnd] != 1 {
		t.Errorf("scene events = %v", counts)
	}
	if starts != 2 {
		t.Errorf("expected 2 task starts, got %d", starts)
	}
	if counts[TypeCamera] == 0 {
		t.Error("expected camera samples")
	}
}

func TestTimelineEndpoint(t *testing.T) {
	tl := testTimeline()
	srv := httptest.NewServer(Handler(NewHub(), tl))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/timeline")
	if err != nil {
		t.Fatalf("GET /timeline: %v", err)
	}
	defer resp.Body.Close()

	var got engine.Timeline
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Title != "preview" || len(got.Scenes) != 1 {
		t.Errorf("timeline = %+v", got)
	}
}

func TestReplayStopsOnCancel(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	cancel()

	if err := Replay(ctx, hub, testTimeline(), ReplayOptions{Step: 0.1, Speed: 1}); err == nil {
		t.Error("Expected error from a cancelled replay")
	}
}
