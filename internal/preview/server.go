package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gahane31/my-animation-sub000/internal/engine"
	"github.com/gahane31/my-animation-sub000/internal/renderer"
)

// Event types.
const (
	TypeTimeline   = "timeline"
	TypeSceneStart = "scene_start"
	TypeTask       = "task"
	TypeCamera     = "camera"
	TypeSceneEnd   = "scene_end"
	TypeDone       = "done"
)

type ReplayOptions struct {
	Step     float64       // Simulated seconds per tick
	Speed    float64       // Wall-clock multiplier, 0 replays without sleeping
	Progress bool          // Include per-tick progress events
	Pause    time.Duration // Gap between loops in Serve
}

// TimelineSummary is the hello payload.
type TimelineSummary struct {
	Title    string  `json:"title,omitempty"`
	Duration float64 `json:"duration"`
	Scenes   int     `json:"scenes"`
}

type SceneInfo struct {
	ID       string  `json:"id"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Template string  `json:"template"`
}

type TaskPayload struct {
	SceneID  string             `json:"sceneId"`
	Kind     renderer.EventKind `json:"kind"`
	Task     renderer.Task      `json:"task"`
	Progress float64            `json:"progress"`
	Time     float64            `json:"time"` // timeline time
}

type CameraPayload struct {
	Time  float64              `json:"time"`
	State renderer.CameraState `json:"state"`
}

func Summary(tl *engine.Timeline) TimelineSummary {
	return TimelineSummary{Title: tl.Title, Duration: tl.Duration, Scenes: len(tl.Scenes)}
}

// Replay plays every scene's timing plan through renderer.Playback and
// publishes the resulting events in order.
func Replay(ctx context.Context, hub *Hub, tl *engine.Timeline, opts ReplayOptions) error {
	step := opts.Step
	if step <= 0 {
		step = renderer.DefaultStep
	}
	for _, s := range tl.Scenes {
		hub.Publish(Event{Type: TypeSceneStart, Payload: SceneInfo{ID: s.ID, Start: s.Start, End: s.End, Template: string(s.Template)}})

		pb := renderer.NewPlayback(s.Timing)
		for !pb.Done() {
			if err := ctx.Err(); err != nil {
				return err
			}
			for _, ev := range pb.Step(step) {
				if ev.Kind == renderer.EventProgress && !opts.Progress {
					continue
				}
				hub.Publish(Event{Type: TypeTask, Payload: TaskPayload{
					SceneID:  s.ID,
					Kind:     ev.Kind,
					Task:     ev.Task,
					Progress: ev.Progress,
					Time:     s.Start + ev.Time,
				}})
			}
			now := s.Start + pb.Clock()
			hub.Publish(Event{Type: TypeCamera, Payload: CameraPayload{Time: now, State: renderer.InterpolateKeyframes(tl.CameraTrack, now)}})

			if opts.Speed > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(time.Duration(step / opts.Speed * float64(time.Second))):
				}
			}
		}
		hub.Publish(Event{Type: TypeSceneEnd, Payload: SceneInfo{ID: s.ID, Start: s.Start, End: s.End, Template: string(s.Template)}})
	}
	hub.Publish(Event{Type: TypeDone, Payload: Summary(tl)})
	return nil
}

// Handler exposes /ws for playback events and /timeline for the compiled
// timeline.
func Handler(hub *Hub, tl *engine.Timeline) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.HandleFunc("/timeline", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(tl); err != nil {
			log.Printf("[!] preview: encode timeline: %v", err)
		}
	})
	return mux
}

// Serve listens on addr and replays tl in a loop until ctx is cancelled.
func Serve(ctx context.Context, addr string, tl *engine.Timeline, opts ReplayOptions) error {
	hub := NewHub()
	if err := hub.SetHello(Event{Type: TypeTimeline, Payload: Summary(tl)}); err != nil {
		return fmt.Errorf("preview hello: %w", err)
	}
	srv := &http.Server{Addr: addr, Handler: Handler(hub, tl)}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(ctx)
		return nil
	})
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		for {
			if err := Replay(ctx, hub, tl, opts); err != nil {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(opts.Pause):
			}
		}
	})
	return g.Wait()
}
