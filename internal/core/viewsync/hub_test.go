package viewsync

import (
	"testing"

	"dreamytimer/internal/core/model"
)

type recordingSurface struct {
	snapshots []model.Snapshot
}

func (surface *recordingSurface) OnSnapshot(snapshot model.Snapshot) {
	surface.snapshots = append(surface.snapshots, snapshot)
}

func (surface *recordingSurface) last() model.Snapshot {
	return surface.snapshots[len(surface.snapshots)-1]
}

func TestPublishReachesEverySurface(t *testing.T) {
	hub := NewHub()
	main := &recordingSurface{}
	mini := &recordingSurface{}
	hub.Register(main)
	hub.Register(mini)

	snapshot := model.Snapshot{Seq: 1, RemainingSeconds: 1499, Kind: model.KindWork, Goal: "essay", Running: true}
	hub.Publish(snapshot)

	for name, surface := range map[string]*recordingSurface{"main": main, "mini": mini} {
		if len(surface.snapshots) != 1 || surface.last() != snapshot {
			t.Errorf("%s got %+v, want [%+v]", name, surface.snapshots, snapshot)
		}
	}
}

func TestRegisterReplaysLastSnapshot(t *testing.T) {
	hub := NewHub()
	hub.Publish(model.Snapshot{Seq: 1, RemainingSeconds: 300, Kind: model.KindBreak})
	hub.Publish(model.Snapshot{Seq: 2, RemainingSeconds: 299, Kind: model.KindBreak})

	late := &recordingSurface{}
	hub.Register(late)

	if len(late.snapshots) != 1 || late.last().RemainingSeconds != 299 {
		t.Errorf("late surface got %+v", late.snapshots)
	}
}

func TestRegisterOnEmptyHubPushesNothing(t *testing.T) {
	hub := NewHub()
	surface := &recordingSurface{}
	hub.Register(surface)
	if len(surface.snapshots) != 0 {
		t.Errorf("got %d snapshots before any publish", len(surface.snapshots))
	}
}

func TestPublishDropsStaleSnapshots(t *testing.T) {
	hub := NewHub()
	surface := &recordingSurface{}
	hub.Register(surface)

	hub.Publish(model.Snapshot{Seq: 5, RemainingSeconds: 10})
	hub.Publish(model.Snapshot{Seq: 4, RemainingSeconds: 11})
	hub.Publish(model.Snapshot{Seq: 5, RemainingSeconds: 12})

	if len(surface.snapshots) != 1 {
		t.Fatalf("got %d deliveries, want 1", len(surface.snapshots))
	}
	if last, _ := hub.Last(); last.RemainingSeconds != 10 {
		t.Errorf("Last = %+v", last)
	}
}

func TestDeregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	main := &recordingSurface{}
	mini := &recordingSurface{}
	hub.Register(main)
	closeMini := hub.Register(mini)

	hub.Publish(model.Snapshot{Seq: 1, RemainingSeconds: 60})
	closeMini()
	closeMini()
	hub.Publish(model.Snapshot{Seq: 2, RemainingSeconds: 59})

	if len(mini.snapshots) != 1 {
		t.Errorf("mini got %d snapshots after close, want 1", len(mini.snapshots))
	}
	if len(main.snapshots) != 2 {
		t.Errorf("main got %d snapshots, want 2", len(main.snapshots))
	}
	if hub.Len() != 1 {
		t.Errorf("Len = %d, want 1", hub.Len())
	}
}

func TestSurfaceFunc(t *testing.T) {
	hub := NewHub()
	var got model.Snapshot
	hub.Register(SurfaceFunc(func(snapshot model.Snapshot) {
		got = snapshot
	}))
	hub.Publish(model.Snapshot{Seq: 1, Goal: "walk"})
	if got.Goal != "walk" {
		t.Errorf("SurfaceFunc received %+v", got)
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{seconds: 1500, want: "25:00"},
		{seconds: 61, want: "01:01"},
		{seconds: 9, want: "00:09"},
		{seconds: 0, want: "00:00"},
		{seconds: -3, want: "00:00"},
		{seconds: 99*60 + 59, want: "99:59"},
		{seconds: 7200, want: "120:00"},
	}
	for _, tt := range tests {
		if got := FormatRemaining(tt.seconds); got != tt.want {
			t.Errorf("FormatRemaining(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
