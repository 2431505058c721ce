package fetch

import (
	"strings"
	"testing"

	"github.com/studiowebux/resters/internal/types"
)

func TestCounter_Wraps(t *testing.T) {
	c := NewCounter(0, 3)

	want := []int{1, 2, 0, 1, 2, 0}
	for i, w := range want {
		c.Advance()
		if c.Value() != w {
			t.Fatalf("step %d: value = %d, want %d", i, c.Value(), w)
		}
	}
}

func TestCounter_DefaultRange(t *testing.T) {
	c := NewCounter(0, 90)
	for i := 0; i < 89; i++ {
		c.Advance()
	}
	if c.Value() != 89 {
		t.Fatalf("value = %d, want 89", c.Value())
	}
	c.Advance()
	if c.Value() != 0 {
		t.Fatalf("value after 89 = %d, want 0", c.Value())
	}
}

func TestCounter_InvalidRangeFallsBack(t *testing.T) {
	c := NewCounter(5, 6)
	if c.Min != DefaultMin || c.Max != DefaultMax {
		t.Errorf("range = [%d, %d), want defaults", c.Min, c.Max)
	}
}

func TestCounter_ResetAndPercent(t *testing.T) {
	c := NewCounter(10, 21)
	for i := 0; i < 5; i++ {
		c.Advance()
	}
	if got := c.Percent(); got != 0.5 {
		t.Errorf("Percent = %v, want 0.5", got)
	}
	c.Reset()
	if c.Value() != 10 || c.Percent() != 0 {
		t.Errorf("after Reset value = %d percent = %v", c.Value(), c.Percent())
	}
}

func TestCoordinator_Lifecycle(t *testing.T) {
	c := NewCoordinator(NewCounter(0, 90))
	req := types.FetchRequest{Method: types.MethodGet, URL: "https://example.com"}

	if c.InFlight() {
		t.Fatal("new coordinator should be idle")
	}

	ticket := c.Begin(req)
	if ticket.Gen != 1 || ticket.Request != req {
		t.Fatalf("ticket = %+v", ticket)
	}
	if !c.InFlight() {
		t.Fatal("should be in flight after Begin")
	}

	for i := 0; i < 3; i++ {
		if !c.Tick(ticket.Gen) {
			t.Fatal("Tick should continue while in flight")
		}
	}
	if c.Progress().Value() != 3 {
		t.Errorf("progress = %d, want 3", c.Progress().Value())
	}

	outcome, ok := c.Finish(ticket.Gen, types.HTTPError{Code: 500})
	if !ok {
		t.Fatal("Finish rejected the current generation")
	}
	if outcome.Kind() != types.KindHTTPError {
		t.Errorf("kind = %s", outcome.Kind())
	}
	if c.InFlight() {
		t.Error("should be idle after Finish")
	}
	if c.Progress().Value() != 0 {
		t.Errorf("progress after Finish = %d, want 0", c.Progress().Value())
	}
	if c.Tick(ticket.Gen) {
		t.Error("Tick after Finish should stop")
	}
}

func TestCoordinator_SupersededResultDropped(t *testing.T) {
	c := NewCoordinator(NewCounter(0, 90))

	first := c.Begin(types.FetchRequest{Method: types.MethodGet, URL: "a"})
	c.Tick(first.Gen)
	second := c.Begin(types.FetchRequest{Method: types.MethodPost, URL: "b"})

	if c.Progress().Value() != 0 {
		t.Errorf("Begin should reset progress, got %d", c.Progress().Value())
	}
	if c.Tick(first.Gen) {
		t.Error("stale tick should stop")
	}
	if _, ok := c.Finish(first.Gen, types.Success{Status: 200}); ok {
		t.Fatal("stale outcome was accepted")
	}
	if !c.InFlight() {
		t.Fatal("stale Finish must not end the current fetch")
	}
	if c.Current().URL != "b" {
		t.Errorf("current = %+v", c.Current())
	}
	if _, ok := c.Finish(second.Gen, types.Success{Status: 200}); !ok {
		t.Fatal("current outcome was rejected")
	}
	if _, ok := c.Finish(second.Gen, types.Success{Status: 200}); ok {
		t.Error("duplicate Finish should be rejected")
	}
}

func TestPerform(t *testing.T) {
	req := types.FetchRequest{Method: types.MethodGet, URL: "https://example.com"}

	tests := []struct {
		name       string
		do         Doer
		wantKind   types.OutcomeKind
		wantPrefix string
	}{
		{
			name:     "success passes through",
			do:       func(types.FetchRequest) types.Outcome { return types.Success{Status: 200} },
			wantKind: types.KindSuccess,
		},
		{
			name:       "panic becomes transport error",
			do:         func(types.FetchRequest) types.Outcome { panic("boom") },
			wantKind:   types.KindTransportError,
			wantPrefix: "fetch worker exited without a result: boom",
		},
		{
			name:       "nil outcome becomes transport error",
			do:         func(types.FetchRequest) types.Outcome { return nil },
			wantKind:   types.KindTransportError,
			wantPrefix: "fetch worker exited without a result",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := Perform(tt.do, req)
			if outcome.Kind() != tt.wantKind {
				t.Fatalf("kind = %s, want %s", outcome.Kind(), tt.wantKind)
			}
			if tt.wantPrefix != "" {
				msg := outcome.(types.TransportError).Message
				if !strings.HasPrefix(msg, tt.wantPrefix) {
					t.Errorf("message = %q, want prefix %q", msg, tt.wantPrefix)
				}
			}
		})
	}
}

func TestPerform_CallsDoerOnce(t *testing.T) {
	calls := 0
	Perform(func(types.FetchRequest) types.Outcome {
		calls++
		return types.HTTPError{Code: 404}
	}, types.FetchRequest{})
	if calls != 1 {
		t.Errorf("doer called %d times, want 1", calls)
	}
}
