package coord

import (
	"context"
	"testing"
)

func TestBeginSupersedesPrevious(t *testing.T) {
	o := NewOrchestrator(context.Background())

	a, ctxA := o.Begin(KindPapers, "1")
	b, ctxB := o.Begin(KindPapers, "1")

	if o.Current(a) {
		t.Error("first ticket should be stale after a second Begin")
	}
	if !o.Current(b) {
		t.Error("second ticket should be current")
	}
	if ctxA.Err() == nil {
		t.Error("superseded request context should be cancelled")
	}
	if ctxB.Err() != nil {
		t.Error("current request context should be live")
	}
	if a.RequestID == "" || a.RequestID == b.RequestID {
		t.Errorf("request IDs should be distinct, got %q and %q", a.RequestID, b.RequestID)
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	o := NewOrchestrator(context.Background())

	papers, _ := o.Begin(KindPapers, "1")
	journals, _ := o.Begin(KindJournals, "1")
	other, _ := o.Begin(KindPapers, "2")

	for _, tk := range []Ticket{papers, journals, other} {
		if !o.Current(tk) {
			t.Errorf("ticket %+v should be current", tk)
		}
	}
	if o.InFlight() != 3 {
		t.Errorf("InFlight() = %d, want 3", o.InFlight())
	}
}

func TestFinish(t *testing.T) {
	o := NewOrchestrator(context.Background())

	a, _ := o.Begin(KindPapers, "1")
	b, _ := o.Begin(KindPapers, "1")

	o.Finish(a)
	if !o.Current(b) {
		t.Error("finishing a stale ticket must not release the current one")
	}

	o.Finish(b)
	if o.Current(b) {
		t.Error("finished ticket should no longer be current")
	}
	if o.InFlight() != 0 {
		t.Errorf("InFlight() = %d, want 0", o.InFlight())
	}
}

func TestCancelAll(t *testing.T) {
	o := NewOrchestrator(context.Background())

	a, ctxA := o.Begin(KindPapers, "1")
	b, ctxB := o.Begin(KindConfig, "2")
	o.CancelAll()

	if o.Current(a) || o.Current(b) {
		t.Error("no ticket should be current after CancelAll")
	}
	if ctxA.Err() == nil || ctxB.Err() == nil {
		t.Error("CancelAll should cancel every request context")
	}
}

func TestParentCancellation(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	o := NewOrchestrator(parent)

	_, ctx := o.Begin(KindPapers, "1")
	cancel()

	if ctx.Err() == nil {
		t.Error("request context should follow its parent")
	}
}

func TestSubjectKey(t *testing.T) {
	tests := []struct {
		subj Subject
		want string
	}{
		{Subject{ChatID: 42}, "42"},
		{Subject{ChatID: 42, Profile: "bio"}, "42/bio"},
		{Subject{ChatID: -100}, "-100"},
	}
	for _, tt := range tests {
		if got := tt.subj.Key(); got != tt.want {
			t.Errorf("%+v.Key() = %q, want %q", tt.subj, got, tt.want)
		}
	}
	if !(Subject{}).IsZero() || (Subject{ChatID: 1}).IsZero() {
		t.Error("IsZero mismatch")
	}
}
