// Package coord sequences the dashboard's API requests and feeds their
// results to the reconciler.
//
// Everything here is driven from Bubble Tea's Update loop: methods are called
// on one goroutine and return tea.Cmds that do the blocking work elsewhere.
// Ordering comes from request generations, not locks.
package coord

import (
	"context"

	"github.com/google/uuid"
)

// Kind names a logical feed. Each kind has at most one live request per subject.
type Kind string

const (
	KindPapers   Kind = "papers"
	KindJournals Kind = "journals"
	KindConfig   Kind = "config"
)

// Ticket identifies one issued request. Only the most recently issued ticket
// for a (kind, subject) pair is current.
type Ticket struct {
	Kind      Kind
	Subject   string
	Gen       uint64
	RequestID string // log correlation only
}

type slotKey struct {
	kind    Kind
	subject string
}

type slot struct {
	gen    uint64
	cancel context.CancelFunc
}

// Orchestrator hands out tickets and cancels superseded requests.
// NOT safe for concurrent use: call it only from the Update goroutine.
type Orchestrator struct {
	parent context.Context
	slots  map[slotKey]*slot
	gen    uint64 // shared across slots so generations never repeat
}

// NewOrchestrator creates an Orchestrator whose request contexts derive from
// ctx. Cancelling ctx cancels every request.
func NewOrchestrator(ctx context.Context) *Orchestrator {
	return &Orchestrator{
		parent: ctx,
		slots:  make(map[slotKey]*slot),
	}
}

// Begin issues a new ticket for kind and subject. Any request still in flight
// for the same pair is cancelled and its ticket stops being current.
func (o *Orchestrator) Begin(kind Kind, subject string) (Ticket, context.Context) {
	key := slotKey{kind: kind, subject: subject}
	if prev, ok := o.slots[key]; ok {
		prev.cancel()
	}

	o.gen++
	ctx, cancel := context.WithCancel(o.parent)
	o.slots[key] = &slot{gen: o.gen, cancel: cancel}

	return Ticket{
		Kind:      kind,
		Subject:   subject,
		Gen:       o.gen,
		RequestID: uuid.NewString(),
	}, ctx
}

// Current reports whether t is the latest ticket issued for its pair and has
// not been finished or cancelled.
func (o *Orchestrator) Current(t Ticket) bool {
	s, ok := o.slots[slotKey{kind: t.Kind, subject: t.Subject}]
	return ok && s.gen == t.Gen
}

// Finish releases a current ticket's context. Stale tickets are ignored.
func (o *Orchestrator) Finish(t Ticket) {
	key := slotKey{kind: t.Kind, subject: t.Subject}
	if s, ok := o.slots[key]; ok && s.gen == t.Gen {
		s.cancel()
		delete(o.slots, key)
	}
}

// CancelAll cancels every in-flight request. All outstanding tickets become stale.
func (o *Orchestrator) CancelAll() {
	for key, s := range o.slots {
		s.cancel()
		delete(o.slots, key)
	}
}

// InFlight returns the number of requests still awaiting a result.
func (o *Orchestrator) InFlight() int {
	return len(o.slots)
}
