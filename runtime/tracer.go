package runtime

import (
	"fmt"
	"sync"

	"github.com/panyam/vecalc/decl"
)

type TraceEventKind string

const (
	EventIndex TraceEventKind = "index" // start of one broadcast index
	EventWrite TraceEventKind = "write"
)

// TraceEvent is a single entry in an execution trace.
type TraceEvent struct {
	Kind     TraceEventKind `json:"kind"`
	ID       int64          `json:"id"`
	ParentID int64          `json:"parent_id,omitempty"`
	Index    int            `json:"index"`
	Target   string         `json:"target,omitempty"`
	Value    string         `json:"value,omitempty"`
}

func (e *TraceEvent) String() string {
	if e.Kind == EventIndex {
		return fmt.Sprintf("[%d]", e.Index)
	}
	return fmt.Sprintf("[%d] %s = %s", e.Index, e.Target, e.Value)
}

// ExecutionTracer records the register writes of a run, grouped under one
// index event per broadcast element.
type ExecutionTracer struct {
	mu     sync.Mutex
	Events []*TraceEvent
	nextID int64
	stack  []int64
}

// NewExecutionTracer creates a new tracer.
func NewExecutionTracer() *ExecutionTracer {
	return &ExecutionTracer{
		Events: make([]*TraceEvent, 0),
		nextID: 1,
		stack:  []int64{0},
	}
}

func (t *ExecutionTracer) currentParentID() int64 {
	if len(t.stack) == 0 {
		return 0
	}
	return t.stack[len(t.stack)-1]
}

func (t *ExecutionTracer) add(event *TraceEvent) int64 {
	event.ID = t.nextID
	event.ParentID = t.currentParentID()
	t.nextID++
	t.Events = append(t.Events, event)
	return event.ID
}

// Enter opens the scope of a broadcast index and returns its event ID.
func (t *ExecutionTracer) Enter(index int) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.add(&TraceEvent{Kind: EventIndex, Index: index})
	t.stack = append(t.stack, id)
	return id
}

// Exit closes the innermost index scope.
func (t *ExecutionTracer) Exit() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.stack) > 1 {
		t.stack = t.stack[:len(t.stack)-1]
	}
}

// Write records a value stored into target.
func (t *ExecutionTracer) Write(index int, target string, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.add(&TraceEvent{Kind: EventWrite, Index: index, Target: target, Value: value})
}

// Writes returns the write events, optionally only those of one index (index >= 0).
func (t *ExecutionTracer) Writes(index int) (out []*TraceEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range t.Events {
		if e.Kind == EventWrite && (index < 0 || e.Index == index) {
			out = append(out, e)
		}
	}
	return
}

// tracingRegisters reports every write to a tracer before passing it on.
type tracingRegisters struct {
	Registers
	tracer *ExecutionTracer
	index  int
}

func (r *tracingRegisters) WriteScalar(reg decl.Register, value float32) {
	r.tracer.Write(r.index, reg.Name(), decl.FormatFloat(value))
	r.Registers.WriteScalar(reg, value)
}

func (r *tracingRegisters) WriteVector(reg decl.Register, value decl.Vec3) {
	r.tracer.Write(r.index, reg.Name(), value.String())
	r.Registers.WriteVector(reg, value)
}

func (r *tracingRegisters) WriteComponent(reg decl.Register, comp int, value float32) {
	r.tracer.Write(r.index, fmt.Sprintf("%s[%d]", reg.Name(), comp), decl.FormatFloat(value))
	r.Registers.WriteComponent(reg, comp, value)
}
