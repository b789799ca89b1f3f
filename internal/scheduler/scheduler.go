// Package scheduler drives the emulated hardware in lockstep. Each step
// runs one CPU instruction and feeds the cycles it took to every clocked
// component before the next instruction starts, and a sorted list of
// timed events covers hardware that acts at fixed intervals.
package scheduler

import (
	"fmt"
	"strings"

	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// ClockSpeed is the number of clock cycles per second.
	ClockSpeed = 4194304
	// CyclesPerFrame is the number of clock cycles in a frame
	// (456 clock cycles per line, 154 lines).
	CyclesPerFrame = 70224
)

// Processor executes one instruction per Step, returning the
// M-cycles it took.
type Processor interface {
	Step() uint8
}

// Component is advanced by the M-cycles of each instruction.
type Component interface {
	Advance(mCycles uint8)
}

// Scheduler is a simple event scheduler that can be used to schedule events
// to be executed at a specific cycle.
//
// The scheduler is a linked list of events, sorted by the cycle at which
// they should be executed. When an event is scheduled, it is inserted into
// the list in the correct position, and when the scheduler is ticked, every
// event at or before the current cycle is executed and removed from the list.
type Scheduler struct {
	cycles uint64
	root   *Event

	eventHandlers [eventTypes]func()
	events        [eventTypes]Event

	cpu        Processor
	components []Component
	overshoot  uint64
}

// NewScheduler returns a new Scheduler.
func NewScheduler() *Scheduler {
	s := &Scheduler{}
	for i := range s.events {
		s.events[i].eventType = EventType(i)
	}
	return s
}

// Attach sets the processor and the components it drives. Components
// are advanced in the order given.
func (s *Scheduler) Attach(cpu Processor, components ...Component) {
	s.cpu = cpu
	s.components = components
}

// Reset clears every pending event and rewinds the clock. Registered
// handlers are kept.
func (s *Scheduler) Reset() {
	s.cycles, s.overshoot = 0, 0
	s.root = nil
	for i := range s.events {
		s.events[i].Reset()
	}
}

// Cycle returns the number of clock cycles run so far.
func (s *Scheduler) Cycle() uint64 {
	return s.cycles
}

// Step executes a single instruction, advances every component by the
// M-cycles it took, and fires any event that has come due.
func (s *Scheduler) Step() uint8 {
	m := s.cpu.Step()
	for _, c := range s.components {
		c.Advance(m)
	}
	s.Tick(uint64(m) * 4)
	return m
}

// RunFrame steps until a frame's worth of clock cycles has elapsed and
// returns the number of clock cycles run. An instruction that crosses
// the end of the frame is counted against the next one.
func (s *Scheduler) RunFrame() uint64 {
	target := uint64(CyclesPerFrame) - s.overshoot
	var ran uint64
	for ran < target {
		ran += uint64(s.Step()) * 4
	}
	s.overshoot = ran - target
	return ran
}

// RegisterEvent registers the function called when an event of
// eventType fires.
func (s *Scheduler) RegisterEvent(eventType EventType, fn func()) {
	s.eventHandlers[eventType] = fn
}

// Tick advances the scheduler by the given number of clock cycles,
// executing every event scheduled at or before the new cycle.
//
// While a handler runs, the scheduler's cycle is the cycle the event was
// due at, so events rescheduled from a handler keep an exact period.
func (s *Scheduler) Tick(c uint64) {
	target := s.cycles + c

	for s.root != nil && s.root.cycle <= target {
		event := s.root
		s.root = event.next
		s.cycles = event.cycle
		event.Reset()

		if fn := s.eventHandlers[event.eventType]; fn != nil {
			fn()
		}
	}
	s.cycles = target
}

// ScheduleEvent schedules an event to fire the given number of clock
// cycles from now, replacing any pending event of the same type.
func (s *Scheduler) ScheduleEvent(eventType EventType, cycles uint64) {
	s.DescheduleEvent(eventType)
	s.insert(eventType, s.cycles+cycles)
}

func (s *Scheduler) insert(eventType EventType, atCycle uint64) {
	this := &s.events[eventType]
	this.cycle = atCycle
	this.scheduled = true
	this.next = nil

	// events scheduled for the same cycle fire in the order
	// they were scheduled
	if s.root == nil || atCycle < s.root.cycle {
		this.next = s.root
		s.root = this
		return
	}
	prev := s.root
	for prev.next != nil && prev.next.cycle <= atCycle {
		prev = prev.next
	}
	this.next = prev.next
	prev.next = this
}

// DescheduleEvent removes a pending event of eventType, if any.
func (s *Scheduler) DescheduleEvent(eventType EventType) {
	var prev *Event
	for event := s.root; event != nil; event = event.next {
		if event.eventType == eventType {
			if prev == nil {
				s.root = event.next
			} else {
				prev.next = event.next
			}
			event.Reset()
			return
		}
		prev = event
	}
}

// Until returns the number of clock cycles until an event of eventType
// fires, and false if none is scheduled.
func (s *Scheduler) Until(eventType EventType) (uint64, bool) {
	e := &s.events[eventType]
	if !e.scheduled {
		return 0, false
	}
	return e.cycle - s.cycles, true
}

func (s *Scheduler) String() string {
	var b strings.Builder
	for event := s.root; event != nil; event = event.next {
		fmt.Fprintf(&b, "%s:%d->", event.eventType, event.cycle)
	}
	return b.String()
}

var _ types.Stater = (*Scheduler)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - cycles (uint64)
//   - overshoot (uint64)
//   - for each event type: scheduled (bool), cycle (uint64)
func (s *Scheduler) Load(st *types.State) {
	s.cycles = st.Read64()
	s.overshoot = st.Read64()
	s.root = nil
	for i := range s.events {
		s.events[i].Reset()
	}

	// read every event first, as insertion keeps the list sorted
	var pending [eventTypes]struct {
		scheduled bool
		cycle     uint64
	}
	for i := range pending {
		pending[i].scheduled = st.ReadBool()
		pending[i].cycle = st.Read64()
	}
	for i, p := range pending {
		if p.scheduled {
			s.insert(EventType(i), p.cycle)
		}
	}
}

// Save implements the types.Stater interface.
func (s *Scheduler) Save(st *types.State) {
	st.Write64(s.cycles)
	st.Write64(s.overshoot)
	for i := range s.events {
		st.WriteBool(s.events[i].scheduled)
		st.Write64(s.events[i].cycle)
	}
}
