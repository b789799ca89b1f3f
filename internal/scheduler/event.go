package scheduler

// EventType identifies a kind of timed event. Only one event of
// each type can be scheduled at a time.
type EventType uint8

const (
	// RTCTick advances a cartridge's real time clock by one second.
	RTCTick EventType = iota
	// SerialBitTransfer shifts one bit through the serial port.
	SerialBitTransfer

	eventTypes
)

var eventNames = [eventTypes]string{
	RTCTick:           "RTCTick",
	SerialBitTransfer: "SerialBitTransfer",
}

func (e EventType) String() string {
	if e < eventTypes {
		return eventNames[e]
	}
	return "Unknown"
}

// Event is a node of the scheduler's sorted event list.
type Event struct {
	cycle     uint64
	eventType EventType
	scheduled bool
	next      *Event
}

func (e *Event) Reset() {
	e.cycle = 0
	e.scheduled = false
	e.next = nil
}
