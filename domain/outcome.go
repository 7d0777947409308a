package domain

// Outcome describes what the dispatcher did with one inbound frame.
type Outcome struct {
	// Event is the stamped event, zero when nothing was published.
	Event ChatEvent
	// Delivered counts subscribers that accepted the event.
	Delivered int
	// Reply is sent back to the source connection only.
	Reply *Outbound
	// Left is set once the session has been destroyed by an explicit leave.
	Left bool
}

func (o Outcome) Published() bool {
	return o.Event.Type != ""
}
