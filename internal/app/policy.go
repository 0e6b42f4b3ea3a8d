package app

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	DropEvent
	CloseSubscriber
)

// Policy decides what happens to a subscriber whose queue is full.
type Policy interface {
	OnBackPressure(sub *Subscription, ev Event) BackpressureAction
}

// SimplePolicy closes slow subscribers so they can tell they missed events.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(*Subscription, Event) BackpressureAction {
	return CloseSubscriber
}
