package selection

// EventKind tags a selection change.
type EventKind uint8

const (
	Selected EventKind = iota
	Cleared
	LabelsSelected
	Identified
	Nothing
)

func (k EventKind) String() string {
	switch k {
	case Selected:
		return "selected"
	case Cleared:
		return "cleared"
	case LabelsSelected:
		return "labels selected"
	case Identified:
		return "identified"
	}
	return "nothing"
}

// Event describes one change published to subscribers. Layer is empty for
// events that span the whole tree.
type Event struct {
	Kind    EventKind
	Layer   string
	Count   int
	Message string
}

// Subscribe registers fn to receive every event, in publication order.
func (r *Resolver) Subscribe(fn func(Event)) {
	if fn != nil {
		r.subs = append(r.subs, fn)
	}
}

func (r *Resolver) publish(e Event) {
	for _, fn := range r.subs {
		fn(e)
	}
}
