package cashflow

// Op is the kind of mutation a ledger went through.
type Op int

const (
	OpAdd Op = iota
	OpUpdate
	OpRemove
	OpReplace
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpUpdate:
		return "update"
	case OpRemove:
		return "remove"
	case OpReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Event describes a mutation, delivered once it has been applied.
// Entry is the zero value for OpReplace.
type Event struct {
	Op     Op
	Entry  Entry
	Ledger *Ledger
}

type subscriber struct {
	id int
	fn func(Event)
}

// Subscribe registers fn to be called synchronously after every mutation, in
// subscription order. The returned function cancels the subscription.
func (l *Ledger) Subscribe(fn func(Event)) (cancel func()) {
	l.nextSub++
	id := l.nextSub
	l.subscribers = append(l.subscribers, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range l.subscribers {
			if s.id == id {
				l.subscribers = append(l.subscribers[:i:i], l.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (l *Ledger) notify(op Op, e Entry) {
	ev := Event{Op: op, Entry: e, Ledger: l}
	for _, s := range l.subscribers {
		s.fn(ev)
	}
}
