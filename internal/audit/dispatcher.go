package audit

import (
	"sync"

	"go.uber.org/zap"
)

const queueSize = 100

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Sink persists one audit event.
type Sink interface {
	Log(ev Event) error
}

type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event

	once sync.Once
	done chan struct{}
}

func NewDispatcher(sink Sink, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}

	d := &Dispatcher{
		sink:  sink,
		log:   log.Named("audit"),
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.sink.Log(ev); err != nil {
			d.log.Error("audit write failed",
				zap.String("action", ev.Action),
				zap.String("entity", ev.Entity),
				zap.Error(err),
			)
		}
	}
}

// Dispatch enqueues ev without blocking. Events are dropped when the queue
// is full or the dispatcher is closed; auditing never fails a request.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	defer func() {
		// send on closed channel
		if recover() != nil {
			d.log.Warn("audit dispatcher closed, dropping event", zap.String("action", ev.Action))
		}
	}()

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() { close(d.queue) })
	<-d.done
}
