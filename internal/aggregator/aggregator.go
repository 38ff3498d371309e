// Package aggregator accumulates port call pages into one collection per generation.
package aggregator

import (
	"errors"

	"github.com/ngmaloney/portman-terminal/internal/models"
)

// ErrorKind classifies the last problem seen by a chain
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	ErrorNetwork
	ErrorMalformedContinuation
	ErrorFilterValidation
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorNetwork:
		return "NetworkError"
	case ErrorMalformedContinuation:
		return "MalformedContinuationToken"
	case ErrorFilterValidation:
		return "FilterValidationError"
	default:
		return "None"
	}
}

// Message is the user-facing banner text for the error kind
func (k ErrorKind) Message() string {
	switch k {
	case ErrorNetwork:
		return "Failed to load all port calls. Some data might be missing."
	case ErrorMalformedContinuation:
		return "The server returned an unreadable next page link. Some data might be missing."
	case ErrorFilterValidation:
		return "Start date must be on or before end date."
	default:
		return ""
	}
}

// KindOf maps an error raised around a chain to its kind. Filter validation
// happens before a chain starts, so only callers see ErrorFilterValidation.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorNone
	case errors.Is(err, models.ErrInvalidDateRange):
		return ErrorFilterValidation
	default:
		return ErrorNetwork
	}
}

// Snapshot is what the aggregator publishes to views
type Snapshot struct {
	Generation uint64
	Records    []models.PortCall
	TotalCount int
	Complete   bool
	LastError  ErrorKind
	Pages      int
}

// Aggregator holds the records of the current generation, keyed by port call ID.
// It is owned by a single event loop and does no locking.
type Aggregator struct {
	generation uint64
	records    []models.PortCall
	index      map[int64]int
	complete   bool
	lastErr    ErrorKind
	pages      int

	publish func(Snapshot)
}

// New creates an aggregator. publish, if not nil, receives a snapshot after
// every merge and terminal transition.
func New(publish func(Snapshot)) *Aggregator {
	return &Aggregator{
		index:   make(map[int64]int),
		publish: publish,
	}
}

// Generation returns the generation the aggregator accepts
func (a *Aggregator) Generation() uint64 {
	return a.generation
}

// Reset clears accumulated state and starts accepting gen
func (a *Aggregator) Reset(gen uint64) {
	a.generation = gen
	a.records = nil
	a.index = make(map[int64]int)
	a.complete = false
	a.lastErr = ErrorNone
	a.pages = 0
}

// Merge upserts the page's records. Pages from any other generation are ignored.
// An ID seen before keeps its position and takes the newer values.
func (a *Aggregator) Merge(gen uint64, page models.Page) bool {
	if gen != a.generation {
		return false
	}

	for _, pc := range page.Records {
		if i, ok := a.index[pc.PortCallID]; ok {
			a.records[i] = pc
			continue
		}
		a.index[pc.PortCallID] = len(a.records)
		a.records = append(a.records, pc)
	}
	a.pages++

	a.notify()
	return true
}

// MarkComplete records that the chain is exhausted. warning is ErrorNone for a
// clean finish.
func (a *Aggregator) MarkComplete(gen uint64, warning ErrorKind) bool {
	if gen != a.generation {
		return false
	}
	a.complete = true
	a.lastErr = warning
	a.notify()
	return true
}

// MarkFailed records a chain failure. Records merged so far are kept.
func (a *Aggregator) MarkFailed(gen uint64, kind ErrorKind) bool {
	if gen != a.generation {
		return false
	}
	a.complete = false
	a.lastErr = kind
	a.notify()
	return true
}

// Snapshot returns a copy of the current state
func (a *Aggregator) Snapshot() Snapshot {
	records := make([]models.PortCall, len(a.records))
	copy(records, a.records)
	return Snapshot{
		Generation: a.generation,
		Records:    records,
		TotalCount: len(records),
		Complete:   a.complete,
		LastError:  a.lastErr,
		Pages:      a.pages,
	}
}

func (a *Aggregator) notify() {
	if a.publish != nil {
		a.publish(a.Snapshot())
	}
}
