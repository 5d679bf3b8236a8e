package duration

// List holds temporary effect records and drains them by expiry class. It
// lives inside the single-writer game state and carries no internal
// locking. The Take methods collect matching records first and remove them
// after, so callers may inspect what expired.
type List struct {
	records []Record
}

// NewList returns an empty list.
func NewList() *List {
	return &List{}
}

// Add appends a record.
func (l *List) Add(rec Record) {
	l.records = append(l.records, rec)
}

// Remove deletes the record with the given handle. Returns false when no
// record carries that ID.
func (l *List) Remove(id string) bool {
	for i, rec := range l.records {
		if rec.ID == id {
			l.records = append(l.records[:i], l.records[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the record with the given handle.
func (l *List) Get(id string) (Record, bool) {
	for _, rec := range l.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return Record{}, false
}

// Records returns a copy of every active record.
func (l *List) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of active records.
func (l *List) Len() int { return len(l.records) }

// Clear drops every record.
func (l *List) Clear() { l.records = nil }

func (l *List) take(match func(Record) bool) []Record {
	var taken []Record
	var kept []Record
	for _, rec := range l.records {
		if match(rec) {
			taken = append(taken, rec)
		} else {
			kept = append(kept, rec)
		}
	}
	l.records = kept
	return taken
}

// TakeEndOfTurn removes and returns every until-end-of-turn record,
// including stale ones from earlier turns if a sweep was skipped.
func (l *List) TakeEndOfTurn() []Record {
	return l.take(func(rec Record) bool {
		return rec.Expiry == UntilEndOfTurn
	})
}

// TakeStartOfTurn removes and returns the until-your-next-turn records
// whose granting controller is the player starting their turn.
func (l *List) TakeStartOfTurn(controllerID string) []Record {
	return l.take(func(rec Record) bool {
		return rec.Expiry == UntilYourNextTurn && rec.ControllerID == controllerID
	})
}

// TakeEndStepDue removes and returns the delayed one-shot records due at
// the given turn's end step. Records whose fire turn already passed are
// included so a skipped sweep cannot strand them.
func (l *List) TakeEndStepDue(turnNumber int) []Record {
	return l.take(func(rec Record) bool {
		return rec.Expiry == AtNextEndStep && rec.FireTurn <= turnNumber
	})
}

// ByPermanent returns the active records attached to one permanent.
func (l *List) ByPermanent(permanentID string) []Record {
	var out []Record
	for _, rec := range l.records {
		if rec.PermanentID == permanentID {
			out = append(out, rec)
		}
	}
	return out
}

// DropByPermanent removes every record attached to one permanent, for when
// it leaves the battlefield.
func (l *List) DropByPermanent(permanentID string) int {
	dropped := l.take(func(rec Record) bool {
		return rec.PermanentID == permanentID
	})
	return len(dropped)
}
