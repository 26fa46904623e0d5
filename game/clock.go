package game

// Clock counts ticks and fires alarms scheduled against it. It has no notion
// of wall time: a pause lasts the same number of ticks however slowly the
// host runs.
type Clock struct {
	now    uint64
	alarms []*Alarm
}

// Alarm is a pending call scheduled on a Clock.
type Alarm struct {
	due      uint64
	fn       func()
	pending  bool
	canceled bool
}

// Now returns the number of ticks advanced so far.
func (c *Clock) Now() uint64 {
	return c.now
}

// After schedules fn to run on the Advance that reaches now+ticks. A
// non-positive count fires on the next Advance.
func (c *Clock) After(ticks int, fn func()) *Alarm {
	due := c.now + 1
	if ticks > 0 {
		due = c.now + uint64(ticks)
	}
	a := &Alarm{due: due, fn: fn, pending: true}
	c.alarms = append(c.alarms, a)
	return a
}

// Advance moves the clock one tick forward and runs the alarms that are due,
// in the order they were scheduled. Alarms scheduled by those callbacks are
// not run before the next Advance even when already due.
func (c *Clock) Advance() {
	c.now++

	var due []*Alarm
	kept := c.alarms[:0]
	for _, a := range c.alarms {
		switch {
		case a.canceled:
		case a.due <= c.now:
			due = append(due, a)
		default:
			kept = append(kept, a)
		}
	}
	clear(c.alarms[len(kept):])
	c.alarms = kept

	for _, a := range due {
		if a.canceled {
			continue
		}
		a.pending = false
		a.fn()
	}
}

// CancelAll cancels every pending alarm.
func (c *Clock) CancelAll() {
	for _, a := range c.alarms {
		a.Cancel()
	}
	clear(c.alarms)
	c.alarms = c.alarms[:0]
}

// Pending returns the number of alarms that have neither fired nor been
// canceled.
func (c *Clock) Pending() int {
	n := 0
	for _, a := range c.alarms {
		if a.pending {
			n++
		}
	}
	return n
}

// Cancel prevents the alarm from firing. Canceling a fired alarm does nothing.
func (a *Alarm) Cancel() {
	if a == nil || !a.pending {
		return
	}
	a.pending = false
	a.canceled = true
}

// Pending reports whether the alarm is still waiting to fire.
func (a *Alarm) Pending() bool {
	return a != nil && a.pending
}

// Remaining returns the ticks left before the alarm fires, or 0 once it has
// fired or been canceled.
func (a *Alarm) Remaining(c *Clock) int {
	if !a.Pending() || a.due <= c.now {
		return 0
	}
	return int(a.due - c.now)
}
