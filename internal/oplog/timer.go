package oplog

import "time"

// Timestamp is a monotonic clock reading split into seconds and the
// sub-second remainder in nanoseconds.
type Timestamp struct {
	Sec  int64
	Nsec int64
}

func (t Timestamp) Valid() bool {
	return t.Sec >= 0 && t.Nsec >= 0 && t.Nsec < int64(time.Second)
}

func (t Timestamp) duration() time.Duration {
	return time.Duration(t.Sec)*time.Second + time.Duration(t.Nsec)
}

func timestampOf(d time.Duration) Timestamp {
	return Timestamp{Sec: int64(d / time.Second), Nsec: int64(d % time.Second)}
}

// Timer measures elapsed time against a monotonic clock.
type Timer struct {
	clock func() time.Duration
}

// NewTimer uses clock as the monotonic source. A nil clock reads the
// runtime's monotonic clock relative to the moment the timer was built.
func NewTimer(clock func() time.Duration) *Timer {
	if clock == nil {
		origin := time.Now()
		clock = func() time.Duration { return time.Since(origin) }
	}
	return &Timer{clock: clock}
}

func (t *Timer) Now() Timestamp {
	return timestampOf(t.clock())
}

// ElapsedMs returns the milliseconds since start, rounded to two decimals.
func (t *Timer) ElapsedMs(start Timestamp) float64 {
	elapsed := t.clock() - start.duration()
	return roundMs(float64(elapsed) / float64(time.Millisecond))
}
