package clock

import "time"

// Clock abstracts wall-clock access so time-dependent logic can be
// tested deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// System returns a Clock backed by time.Now.
func System() Clock {
	return systemClock{}
}
