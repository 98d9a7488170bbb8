package usecase

import (
	"time"

	"github.com/samber/do"
)

// Clock returns the server receipt time for deliveries.
type Clock func() time.Time

func invokeClock(i *do.Injector) Clock {
	if clock, err := do.Invoke[Clock](i); err == nil && clock != nil {
		return clock
	}
	return time.Now
}
