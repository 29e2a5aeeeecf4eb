package helpers

import (
	"time"

	"golang.org/x/time/rate"
)

// OnceAMinute rate-limits repetitive warnings, such as AWS call throttling notices.
var OnceAMinute = onceAMinute()

func onceAMinute() rate.Sometimes {
	return rate.Sometimes{
		Interval: time.Minute,
	}
}
