package cache

import "time"

// Parameters are the out-of-band dates attached to every cache entry,
// stored beside the content rather than inside it. An entry missing either
// date is treated as foreign or corrupt.
type Parameters struct {
	ReferenceDate  time.Time `json:"referenceDate"`
	ExpirationDate time.Time `json:"expirationDate"`
}

// Delegate computes a refreshed expiration date from an entry's current
// parameters. now is the store's clock, so strategies stay testable with a
// simulated time source. Fixed TTLs, sliding windows and LRU-like behavior
// are all expressible as different delegates without changing the cache.
type Delegate interface {
	NextExpiration(p Parameters, now time.Time) time.Time
}

// DelegateFunc adapts a plain function to the Delegate interface.
type DelegateFunc func(p Parameters, now time.Time) time.Time

// NextExpiration calls f.
func (f DelegateFunc) NextExpiration(p Parameters, now time.Time) time.Time {
	return f(p, now)
}

// SlidingTTL returns a delegate that pushes expiration forward by ttl from
// the current time on every touch.
func SlidingTTL(ttl time.Duration) Delegate {
	return DelegateFunc(func(_ Parameters, now time.Time) time.Time {
		return now.Add(ttl)
	})
}

// FixedTTL returns a delegate that expires entries ttl after their original
// write, regardless of how often they are fetched.
func FixedTTL(ttl time.Duration) Delegate {
	return DelegateFunc(func(p Parameters, _ time.Time) time.Time {
		return p.ReferenceDate.Add(ttl)
	})
}
