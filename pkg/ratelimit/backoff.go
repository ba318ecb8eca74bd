package ratelimit

import "time"

// backoffDelay returns base * 2^(violations-1), capped at maxDelay.
func backoffDelay(violations int, base, maxDelay time.Duration) time.Duration {
	if violations <= 0 {
		return 0
	}

	d := base
	for i := 1; i < violations; i++ {
		if d >= maxDelay/2 {
			return maxDelay
		}
		d *= 2
	}
	return min(d, maxDelay)
}
