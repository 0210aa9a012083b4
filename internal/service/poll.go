// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package service

import (
	"context"
	"math/rand/v2"
	"time"
)

const pollJitter = 500 * time.Millisecond

// PollIntervals returns a function yielding successive poll delays,
// ramping up for longer dissemination and ingest tasks: the first five
// calls give ~3s, the next five ~10s, and every call after that ~60s.
// Each delay carries up to 500ms of random jitter so that concurrent
// invocations do not hit the service in lockstep.
func PollIntervals() func() time.Duration {
	n := 0
	return func() time.Duration {
		var base time.Duration
		switch {
		case n < 5:
			base = 3 * time.Second
		case n < 10:
			base = 10 * time.Second
		default:
			base = time.Minute
		}
		n++
		return base + rand.N(pollJitter)
	}
}

// sleepCtx blocks for d or until ctx is cancelled, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
