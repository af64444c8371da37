package app

import (
	"context"
	"time"

	sldview "github.com/gogpu/sldview"
)

// domain groups requests whose results replace the same piece of state.
// Only the newest request of a domain may apply its result.
type domain uint8

const (
	domainUpload domain = iota
	domainImage
	domainGraph
	domainVector
	domainExport
	numDomains
)

var domainNames = [...]string{
	domainUpload: "upload",
	domainImage:  "image",
	domainGraph:  "graph",
	domainVector: "vector",
	domainExport: "export",
}

func (d domain) String() string { return domainNames[d] }

// job is a service request. run executes on a background goroutine and
// returns a closure that applies the result on the owning goroutine.
type job struct {
	domain domain
	op     string
	// locks marks requests submitted with the controls in waiting state.
	locks  bool
	run    func(ctx context.Context) (apply func() error, err error)
	// failed runs on the owning goroutine when the request fails.
	failed func()
}

type completion struct {
	job   job
	seq   uint64
	apply func() error
	err   error
	took  time.Duration
}

// submit starts j in the background, superseding every in-flight request
// of the same domain.
func (a *App) submit(j job) error {
	if a.closed {
		return ErrClosed
	}
	a.seq[j.domain]++
	seq := a.seq[j.domain]
	if j.locks {
		a.locking++
	}
	a.inflight.Add(1)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		start := time.Now()
		apply, err := j.run(a.ctx)
		a.mu.Lock()
		a.queue = append(a.queue, completion{job: j, seq: seq, apply: apply, err: err, took: time.Since(start)})
		a.mu.Unlock()
		a.inflight.Add(-1)
		select {
		case a.wake <- struct{}{}:
		default:
		}
	}()
	return nil
}

// supersede discards the in-flight requests of d.
func (a *App) supersede(d domain) {
	a.seq[d]++
}

// Pump applies completed requests in completion order and returns how
// many were applied. Results older than the newest request of their
// domain are dropped.
func (a *App) Pump() int {
	a.mu.Lock()
	done := a.queue
	a.queue = nil
	a.mu.Unlock()

	applied := 0
	for _, c := range done {
		log := sldview.Logger().With("op", c.job.op, "domain", c.job.domain, "took", c.took)
		if c.job.locks {
			a.locking--
		}
		if c.seq != a.seq[c.job.domain] {
			log.Warn("discarding stale response", "seq", c.seq, "latest", a.seq[c.job.domain])
			// The request that replaced it may not lock the controls.
			if c.job.locks && a.locking == 0 && a.controls.Loading() {
				a.controls.Ready()
				a.RequestDraw()
			}
			continue
		}
		err := c.err
		if err == nil {
			err = c.apply()
		}
		if err != nil {
			a.fail(c.job, err)
			continue
		}
		log.Debug("applied response")
		a.store.LastError = nil
		applied++
		a.RequestDraw()
	}
	return applied
}

// fail leaves the state as it was, records err and releases the controls.
func (a *App) fail(j job, err error) {
	sldview.Logger().Warn("request failed", "op", j.op, "err", err)
	a.store.LastError = err
	if j.failed != nil {
		j.failed()
	}
	a.controls.Ready()
	a.RequestDraw()
}

// Busy reports whether requests are in flight or awaiting Pump.
func (a *App) Busy() bool {
	if a.inflight.Load() > 0 {
		return true
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.queue) > 0
}

// Settle pumps until no request is in flight, including requests started
// by applied results. Headless runs and tests use it in place of a frame
// loop.
func (a *App) Settle(ctx context.Context) error {
	for {
		a.Pump()
		if !a.Busy() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.wake:
		}
	}
}
