package resolver

import (
	"context"
	"errors"
	"log"

	"github.com/shiva/flightlog/internal/adapter"
	"github.com/shiva/flightlog/internal/model"
	"github.com/shiva/flightlog/internal/refdata"
)

// outcome is one adapter's answer during the race.
type outcome struct {
	idx int
	rec *model.PartialFlightRecord
	err error
}

// raceResult is what the concurrent stage hands to the rest of the ladder.
type raceResult struct {
	accepted  *model.PartialFlightRecord
	consulted []string
	retry     []Source
}

// race launches every admissible source at once and accepts the first
// complete record. Records that arrived at the same decision point are ranked
// by richness. Sources that timed out or never answered are returned for the
// sequential stage.
func (r *Resolver) race(ctx context.Context, flightNumber, date string) raceResult {
	raceCtx, cancel := context.WithTimeout(ctx, r.cfg.RaceCeiling)
	defer cancel()

	var (
		res      raceResult
		launched []int
	)
	// Buffered so abandoned adapters never block on send.
	results := make(chan outcome, len(r.sources))

	for i, src := range r.sources {
		if !r.admit(ctx, src) {
			continue
		}
		launched = append(launched, i)
		res.consulted = append(res.consulted, src.Adapter.Name())

		go func(i int, a adapter.Adapter) {
			actx, acancel := context.WithTimeout(raceCtx, r.cfg.AdapterTimeout)
			defer acancel()
			rec, err := a.Fetch(actx, flightNumber, date)
			results <- outcome{idx: i, rec: rec, err: err}
		}(i, src.Adapter)
	}

	answered := make(map[int]bool, len(launched))
	timedOut := make(map[int]bool)

	for len(answered) < len(launched) {
		select {
		case o := <-results:
			answered[o.idx] = true
			if complete(o.rec) {
				batch := drain(o, results)
				for _, b := range batch[1:] {
					answered[b.idx] = true
				}
				best := pickRichest(batch)
				res.accepted = best.rec
				log.Printf("[resolver] race won by %s (%d complete at decision point)", best.rec.Source, len(batch))
				return res
			}
			if isTimeout(o.err) {
				timedOut[o.idx] = true
			}
			r.logFailure(o)

		case <-raceCtx.Done():
			log.Printf("[resolver] race ceiling reached with %d/%d answered", len(answered), len(launched))
			res.retry = r.pendingSources(launched, answered, timedOut)
			return res
		}
	}

	res.retry = r.pendingSources(launched, answered, timedOut)
	return res
}

// drain collects every complete record already waiting next to first,
// without waiting for more.
func drain(first outcome, results <-chan outcome) []outcome {
	batch := []outcome{first}
	for {
		select {
		case o := <-results:
			if complete(o.rec) {
				batch = append(batch, o)
			}
		default:
			return batch
		}
	}
}

// pickRichest ranks by richness, then registration order.
func pickRichest(batch []outcome) outcome {
	best := batch[0]
	for _, o := range batch[1:] {
		rb, ro := richness(best.rec), richness(o.rec)
		if ro > rb || (ro == rb && o.idx < best.idx) {
			best = o
		}
	}
	return best
}

// richness scores a record: schedule and aircraft type dominate, then the
// smaller extras.
func richness(rec *model.PartialFlightRecord) int {
	score := 0
	if rec.ScheduledDeparture != nil && rec.ScheduledArrival != nil {
		score += 4
	}
	if _, ok := refdata.LookupAircraft(rec.AircraftCode); ok {
		score += 4
	} else if _, ok := refdata.LookupAircraft(rec.AircraftText); ok {
		score += 4
	}
	if rec.ActualDeparture != nil || rec.ActualArrival != nil {
		score++
	}
	if rec.Registration != "" {
		score++
	}
	if rec.Status != "" {
		score++
	}
	return score
}

// complete reports whether a record clears the minimum bar: two distinct
// endpoints that both exist in reference data.
func complete(rec *model.PartialFlightRecord) bool {
	if rec == nil {
		return false
	}
	dep, ok1 := refdata.ResolveAirport(rec.DepartureCode)
	arr, ok2 := refdata.ResolveAirport(rec.ArrivalCode)
	return ok1 && ok2 && dep.IATA != arr.IATA
}

// pendingSources lists launched sources that never answered or timed out.
func (r *Resolver) pendingSources(launched []int, answered, timedOut map[int]bool) []Source {
	var out []Source
	for _, i := range launched {
		if !answered[i] || timedOut[i] {
			out = append(out, r.sources[i])
		}
	}
	return out
}

// sequential retries the given sources one at a time with the longer timeout.
func (r *Resolver) sequential(ctx context.Context, sources []Source, flightNumber, date string) *model.PartialFlightRecord {
	for _, src := range sources {
		if !r.admit(ctx, src) {
			continue
		}
		sctx, cancel := context.WithTimeout(ctx, r.cfg.SequentialTimeout)
		rec, err := src.Adapter.Fetch(sctx, flightNumber, date)
		cancel()

		if complete(rec) {
			log.Printf("[resolver] sequential retry won by %s", src.Adapter.Name())
			return rec
		}
		if err != nil {
			log.Printf("[resolver] sequential %s: %v", src.Adapter.Name(), err)
		}
	}
	return nil
}

// admit checks a metered source's daily quota. Exhausted quota excludes the
// source silently; a broken quota store also excludes it.
func (r *Resolver) admit(ctx context.Context, src Source) bool {
	if src.Quota == nil {
		return true
	}
	ok, err := src.Quota.TryAcquire(ctx)
	if err != nil {
		log.Printf("[resolver] quota %s: %v", src.Quota.Name(), err)
		return false
	}
	if !ok {
		log.Printf("[resolver] %s excluded: daily quota of %d reached", src.Adapter.Name(), src.Quota.Limit())
	}
	return ok
}

func (r *Resolver) logFailure(o outcome) {
	name := r.sources[o.idx].Adapter.Name()
	switch {
	case o.err == nil:
		log.Printf("[resolver] %s returned an incomplete record", name)
	case errors.Is(o.err, adapter.ErrNoData):
		log.Printf("[resolver] %s: no data", name)
	default:
		log.Printf("[resolver] %s: %v", name, o.err)
	}
}

func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
