// internal/pipeline/pipeline.go

// Package pipeline runs the streaming reduction from alignment records to
// containment calls. One reader goroutine pulls records off the report;
// worker goroutines each own a private accumulator and receive records
// routed by a hash of the (query, subject) pair, so a pair's interval set
// is only ever touched by one worker and needs no locking. Workers merge
// once, after the stream is exhausted.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"alncontain-core/blastab"
	"alncontain-core/contain"
	"alncontain-core/lenindex"
)

// Config controls the reduction.
type Config struct {
	// Threads is the worker count; 0 means all CPUs.
	Threads int
	// Policy decides whether malformed rows and out-of-range coordinates
	// abort the run or are skipped and counted.
	Policy contain.Policy
	// Engine is the decision configuration handed to each accumulator.
	Engine contain.Config
}

// WarnFunc receives skip-policy diagnostics. May be nil.
type WarnFunc func(format string, args ...any)

// Reduce consumes the whole record stream and returns the finalized,
// deterministically ordered calls plus run statistics. On error the
// statistics still describe how far the run got before failing.
func Reduce(
	ctx context.Context,
	cfg Config,
	queries, subjects *lenindex.Index,
	rd *blastab.Reader,
	warnf WarnFunc,
) ([]contain.Call, contain.Stats, error) {
	if warnf == nil {
		warnf = func(string, ...any) {}
	} else {
		// Reader and workers warn concurrently; serialize for the caller.
		var mu sync.Mutex
		inner := warnf
		warnf = func(format string, args ...any) {
			mu.Lock()
			defer mu.Unlock()
			inner(format, args...)
		}
	}
	thr := cfg.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	accs := make([]*contain.Accumulator, thr)
	chans := make([]chan blastab.Record, thr)
	for i := range accs {
		accs[i] = contain.NewAccumulator(cfg.Engine, queries, subjects)
		chans[i] = make(chan blastab.Record, 256)
	}

	g, ctx := errgroup.WithContext(ctx)

	// Malformed rows never reach an accumulator, so the reader keeps its
	// own skip count and folds it in afterwards.
	readerSkipped := 0
	fed := 0

	g.Go(func() error {
		defer func() {
			for _, ch := range chans {
				close(ch)
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			rec, err := rd.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				var merr *blastab.MalformedRecordError
				if errors.As(err, &merr) && cfg.Policy == contain.Skip {
					readerSkipped++
					warnf("skipping %v", merr)
					continue
				}
				return fmt.Errorf("after %d records: %w", fed, err)
			}
			fed++
			h := fnv.New32a()
			_, _ = h.Write([]byte(rec.QueryID))
			_, _ = h.Write([]byte{0x1f})
			_, _ = h.Write([]byte(rec.SubjectID))
			select {
			case chans[h.Sum32()%uint32(thr)] <- rec:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	for i := 0; i < thr; i++ {
		i := i
		g.Go(func() error {
			for {
				select {
				case rec, ok := <-chans[i]:
					if !ok {
						return nil
					}
					if err := accs[i].Observe(rec); err != nil {
						var cerr *contain.CoordinateRangeError
						if errors.As(err, &cerr) && cfg.Policy == contain.Skip {
							accs[i].CountSkipped()
							warnf("skipping %v", cerr)
							continue
						}
						// UnknownSequenceError and abort-policy range
						// errors land here: without a trustworthy
						// denominator there is nothing to skip to.
						return fmt.Errorf("after %d records: %w", accs[i].Stats().Observed, err)
					}
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		})
	}

	err := g.Wait()

	root := accs[0]
	for _, a := range accs[1:] {
		root.Merge(a)
	}
	if err != nil {
		stats := root.Stats()
		stats.Skipped += readerSkipped
		return nil, stats, err
	}

	calls, stats := root.Finalize()
	stats.Skipped += readerSkipped
	return calls, stats, nil
}
