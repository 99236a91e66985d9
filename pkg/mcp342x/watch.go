package mcp342x

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ReadingCallback receives each fresh measurement a Watch produces.
type ReadingCallback func(r Reading)

// Watch tracks a background polling loop started by WatchReadings.
type Watch struct {
	Interval time.Duration
	done     *atomic.Bool
	running  *atomic.Bool
	callback ReadingCallback
	err      []error
	errMu    sync.Mutex
}

func NewWatch(interval time.Duration, onData ReadingCallback) *Watch {
	return &Watch{
		Interval: interval,
		done:     &atomic.Bool{},
		running:  &atomic.Bool{},
		callback: onData,
		err:      make([]error, 0),
	}
}

func (w *Watch) addErr(err error) {
	if err == nil {
		return
	}
	w.errMu.Lock()
	w.err = append(w.err, err)
	if len(w.err) > 50 {
		w.done.Store(true)
	}
	w.errMu.Unlock()
}

func (w *Watch) Err() error {
	w.errMu.Lock()
	defer w.errMu.Unlock()
	if len(w.err) == 0 {
		return nil
	}
	return fmt.Errorf("watch errors: %w", errors.Join(w.err...))
}

func (w *Watch) Stop() {
	w.done.Store(true)
}

func (w *Watch) IsDone() bool {
	return w.done.Load()
}

// Wait blocks until the loop has stopped and drained, then returns any
// accumulated errors.
func (w *Watch) Wait(ctx ...context.Context) error {
	ctxDone := func() {
		if len(ctx) < 1 {
			return
		}
		select {
		case <-ctx[0].Done():
		default:
		}
	}

	for !w.done.Load() {
		ctxDone()
		time.Sleep(10 * time.Millisecond)
	}
	for w.running.Load() {
		ctxDone()
		time.Sleep(10 * time.Millisecond)
	}

	return w.Err()
}

// WatchReadings samples the device at the given interval and fires the
// callback for every fresh frame; stale frames (conversion still running)
// are skipped. The device stays in continuous mode for the duration.
//
// This method spawns a go routine that fires off your callback
func (adc *MCP342x) WatchReadings(
	ctx context.Context,
	interval time.Duration,
	onData ReadingCallback,
) (*Watch, error) {
	if onData == nil {
		return nil, errors.New("no callback to watch with")
	}

	if !adc.continuousMode.Load() {
		cfg := adc.LastConfig()
		cfg.Mode = Continuous
		if err := adc.Configure(cfg); err != nil {
			return nil, fmt.Errorf("failed to enter continuous mode: %w", err)
		}
	}

	var cancel context.CancelFunc
	ctx, cancel = context.WithCancel(ctx)

	watch := NewWatch(interval, onData)

	go func() {
		watch.running.Store(true)
		for {
			select {
			case <-ctx.Done():
				watch.running.Store(false)
				return
			default:
				if watch.done.Load() {
					cancel()
					continue
				}
			}
			adc.watchOnce(watch, cancel)
			time.Sleep(interval)
		}
	}()

	return watch, nil
}

func (adc *MCP342x) watchOnce(w *Watch, cancel context.CancelFunc) {
	if w.done.Load() {
		cancel()
		return
	}

	r, err := adc.Sample()
	if err != nil {
		w.addErr(err)
		return
	}

	if !r.Fresh() {
		return
	}

	w.callback(r)
}
