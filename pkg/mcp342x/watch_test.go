package mcp342x

import (
	"context"
	"testing"
	"time"
)

func TestWatchReadings(t *testing.T) {
	// continuous 16-bit frames, ready bit clear
	bus := &fakeBus{frames: [][]byte{{0x03, 0x91, 0x18}}}
	adc := New(bus, DefaultAddr)

	readings := make(chan Reading, 16)

	watch, err := adc.WatchReadings(context.Background(), time.Millisecond, func(r Reading) {
		select {
		case readings <- r:
		default:
		}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the watch forces continuous mode before the loop starts
	if b := bus.lastWrite(t); b&ModeBit == 0 {
		t.Errorf("expected continuous mode on the wire, got %#02x", b)
	}

	for i := 0; i < 3; i++ {
		select {
		case r := <-readings:
			if r.OutputCode != 913 {
				t.Errorf("expected code 913, got %d", r.OutputCode)
			}
			if r.Resolution != Res16 {
				t.Errorf("expected 16-bit, got %s", r.Resolution)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for a reading")
		}
	}

	watch.Stop()
	if err := watch.Wait(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !watch.IsDone() {
		t.Error("expected watch to be done")
	}
}

func TestWatchSkipsStaleFrames(t *testing.T) {
	// ready bit set on every frame: conversion never finishes
	bus := &fakeBus{frames: [][]byte{{0x00, 0x00, 0x98}}}
	adc := New(bus, DefaultAddr)

	fired := make(chan struct{}, 1)
	watch, err := adc.WatchReadings(context.Background(), time.Millisecond, func(Reading) {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case <-fired:
		t.Error("callback fired for a stale frame")
	case <-time.After(25 * time.Millisecond):
	}

	watch.Stop()
	if err := watch.Wait(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestWatchNoCallback(t *testing.T) {
	adc := New(&fakeBus{}, DefaultAddr)
	if _, err := adc.WatchReadings(context.Background(), time.Millisecond, nil); err == nil {
		t.Error("expected error")
	}
}

func TestWatchAccumulatesErrors(t *testing.T) {
	bus := &fakeBus{}
	adc := New(bus, DefaultAddr)

	// continuous mode write succeeds, then every read fails
	watch, err := adc.WatchReadings(context.Background(), 100*time.Microsecond, func(Reading) {})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bus.mu.Lock()
	bus.readErr = context.DeadlineExceeded // any sentinel will do
	bus.mu.Unlock()

	// the watch shuts itself down once the error cap is hit
	if err := watch.Wait(); err == nil {
		t.Error("expected accumulated errors")
	}
}
