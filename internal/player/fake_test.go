package player

import (
	"context"
	"sync"
)

// fakeMedia records calls. With block set, Play waits for its context.
type fakeMedia struct {
	mu      sync.Mutex
	source  string
	paused  bool
	volume  float64
	playErr error
	srcErr  error
	block   bool
	calls   []string
	events  chan Event
}

func newFakeMedia() *fakeMedia {
	return &fakeMedia{paused: true, events: make(chan Event, 8)}
}

func (f *fakeMedia) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeMedia) SetSource(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("source:" + url)
	if f.srcErr != nil {
		return f.srcErr
	}
	f.source = url
	f.paused = true
	return nil
}

func (f *fakeMedia) Play(ctx context.Context) error {
	f.mu.Lock()
	f.record("play")
	if f.block {
		f.mu.Unlock()
		<-ctx.Done()
		return ctx.Err()
	}
	defer f.mu.Unlock()
	if f.playErr != nil {
		return f.playErr
	}
	if f.source == "" {
		return ErrNoSource
	}
	f.paused = false
	return nil
}

func (f *fakeMedia) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("pause")
	f.paused = true
	return nil
}

func (f *fakeMedia) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("stop")
	f.source = ""
	f.paused = true
	return nil
}

func (f *fakeMedia) SetVolume(v float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volume = v
	return nil
}

func (f *fakeMedia) Events() <-chan Event { return f.events }

func (f *fakeMedia) Close() error { return nil }

func (f *fakeMedia) lastCall() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1]
}
