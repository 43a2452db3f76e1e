package event

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type retryEntry struct {
	event   Event
	attempt int
	due     time.Time
	lastErr error
}

// ResilientPublisher wraps a Bus. A failed publish is retried in the
// background with exponential backoff; an event that still fails after
// maxRetries, or that finds the retry queue full, is written to the
// dead-letter file. Callers never see a publish error.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
	shutdown   chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// NewResilientPublisher creates a publisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	rp.wg.Add(1)
	go rp.retryWorker()

	return rp, nil
}

// Publish implements Bus. It never returns an error; failures go through
// the retry queue.
func (rp *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	rp.PublishWithRetry(ctx, evt)
	return nil
}

// Subscribe delegates to the wrapped bus
func (rp *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	rp.bus.Subscribe(eventType, handler)
}

// PublishWithRetry makes one synchronous attempt and queues a retry on failure.
func (rp *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	err := rp.bus.Publish(ctx, evt)
	if err == nil {
		return
	}

	slog.Default().Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)

	if rp.maxRetries <= 0 {
		rp.writeDeadLetter(evt, 1, err)
		return
	}

	entry := retryEntry{
		event:   evt,
		attempt: 1,
		due:     time.Now().Add(CalculateRetryDelay(rp.retryDelay, 1)),
		lastErr: err,
	}

	select {
	case <-rp.shutdown:
		rp.writeDeadLetter(evt, 1, err)
	default:
		select {
		case rp.retryQueue <- entry:
		default:
			slog.Default().Error(LogMsgRetryQueueFull, "event_type", evt.Type)
			rp.writeDeadLetter(evt, 1, err)
		}
	}
}

func (rp *ResilientPublisher) retryWorker() {
	defer rp.wg.Done()

	for {
		select {
		case entry := <-rp.retryQueue:
			if wait := time.Until(entry.due); wait > 0 {
				timer := time.NewTimer(wait)
				select {
				case <-timer.C:
				case <-rp.shutdown:
					timer.Stop()
					rp.attemptFinal(entry)
					rp.drain()
					return
				}
			}
			rp.attempt(entry)

		case <-rp.shutdown:
			rp.drain()
			return
		}
	}
}

// attempt retries entry once and either requeues it or dead-letters it.
// Requeueing happens from a timer so the worker is never blocked on a full queue.
func (rp *ResilientPublisher) attempt(entry retryEntry) {
	err := rp.bus.Publish(context.Background(), entry.event)
	if err == nil {
		slog.Default().Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempt", entry.attempt)
		return
	}

	if entry.attempt >= rp.maxRetries {
		slog.Default().Error(LogMsgEventRetryExhausted, "event_type", entry.event.Type, "attempts", entry.attempt+1)
		rp.writeDeadLetter(entry.event, entry.attempt+1, err)
		return
	}

	next := retryEntry{
		event:   entry.event,
		attempt: entry.attempt + 1,
		due:     time.Now().Add(CalculateRetryDelay(rp.retryDelay, entry.attempt+1)),
		lastErr: err,
	}
	slog.Default().Debug(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", entry.attempt, "error", err)

	select {
	case rp.retryQueue <- next:
	default:
		slog.Default().Error(LogMsgRetryQueueFull, "event_type", entry.event.Type)
		rp.writeDeadLetter(entry.event, next.attempt, err)
	}
}

// attemptFinal makes a last delivery attempt during shutdown.
func (rp *ResilientPublisher) attemptFinal(entry retryEntry) {
	if err := rp.bus.Publish(context.Background(), entry.event); err != nil {
		rp.writeDeadLetter(entry.event, entry.attempt+1, err)
	}
}

func (rp *ResilientPublisher) drain() {
	drained := 0
	for {
		select {
		case entry := <-rp.retryQueue:
			rp.attemptFinal(entry)
			drained++
		default:
			if drained > 0 {
				slog.Default().Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

func (rp *ResilientPublisher) writeDeadLetter(evt Event, attempts int, err error) {
	if werr := rp.deadLetter.Write(evt, attempts, err); werr != nil {
		slog.Default().Error(LogMsgDeadLetterWriteFail, "event_type", evt.Type, "error", werr)
	}
}

// Shutdown stops the retry worker after one final attempt for every queued
// event, then closes the dead-letter file.
func (rp *ResilientPublisher) Shutdown(ctx context.Context) error {
	rp.closeOnce.Do(func() { close(rp.shutdown) })

	done := make(chan struct{})
	go func() {
		rp.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return rp.deadLetter.Close()
	case <-ctx.Done():
		slog.Default().Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
