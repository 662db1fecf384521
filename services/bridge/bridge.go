// Package bridge connects byte streams to a servo controller on hosted
// builds. Blocking reads happen in goroutines; the controller is only ever
// touched from Serve.
package bridge

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"servoctl-go/services/servo"
)

// -----------------------------------------------------------------------------
// Run loop
// -----------------------------------------------------------------------------

// Chunk is a block of bytes read from the stream feeding In.
type Chunk struct {
	In *servo.Input
	P  []byte
}

// Serve is the controller's run loop. Chunks are fed in arrival order and
// Poll runs on every tick. On cancellation the controller is shut down.
func Serve(ctx context.Context, c *servo.Controller, clk clock.Clock, tick time.Duration, chunks <-chan Chunk) error {
	t := clk.Ticker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return c.Shutdown()
		case k := <-chunks:
			k.In.Feed(k.P)
		case <-t.C:
			c.Poll()
		}
	}
}

// Pump reads r until EOF or ctx is done and forwards what it reads.
func Pump(ctx context.Context, r io.Reader, in *servo.Input, out chan<- Chunk) error {
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			p := append([]byte(nil), buf[:n]...)
			select {
			case out <- Chunk{In: in, P: p}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// -----------------------------------------------------------------------------
// Remote link
// -----------------------------------------------------------------------------

// Transport opens the remote stream.
type Transport interface {
	Open(ctx context.Context) (io.ReadWriteCloser, error)
	String() string
}

// ErrLinkDown is returned by Link.Write while no stream is open.
var ErrLinkDown = errors.New("bridge: link down")

// Link keeps a remote stream open, redialling with backoff when it drops.
// It is a notifier sink: writes go to the current stream or are dropped.
type Link struct {
	tr  Transport
	log *zap.SugaredLogger

	mu     sync.Mutex
	rwc    io.ReadWriteCloser
	level  string
	status string

	minBackoff, maxBackoff time.Duration
}

func NewLink(tr Transport, log *zap.SugaredLogger) *Link {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Link{
		tr:         tr,
		log:        log.Named("link"),
		level:      "idle",
		status:     "not_started",
		minBackoff: 250 * time.Millisecond,
		maxBackoff: 5 * time.Second,
	}
}

// State returns the last reported level ("idle", "up", "degraded",
// "error") and status.
func (l *Link) State() (level, status string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level, l.status
}

func (l *Link) Write(p []byte) (int, error) {
	l.mu.Lock()
	rwc := l.rwc
	l.mu.Unlock()
	if rwc == nil {
		return 0, ErrLinkDown
	}
	return rwc.Write(p)
}

// Run supervises the link until ctx is done, forwarding reads as chunks
// for in.
func (l *Link) Run(ctx context.Context, in *servo.Input, out chan<- Chunk) {
	backoff := backoffSeq(l.minBackoff, l.maxBackoff)
	for {
		if ctx.Err() != nil {
			l.setState("idle", "stopped", nil)
			return
		}
		rwc, err := l.tr.Open(ctx)
		if err != nil {
			delay := backoff()
			l.setState("degraded", "dial_failed_retrying", err, "retry_in", delay)
			if !sleep(ctx, delay) {
				l.setState("idle", "stopped", nil)
				return
			}
			continue
		}

		l.attach(rwc)
		l.setState("up", "link_established", nil, "transport", l.tr.String())
		err = l.handle(ctx, rwc, in, out)
		l.detach()
		_ = rwc.Close()
		if ctx.Err() != nil {
			l.setState("idle", "stopped", nil)
			return
		}
		backoff = backoffSeq(l.minBackoff, l.maxBackoff)
		delay := backoff()
		l.setState("degraded", "link_lost_retrying", err, "retry_in", delay)
		if !sleep(ctx, delay) {
			l.setState("idle", "stopped", nil)
			return
		}
	}
}

// handle owns one open stream. Closing it on cancellation unblocks Pump.
func (l *Link) handle(ctx context.Context, rwc io.ReadWriteCloser, in *servo.Input, out chan<- Chunk) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = rwc.Close()
		case <-done:
		}
	}()
	err := Pump(ctx, rwc, in, out)
	if err == nil {
		err = io.EOF
	}
	return err
}

func (l *Link) attach(rwc io.ReadWriteCloser) {
	l.mu.Lock()
	l.rwc = rwc
	l.mu.Unlock()
}

func (l *Link) detach() {
	l.mu.Lock()
	l.rwc = nil
	l.mu.Unlock()
}

func (l *Link) setState(level, status string, err error, kv ...any) {
	l.mu.Lock()
	l.level, l.status = level, status
	l.mu.Unlock()

	kv = append(kv, "level", level)
	switch {
	case err != nil:
		l.log.Warnw(status, append(kv, "error", err)...)
	default:
		l.log.Infow(status, kv...)
	}
}

// -----------------------------------------------------------------------------
// Utilities
// -----------------------------------------------------------------------------

func backoffSeq(min, max time.Duration) func() time.Duration {
	if min <= 0 {
		min = 100 * time.Millisecond
	}
	if max < min {
		max = min
	}
	cur := min
	return func() time.Duration {
		d := cur
		cur *= 2
		if cur > max {
			cur = max
		}
		return d
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
