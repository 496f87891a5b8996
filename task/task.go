// Package task runs barcode renders off the caller's goroutine and delivers
// each result exactly once, to a listener and to a Task handle.
//
// Work is never cancelled: a caller that loses interest stops waiting and
// discards the result.
package task

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"

	"github.com/ericlevine/barcodegen"
)

// ErrPoolClosed is returned by Submit after Close.
var ErrPoolClosed = errors.New("task: pool closed")

// Renderer is the synchronous pipeline a Pool drives.
type Renderer interface {
	Generate(payload string, code barcodegen.FormatCode, width, height int) barcodegen.Result
}

// Request is one render job.
type Request struct {
	Payload string
	Format  barcodegen.FormatCode
	Width   int
	Height  int
}

// Listener receives the rendered buffer, or nil on failure. It is called
// once, on a worker goroutine.
type Listener func(*barcodegen.PixelBuffer)

// Task is the handle of a submitted request.
type Task struct {
	Request Request

	done        chan struct{}
	result      barcodegen.Result
	listenerErr error
}

func newTask(req Request) *Task {
	return &Task{Request: req, done: make(chan struct{})}
}

// Done is closed once the result is available and the listener has returned.
func (t *Task) Done() <-chan struct{} { return t.done }

// Result returns the outcome. It must only be called after Done is closed.
func (t *Task) Result() barcodegen.Result { return t.result }

// ListenerErr returns the panic raised by the listener, if any, as an error.
// It must only be called after Done is closed.
func (t *Task) ListenerErr() error { return t.listenerErr }

// Wait blocks until the task completes or ctx is done. A cancelled context
// abandons the wait only; the render still runs to completion.
func (t *Task) Wait(ctx context.Context) (barcodegen.Result, error) {
	select {
	case <-t.done:
		return t.result, nil
	case <-ctx.Done():
		return barcodegen.Result{}, ctx.Err()
	}
}

func (t *Task) run(r Renderer, l Listener, m *metrics, logger *log.Logger) {
	defer close(t.done)

	start := time.Now()
	m.start()
	var pc panics.Catcher
	pc.Try(func() {
		t.result = r.Generate(t.Request.Payload, t.Request.Format, t.Request.Width, t.Request.Height)
	})
	if rec := pc.Recovered(); rec != nil {
		t.result = barcodegen.Result{Err: fmt.Errorf("%w: renderer panicked: %v", barcodegen.ErrEncoderInternal, rec.Value)}
	}
	m.finish(t.Request.Format, t.result, time.Since(start))

	if l == nil {
		return
	}
	var lc panics.Catcher
	lc.Try(func() { l(t.result.Pixels) })
	if rec := lc.Recovered(); rec != nil {
		t.listenerErr = rec.AsError()
		logger.Error("listener panicked", "format", t.Request.Format, "err", t.listenerErr)
	}
}

type queued struct {
	task     *Task
	listener Listener
}

// Pool runs requests on a bounded set of worker goroutines. Submit never
// waits for a worker, so listeners may submit follow-up requests.
type Pool struct {
	renderer Renderer
	metrics  *metrics
	logger   *log.Logger
	workers  *pool.Pool

	mu     sync.Mutex
	closed bool
	queue  []queued

	wake     chan struct{}
	drained  chan struct{}
	finished chan struct{}
}

// Option configures a Pool.
type Option func(*poolConfig)

type poolConfig struct {
	workers int
	metrics *metrics
	logger  *log.Logger
}

// WithWorkers bounds the number of concurrent renders. Values below 1 use
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *poolConfig) { c.workers = n }
}

// WithLogger sets the logger that receives listener panics.
func WithLogger(l *log.Logger) Option {
	return func(c *poolConfig) { c.logger = l }
}

// NewPool creates a Pool rendering with r.
func NewPool(r Renderer, opts ...Option) *Pool {
	cfg := poolConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workers < 1 {
		cfg.workers = runtime.GOMAXPROCS(0)
	}
	if cfg.logger == nil {
		cfg.logger = discardLogger()
	}
	p := &Pool{
		renderer: r,
		metrics:  cfg.metrics,
		logger:   cfg.logger,
		workers:  pool.New().WithMaxGoroutines(cfg.workers),
		wake:     make(chan struct{}, 1),
		drained:  make(chan struct{}),
		finished: make(chan struct{}),
	}
	go p.dispatch()
	return p
}

// Submit queues req and returns immediately. The listener may be nil.
func (p *Pool) Submit(req Request, l Listener) (*Task, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrPoolClosed
	}
	t := newTask(req)
	p.queue = append(p.queue, queued{task: t, listener: l})
	p.signal()
	return t, nil
}

func (p *Pool) signal() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// dispatch hands queued tasks to the workers until the pool is closed and
// the queue is empty.
func (p *Pool) dispatch() {
	defer close(p.drained)
	for {
		p.mu.Lock()
		batch, closed := p.queue, p.closed
		p.queue = nil
		p.mu.Unlock()

		if len(batch) == 0 {
			if closed {
				return
			}
			<-p.wake
			continue
		}
		for _, q := range batch {
			p.workers.Go(func() { q.task.run(p.renderer, q.listener, p.metrics, p.logger) })
		}
	}
}

// Close stops accepting requests and waits for the queued and running ones.
// Requests submitted by listeners before Close are still run.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		<-p.finished
		return
	}
	p.closed = true
	p.signal()
	p.mu.Unlock()

	<-p.drained
	p.workers.Wait()
	close(p.finished)
}

// RenderAsync renders req on a new goroutine and calls l with the result.
func RenderAsync(r Renderer, req Request, l Listener) *Task {
	t := newTask(req)
	go t.run(r, l, nil, discardLogger())
	return t
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
