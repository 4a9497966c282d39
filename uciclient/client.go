// Package uciclient wraps a child UCI engine process as an asynchronous,
// line-buffered duplex channel. Callers that care about a particular reply
// register predicate waiters; passive telemetry sinks register observers
// that see every line.
package uciclient

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrEngineTimeout = errors.New("engine timeout")
	ErrEngineClosed  = errors.New("engine closed")
	ErrCanceled      = errors.New("request canceled")
)

type waitResult struct {
	line string
	err  error
}

type waiter struct {
	pred      func(string) bool
	requestID string
	result    chan waitResult
	timer     *time.Timer
}

// PendingWait is a registered waiter handle; Await blocks until the waiter
// is resolved by a matching line, a timeout, cancellation, or engine death.
type PendingWait struct {
	result chan waitResult
}

func (w *PendingWait) Await() (string, error) {
	var r = <-w.result
	return r.line, r.err
}

// Client owns one child process and its stdio pipes. A single reader
// goroutine drains stdout: each trimmed, non-empty line is fanned out to
// every observer and then resolves the first waiter (in FIFO order) whose
// predicate matches.
type Client struct {
	name  string
	cmd   *exec.Cmd
	stdin io.WriteCloser
	log   zerolog.Logger

	mu        sync.Mutex
	waiters   []*waiter
	observers map[int]func(string)
	nextObs   int
	closed    bool
}

// Start launches the engine binary at path and begins reading its output.
func Start(name, path string, log zerolog.Logger) (*Client, error) {
	var cmd = exec.Command(path)
	var stdin, err = cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("uciclient %v: stdin: %w", name, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("uciclient %v: stdout: %w", name, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("uciclient %v: start %v: %w", name, path, err)
	}
	var c = &Client{
		name:      name,
		cmd:       cmd,
		stdin:     stdin,
		log:       log.With().Str("engine", name).Logger(),
		observers: make(map[int]func(string)),
	}
	go c.readLoop(stdout)
	return c, nil
}

func (c *Client) readLoop(stdout io.Reader) {
	var scanner = bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var line = strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		c.dispatch(line)
	}
	c.log.Warn().Msg("engine stream closed")
	c.shutdown()
	_ = c.cmd.Wait()
}

func (c *Client) dispatch(line string) {
	c.mu.Lock()
	var observers = make([]func(string), 0, len(c.observers))
	for _, fn := range c.observers {
		observers = append(observers, fn)
	}
	var matched *waiter
	for i, w := range c.waiters {
		if w.pred(line) {
			matched = w
			c.waiters = append(c.waiters[:i], c.waiters[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	for _, fn := range observers {
		fn(line)
	}
	if matched != nil {
		matched.resolve(waitResult{line: line})
	}
}

func (w *waiter) resolve(r waitResult) {
	if w.timer != nil {
		w.timer.Stop()
	}
	select {
	case w.result <- r:
	default:
	}
}

// shutdown fails every pending waiter and refuses new work.
func (c *Client) shutdown() {
	c.mu.Lock()
	c.closed = true
	var pending = c.waiters
	c.waiters = nil
	c.mu.Unlock()
	for _, w := range pending {
		w.resolve(waitResult{err: ErrEngineClosed})
	}
}

// Send writes one command line to the engine's stdin.
func (c *Client) Send(line string) error {
	c.mu.Lock()
	var closed = c.closed
	c.mu.Unlock()
	if closed {
		return ErrEngineClosed
	}
	c.log.Debug().Str("dir", "send").Msg(line)
	if _, err := io.WriteString(c.stdin, line+"\n"); err != nil {
		return fmt.Errorf("uciclient %v: send: %w", c.name, err)
	}
	return nil
}

// Expect registers a waiter resolved by the first future line matching
// pred, failing with ErrEngineTimeout after timeout. requestID tags the
// waiter for CancelRequest. Register before sending the command whose reply
// is awaited.
func (c *Client) Expect(pred func(string) bool, requestID string, timeout time.Duration) *PendingWait {
	var w = &waiter{
		pred:      pred,
		requestID: requestID,
		result:    make(chan waitResult, 1),
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		w.resolve(waitResult{err: ErrEngineClosed})
		return &PendingWait{result: w.result}
	}
	c.waiters = append(c.waiters, w)
	c.mu.Unlock()

	w.timer = time.AfterFunc(timeout, func() {
		if c.remove(w) {
			w.resolve(waitResult{err: ErrEngineTimeout})
		}
	})
	return &PendingWait{result: w.result}
}

// ExpectPrefix is Expect for the common starts-with predicate.
func (c *Client) ExpectPrefix(prefix, requestID string, timeout time.Duration) *PendingWait {
	return c.Expect(func(line string) bool {
		return strings.HasPrefix(line, prefix)
	}, requestID, timeout)
}

func (c *Client) remove(target *waiter) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, w := range c.waiters {
		if w == target {
			c.waiters = append(c.waiters[:i], c.waiters[i+1:]...)
			return true
		}
	}
	return false
}

// CancelRequest fails and removes every waiter tagged with requestID, used
// to clean up after a finished or failed request.
func (c *Client) CancelRequest(requestID string) {
	if requestID == "" {
		return
	}
	c.mu.Lock()
	var canceled []*waiter
	var kept = c.waiters[:0]
	for _, w := range c.waiters {
		if w.requestID == requestID {
			canceled = append(canceled, w)
		} else {
			kept = append(kept, w)
		}
	}
	c.waiters = kept
	c.mu.Unlock()
	for _, w := range canceled {
		w.resolve(waitResult{err: ErrCanceled})
	}
}

// Observe registers a fan-out callback invoked on every incoming line, on
// the reader goroutine. The returned function removes it.
func (c *Client) Observe(fn func(string)) (cancel func()) {
	c.mu.Lock()
	var id = c.nextObs
	c.nextObs++
	c.observers[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

// Alive reports whether the engine's output stream is still open.
func (c *Client) Alive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

// Close asks the engine to quit and releases the stdin pipe. The reader
// loop reaps the process when its stdout closes.
func (c *Client) Close() error {
	_ = c.Send("quit")
	return c.stdin.Close()
}
