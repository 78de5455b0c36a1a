package logging

import (
	"errors"
	"net"
	"strings"
	"sync"
	"time"
)

// LogstashWriter ships newline-delimited JSON log lines to a Logstash TCP
// input. Writes are queued and sent from a single goroutine; when the queue
// is full or Logstash is unreachable the line is dropped, so logging never
// blocks a request.
type LogstashWriter struct {
	addr          string
	dialTimeout   time.Duration
	writeTimeout  time.Duration
	retryInterval time.Duration

	lines chan []byte
	done  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup

	conn      net.Conn
	nextRetry time.Time
	dial      func(network, addr string, timeout time.Duration) (net.Conn, error)
}

// Option configures a LogstashWriter.
type Option func(*LogstashWriter)

// WithDialTimeout overrides the TCP dial timeout. Defaults to 2 seconds.
func WithDialTimeout(d time.Duration) Option {
	return func(w *LogstashWriter) { w.dialTimeout = d }
}

// WithWriteTimeout overrides the per-line write deadline. Defaults to 1 second.
func WithWriteTimeout(d time.Duration) Option {
	return func(w *LogstashWriter) { w.writeTimeout = d }
}

// WithRetryInterval sets the cool-down after a failed connect or write.
// Defaults to 5 seconds.
func WithRetryInterval(d time.Duration) Option {
	return func(w *LogstashWriter) { w.retryInterval = d }
}

// WithQueueSize sets how many lines may wait for the sender before new ones
// are dropped. Defaults to 1024.
func WithQueueSize(n int) Option {
	return func(w *LogstashWriter) {
		if n > 0 {
			w.lines = make(chan []byte, n)
		}
	}
}

// NewLogstashWriter starts the sender goroutine for addr. The returned writer
// is safe for concurrent use; call Close to flush and stop it.
func NewLogstashWriter(addr string, opts ...Option) (*LogstashWriter, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("logstash: empty address")
	}

	w := &LogstashWriter{
		addr:          addr,
		dialTimeout:   2 * time.Second,
		writeTimeout:  time.Second,
		retryInterval: 5 * time.Second,
		lines:         make(chan []byte, 1024),
		done:          make(chan struct{}),
		dial:          net.DialTimeout,
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Write implements io.Writer for zerolog. It always reports success.
func (w *LogstashWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	line := make([]byte, len(p), len(p)+1)
	copy(line, p)
	if line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}

	select {
	case <-w.done:
	case w.lines <- line:
	default:
	}
	return len(p), nil
}

// Close stops the sender after flushing what is already queued.
func (w *LogstashWriter) Close() error {
	w.once.Do(func() { close(w.done) })
	w.wg.Wait()
	return nil
}

func (w *LogstashWriter) run() {
	defer w.wg.Done()
	defer w.closeConn()

	for {
		select {
		case line := <-w.lines:
			w.send(line)
		case <-w.done:
			for {
				select {
				case line := <-w.lines:
					w.send(line)
				default:
					return
				}
			}
		}
	}
}

func (w *LogstashWriter) send(line []byte) {
	if err := w.ensureConn(); err != nil {
		return
	}
	if w.writeTimeout > 0 {
		_ = w.conn.SetWriteDeadline(time.Now().Add(w.writeTimeout))
	}
	if _, err := w.conn.Write(line); err != nil {
		w.closeConn()
		w.nextRetry = time.Now().Add(w.retryInterval)
	}
}

func (w *LogstashWriter) ensureConn() error {
	if w.conn != nil {
		return nil
	}
	if !w.nextRetry.IsZero() && time.Now().Before(w.nextRetry) {
		return errRetryCooldown
	}
	conn, err := w.dial("tcp", w.addr, w.dialTimeout)
	if err != nil {
		w.nextRetry = time.Now().Add(w.retryInterval)
		return err
	}
	w.conn = conn
	w.nextRetry = time.Time{}
	return nil
}

func (w *LogstashWriter) closeConn() {
	if w.conn == nil {
		return
	}
	_ = w.conn.Close()
	w.conn = nil
}

var errRetryCooldown = errors.New("logstash: retry cooldown in effect")
