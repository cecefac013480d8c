// Package server exposes the analyzer over a line-oriented wire protocol.
//
// One request is: the logical file path terminated by a newline, the
// decimal byte count of the payload terminated by a newline, then exactly
// that many bytes of source. The response is one diagnostic text line per
// finding followed by a single blank line; a clean file produces only the
// blank line. A connection may carry further sequential requests.
package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"

	"flint/internal/diag"
	"flint/internal/driver"
)

// ErrBadHeader indicates a malformed request header; the connection is
// terminated without affecting others.
var ErrBadHeader = errors.New("malformed request header")

// maxPayload bounds a single request body. Anything larger is a protocol
// error, not an analysis candidate.
const maxPayload = 64 << 20

// Server serves analysis requests. The driver options (hook registry,
// target version) are fixed at construction and shared read-only between
// connections; each request gets a private analysis run.
type Server struct {
	opts *driver.Options

	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

func New(opts *driver.Options) *Server {
	return &Server{
		opts:  opts,
		conns: make(map[net.Conn]struct{}),
	}
}

// Serve accepts connections until the listener closes or ctx is canceled.
// Each accepted connection is served on its own goroutine.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		ln.Close()
		s.closeAll()
	}()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		s.track(conn)
		go func() {
			defer s.untrack(conn)
			defer conn.Close()
			s.ServeConn(conn)
		}()
	}
}

func (s *Server) track(conn net.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		conn.Close()
	}
}

// ServeConn handles sequential requests on one connection. The next
// request is not read until the previous response, including its
// terminating blank line, has been fully written.
func (s *Server) ServeConn(conn io.ReadWriter) error {
	r := bufio.NewReader(conn)
	w := bufio.NewWriter(conn)
	for {
		path, payload, err := readRequest(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		res := driver.AnalyzeSource(path, string(payload), s.opts)
		if res.Bag != nil {
			for _, d := range res.Bag.Items() {
				if _, err := w.WriteString(diag.FormatLine(path, d) + "\n"); err != nil {
					return err
				}
			}
		}
		if _, err := w.WriteString("\n"); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
}

func readRequest(r *bufio.Reader) (string, []byte, error) {
	path, err := r.ReadString('\n')
	if err != nil {
		return "", nil, err
	}
	path = strings.TrimRight(path, "\r\n")

	countLine, err := r.ReadString('\n')
	if err != nil {
		// premature disconnect between header lines
		return "", nil, fmt.Errorf("%w: missing byte count", ErrBadHeader)
	}
	countLine = strings.TrimSpace(countLine)
	count, err := strconv.Atoi(countLine)
	if err != nil || count < 0 || count > maxPayload {
		return "", nil, fmt.Errorf("%w: bad byte count %q", ErrBadHeader, countLine)
	}

	payload := make([]byte, count)
	if _, err := io.ReadFull(r, payload); err != nil {
		return "", nil, fmt.Errorf("%w: truncated payload", ErrBadHeader)
	}
	return path, payload, nil
}
