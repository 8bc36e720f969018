package testutil

import (
	"context"
	"net/http"
	"sync"

	"github.com/preston-bernstein/sports-page-service/internal/aggregate"
	"github.com/preston-bernstein/sports-page-service/internal/poller"
)

// StubPoller records lifecycle calls and returns canned refresh results.
type StubPoller struct {
	mu           sync.Mutex
	StartCalls   int
	StopCalls    int
	RefreshCalls int
	Err          error
	RefreshPage  aggregate.Page
	RefreshErr   error
	StatusVal    poller.Status
}

func (p *StubPoller) Start(context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.StartCalls++
}

func (p *StubPoller) Stop(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.StopCalls++
	return p.Err
}

func (p *StubPoller) RefreshNow(context.Context) (aggregate.Page, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.RefreshCalls++
	return p.RefreshPage, p.RefreshErr
}

func (p *StubPoller) Status() poller.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.StatusVal
}

// Calls reports start, stop and refresh counts.
func (p *StubPoller) Calls() (starts, stops, refreshes int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.StartCalls, p.StopCalls, p.RefreshCalls
}

// Refreshes reports how many times RefreshNow ran.
func (p *StubPoller) Refreshes() int {
	_, _, n := p.Calls()
	return n
}

// StubHTTPServer stands in for the server's HTTP listener. ListenAndServe returns ListenErr
// at once; use http.ErrServerClosed for a clean exit. When Unblock is set, Shutdown waits for
// it to close or for ctx to end.
type StubHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	Unblock     chan struct{}

	mu        sync.Mutex
	listens   int
	shutdowns int
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.mu.Lock()
	s.listens++
	s.mu.Unlock()
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.shutdowns++
	s.mu.Unlock()
	if s.Unblock != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.Unblock:
		}
	}
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NewServeMux()
	}
	return s.HandlerVal
}

// Listens reports how many times ListenAndServe ran.
func (s *StubHTTPServer) Listens() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listens
}

// Shutdowns reports how many times Shutdown ran.
func (s *StubHTTPServer) Shutdowns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdowns
}
