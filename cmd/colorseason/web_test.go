package main

import (
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGracefulShutdown_WaitsForRunningRequests(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	svr := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		w.WriteHeader(http.StatusOK)
	})}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = svr.Serve(ln) }()

	status := make(chan int, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/analyze")
		if err != nil {
			status <- 0
			return
		}
		_ = resp.Body.Close()
		status <- resp.StatusCode
	}()
	<-started

	done := make(chan error, 1)
	go func() { done <- gracefulShutdown(svr, func() int { return 1 }) }()

	select {
	case <-done:
		t.Fatal("shutdown returned while a request was still running")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	assert.NoError(t, <-done)
	assert.Equal(t, http.StatusOK, <-status)
}
