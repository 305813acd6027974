package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vkgram/vkgram/internal/pipeline"
)

type stubRunner struct {
	calls int
	err   error
}

func (r *stubRunner) Run(_ context.Context) (*pipeline.Stats, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return &pipeline.Stats{Fetched: 1, Delivered: 1}, nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestTriggerRunsPipeline(t *testing.T) {
	runner := &stubRunner{}
	router := New(runner, newTestLogger())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, runner.calls)
}

func TestTriggerAcknowledgesFailures(t *testing.T) {
	runner := &stubRunner{err: errors.New("vk down")}
	router := New(runner, newTestLogger())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	// The caller always gets an empty success; failures live in logs.
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFaviconDoesNotTriggerRun(t *testing.T) {
	runner := &stubRunner{}
	router := New(runner, newTestLogger())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, runner.calls)
}
