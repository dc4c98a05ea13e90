package framework

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSONSendsBodyAndContentType(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(
		httphelpers.HandlerWithJSONResponse(map[string]string{"msg": "success"}, nil))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		h := NewTestHarness(server.URL+"/", time.Second*5, nil)

		resp, err := h.PostJSON("/api/train", map[string]bool{"train_all": true}, nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.True(t, resp.IsSuccessStatus())
		assert.JSONEq(t, `{"msg":"success"}`, string(resp.Body))

		r := <-requestsCh
		assert.Equal(t, "POST", r.Request.Method)
		assert.Equal(t, "/api/train", r.Request.URL.Path)
		assert.Equal(t, "application/json", r.Request.Header.Get("Content-Type"))
		assert.JSONEq(t, `{"train_all":true}`, string(r.Body))
	})
}

func TestGetReturnsNonSuccessStatusWithoutError(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(503), func(server *httptest.Server) {
		h := NewTestHarness(server.URL, 0, nil)
		resp, err := h.Get("/ping", nil)
		require.NoError(t, err)
		assert.Equal(t, 503, resp.StatusCode)
		assert.False(t, resp.IsSuccessStatus())
	})
}

func TestConnectionFailureIsServiceRequestError(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	url := server.URL
	server.Close()

	h := NewTestHarness(url, time.Second, nil)
	_, err := h.Get("/ping", nil)
	require.Error(t, err)
	var reqErr ServiceRequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, "GET", reqErr.Method)
	assert.Equal(t, url+"/ping", reqErr.URL)
}

func TestRequestTimeoutIsApplied(t *testing.T) {
	release := make(chan struct{})
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	httphelpers.WithServer(slow, func(server *httptest.Server) {
		defer close(release)
		h := NewTestHarness(server.URL, time.Millisecond*50, nil)
		assert.Equal(t, time.Millisecond*50, h.RequestTimeout())
		_, err := h.Get("/ping", nil)
		assert.Error(t, err)
	})
}

func TestRequestsAreLoggedToGivenLogger(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(200), func(server *httptest.Server) {
		h := NewTestHarness(server.URL, time.Second, nil)
		var logger CapturingLogger
		_, err := h.PostJSON("/x", []int{1}, &logger)
		require.NoError(t, err)
		out := logger.Output()
		require.Len(t, out, 2)
		assert.Contains(t, out[0].Message, "POST "+server.URL+"/x with body: [1]")
		assert.Contains(t, out[1].Message, "Got status 200")
	})
}

func TestAwaitService(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(404), func(server *httptest.Server) {
		var out bytes.Buffer
		h := NewTestHarness(server.URL, time.Second, nil)
		require.NoError(t, h.AwaitService("/ping", time.Second, &out))
		assert.Contains(t, out.String(), "Connecting to service at "+server.URL+"/ping")
	})

	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	url := server.URL
	server.Close()
	var out bytes.Buffer
	h := NewTestHarness(url, time.Millisecond*100, nil)
	assert.Error(t, h.AwaitService("/ping", time.Millisecond*200, &out))
}

func TestCapturedOutputDumpIndentsContinuationLines(t *testing.T) {
	stamp := time.Date(2024, 1, 2, 3, 4, 5, 6000000, time.UTC)
	out := CapturedOutput{
		{Time: stamp, Message: "one"},
		{Time: stamp, Message: "{\n  \"msg\": \"success\"\n}"},
	}
	var buf bytes.Buffer
	out.Dump(&buf, "  ")
	assert.Equal(t,
		"  [2024-01-02 03:04:05.006] one\n"+
			"  [2024-01-02 03:04:05.006] {\n"+
			"                              \"msg\": \"success\"\n"+
			"                            }\n",
		buf.String())
}
