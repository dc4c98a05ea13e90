package framework

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const awaitServicePollInterval = time.Millisecond * 100

// TestHarness sends requests to the service under test on behalf of the tests.
type TestHarness struct {
	serviceBaseURL string
	client         *http.Client
	logger         Logger
}

// NewTestHarness creates a TestHarness for the service at the given base URL. Every request
// made through it is bounded by requestTimeout; zero means requests can wait indefinitely.
//
// Unlike a status query at startup, this does not contact the service, so that a service that
// is down shows up as a failed test rather than as a harness error.
func NewTestHarness(
	serviceBaseURL string,
	requestTimeout time.Duration,
	debugLogger Logger,
) *TestHarness {
	if debugLogger == nil {
		debugLogger = NullLogger()
	}
	return &TestHarness{
		serviceBaseURL: strings.TrimSuffix(serviceBaseURL, "/"),
		client:         &http.Client{Timeout: requestTimeout},
		logger:         debugLogger,
	}
}

func (h *TestHarness) ServiceBaseURL() string {
	return h.serviceBaseURL
}

func (h *TestHarness) RequestTimeout() time.Duration {
	return h.client.Timeout
}

// AwaitService polls the given path until the service responds with any HTTP status, or until
// the timeout elapses. Progress dots are written to output.
func (h *TestHarness) AwaitService(path string, timeout time.Duration, output io.Writer) error {
	url := h.serviceBaseURL + path
	fmt.Fprintf(output, "Connecting to service at %s", url)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := h.client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			fmt.Fprintln(output)
			h.logger.Printf("Service answered %s with status %d", url, resp.StatusCode)
			return nil
		}
		h.logger.Printf("Service not reachable yet: %s", err)
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("timed out waiting for service, result of last query was: %w", err)
		}
		time.Sleep(awaitServicePollInterval)
	}
}
