package framework

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ServiceResponse is a complete response from the service under test.
type ServiceResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Elapsed    time.Duration
}

// IsSuccessStatus is true for any 2xx status.
func (r ServiceResponse) IsSuccessStatus() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ServiceRequestError means the request did not produce an HTTP response at all: the service
// could not be reached, the connection broke, or the request timed out.
type ServiceRequestError struct {
	Method string
	URL    string
	Err    error
}

func (e ServiceRequestError) Error() string {
	return fmt.Sprintf("%s request to %s failed: %s", e.Method, e.URL, e.Err)
}

func (e ServiceRequestError) Unwrap() error {
	return e.Err
}

// Get sends a GET request to the given path of the service.
func (h *TestHarness) Get(path string, logger Logger) (ServiceResponse, error) {
	return h.do("GET", path, nil, logger)
}

// PostJSON sends a POST request to the given path of the service, with params serialized by
// json.Marshal as the body.
func (h *TestHarness) PostJSON(path string, params interface{}, logger Logger) (ServiceResponse, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return ServiceResponse{}, err
	}
	return h.do("POST", path, data, logger)
}

func (h *TestHarness) do(method, path string, body []byte, logger Logger) (ServiceResponse, error) {
	if logger == nil {
		logger = h.logger
	}
	url := h.serviceBaseURL + path

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return ServiceResponse{}, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		logger.Printf("%s %s with body: %s", method, url, string(body))
	} else {
		logger.Printf("%s %s", method, url)
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		return ServiceResponse{}, ServiceRequestError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	if err != nil {
		return ServiceResponse{}, ServiceRequestError{Method: method, URL: url,
			Err: fmt.Errorf("error reading response body: %w", err)}
	}
	logger.Printf("Got status %d after %s", resp.StatusCode, elapsed)

	return ServiceResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		Elapsed:    elapsed,
	}, nil
}
