package apitests

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/myexample/reft-contract-tests/framework"
	"github.com/myexample/reft-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/require"
)

// T represents a test or subtest in the contract test suite.
//
// It implements the same basic functionality as Go's testing.T, so it can be passed to the
// assert and require packages, and adds methods for talking to the service under test. Those
// methods have assertions built in: if the service cannot be reached, or answers with something
// other than a successful response, the test fails and exits immediately with a message saying
// which part of the contract was broken.
type T struct {
	context *framework.Context
	harness *framework.TestHarness
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, harness: t.harness})
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// RequirePing checks that the service answers the ping endpoint with the JSON string "Pong",
// and nothing else.
func (t *T) RequirePing() {
	resp, err := t.harness.Get(servicedef.PathPing, t.context.DebugLogger())
	require.NoError(t, err, "ping failed; is the service running?")
	t.Debug("elapsed time: %s", resp.Elapsed)
	require.True(t, resp.IsSuccessStatus(),
		"ping returned status code %d; is the service running?", resp.StatusCode)

	var body ldvalue.Value
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		require.Fail(t, "ping response is not valid JSON; is the service running?", "body: %s", string(resp.Body))
	}
	if body.Type() != ldvalue.StringType || body.StringValue() != servicedef.PingResponse {
		require.Fail(t, "ping did not return \"Pong\"; is the service running?", "got: %s", body.JSONString())
	}
}

// RequireTrain sends a training request, which must succeed.
func (t *T) RequireTrain(params servicedef.TrainRequest) servicedef.APIResponse {
	require.NoError(t, params.Validate(), "test tried to send a malformed train request")
	return t.requireSuccess(servicedef.PathTrain, params)
}

// RequireInference sends an inference request, which must succeed.
func (t *T) RequireInference(params servicedef.InferenceRequest) servicedef.APIResponse {
	require.NoError(t, params.Validate(), "test tried to send a malformed inference request")
	return t.requireSuccess(servicedef.PathInference, params)
}

func (t *T) requireSuccess(path string, params interface{}) servicedef.APIResponse {
	resp, err := t.harness.PostJSON(path, params, t.context.DebugLogger())
	var reqErr framework.ServiceRequestError
	if errors.As(err, &reqErr) {
		require.Fail(t, "request failed; service may not be running", "%s", err)
	}
	require.NoError(t, err)
	t.Debug("elapsed time: %s", resp.Elapsed)
	t.Debug("response body:\n%s", prettyJSON(resp.Body))

	require.Equal(t, 200, resp.StatusCode, "status code is not 200")

	parsed := ldvalue.Parse(resp.Body)
	if parsed.Type() != ldvalue.ObjectType {
		require.Fail(t, "response body is not a JSON object", "body: %s", string(resp.Body))
	}
	body := servicedef.APIResponseFromValue(parsed)
	if !body.IsSuccess() {
		require.Fail(t, "response msg is not success", "msg was: %s", parsed.GetByKey("msg").JSONString())
	}
	return body
}

// prettyJSON indents a JSON document, writing non-ASCII characters as themselves even if the
// service escaped them. Object keys come out sorted. Anything that isn't valid JSON is returned
// as-is.
func prettyJSON(data []byte) string {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return string(data)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(value); err != nil {
		return string(data)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
