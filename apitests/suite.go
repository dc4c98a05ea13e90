package apitests

import (
	"github.com/myexample/reft-contract-tests/framework"
)

// RunTestSuite runs every contract test against the service, one at a time.
//
// The order matters: training changes the state of the service, so the inference tests see
// the model produced by the training tests. Running two suites against the same service at
// the same time is not supported.
func RunTestSuite(
	harness *framework.TestHarness,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := &T{context: c, harness: harness}

		t.Run("ping", DoPingTests)
		t.Run("train", DoTrainTests)
		t.Run("inference", DoInferenceTests)
	})
}
