// Package framework contains the low-level implementation of test harness infrastructure
// that does not depend on what the service under test does.
//
// The general model is:
//
// 1. The test harness talks to the service under test over HTTP. TestHarness knows the
// service's base URL, applies the request timeout, and measures each round trip.
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. Tests run one at a time, in the order they are declared, because
// the service under test is stateful.
//
// The domain-specific code that knows what is being tested is responsible for building
// requests, deciding what a correct response looks like, and providing a test API on top of
// the test context.
package framework
