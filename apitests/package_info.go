// Package apitests contains the contract tests for the training/inference service and their
// supporting API.
//
// Infrastructure that is not specific to this service, such as running named tests and
// sending HTTP requests, is in the lower-level framework package.
package apitests
