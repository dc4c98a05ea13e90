// Package servicedef defines the HTTP contract of the training/inference service: endpoint
// paths and the JSON shapes of requests and responses.
package servicedef

import (
	"errors"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	PathPing      = "/ping"
	PathTrain     = "/api/train"
	PathInference = "/api/inference"

	// PingResponse is the JSON string literal returned by PathPing.
	PingResponse = "Pong"

	// MsgSuccess is the value of APIResponse.Msg for a successful call.
	MsgSuccess = "success"
)

// TrainingPair is a single training example, serialized as a two-element JSON array of
// prompt and expected response.
type TrainingPair [2]string

// NewTrainingPair is a convenience constructor.
func NewTrainingPair(prompt, response string) TrainingPair {
	return TrainingPair{prompt, response}
}

// TrainRequest is the body of a PathTrain request. Exactly one of TrainData or TrainAll
// must be set; the service decides what to do based on which key is present.
type TrainRequest struct {
	TrainData []TrainingPair `json:"train_data,omitempty"`
	TrainAll  bool           `json:"train_all,omitempty"`
}

// TrainOnPairs builds a request that trains on the given examples, in order.
func TrainOnPairs(pairs ...TrainingPair) TrainRequest {
	return TrainRequest{TrainData: pairs}
}

// TrainOnAllData builds a request that tells the service to train on its own full dataset.
func TrainOnAllData() TrainRequest {
	return TrainRequest{TrainAll: true}
}

func (r TrainRequest) Validate() error {
	switch {
	case r.TrainAll && len(r.TrainData) != 0:
		return errors.New("train_data and train_all are mutually exclusive")
	case !r.TrainAll && len(r.TrainData) == 0:
		return errors.New("train request needs either train_data or train_all")
	}
	return nil
}

// InferenceRequest is the body of a PathInference request. At most one of SpecifyModelDir
// and OriginalModel may be set; if neither is, the service uses its default trained model.
type InferenceRequest struct {
	Instruction     string `json:"instruction"`
	SpecifyModelDir string `json:"specify_model_dir,omitempty"`
	OriginalModel   bool   `json:"original_model,omitempty"`
}

func (r InferenceRequest) Validate() error {
	if r.Instruction == "" {
		return errors.New("inference request needs an instruction")
	}
	if r.SpecifyModelDir != "" && r.OriginalModel {
		return errors.New("specify_model_dir and original_model are mutually exclusive")
	}
	return nil
}

// APIResponse is the envelope returned by every endpoint except PathPing. The shapes of Code
// and Data are not part of the contract; only Msg decides success.
type APIResponse struct {
	Code ldvalue.Value `json:"code"`
	Data ldvalue.Value `json:"data"`
	Msg  string        `json:"msg"`
}

// APIResponseFromValue reads the envelope fields from a parsed JSON object without requiring
// any field to have a particular type. A msg that is not a string is treated as empty.
func APIResponseFromValue(v ldvalue.Value) APIResponse {
	return APIResponse{
		Code: v.GetByKey("code"),
		Data: v.GetByKey("data"),
		Msg:  v.GetByKey("msg").StringValue(),
	}
}

func (r APIResponse) IsSuccess() bool {
	return r.Msg == MsgSuccess
}
