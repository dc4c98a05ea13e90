package apitests

import (
	"github.com/myexample/reft-contract-tests/servicedef"
)

const (
	sampleInstruction = "who are you?"
	sampleModelDir    = "mind"
)

func DoInferenceTests(t *T) {
	t.Run("specified model", func(t *T) {
		t.RequireInference(servicedef.InferenceRequest{
			Instruction:     sampleInstruction,
			SpecifyModelDir: sampleModelDir,
		})
	})

	t.Run("original model", func(t *T) {
		t.RequireInference(servicedef.InferenceRequest{
			Instruction:   sampleInstruction,
			OriginalModel: true,
		})
	})
}
