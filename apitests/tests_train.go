package apitests

import (
	"github.com/myexample/reft-contract-tests/servicedef"
)

var sampleTrainingPairs = []servicedef.TrainingPair{
	servicedef.NewTrainingPair("Who am I?", "👤❓🔍🌟"),
	servicedef.NewTrainingPair("What's 2+2? And provide some details?", "🔢➕🔢➡️🍀"),
}

func DoTrainTests(t *T) {
	t.Run("custom data", func(t *T) {
		t.RequireTrain(servicedef.TrainOnPairs(sampleTrainingPairs...))
	})

	t.Run("all data", func(t *T) {
		t.RequireTrain(servicedef.TrainOnAllData())
	})

	// There is no deletion endpoint in the service's contract. This sends the same request as
	// "custom data"; it is kept so results stay comparable with earlier runs of the suite.
	t.Run("delete training data", func(t *T) {
		t.RequireTrain(servicedef.TrainOnPairs(sampleTrainingPairs...))
	})
}
