package servicedef

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func TestTrainRequestShapes(t *testing.T) {
	data, err := json.Marshal(TrainOnPairs(NewTrainingPair("Who am I?", "👤❓🔍🌟")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"train_data":[["Who am I?","👤❓🔍🌟"]]}`, string(data))

	data, err = json.Marshal(TrainOnAllData())
	require.NoError(t, err)
	assert.JSONEq(t, `{"train_all":true}`, string(data))
}

func TestTrainRequestValidate(t *testing.T) {
	assert.NoError(t, TrainOnAllData().Validate())
	assert.NoError(t, TrainOnPairs(NewTrainingPair("a", "b")).Validate())
	assert.Error(t, TrainRequest{}.Validate())
	assert.Error(t, TrainRequest{TrainAll: true, TrainData: []TrainingPair{{"a", "b"}}}.Validate())
}

func TestInferenceRequestShapes(t *testing.T) {
	for _, p := range []struct {
		req      InferenceRequest
		expected string
	}{
		{InferenceRequest{Instruction: "who are you?", SpecifyModelDir: "mind"},
			`{"instruction":"who are you?","specify_model_dir":"mind"}`},
		{InferenceRequest{Instruction: "who are you?", OriginalModel: true},
			`{"instruction":"who are you?","original_model":true}`},
		{InferenceRequest{Instruction: "who are you?"},
			`{"instruction":"who are you?"}`},
	} {
		data, err := json.Marshal(p.req)
		require.NoError(t, err)
		assert.JSONEq(t, p.expected, string(data))
		assert.NoError(t, p.req.Validate())
	}
}

func TestInferenceRequestValidate(t *testing.T) {
	assert.Error(t, InferenceRequest{}.Validate())
	assert.Error(t, InferenceRequest{Instruction: "x", SpecifyModelDir: "mind", OriginalModel: true}.Validate())
}

func TestAPIResponseDecoding(t *testing.T) {
	var r APIResponse
	require.NoError(t, json.Unmarshal([]byte(`{"code":0,"data":[10,2.5,{"epoch":10.0}],"msg":"success"}`), &r))
	assert.True(t, r.IsSuccess())
	assert.Equal(t, ldvalue.ArrayType, r.Data.Type())
	assert.Equal(t, 3, r.Data.Count())

	require.NoError(t, json.Unmarshal([]byte(`{"code":1,"data":null,"msg":"failed"}`), &r))
	assert.False(t, r.IsSuccess())
}

func TestAPIResponseFromValueIgnoresFieldTypes(t *testing.T) {
	r := APIResponseFromValue(ldvalue.Parse([]byte(`{"code":"0","data":{"x":1},"msg":"success"}`)))
	assert.True(t, r.IsSuccess())
	assert.Equal(t, ldvalue.String("0"), r.Code)
	assert.Equal(t, ldvalue.ObjectType, r.Data.Type())

	r = APIResponseFromValue(ldvalue.Parse([]byte(`{"code":0.5,"msg":"success"}`)))
	assert.True(t, r.IsSuccess())
	assert.True(t, r.Data.IsNull())

	r = APIResponseFromValue(ldvalue.Parse([]byte(`{"code":0,"msg":1}`)))
	assert.False(t, r.IsSuccess())
	assert.Equal(t, "", r.Msg)
}
