// Package mockservice is an in-process stand-in for the training/inference service. It follows
// the same HTTP contract, keeps just enough state to report what it was asked to do, and can be
// told to misbehave so that the contract tests themselves can be tested.
package mockservice

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/myexample/reft-contract-tests/servicedef"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	codeSuccess    = 0
	codeBadRequest = 1

	defaultEpochs = 10
)

// Stats counts the requests the service has accepted.
type Stats struct {
	CustomTrainingRuns int
	FullTrainingRuns   int
	TrainedPairs       int
	Inferences         map[string]int // keyed by model: a model directory, "original", or "default"
}

// Option changes how the service behaves.
type Option func(*Service)

// WithLogger sets the logger for incoming requests. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithForcedStatus makes the train and inference endpoints answer with the given HTTP status.
// The body is still a normal success envelope.
func WithForcedStatus(status int) Option {
	return func(s *Service) { s.forcedStatus = status }
}

// WithForcedMsg makes the train and inference endpoints answer with the given msg value
// instead of "success", with a 200 status.
func WithForcedMsg(msg string) Option {
	return func(s *Service) { s.forcedMsg = msg }
}

// WithPingBody replaces the JSON body returned by the ping endpoint.
func WithPingBody(body ldvalue.Value) Option {
	return func(s *Service) { s.pingBody = body }
}

// Service is the mock training/inference service. It is safe for concurrent use.
type Service struct {
	logger       zerolog.Logger
	forcedStatus int
	forcedMsg    string
	pingBody     ldvalue.Value
	stats        Stats
	lock         sync.Mutex
}

func New(opts ...Option) *Service {
	s := &Service{
		logger:   zerolog.Nop(),
		pingBody: ldvalue.String(servicedef.PingResponse),
		stats:    Stats{Inferences: make(map[string]int)},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler returns the HTTP handler that implements the service's endpoints.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)
	r.Get(servicedef.PathPing, s.handlePing)
	r.Post(servicedef.PathTrain, s.handleTrain)
	r.Post(servicedef.PathInference, s.handleInference)
	return r
}

// Stats returns a snapshot of what the service has done so far.
func (s *Service) Stats() Stats {
	s.lock.Lock()
	defer s.lock.Unlock()
	ret := s.stats
	ret.Inferences = make(map[string]int, len(s.stats.Inferences))
	for k, v := range s.stats.Inferences {
		ret.Inferences[k] = v
	}
	return ret
}

func (s *Service) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("request")
		next.ServeHTTP(w, r)
	})
}

func (s *Service) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.pingBody)
}

func (s *Service) handleTrain(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readObject(w, r)
	if !ok {
		return
	}
	trainAll := body.GetByKey("train_all")
	trainData := body.GetByKey("train_data")

	switch {
	case !trainAll.IsNull() && !trainData.IsNull():
		s.reject(w, "train_data and train_all are mutually exclusive")
		return
	case !trainAll.IsNull():
		if !trainAll.BoolValue() || trainAll.Type() != ldvalue.BoolType {
			s.reject(w, "train_all must be true")
			return
		}
		s.lock.Lock()
		s.stats.FullTrainingRuns++
		s.lock.Unlock()
		s.logger.Info().Msg("training on all data")
	case !trainData.IsNull():
		pairs, err := trainingPairsOf(trainData)
		if err != nil {
			s.reject(w, err.Error())
			return
		}
		s.lock.Lock()
		s.stats.CustomTrainingRuns++
		s.stats.TrainedPairs += pairs
		s.lock.Unlock()
		s.logger.Info().Int("pairs", pairs).Msg("training on custom data")
	default:
		s.reject(w, "request needs train_data or train_all")
		return
	}

	// The real service reports the epoch count, the final loss, and the trainer's metrics.
	loss := 2.688475799560547
	s.respond(w, ldvalue.ArrayOf(
		ldvalue.Int(defaultEpochs),
		ldvalue.Float64(loss),
		ldvalue.ObjectBuild().
			Set("epoch", ldvalue.Float64(defaultEpochs)).
			Set("total_flos", ldvalue.Float64(0)).
			Set("train_loss", ldvalue.Float64(loss)).
			Build(),
	))
}

func (s *Service) handleInference(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readObject(w, r)
	if !ok {
		return
	}
	instruction := body.GetByKey("instruction")
	if instruction.Type() != ldvalue.StringType || instruction.StringValue() == "" {
		s.reject(w, "instruction must be a non-empty string")
		return
	}
	modelDir := body.GetByKey("specify_model_dir").StringValue()
	original := body.GetByKey("original_model").BoolValue()

	model := "default"
	switch {
	case modelDir != "" && original:
		s.reject(w, "specify_model_dir and original_model are mutually exclusive")
		return
	case modelDir != "":
		model = modelDir
	case original:
		model = "original"
	}

	s.lock.Lock()
	s.stats.Inferences[model]++
	s.lock.Unlock()
	s.logger.Info().Str("model", model).Msg("inference")

	s.respond(w, ldvalue.ObjectBuild().
		Set("model", ldvalue.String(model)).
		Set("instruction", instruction).
		Set("output", ldvalue.String(fmt.Sprintf("answer from %s model", model))).
		Build())
}

func (s *Service) readObject(w http.ResponseWriter, r *http.Request) (ldvalue.Value, bool) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		s.reject(w, fmt.Sprintf("can't read request body: %s", err))
		return ldvalue.Null(), false
	}
	var body ldvalue.Value
	if err := json.Unmarshal(data, &body); err != nil || body.Type() != ldvalue.ObjectType {
		s.reject(w, "request body must be a JSON object")
		return ldvalue.Null(), false
	}
	return body, true
}

func trainingPairsOf(value ldvalue.Value) (int, error) {
	if value.Type() != ldvalue.ArrayType || value.Count() == 0 {
		return 0, fmt.Errorf("train_data must be a non-empty array")
	}
	for i := 0; i < value.Count(); i++ {
		pair := value.GetByIndex(i)
		if pair.Type() != ldvalue.ArrayType || pair.Count() != 2 ||
			pair.GetByIndex(0).Type() != ldvalue.StringType || pair.GetByIndex(1).Type() != ldvalue.StringType {
			return 0, fmt.Errorf("train_data[%d] must be a pair of strings", i)
		}
	}
	return value.Count(), nil
}

func (s *Service) respond(w http.ResponseWriter, data ldvalue.Value) {
	status := http.StatusOK
	if s.forcedStatus != 0 {
		status = s.forcedStatus
	}
	msg := servicedef.MsgSuccess
	if s.forcedMsg != "" {
		msg = s.forcedMsg
	}
	writeJSON(w, status, servicedef.APIResponse{Code: ldvalue.Int(codeSuccess), Data: data, Msg: msg})
}

func (s *Service) reject(w http.ResponseWriter, reason string) {
	s.logger.Warn().Str("reason", reason).Msg("rejected request")
	writeJSON(w, http.StatusBadRequest, servicedef.APIResponse{Code: ldvalue.Int(codeBadRequest), Data: ldvalue.Null(), Msg: reason})
}

func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
