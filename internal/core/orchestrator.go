package core

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/sharma-sugurthi/HealthAI/pkg"
)

// Input length limits.  Oversized input is rejected before any context or
// model work.
const (
	maxMessageLength   = 5000
	maxSymptomLength   = 2000
	maxConditionLength = 200
)

// Degraded-service messages.  Raw failures never reach the patient.
const (
	unavailableMessage      = "Unable to process your request at this time. Please try again later."
	chatErrorMessage        = "I apologize, but I encountered an error. Please try again or consult a healthcare provider."
	symptomErrorMessage     = "Unable to analyze symptoms. Please consult a healthcare provider."
	treatmentErrorMessage   = "Unable to generate plan. Please consult a healthcare provider."
	errorFlag               = "Error occurred"
	emergencyFlag           = "EMERGENCY_DETECTED"
	symptomMessagePrefix    = "Symptom Analysis: "
	treatmentMessagePrefix  = "Treatment Plan Request: "
)

// Budgets holds the per-task completion-call parameters.  Symptom analysis
// and treatment plans get larger token budgets than free-form chat because
// their templates demand longer structured responses.
type Budgets struct {
	ChatMaxTokens      int
	SymptomMaxTokens   int
	TreatmentMaxTokens int
	Temperature        float32
}

// DefaultBudgets mirrors the hosted deployment's settings.
func DefaultBudgets() Budgets {
	return Budgets{
		ChatMaxTokens:      1500,
		SymptomMaxTokens:   2000,
		TreatmentMaxTokens: 2500,
		Temperature:        0.7,
	}
}

// ChatResult is the outcome of one chat turn.
type ChatResult struct {
	Message      string             `json:"message"`
	Response     string             `json:"response"`
	SafetyFlags  []string           `json:"safety_flags"`
	HasEmergency bool               `json:"has_emergency"`
	ContextUsed  bool               `json:"context_used"`
	Severity     pkg.SafetySeverity `json:"severity"`
}

// SymptomAnalysisResult is the outcome of one symptom-analysis request.
type SymptomAnalysisResult struct {
	Symptoms     string   `json:"symptoms"`
	Analysis     string   `json:"analysis"`
	SafetyFlags  []string `json:"safety_flags"`
	HasEmergency bool     `json:"has_emergency"`
}

// TreatmentPlanResult is the outcome of one treatment-plan request.
type TreatmentPlanResult struct {
	Condition     string   `json:"condition"`
	TreatmentPlan string   `json:"treatment_plan"`
	SafetyFlags   []string `json:"safety_flags"`
	Personalized  bool     `json:"personalized"`
}

// Assistant sequences the pipeline for each task type: emergency screen,
// context aggregation, prompt composition, the external completion call,
// output safety screening, finalization, and persistence.  Each request is
// processed synchronously; no state outlives the request except the
// append-only conversation log.
type Assistant struct {
	store      MedicalStore
	llm        Completer
	aggregator *Aggregator
	composer   *Composer
	classifier *Classifier
	finalizer  *Finalizer
	budgets    Budgets
	log        *zap.Logger
}

// NewAssistant wires the pipeline.  All collaborators are injected; there is
// no ambient global state.
func NewAssistant(store MedicalStore, llm Completer, budgets Budgets, log *zap.Logger) *Assistant {
	return &Assistant{
		store:      store,
		llm:        llm,
		aggregator: NewAggregator(store, log),
		composer:   NewComposer(),
		classifier: NewClassifier(log),
		finalizer:  NewFinalizer(),
		budgets:    budgets,
		log:        log,
	}
}

// HandleChat runs one free-form chat turn.  Emergency language in the input
// short-circuits to the canned emergency path; model or storage failures
// degrade to a generic message with the error flag, never an exception.
func (a *Assistant) HandleChat(ctx context.Context, patientID int64, message string) (*ChatResult, error) {
	message, err := validateInput("message", message, maxMessageLength)
	if err != nil {
		return nil, err
	}

	if a.classifier.DetectEmergency(message) {
		return a.emergencyChatResult(ctx, patientID, message), nil
	}

	pc := a.aggregator.BuildContext(ctx, patientID)
	systemPrompt := a.composer.SystemPrompt(pc)

	raw, err := a.llm.Complete(ctx, systemPrompt, message, a.budgets.ChatMaxTokens, a.budgets.Temperature)
	if err != nil {
		return &ChatResult{
			Message:      message,
			Response:     a.degradedMessage(err, chatErrorMessage),
			SafetyFlags:  []string{errorFlag},
			HasEmergency: false,
			ContextUsed:  false,
			Severity:     pkg.SafetyLow,
		}, nil
	}

	safety := a.classifier.CheckResponse(raw, pc)
	final := a.finalizer.Finalize(raw, safety, TaskChat)

	if _, err := a.store.AppendExchange(ctx, patientID, message, final); err != nil {
		a.log.Error("failed to persist exchange", zap.Int64("patient_id", patientID), zap.Error(err))
		return &ChatResult{
			Message:      message,
			Response:     chatErrorMessage,
			SafetyFlags:  []string{errorFlag},
			HasEmergency: false,
			ContextUsed:  false,
			Severity:     pkg.SafetyLow,
		}, nil
	}

	a.log.Info("chat turn completed",
		zap.Int64("patient_id", patientID),
		zap.Int("flags", len(safety.Flags)),
		zap.String("severity", string(safety.Severity)))

	return &ChatResult{
		Message:      message,
		Response:     final,
		SafetyFlags:  safety.Flags,
		HasEmergency: false,
		ContextUsed:  true,
		Severity:     safety.Severity,
	}, nil
}

// AnalyzeSymptoms runs a comprehensive symptom analysis against the
// patient's history.  Emergency symptoms short-circuit like chat.
func (a *Assistant) AnalyzeSymptoms(ctx context.Context, patientID int64, symptoms string) (*SymptomAnalysisResult, error) {
	symptoms, err := validateInput("symptoms", symptoms, maxSymptomLength)
	if err != nil {
		return nil, err
	}

	if a.classifier.DetectEmergency(symptoms) {
		chat := a.emergencyChatResult(ctx, patientID, symptoms)
		return &SymptomAnalysisResult{
			Symptoms:     symptoms,
			Analysis:     chat.Response,
			SafetyFlags:  chat.SafetyFlags,
			HasEmergency: true,
		}, nil
	}

	pc := a.aggregator.BuildContext(ctx, patientID)
	systemPrompt := a.composer.SystemPrompt(pc)
	analysisPrompt := a.composer.SymptomAnalysisPrompt(symptoms, pc)

	raw, err := a.llm.Complete(ctx, systemPrompt, analysisPrompt, a.budgets.SymptomMaxTokens, a.budgets.Temperature)
	if err != nil {
		return &SymptomAnalysisResult{
			Symptoms:     symptoms,
			Analysis:     a.degradedMessage(err, symptomErrorMessage),
			SafetyFlags:  []string{errorFlag},
			HasEmergency: false,
		}, nil
	}

	safety := a.classifier.CheckResponse(raw, pc)
	final := a.finalizer.Finalize(raw, safety, TaskSymptomAnalysis)

	if _, err := a.store.AppendExchange(ctx, patientID, symptomMessagePrefix+symptoms, final); err != nil {
		a.log.Error("failed to persist symptom analysis", zap.Int64("patient_id", patientID), zap.Error(err))
		return &SymptomAnalysisResult{
			Symptoms:     symptoms,
			Analysis:     symptomErrorMessage,
			SafetyFlags:  []string{errorFlag},
			HasEmergency: false,
		}, nil
	}

	return &SymptomAnalysisResult{
		Symptoms:     symptoms,
		Analysis:     final,
		SafetyFlags:  safety.Flags,
		HasEmergency: false,
	}, nil
}

// GenerateTreatmentPlan produces a personalized treatment and wellness plan
// for the named condition.  The treatment path carries the medication
// disclaimer in addition to the general one.
func (a *Assistant) GenerateTreatmentPlan(ctx context.Context, patientID int64, condition string) (*TreatmentPlanResult, error) {
	condition, err := validateInput("condition", condition, maxConditionLength)
	if err != nil {
		return nil, err
	}

	pc := a.aggregator.BuildContext(ctx, patientID)
	systemPrompt := a.composer.SystemPrompt(pc)
	planPrompt := a.composer.TreatmentPlanPrompt(condition, pc)

	raw, err := a.llm.Complete(ctx, systemPrompt, planPrompt, a.budgets.TreatmentMaxTokens, a.budgets.Temperature)
	if err != nil {
		return &TreatmentPlanResult{
			Condition:     condition,
			TreatmentPlan: a.degradedMessage(err, treatmentErrorMessage),
			SafetyFlags:   []string{errorFlag},
			Personalized:  false,
		}, nil
	}

	safety := a.classifier.CheckResponse(raw, pc)
	final := a.finalizer.Finalize(raw, safety, TaskTreatmentPlan)

	if _, err := a.store.AppendExchange(ctx, patientID, treatmentMessagePrefix+condition, final); err != nil {
		a.log.Error("failed to persist treatment plan", zap.Int64("patient_id", patientID), zap.Error(err))
		return &TreatmentPlanResult{
			Condition:     condition,
			TreatmentPlan: treatmentErrorMessage,
			SafetyFlags:   []string{errorFlag},
			Personalized:  false,
		}, nil
	}

	return &TreatmentPlanResult{
		Condition:     condition,
		TreatmentPlan: final,
		SafetyFlags:   safety.Flags,
		Personalized:  true,
	}, nil
}

// emergencyChatResult skips context aggregation and the model call entirely,
// records the exchange with the emergency flag, and returns the canned
// message.  A persistence failure here is logged but does not change the
// response: the patient still gets the emergency guidance.
func (a *Assistant) emergencyChatResult(ctx context.Context, patientID int64, message string) *ChatResult {
	response := a.composer.EmergencyResponse()
	if _, err := a.store.AppendExchange(ctx, patientID, message, response); err != nil {
		a.log.Error("failed to persist emergency exchange", zap.Int64("patient_id", patientID), zap.Error(err))
	}
	return &ChatResult{
		Message:      message,
		Response:     response,
		SafetyFlags:  []string{emergencyFlag},
		HasEmergency: true,
		ContextUsed:  false,
		Severity:     pkg.SafetyHigh,
	}
}

// degradedMessage maps a completion failure to the user-facing text: a fixed
// unavailable notice after exhausted retries, otherwise the task's generic
// error message.
func (a *Assistant) degradedMessage(err error, fallback string) string {
	a.log.Error("completion call failed", zap.Error(err))
	if errors.Is(err, pkg.ErrServiceUnavailable) {
		return unavailableMessage
	}
	return fallback
}

func validateInput(field, value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", pkg.Validatef(field, "must not be empty")
	}
	if len(value) > max {
		return "", pkg.Validatef(field, "exceeds maximum length of %d characters", max)
	}
	return value, nil
}
