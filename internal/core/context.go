package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sharma-sugurthi/HealthAI/pkg"
)

// Aggregation limits.  Symptoms are considered recent within the lookback
// window; narrative summaries show fewer entries than the context payload.
const (
	symptomLookbackDays    = 30
	symptomContextLimit    = 10
	symptomSummaryLimit    = 5
	conversationLimit      = 5
	reactionSummaryMax     = 50
	symptomDescriptionMax  = 100
	contextResponseMax     = 200
	summaryMessageMax      = 100
	summaryResponseMax     = 150
	followUpSummaryWindow  = 3
)

// Empty-state phrases.  Formatters must return these, never an empty string,
// so prompts read naturally when a patient has no data on file.
const (
	noMedicalHistory  = "No significant medical history reported"
	noMedications     = "No current medications reported"
	noAllergies       = "No known allergies"
	noRecentSymptoms  = "No recent symptoms logged"
	firstConversation = "First conversation with patient"
)

// Aggregator gathers a patient's medical facts from storage and assembles the
// per-request PatientContext.  It never fails the caller: an unavailable
// sub-source degrades that field to empty, and a missing patient yields a
// fully-empty context.
type Aggregator struct {
	store MedicalStore
	log   *zap.Logger
}

// NewAggregator constructs an Aggregator.
func NewAggregator(store MedicalStore, log *zap.Logger) *Aggregator {
	return &Aggregator{store: store, log: log}
}

// BuildContext compiles the complete context for one patient.  All slice
// fields are non-nil on return.
func (a *Aggregator) BuildContext(ctx context.Context, patientID int64) *pkg.PatientContext {
	pc := emptyContext()

	patient, err := a.store.GetPatient(ctx, patientID)
	if err != nil {
		if !errors.Is(err, pkg.ErrNotFound) {
			a.log.Warn("patient lookup failed", zap.Int64("patient_id", patientID), zap.Error(err))
		}
		return pc
	}
	pc.PatientID = patientID
	pc.Age = patient.Age
	pc.Gender = patient.Gender
	pc.FullName = patient.FullName

	if conditions, err := a.store.GetActiveConditions(ctx, patientID); err != nil {
		a.log.Warn("conditions unavailable", zap.Int64("patient_id", patientID), zap.Error(err))
	} else if conditions != nil {
		pc.MedicalHistory = conditions
	}
	if meds, err := a.store.GetActiveMedications(ctx, patientID); err != nil {
		a.log.Warn("medications unavailable", zap.Int64("patient_id", patientID), zap.Error(err))
	} else if meds != nil {
		pc.CurrentMedications = meds
	}
	if allergies, err := a.store.GetAllergies(ctx, patientID); err != nil {
		a.log.Warn("allergies unavailable", zap.Int64("patient_id", patientID), zap.Error(err))
	} else if allergies != nil {
		pc.Allergies = allergies
	}
	if symptoms, err := a.store.GetRecentSymptoms(ctx, patientID, symptomLookbackDays); err != nil {
		a.log.Warn("symptoms unavailable", zap.Int64("patient_id", patientID), zap.Error(err))
	} else if symptoms != nil {
		if len(symptoms) > symptomContextLimit {
			symptoms = symptoms[:symptomContextLimit]
		}
		pc.RecentSymptoms = symptoms
	}
	if exchanges, err := a.store.GetRecentExchanges(ctx, patientID, conversationLimit); err != nil {
		a.log.Warn("conversation history unavailable", zap.Int64("patient_id", patientID), zap.Error(err))
	} else if exchanges != nil {
		for i := range exchanges {
			exchanges[i].Response = truncate(exchanges[i].Response, contextResponseMax)
		}
		pc.ConversationContext = exchanges
	}

	return pc
}

// HasCriticalAllergies reports whether the patient has any severe or
// life-threatening allergy on record.
func (a *Aggregator) HasCriticalAllergies(ctx context.Context, patientID int64) (bool, error) {
	severe, err := a.store.GetSevereAllergies(ctx, patientID)
	if err != nil {
		return false, err
	}
	return len(severe) > 0, nil
}

// AllergyWarnings returns one warning line per critical allergy.
func (a *Aggregator) AllergyWarnings(ctx context.Context, patientID int64) ([]string, error) {
	severe, err := a.store.GetSevereAllergies(ctx, patientID)
	if err != nil {
		return nil, err
	}
	warnings := make([]string, 0, len(severe))
	for _, al := range severe {
		warnings = append(warnings, fmt.Sprintf("SEVERE ALLERGY: %s - %s", al.Allergen, al.Reaction))
	}
	return warnings, nil
}

func emptyContext() *pkg.PatientContext {
	return &pkg.PatientContext{
		MedicalHistory:      []pkg.Condition{},
		CurrentMedications:  []pkg.Medication{},
		Allergies:           []pkg.Allergy{},
		RecentSymptoms:      []pkg.SymptomEntry{},
		ConversationContext: []pkg.Exchange{},
	}
}

// FormatMedicalHistory renders conditions one per line for prompts.
func FormatMedicalHistory(conditions []pkg.Condition) string {
	if len(conditions) == 0 {
		return noMedicalHistory
	}
	lines := make([]string, 0, len(conditions))
	for _, c := range conditions {
		line := fmt.Sprintf("- %s (%s)", c.Name, c.Status)
		if c.Severity != nil {
			line += fmt.Sprintf(" (%s)", *c.Severity)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// FormatMedications renders active medications one per line, omitting blank
// dosage/frequency fields.
func FormatMedications(medications []pkg.Medication) string {
	if len(medications) == 0 {
		return noMedications
	}
	lines := make([]string, 0, len(medications))
	for _, m := range medications {
		lines = append(lines, strings.TrimSpace(fmt.Sprintf("- %s %s %s", m.Name, m.Dosage, m.Frequency)))
	}
	return strings.Join(lines, "\n")
}

// FormatAllergies renders allergies with severity and a truncated reaction.
// The full reaction text stays on the Allergy value for safety cross-checks.
func FormatAllergies(allergies []pkg.Allergy) string {
	if len(allergies) == 0 {
		return noAllergies
	}
	lines := make([]string, 0, len(allergies))
	for _, a := range allergies {
		lines = append(lines, strings.TrimSpace(fmt.Sprintf("- %s (%s): %s",
			a.Allergen, a.Severity, truncate(a.Reaction, reactionSummaryMax))))
	}
	return strings.Join(lines, "\n")
}

// FormatRecentSymptoms renders up to limit symptom entries, newest first.
func FormatRecentSymptoms(symptoms []pkg.SymptomEntry, limit int) string {
	if len(symptoms) == 0 {
		return noRecentSymptoms
	}
	if limit > 0 && len(symptoms) > limit {
		symptoms = symptoms[:limit]
	}
	lines := make([]string, 0, len(symptoms))
	for _, s := range symptoms {
		line := fmt.Sprintf("- %s: %s", s.LoggedAt.Format("2006-01-02"), truncate(s.Description, symptomDescriptionMax))
		if s.Severity != nil {
			line += fmt.Sprintf(" (severity: %d/10)", *s.Severity)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// FormatConversationContext renders recent exchanges as short
// patient/assistant blocks for the system prompt.
func FormatConversationContext(exchanges []pkg.Exchange) string {
	if len(exchanges) == 0 {
		return firstConversation
	}
	blocks := make([]string, 0, len(exchanges))
	for _, e := range exchanges {
		blocks = append(blocks, fmt.Sprintf("Patient: %s\nDr. HealthAI: %s...\n",
			truncate(e.Message, summaryMessageMax), truncate(e.Response, summaryResponseMax)))
	}
	return strings.Join(blocks, "\n")
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	// Back up to a rune boundary so multi-byte text is never split.
	cut := max
	for cut > 0 && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut]
}
