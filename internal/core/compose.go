package core

import (
	"fmt"
	"strings"

	"github.com/sharma-sugurthi/HealthAI/pkg"
)

// TaskType selects which instruction template the composer renders.
type TaskType string

const (
	TaskChat             TaskType = "chat"
	TaskSymptomAnalysis  TaskType = "symptom_analysis"
	TaskTreatmentPlan    TaskType = "treatment_plan"
	TaskFollowUp         TaskType = "follow_up"
	TaskMedicationSafety TaskType = "medication_safety"
)

// Composer renders structured patient context into model-ready instruction
// text.  It is a pure templating function: no network or storage access, and
// the same context always yields byte-identical output.
type Composer struct{}

// NewComposer constructs a Composer.
func NewComposer() *Composer { return &Composer{} }

// SystemPrompt fills the Dr. HealthAI system instruction with the complete
// patient context.
func (c *Composer) SystemPrompt(pc *pkg.PatientContext) string {
	return contextReplacer(pc).Replace(systemPromptTemplate)
}

// SymptomAnalysisPrompt renders the symptom-analysis task for the given
// symptom description.
func (c *Composer) SymptomAnalysisPrompt(symptoms string, pc *pkg.PatientContext) string {
	r := strings.NewReplacer(append(contextPairs(pc), "{symptoms}", symptoms)...)
	return r.Replace(symptomAnalysisTemplate)
}

// TreatmentPlanPrompt renders the treatment-plan task for the given condition.
func (c *Composer) TreatmentPlanPrompt(condition string, pc *pkg.PatientContext) string {
	r := strings.NewReplacer(append(contextPairs(pc), "{condition}", condition)...)
	return r.Replace(treatmentPlanTemplate)
}

// FollowUpPrompt renders a follow-up turn with a summary of the most recent
// exchanges, or a first-conversation marker when there are none.
func (c *Composer) FollowUpPrompt(currentMessage string, pc *pkg.PatientContext) string {
	r := strings.NewReplacer(append(contextPairs(pc),
		"{previous_conversation_summary}", summarizeConversations(pc.ConversationContext),
		"{current_message}", currentMessage,
	)...)
	return r.Replace(followUpTemplate)
}

// MedicationSafetyPrompt renders the medication-question safety protocol.
func (c *Composer) MedicationSafetyPrompt(pc *pkg.PatientContext) string {
	return contextReplacer(pc).Replace(medicationSafetyTemplate)
}

// EmergencyResponse returns the fixed emergency-path message.
func (c *Composer) EmergencyResponse() string {
	return emergencyResponse
}

func contextReplacer(pc *pkg.PatientContext) *strings.Replacer {
	return strings.NewReplacer(contextPairs(pc)...)
}

// contextPairs builds the placeholder/value list shared by all templates.
func contextPairs(pc *pkg.PatientContext) []string {
	age := "Unknown"
	if pc.Age != nil {
		age = fmt.Sprintf("%d", *pc.Age)
	}
	gender := "Unknown"
	if pc.Gender != nil && *pc.Gender != "" {
		gender = *pc.Gender
	}
	return []string{
		"{age}", age,
		"{gender}", gender,
		"{medical_history}", FormatMedicalHistory(pc.MedicalHistory),
		"{current_medications}", FormatMedications(pc.CurrentMedications),
		"{allergies}", FormatAllergies(pc.Allergies),
		"{recent_symptoms}", FormatRecentSymptoms(pc.RecentSymptoms, symptomSummaryLimit),
		"{conversation_context}", FormatConversationContext(pc.ConversationContext),
	}
}

// summarizeConversations joins the last few exchanges into short blocks for
// the follow-up template.
func summarizeConversations(exchanges []pkg.Exchange) string {
	if len(exchanges) == 0 {
		return firstConversation
	}
	if len(exchanges) > followUpSummaryWindow {
		exchanges = exchanges[:followUpSummaryWindow]
	}
	blocks := make([]string, 0, len(exchanges))
	for _, e := range exchanges {
		blocks = append(blocks, fmt.Sprintf("Patient: %s...\nDr. HealthAI: %s...",
			truncate(e.Message, summaryMessageMax), truncate(e.Response, summaryResponseMax)))
	}
	return strings.Join(blocks, "\n\n")
}
