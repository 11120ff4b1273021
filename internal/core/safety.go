package core

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/sharma-sugurthi/HealthAI/pkg"
)

// safety.go holds the rule tables and the classifier that screens user input
// for emergencies and AI output for unsafe content.  The tables are plain
// data so they can be unit-tested and extended without touching control flow.

// emergencyKeywords trigger the short-circuited emergency path on any
// case-insensitive substring match.  The matching is deliberately naive and
// over-triggers on negations ("not having chest pain" still matches); the
// false-positive direction is the safe one for medical content.
var emergencyKeywords = []string{
	"chest pain",
	"difficulty breathing",
	"severe bleeding",
	"loss of consciousness",
	"severe headache",
	"stroke symptoms",
	"heart attack",
	"suicidal",
	"severe allergic reaction",
	"anaphylaxis",
	"seizure",
	"severe abdominal pain",
	"coughing blood",
	"sudden vision loss",
	"severe burns",
	"poisoning",
	"overdose",
}

// prescriptionPatterns match dosing instructions the assistant must never
// give.  Any hit flags the response and escalates severity to high.
var prescriptionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)take \d+\s*mg`),
	regexp.MustCompile(`(?i)prescribe \w+`),
	regexp.MustCompile(`(?i)dosage of \d+`),
	regexp.MustCompile(`(?i)start taking \w+`),
	regexp.MustCompile(`(?i)\d+\s*mg\s+of\s+\w+`),
	regexp.MustCompile(`(?i)you should take \w+`),
}

// treatmentKeywords mark a response as treatment-related for the medication
// interaction reminder.
var treatmentKeywords = []string{"treatment", "medication", "drug", "medicine"}

// seriousKeywords mark a response as needing an emergency-care disclaimer.
var seriousKeywords = []string{"severe", "serious", "emergency", "urgent", "immediate", "critical"}

// Flag text constants.  The finalizer keys on allergyAlertPrefix to position
// alert blocks ahead of the response body.
const (
	flagPrescription = "Response contains medication prescription language"
	flagInteraction  = "Response should remind patient to discuss with doctor about current medications"
	flagDisclaimer   = "Response should include emergency care disclaimer"

	allergyAlertPrefix = "ALLERGY ALERT"
)

// Classifier runs the pattern-based safety checks.  Both entry points are
// pure functions of their text inputs; the logger only records what fired.
type Classifier struct {
	log *zap.Logger
}

// NewClassifier constructs a Classifier.
func NewClassifier(log *zap.Logger) *Classifier {
	return &Classifier{log: log}
}

// DetectEmergency reports whether the text mentions any emergency symptom.
// The first match short-circuits.
func (c *Classifier) DetectEmergency(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range emergencyKeywords {
		if strings.Contains(lower, kw) {
			c.log.Warn("emergency keyword detected", zap.String("keyword", kw))
			return true
		}
	}
	return false
}

// CheckResponse screens an AI response against the patient's context.  It
// runs four independent sub-checks and merges the findings; severity only
// escalates within one evaluation.
func (c *Classifier) CheckResponse(response string, pc *pkg.PatientContext) pkg.SafetyResult {
	var flags []string
	severity := pkg.SafetyLow

	var prescription, allergy, interaction, disclaimer bool

	if c.checkPrescriptionLanguage(response) {
		prescription = true
		flags = append(flags, flagPrescription)
		severity = severity.Escalate(pkg.SafetyHigh)
	}

	if conflicts := c.checkAllergyConflicts(response, pc); len(conflicts) > 0 {
		allergy = true
		flags = append(flags, conflicts...)
		severity = severity.Escalate(pkg.SafetyHigh)
	}

	if c.needsInteractionReminder(response, pc) {
		interaction = true
		flags = append(flags, flagInteraction)
		severity = severity.Escalate(pkg.SafetyMedium)
	}

	if c.needsEmergencyDisclaimer(response) {
		disclaimer = true
		flags = append(flags, flagDisclaimer)
		severity = severity.Escalate(pkg.SafetyMedium)
	}

	return pkg.SafetyResult{
		HasConcerns:     len(flags) > 0,
		Flags:           flags,
		Severity:        severity,
		Recommendations: recommendations(prescription, allergy, interaction, disclaimer),
	}
}

func (c *Classifier) checkPrescriptionLanguage(response string) bool {
	for _, p := range prescriptionPatterns {
		if p.MatchString(response) {
			c.log.Warn("prescription pattern detected", zap.String("pattern", p.String()))
			return true
		}
	}
	return false
}

func (c *Classifier) checkAllergyConflicts(response string, pc *pkg.PatientContext) []string {
	var conflicts []string
	lower := strings.ToLower(response)
	for _, a := range pc.Allergies {
		allergen := strings.ToLower(strings.TrimSpace(a.Allergen))
		if allergen == "" {
			continue
		}
		if strings.Contains(lower, allergen) {
			conflicts = append(conflicts,
				allergyAlertPrefix+": Patient allergic to "+allergen+" ("+string(a.Severity)+")")
			c.log.Warn("allergy conflict detected", zap.String("allergen", allergen))
		}
	}
	return conflicts
}

func (c *Classifier) needsInteractionReminder(response string, pc *pkg.PatientContext) bool {
	if len(pc.CurrentMedications) == 0 {
		return false
	}
	lower := strings.ToLower(response)
	for _, kw := range treatmentKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (c *Classifier) needsEmergencyDisclaimer(response string) bool {
	lower := strings.ToLower(response)
	for _, kw := range seriousKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// recommendations derives the deterministic advice list from which check
// categories fired, in fixed order.
func recommendations(prescription, allergy, interaction, disclaimer bool) []string {
	var recs []string
	if prescription {
		recs = append(recs, "Remove specific medication names and dosages. Use general medication classes instead.")
	}
	if allergy {
		recs = append(recs, "Add prominent allergy warning at the beginning of response.")
	}
	if interaction {
		recs = append(recs, "Add reminder to discuss with healthcare provider about current medications.")
	}
	if disclaimer {
		recs = append(recs, "Add clear guidance on when to seek emergency medical care.")
	}
	return recs
}
