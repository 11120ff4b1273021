package core

import (
	"strings"

	"github.com/sharma-sugurthi/HealthAI/pkg"
)

// Warning and disclaimer blocks appended or prepended by the finalizer.
// Each block carries a distinctive marker so a second finalizer pass cannot
// duplicate it.
const (
	emergencyWarningBlock = "\n\n**IMPORTANT**: If you experience severe or worsening symptoms, " +
		"seek immediate medical attention by calling emergency services or " +
		"going to the nearest emergency room.\n"

	medicationDisclaimerBlock = "\n\n**MEDICATION REMINDER**: Never start, stop, or change medications " +
		"without consulting your healthcare provider. This information is for " +
		"educational purposes only.\n"

	generalDisclaimerBlock = "\n\n---\n" +
		"*This information is for educational purposes only and is not a " +
		"substitute for professional medical advice, diagnosis, or treatment. " +
		"Always consult your healthcare provider with any questions about your health.*"
)

// Finalizer applies safety-derived annotations to raw model output before it
// is persisted and returned.  All transformations are string concatenation;
// already-added blocks are never truncated, re-ordered, or duplicated.
type Finalizer struct{}

// NewFinalizer constructs a Finalizer.
func NewFinalizer() *Finalizer { return &Finalizer{} }

// Finalize annotates the response.  Order: allergy alerts first (ahead of
// the body), then the high-severity emergency warning, then the trailing
// disclaimers.  Running it twice on its own output is a no-op.
func (f *Finalizer) Finalize(response string, safety pkg.SafetyResult, task TaskType) string {
	out := response

	for _, flag := range safety.Flags {
		if strings.Contains(flag, allergyAlertPrefix) {
			alert := "\n\n" + flag + "\n\n"
			if !strings.Contains(out, alert) {
				out = alert + out
			}
		}
	}

	if safety.Severity == pkg.SafetyHigh && !strings.Contains(out, emergencyWarningBlock) {
		out = emergencyWarningBlock + out
	}

	if task == TaskTreatmentPlan && !strings.Contains(out, medicationDisclaimerBlock) {
		out = out + medicationDisclaimerBlock
	}

	if !strings.Contains(out, generalDisclaimerBlock) {
		out = out + generalDisclaimerBlock
	}

	return out
}

// AllergyAlert formats a standalone allergy alert for a specific allergen,
// used outside the flag-driven path (for example the critical-allergy
// surface).
func AllergyAlert(allergen string, severity pkg.AllergySeverity) string {
	return "**ALLERGY ALERT**: Your medical records show you have a " +
		string(severity) + " allergy to " + allergen + ". Please inform all " +
		"healthcare providers about this allergy."
}
