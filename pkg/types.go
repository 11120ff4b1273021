package pkg

import "time"

// Patient holds the demographic facts the assistant personalizes on.  The
// rest of a patient's record lives in the per-category tables below.
type Patient struct {
	ID       int64   `json:"id"`
	FullName string  `json:"full_name"`
	Age      *int    `json:"age,omitempty"`
	Gender   *string `json:"gender,omitempty"`
}

// ConditionStatus describes whether a medical condition still affects the
// patient.  Only active, chronic and managed conditions enter the AI context.
type ConditionStatus string

const (
	ConditionActive   ConditionStatus = "active"
	ConditionResolved ConditionStatus = "resolved"
	ConditionChronic  ConditionStatus = "chronic"
	ConditionManaged  ConditionStatus = "managed"
)

// InContext reports whether conditions with this status belong in the AI
// context ("active conditions" filter).
func (s ConditionStatus) InContext() bool {
	return s == ConditionActive || s == ConditionChronic || s == ConditionManaged
}

// ConditionSeverity grades a diagnosed condition.
type ConditionSeverity string

const (
	SeverityMild     ConditionSeverity = "mild"
	SeverityModerate ConditionSeverity = "moderate"
	SeveritySevere   ConditionSeverity = "severe"
)

// Condition is one entry in a patient's medical history.
type Condition struct {
	Name          string             `json:"condition_name"`
	Status        ConditionStatus    `json:"status"`
	Severity      *ConditionSeverity `json:"severity,omitempty"`
	DiagnosedDate *time.Time         `json:"diagnosed_date,omitempty"`
}

// MedicationStatus tracks whether a prescription is still being taken.
type MedicationStatus string

const (
	MedicationActive       MedicationStatus = "active"
	MedicationDiscontinued MedicationStatus = "discontinued"
	MedicationCompleted    MedicationStatus = "completed"
)

// Medication is one entry in a patient's medication list.  Only active
// medications enter the AI context.
type Medication struct {
	Name      string           `json:"medication_name"`
	Dosage    string           `json:"dosage"`
	Frequency string           `json:"frequency"`
	Route     string           `json:"route"`
	Status    MedicationStatus `json:"status"`
	StartDate time.Time        `json:"start_date"`
	EndDate   *time.Time       `json:"end_date,omitempty"`
}

// AllergySeverity grades an allergy.  Severe and life-threatening allergies
// drive the critical-allergy checks.
type AllergySeverity string

const (
	AllergyMild            AllergySeverity = "mild"
	AllergyModerate        AllergySeverity = "moderate"
	AllergySevere          AllergySeverity = "severe"
	AllergyLifeThreatening AllergySeverity = "life-threatening"
)

// Critical reports whether the allergy warrants a hard warning regardless of
// conversation flow.
func (s AllergySeverity) Critical() bool {
	return s == AllergySevere || s == AllergyLifeThreatening
}

// AllergenType classifies what kind of allergen is involved.
type AllergenType string

const (
	AllergenMedication    AllergenType = "medication"
	AllergenFood          AllergenType = "food"
	AllergenEnvironmental AllergenType = "environmental"
	AllergenOther         AllergenType = "other"
)

// Allergy is one recorded allergy with its reaction description.
type Allergy struct {
	Allergen string          `json:"allergen"`
	Type     *AllergenType   `json:"allergen_type,omitempty"`
	Reaction string          `json:"reaction"`
	Severity AllergySeverity `json:"severity"`
}

// SymptomEntry is one self-reported symptom log entry, newest first.
type SymptomEntry struct {
	Description string    `json:"symptom_description"`
	BodyPart    *string   `json:"body_part,omitempty"`
	Severity    *int      `json:"severity,omitempty"` // 1..10
	LoggedAt    time.Time `json:"logged_at"`
}

// Exchange is one turn of conversation: the patient's message and the
// finalized assistant response.  Exchanges are append-only.
type Exchange struct {
	ID        string    `json:"id"`
	PatientID int64     `json:"user_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// PatientContext aggregates everything the assistant knows about one patient
// for a single request.  It is built fresh per request and discarded; the
// slices are always non-nil so formatters can treat "no data" uniformly.
type PatientContext struct {
	PatientID           int64
	Age                 *int
	Gender              *string
	FullName            string
	MedicalHistory      []Condition
	CurrentMedications  []Medication
	Allergies           []Allergy
	RecentSymptoms      []SymptomEntry
	ConversationContext []Exchange
}

// SafetySeverity orders safety findings.  Within one evaluation severity only
// escalates, never downgrades.
type SafetySeverity string

const (
	SafetyLow    SafetySeverity = "low"
	SafetyMedium SafetySeverity = "medium"
	SafetyHigh   SafetySeverity = "high"
)

func (s SafetySeverity) rank() int {
	switch s {
	case SafetyHigh:
		return 2
	case SafetyMedium:
		return 1
	default:
		return 0
	}
}

// Escalate returns the more severe of the two levels.
func (s SafetySeverity) Escalate(to SafetySeverity) SafetySeverity {
	if to.rank() > s.rank() {
		return to
	}
	return s
}

// SafetyResult is the outcome of screening one AI response.  It is consumed
// immediately by the finalizer and never persisted.
type SafetyResult struct {
	HasConcerns     bool           `json:"has_concerns"`
	Flags           []string       `json:"flags"`
	Severity        SafetySeverity `json:"severity"`
	Recommendations []string       `json:"recommendations"`
}
