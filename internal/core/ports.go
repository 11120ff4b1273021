package core

import (
	"context"

	"github.com/sharma-sugurthi/HealthAI/pkg"
)

// MedicalStore is the storage collaborator the core reads patient facts from
// and appends conversation turns to.  Reads tolerate "no data" by returning
// empty slices; only GetPatient reports absence, via pkg.ErrNotFound.
type MedicalStore interface {
	GetPatient(ctx context.Context, patientID int64) (*pkg.Patient, error)
	GetActiveConditions(ctx context.Context, patientID int64) ([]pkg.Condition, error)
	GetActiveMedications(ctx context.Context, patientID int64) ([]pkg.Medication, error)
	GetAllergies(ctx context.Context, patientID int64) ([]pkg.Allergy, error)
	GetSevereAllergies(ctx context.Context, patientID int64) ([]pkg.Allergy, error)
	GetRecentSymptoms(ctx context.Context, patientID int64, days int) ([]pkg.SymptomEntry, error)
	GetRecentExchanges(ctx context.Context, patientID int64, limit int) ([]pkg.Exchange, error)
	AppendExchange(ctx context.Context, patientID int64, message, response string) (*pkg.Exchange, error)
}

// Completer is the text-completion collaborator.  Implementations own retry;
// after exhausting retries they fail with pkg.ErrServiceUnavailable.
type Completer interface {
	Complete(ctx context.Context, systemInstruction, userMessage string, maxTokens int, temperature float32) (string, error)
}
