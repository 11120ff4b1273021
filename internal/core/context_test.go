package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sharma-sugurthi/HealthAI/pkg"
)

// MockStore is a testify mock for the MedicalStore port.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetPatient(ctx context.Context, patientID int64) (*pkg.Patient, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pkg.Patient), args.Error(1)
}

func (m *MockStore) GetActiveConditions(ctx context.Context, patientID int64) ([]pkg.Condition, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pkg.Condition), args.Error(1)
}

func (m *MockStore) GetActiveMedications(ctx context.Context, patientID int64) ([]pkg.Medication, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pkg.Medication), args.Error(1)
}

func (m *MockStore) GetAllergies(ctx context.Context, patientID int64) ([]pkg.Allergy, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pkg.Allergy), args.Error(1)
}

func (m *MockStore) GetSevereAllergies(ctx context.Context, patientID int64) ([]pkg.Allergy, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pkg.Allergy), args.Error(1)
}

func (m *MockStore) GetRecentSymptoms(ctx context.Context, patientID int64, days int) ([]pkg.SymptomEntry, error) {
	args := m.Called(ctx, patientID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pkg.SymptomEntry), args.Error(1)
}

func (m *MockStore) GetRecentExchanges(ctx context.Context, patientID int64, limit int) ([]pkg.Exchange, error) {
	args := m.Called(ctx, patientID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pkg.Exchange), args.Error(1)
}

func (m *MockStore) AppendExchange(ctx context.Context, patientID int64, message, response string) (*pkg.Exchange, error) {
	args := m.Called(ctx, patientID, message, response)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pkg.Exchange), args.Error(1)
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func expectEmptySources(store *MockStore, patientID int64) {
	store.On("GetActiveConditions", mock.Anything, patientID).Return([]pkg.Condition{}, nil)
	store.On("GetActiveMedications", mock.Anything, patientID).Return([]pkg.Medication{}, nil)
	store.On("GetAllergies", mock.Anything, patientID).Return([]pkg.Allergy{}, nil)
	store.On("GetRecentSymptoms", mock.Anything, patientID, 30).Return([]pkg.SymptomEntry{}, nil)
	store.On("GetRecentExchanges", mock.Anything, patientID, 5).Return([]pkg.Exchange{}, nil)
}

func TestBuildContext_FullPatient(t *testing.T) {
	store := &MockStore{}
	store.On("GetPatient", mock.Anything, int64(7)).Return(&pkg.Patient{
		ID: 7, FullName: "Jane Roe", Age: intPtr(34), Gender: strPtr("female"),
	}, nil)
	store.On("GetActiveConditions", mock.Anything, int64(7)).Return([]pkg.Condition{
		{Name: "Asthma", Status: pkg.ConditionChronic},
	}, nil)
	store.On("GetActiveMedications", mock.Anything, int64(7)).Return([]pkg.Medication{
		{Name: "Albuterol", Dosage: "90mcg", Frequency: "as needed", Status: pkg.MedicationActive},
	}, nil)
	store.On("GetAllergies", mock.Anything, int64(7)).Return([]pkg.Allergy{
		{Allergen: "penicillin", Reaction: "hives", Severity: pkg.AllergySevere},
	}, nil)
	store.On("GetRecentSymptoms", mock.Anything, int64(7), 30).Return([]pkg.SymptomEntry{
		{Description: "wheezing at night", LoggedAt: time.Now()},
	}, nil)
	store.On("GetRecentExchanges", mock.Anything, int64(7), 5).Return([]pkg.Exchange{
		{Message: "hello", Response: "hi there", Timestamp: time.Now()},
	}, nil)

	agg := NewAggregator(store, zap.NewNop())
	pc := agg.BuildContext(context.Background(), 7)

	require.NotNil(t, pc)
	assert.Equal(t, int64(7), pc.PatientID)
	assert.Equal(t, 34, *pc.Age)
	assert.Equal(t, "female", *pc.Gender)
	assert.Len(t, pc.MedicalHistory, 1)
	assert.Len(t, pc.CurrentMedications, 1)
	assert.Len(t, pc.Allergies, 1)
	assert.Len(t, pc.RecentSymptoms, 1)
	assert.Len(t, pc.ConversationContext, 1)
}

func TestBuildContext_MissingPatientYieldsEmptyContext(t *testing.T) {
	store := &MockStore{}
	store.On("GetPatient", mock.Anything, int64(99)).Return(nil, pkg.ErrNotFound)

	agg := NewAggregator(store, zap.NewNop())
	pc := agg.BuildContext(context.Background(), 99)

	require.NotNil(t, pc)
	assert.Nil(t, pc.Age)
	assert.Nil(t, pc.Gender)
	assert.NotNil(t, pc.MedicalHistory)
	assert.Empty(t, pc.MedicalHistory)
	assert.NotNil(t, pc.CurrentMedications)
	assert.Empty(t, pc.CurrentMedications)
	assert.NotNil(t, pc.Allergies)
	assert.NotNil(t, pc.RecentSymptoms)
	assert.NotNil(t, pc.ConversationContext)
	// Sub-sources must not be queried for an unknown patient.
	store.AssertNotCalled(t, "GetActiveConditions", mock.Anything, mock.Anything)
}

func TestBuildContext_PartialSourceFailureDegrades(t *testing.T) {
	store := &MockStore{}
	store.On("GetPatient", mock.Anything, int64(7)).Return(&pkg.Patient{ID: 7, FullName: "Jane Roe"}, nil)
	store.On("GetActiveConditions", mock.Anything, int64(7)).Return(nil, errors.New("db down"))
	store.On("GetActiveMedications", mock.Anything, int64(7)).Return([]pkg.Medication{
		{Name: "Metformin", Status: pkg.MedicationActive},
	}, nil)
	store.On("GetAllergies", mock.Anything, int64(7)).Return([]pkg.Allergy{}, nil)
	store.On("GetRecentSymptoms", mock.Anything, int64(7), 30).Return([]pkg.SymptomEntry{}, nil)
	store.On("GetRecentExchanges", mock.Anything, int64(7), 5).Return([]pkg.Exchange{}, nil)

	agg := NewAggregator(store, zap.NewNop())
	pc := agg.BuildContext(context.Background(), 7)

	assert.Empty(t, pc.MedicalHistory)
	assert.Len(t, pc.CurrentMedications, 1)
}

func TestBuildContext_CapsSymptomsAtTen(t *testing.T) {
	symptoms := make([]pkg.SymptomEntry, 14)
	for i := range symptoms {
		symptoms[i] = pkg.SymptomEntry{Description: "headache", LoggedAt: time.Now()}
	}
	store := &MockStore{}
	store.On("GetPatient", mock.Anything, int64(7)).Return(&pkg.Patient{ID: 7}, nil)
	store.On("GetActiveConditions", mock.Anything, int64(7)).Return([]pkg.Condition{}, nil)
	store.On("GetActiveMedications", mock.Anything, int64(7)).Return([]pkg.Medication{}, nil)
	store.On("GetAllergies", mock.Anything, int64(7)).Return([]pkg.Allergy{}, nil)
	store.On("GetRecentSymptoms", mock.Anything, int64(7), 30).Return(symptoms, nil)
	store.On("GetRecentExchanges", mock.Anything, int64(7), 5).Return([]pkg.Exchange{}, nil)

	agg := NewAggregator(store, zap.NewNop())
	pc := agg.BuildContext(context.Background(), 7)

	assert.Len(t, pc.RecentSymptoms, 10)
}

func TestHasCriticalAllergies(t *testing.T) {
	store := &MockStore{}
	store.On("GetSevereAllergies", mock.Anything, int64(1)).Return([]pkg.Allergy{
		{Allergen: "peanuts", Reaction: "anaphylaxis", Severity: pkg.AllergyLifeThreatening},
	}, nil)
	store.On("GetSevereAllergies", mock.Anything, int64(2)).Return([]pkg.Allergy{}, nil)

	agg := NewAggregator(store, zap.NewNop())

	critical, err := agg.HasCriticalAllergies(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, critical)

	critical, err = agg.HasCriticalAllergies(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, critical)

	warnings, err := agg.AllergyWarnings(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "SEVERE ALLERGY: peanuts - anaphylaxis", warnings[0])
}

func TestFormatters_EmptyStates(t *testing.T) {
	assert.Equal(t, "No significant medical history reported", FormatMedicalHistory(nil))
	assert.Equal(t, "No current medications reported", FormatMedications(nil))
	assert.Equal(t, "No known allergies", FormatAllergies(nil))
	assert.Equal(t, "No recent symptoms logged", FormatRecentSymptoms(nil, 5))
	assert.Equal(t, "First conversation with patient", FormatConversationContext(nil))
}

func TestFormatMedicalHistory(t *testing.T) {
	sev := pkg.SeveritySevere
	out := FormatMedicalHistory([]pkg.Condition{
		{Name: "Hypertension", Status: pkg.ConditionManaged},
		{Name: "Asthma", Status: pkg.ConditionChronic, Severity: &sev},
	})
	assert.Equal(t, "- Hypertension (managed)\n- Asthma (chronic) (severe)", out)
}

func TestFormatMedications_OmitsBlankFields(t *testing.T) {
	out := FormatMedications([]pkg.Medication{
		{Name: "Metformin", Dosage: "500mg", Frequency: "twice daily"},
		{Name: "Albuterol"},
	})
	assert.Equal(t, "- Metformin 500mg twice daily\n- Albuterol", out)
}

func TestFormatAllergies_TruncatesReaction(t *testing.T) {
	longReaction := "severe full-body hives with swelling of the face, lips and airway requiring epinephrine"
	out := FormatAllergies([]pkg.Allergy{
		{Allergen: "penicillin", Reaction: longReaction, Severity: pkg.AllergySevere},
	})
	assert.Contains(t, out, "- penicillin (severe): ")
	assert.LessOrEqual(t, len(out), len("- penicillin (severe): ")+50)
}

func TestFormatRecentSymptoms(t *testing.T) {
	logged := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	out := FormatRecentSymptoms([]pkg.SymptomEntry{
		{Description: "dull headache", Severity: intPtr(4), LoggedAt: logged},
		{Description: "fatigue", LoggedAt: logged},
	}, 5)
	assert.Equal(t, "- 2026-08-10: dull headache (severity: 4/10)\n- 2026-08-10: fatigue", out)
}

func TestFormatRecentSymptoms_LimitsEntries(t *testing.T) {
	entries := make([]pkg.SymptomEntry, 8)
	for i := range entries {
		entries[i] = pkg.SymptomEntry{Description: "cough", LoggedAt: time.Now()}
	}
	out := FormatRecentSymptoms(entries, 5)
	assert.Equal(t, 5, strings.Count(out, "- "))
}
