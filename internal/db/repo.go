package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sharma-sugurthi/HealthAI/pkg"
)

// Repository implements the medical data store on Postgres.  All reads
// tolerate "no data" by returning empty slices; only GetPatient distinguishes
// absence, via pkg.ErrNotFound.
type Repository struct {
	DB *sql.DB
}

// NewRepository constructs a Repository from an existing sql.DB.  The caller
// owns the connection lifecycle.
func NewRepository(db *sql.DB) *Repository { return &Repository{DB: db} }

// GetPatient fetches demographic data for one patient.
func (r *Repository) GetPatient(ctx context.Context, patientID int64) (*pkg.Patient, error) {
	var p pkg.Patient
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, full_name, age, gender
         FROM patients
         WHERE id = $1`, patientID,
	).Scan(&p.ID, &p.FullName, &p.Age, &p.Gender)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("patient %d: %w", patientID, pkg.ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

// GetActiveConditions returns conditions that still affect the patient:
// active, chronic and managed entries, newest diagnosis first.
func (r *Repository) GetActiveConditions(ctx context.Context, patientID int64) ([]pkg.Condition, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT condition_name, status, severity, diagnosed_date
         FROM medical_conditions
         WHERE patient_id = $1
           AND status IN ('active', 'chronic', 'managed')
         ORDER BY diagnosed_date DESC NULLS LAST`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conditions := []pkg.Condition{}
	for rows.Next() {
		var c pkg.Condition
		var severity sql.NullString
		var diagnosed sql.NullTime
		if err := rows.Scan(&c.Name, &c.Status, &severity, &diagnosed); err != nil {
			return nil, err
		}
		if severity.Valid {
			s := pkg.ConditionSeverity(severity.String)
			c.Severity = &s
		}
		if diagnosed.Valid {
			d := diagnosed.Time
			c.DiagnosedDate = &d
		}
		conditions = append(conditions, c)
	}
	return conditions, rows.Err()
}

// GetActiveMedications returns medications the patient is currently taking.
func (r *Repository) GetActiveMedications(ctx context.Context, patientID int64) ([]pkg.Medication, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT medication_name, dosage, frequency, route, status, start_date, end_date
         FROM medications
         WHERE patient_id = $1
           AND status = 'active'
         ORDER BY start_date DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	medications := []pkg.Medication{}
	for rows.Next() {
		var m pkg.Medication
		var end sql.NullTime
		if err := rows.Scan(&m.Name, &m.Dosage, &m.Frequency, &m.Route, &m.Status, &m.StartDate, &end); err != nil {
			return nil, err
		}
		if end.Valid {
			e := end.Time
			m.EndDate = &e
		}
		medications = append(medications, m)
	}
	return medications, rows.Err()
}

// GetAllergies returns all recorded allergies for the patient.
func (r *Repository) GetAllergies(ctx context.Context, patientID int64) ([]pkg.Allergy, error) {
	return r.queryAllergies(ctx,
		`SELECT allergen, allergen_type, reaction, severity
         FROM allergies
         WHERE patient_id = $1
         ORDER BY severity DESC, allergen`, patientID)
}

// GetSevereAllergies returns only severe and life-threatening allergies, for
// the critical-allergy checks.
func (r *Repository) GetSevereAllergies(ctx context.Context, patientID int64) ([]pkg.Allergy, error) {
	return r.queryAllergies(ctx,
		`SELECT allergen, allergen_type, reaction, severity
         FROM allergies
         WHERE patient_id = $1
           AND severity IN ('severe', 'life-threatening')
         ORDER BY allergen`, patientID)
}

func (r *Repository) queryAllergies(ctx context.Context, query string, patientID int64) ([]pkg.Allergy, error) {
	rows, err := r.DB.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	allergies := []pkg.Allergy{}
	for rows.Next() {
		var a pkg.Allergy
		var typ sql.NullString
		if err := rows.Scan(&a.Allergen, &typ, &a.Reaction, &a.Severity); err != nil {
			return nil, err
		}
		if typ.Valid {
			t := pkg.AllergenType(typ.String)
			a.Type = &t
		}
		allergies = append(allergies, a)
	}
	return allergies, rows.Err()
}

// GetRecentSymptoms returns symptom entries logged within the last `days`
// days, newest first.
func (r *Repository) GetRecentSymptoms(ctx context.Context, patientID int64, days int) ([]pkg.SymptomEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT symptom_description, body_part, severity, logged_at
         FROM symptom_logs
         WHERE patient_id = $1
           AND logged_at >= NOW() - ($2 * INTERVAL '1 day')
         ORDER BY logged_at DESC`, patientID, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	symptoms := []pkg.SymptomEntry{}
	for rows.Next() {
		var s pkg.SymptomEntry
		var bodyPart sql.NullString
		var severity sql.NullInt64
		if err := rows.Scan(&s.Description, &bodyPart, &severity, &s.LoggedAt); err != nil {
			return nil, err
		}
		if bodyPart.Valid {
			b := bodyPart.String
			s.BodyPart = &b
		}
		if severity.Valid {
			v := int(severity.Int64)
			s.Severity = &v
		}
		symptoms = append(symptoms, s)
	}
	return symptoms, rows.Err()
}

// GetRecentExchanges returns the most recent conversation turns, newest
// first, capped at limit.
func (r *Repository) GetRecentExchanges(ctx context.Context, patientID int64, limit int) ([]pkg.Exchange, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, patient_id, message, response, timestamp
         FROM chat_history
         WHERE patient_id = $1
         ORDER BY timestamp DESC
         LIMIT $2`, patientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exchanges := []pkg.Exchange{}
	for rows.Next() {
		var e pkg.Exchange
		if err := rows.Scan(&e.ID, &e.PatientID, &e.Message, &e.Response, &e.Timestamp); err != nil {
			return nil, err
		}
		exchanges = append(exchanges, e)
	}
	return exchanges, rows.Err()
}

// AppendExchange stores one finalized conversation turn and notifies
// listeners on the exchange channel.  The log is append-only; rows are never
// updated.
func (r *Repository) AppendExchange(ctx context.Context, patientID int64, message, response string) (*pkg.Exchange, error) {
	e := pkg.Exchange{
		ID:        uuid.NewString(),
		PatientID: patientID,
		Message:   message,
		Response:  response,
	}
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO chat_history (id, patient_id, message, response, timestamp)
         VALUES ($1, $2, $3, $4, NOW())
         RETURNING timestamp`,
		e.ID, e.PatientID, e.Message, e.Response,
	).Scan(&e.Timestamp)
	if err != nil {
		return nil, err
	}
	// Best effort: a failed NOTIFY must not fail the append.
	_, _ = r.DB.ExecContext(ctx,
		fmt.Sprintf(`NOTIFY %s, '%d'`, ExchangeChannel, patientID))
	return &e, nil
}
