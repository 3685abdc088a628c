package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pinClock fixes the validation clock for the duration of a test.
func pinClock(t *testing.T, instant time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return instant }
	t.Cleanup(func() { timeNow = orig })
}

func TestAppointmentDateMustBeInTheFuture(t *testing.T) {
	ref := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	pinClock(t, ref)

	patient := newTestPatient()
	doctor, err := NewDoctor("Wairimu", "Karanja", "Oncology")
	require.NoError(t, err)

	_, err = NewAppointment(patient, doctor, ref.Add(-time.Hour), "late")
	assert.Error(t, err, "past date must be rejected")

	_, err = NewAppointment(patient, doctor, ref, "now")
	assert.Error(t, err, "exactly-now date must be rejected")

	appt, err := NewAppointment(patient, doctor, ref.Add(time.Second), "soon")
	require.NoError(t, err, "one second in the future is acceptable")
	assert.Equal(t, ref.Add(time.Second), appt.AppointmentDate())
}

func TestAppointmentDateFailureLeavesPriorValue(t *testing.T) {
	ref := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	pinClock(t, ref)

	patient := newTestPatient()
	doctor, err := NewDoctor("Otieno", "Omollo", "Dermatology")
	require.NoError(t, err)

	appt, err := NewAppointment(patient, doctor, ref.Add(time.Hour), "checkup")
	require.NoError(t, err)

	require.Error(t, appt.SetAppointmentDate(ref.Add(-time.Minute)))
	assert.Equal(t, ref.Add(time.Hour), appt.AppointmentDate())
}

func TestAppointmentStatusEnumeration(t *testing.T) {
	patient := newTestPatient()
	doctor, err := NewDoctor("Njeri", "Mwangi", "Pediatrics")
	require.NoError(t, err)

	appt, err := NewAppointment(patient, doctor, time.Now().Add(time.Hour), "consult")
	require.NoError(t, err)
	assert.Equal(t, AppointmentStatusScheduled, appt.Status(), "new appointments default to Scheduled")

	require.NoError(t, appt.SetStatus(AppointmentStatusCompleted))
	require.NoError(t, appt.SetStatus(AppointmentStatusCancelled))

	err = appt.SetStatus("Pending")
	require.Error(t, err)
	assert.Equal(t, AppointmentStatusCancelled, appt.Status())

	err = appt.SetStatus("scheduled")
	assert.Error(t, err, "status comparison is exact, not case-folded")
}

func TestAppointmentSerializeIsFlat(t *testing.T) {
	patient := newTestPatient()
	doctor, err := NewDoctor("Chebet", "Kiprop", "Neurology")
	require.NoError(t, err)

	appt, err := NewAppointment(patient, doctor, time.Now().Add(time.Hour), "consult")
	require.NoError(t, err)

	out := appt.Serialize()
	assert.Len(t, out, 6)
	assert.Equal(t, patient.ID, out["patient_id"])
	assert.Equal(t, doctor.ID, out["doctor_id"])
	assert.NotContains(t, out, "patient")
	assert.NotContains(t, out, "doctor")
}
