package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsivali/careconnect-v1/pkg/errors"
)

func newTestPatient() *Patient {
	return NewPatient("wanjiku", time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC))
}

func TestPatientNameValidation(t *testing.T) {
	p := newTestPatient()

	require.NoError(t, p.SetFirstName("  Grace  "))
	assert.Equal(t, "Grace", p.FirstName())

	err := p.SetFirstName("   ")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, "Grace", p.FirstName(), "failed assignment must not change the field")

	err = p.SetLastName("")
	require.Error(t, err)
	verr := err.(*errors.ValidationError)
	assert.Equal(t, "last_name", verr.Field)
}

func TestPatientEmailValidation(t *testing.T) {
	p := newTestPatient()

	require.NoError(t, p.SetEmail("a.b-c@sub.domain.com"))
	assert.Equal(t, "a.b-c@sub.domain.com", p.Email())

	require.NoError(t, p.SetEmail("josé@example.com"), "unicode local parts are accepted")
	require.NoError(t, p.SetEmail(""), "empty email is allowed")

	for _, bad := range []string{"not-an-email", "missing@tld", "@nodomain.com", "two@@at.com"} {
		err := p.SetEmail(bad)
		assert.Error(t, err, "email %q should be rejected", bad)
	}
	assert.Equal(t, "", p.Email())
}

func TestPatientContactNumberValidation(t *testing.T) {
	p := newTestPatient()

	for _, ok := range []string{"0712345678", "+254712345678", "254712345678"} {
		assert.NoError(t, p.SetContactNumber(ok), "contact %q should be accepted", ok)
		assert.Equal(t, ok, p.ContactNumber())
	}

	for _, bad := range []string{"12345", "07123456789", "+255712345678", "25471234567"} {
		err := p.SetContactNumber(bad)
		assert.Error(t, err, "contact %q should be rejected", bad)
	}

	assert.NoError(t, p.SetContactNumber(""), "empty contact is allowed")
}

func TestPatientCredentialRoundTrip(t *testing.T) {
	p := newTestPatient()
	require.NoError(t, p.SetCredential("secret123"))

	assert.True(t, p.Authenticate("secret123"))
	assert.False(t, p.Authenticate("wrong"))

	cred := p.Credential()
	_, err := cred.Hash()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCredentialRead)
}

func TestPatientDoctorsProjection(t *testing.T) {
	p := newTestPatient()
	cardio, err := NewDoctor("Achieng", "Odhiambo", "Cardiology")
	require.NoError(t, err)
	neuro, err := NewDoctor("Kamau", "Njoroge", "Neurology")
	require.NoError(t, err)

	future := time.Now().Add(24 * time.Hour)
	_, err = NewAppointment(p, cardio, future, "checkup")
	require.NoError(t, err)
	_, err = NewAppointment(p, neuro, future.Add(time.Hour), "follow-up")
	require.NoError(t, err)
	_, err = NewAppointment(p, cardio, future.Add(2*time.Hour), "review")
	require.NoError(t, err)

	doctors := p.Doctors()
	require.Len(t, doctors, 3, "projection preserves source order and duplicates")
	assert.Same(t, cardio, doctors[0])
	assert.Same(t, neuro, doctors[1])
	assert.Same(t, cardio, doctors[2])

	patients := cardio.Patients()
	require.Len(t, patients, 2)
	assert.Same(t, p, patients[0])
}

func TestAppointmentReassignmentKeepsCollectionsConsistent(t *testing.T) {
	alice := NewPatient("alice", time.Date(1985, 1, 1, 0, 0, 0, 0, time.UTC))
	bob := NewPatient("bob", time.Date(1992, 6, 3, 0, 0, 0, 0, time.UTC))
	doc, err := NewDoctor("Atieno", "Owino", "Pediatrics")
	require.NoError(t, err)

	appt, err := NewAppointment(alice, doc, time.Now().Add(time.Hour), "consult")
	require.NoError(t, err)
	require.Len(t, alice.Appointments(), 1)

	require.NoError(t, appt.SetPatient(bob))
	assert.Empty(t, alice.Appointments())
	require.Len(t, bob.Appointments(), 1)
	assert.Same(t, appt, bob.Appointments()[0])
}
