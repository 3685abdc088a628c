package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillSerializeExcludesPatientCollections(t *testing.T) {
	patient := newTestPatient()
	doctor, err := NewDoctor("Moraa", "Nyambane", "Cardiology")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := NewAppointment(patient, doctor, time.Now().Add(time.Duration(i+1)*time.Hour), "visit")
		require.NoError(t, err)
	}

	bill, err := NewBill(patient, time.Now())
	require.NoError(t, err)
	svc, err := NewService("Vaccination", "flu shot", 30)
	require.NoError(t, err)
	_, err = bill.AddLineItem(svc, 1, "")
	require.NoError(t, err)

	out := bill.Serialize()
	assert.NotContains(t, out, "bill_services")

	nested, ok := out["patient"].(map[string]interface{})
	require.True(t, ok)
	assert.NotContains(t, nested, "appointments",
		"bill output never nests the patient's appointments")
	assert.NotContains(t, nested, "bills")
	assert.NotContains(t, nested, "password_hash")
}

func TestPatientSerializeBreaksBackReferences(t *testing.T) {
	patient := newTestPatient()
	require.NoError(t, patient.SetCredential("secret123"))
	doctor, err := NewDoctor("Jelimo", "Rotich", "Oncology")
	require.NoError(t, err)
	_, err = NewAppointment(patient, doctor, time.Now().Add(time.Hour), "scan")
	require.NoError(t, err)
	bill, err := NewBill(patient, time.Now())
	require.NoError(t, err)

	out := patient.Serialize()
	assert.NotContains(t, out, "password_hash")
	assert.NotContains(t, out, "credential")

	appointments, ok := out["appointments"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, appointments, 1)
	assert.NotContains(t, appointments[0], "patient")

	bills, ok := out["bills"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, bills, 1)
	assert.NotContains(t, bills[0], "patient")
	assert.Equal(t, bill.ID, bills[0]["id"])
}

func TestDoctorSerializeOmitsPatientsProjection(t *testing.T) {
	patient := newTestPatient()
	doctor, err := NewDoctor("Wekesa", "Barasa", "Dermatology")
	require.NoError(t, err)
	_, err = NewAppointment(patient, doctor, time.Now().Add(time.Hour), "rash")
	require.NoError(t, err)

	out := doctor.Serialize()
	assert.NotContains(t, out, "patients")
	appointments := out["appointments"].([]map[string]interface{})
	require.Len(t, appointments, 1)
	assert.NotContains(t, appointments[0], "doctor")
}

func TestServiceSerializeOmitsLineItemBackReference(t *testing.T) {
	patient := newTestPatient()
	bill, err := NewBill(patient, time.Now())
	require.NoError(t, err)
	svc, err := NewService("ECG", "resting", 75)
	require.NoError(t, err)
	_, err = bill.AddLineItem(svc, 2, "")
	require.NoError(t, err)

	out := svc.Serialize()
	items := out["bill_services"].([]map[string]interface{})
	require.Len(t, items, 1)
	assert.NotContains(t, items[0], "service")
	assert.Equal(t, bill.ID, items[0]["bill_id"])
}

func TestBillServiceSerializeBoundsNesting(t *testing.T) {
	patient := newTestPatient()
	doctor, err := NewDoctor("Akinyi", "Ouma", "Pediatrics")
	require.NoError(t, err)
	_, err = NewAppointment(patient, doctor, time.Now().Add(time.Hour), "visit")
	require.NoError(t, err)

	bill, err := NewBill(patient, time.Now())
	require.NoError(t, err)
	svc, err := NewService("Ultrasound", "abdominal", 150)
	require.NoError(t, err)
	item, err := bill.AddLineItem(svc, 1, "urgent")
	require.NoError(t, err)

	out := item.Serialize()
	nestedBill := out["bill"].(map[string]interface{})
	assert.NotContains(t, nestedBill, "bill_services")
	nestedPatient := nestedBill["patient"].(map[string]interface{})
	assert.NotContains(t, nestedPatient, "appointments")

	nestedService := out["service"].(map[string]interface{})
	assert.NotContains(t, nestedService, "bill_services")
}
