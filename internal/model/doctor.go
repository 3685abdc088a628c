package model

import (
	"github.com/google/uuid"
)

type Doctor struct {
	ID             uuid.UUID
	firstName      string
	lastName       string
	specialization string

	appointments []*Appointment
}

func NewDoctor(firstName, lastName, specialization string) (*Doctor, error) {
	d := &Doctor{
		ID:             uuid.New(),
		specialization: specialization,
	}
	if err := d.SetFirstName(firstName); err != nil {
		return nil, err
	}
	if err := d.SetLastName(lastName); err != nil {
		return nil, err
	}
	return d, nil
}

// RestoreDoctor rebuilds a doctor from persisted, already-validated
// state.
func RestoreDoctor(id uuid.UUID, firstName, lastName, specialization string) *Doctor {
	return &Doctor{
		ID:             id,
		firstName:      firstName,
		lastName:       lastName,
		specialization: specialization,
	}
}

func (d *Doctor) FirstName() string      { return d.firstName }
func (d *Doctor) LastName() string       { return d.lastName }
func (d *Doctor) Specialization() string { return d.specialization }

func (d *Doctor) SetFirstName(value string) error {
	v, err := validateName("first_name", value)
	if err != nil {
		return err
	}
	d.firstName = v
	return nil
}

func (d *Doctor) SetLastName(value string) error {
	v, err := validateName("last_name", value)
	if err != nil {
		return err
	}
	d.lastName = v
	return nil
}

func (d *Doctor) SetSpecialization(value string) error {
	d.specialization = value
	return nil
}

func (d *Doctor) Appointments() []*Appointment { return d.appointments }

// Patients projects the patient behind each of the doctor's
// appointments, in appointment order. Computed on read, never stored.
func (d *Doctor) Patients() []*Patient {
	patients := make([]*Patient, 0, len(d.appointments))
	for _, a := range d.appointments {
		if a.patient != nil {
			patients = append(patients, a.patient)
		}
	}
	return patients
}

func (d *Doctor) addAppointment(a *Appointment) {
	d.appointments = append(d.appointments, a)
}

func (d *Doctor) removeAppointment(a *Appointment) {
	for i, existing := range d.appointments {
		if existing == a {
			d.appointments = append(d.appointments[:i], d.appointments[i+1:]...)
			return
		}
	}
}

// Serialize renders the doctor with nested appointments. The patients
// projection is deliberately omitted.
func (d *Doctor) Serialize() map[string]interface{} {
	appointments := make([]map[string]interface{}, 0, len(d.appointments))
	for _, a := range d.appointments {
		appointments = append(appointments, a.Serialize())
	}
	return map[string]interface{}{
		"id":             d.ID,
		"first_name":     d.firstName,
		"last_name":      d.lastName,
		"specialization": d.specialization,
		"appointments":   appointments,
	}
}
