package model

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a clinic patient. Validated attributes are unexported and
// mutated through setters so every assignment runs its validator
// before the field changes.
type Patient struct {
	ID            uuid.UUID
	username      string
	credential    Credential
	firstName     string
	lastName      string
	dateOfBirth   time.Time
	contactNumber string
	email         string

	appointments []*Appointment
	bills        []*Bill
}

func NewPatient(username string, dateOfBirth time.Time) *Patient {
	return &Patient{
		ID:          uuid.New(),
		username:    username,
		dateOfBirth: dateOfBirth,
	}
}

// RestorePatient rebuilds a patient from persisted state. Stored
// values were validated at write time, so validators do not rerun.
func RestorePatient(id uuid.UUID, username string, credential Credential, dateOfBirth time.Time, firstName, lastName, contactNumber, email string) *Patient {
	return &Patient{
		ID:            id,
		username:      username,
		credential:    credential,
		dateOfBirth:   dateOfBirth,
		firstName:     firstName,
		lastName:      lastName,
		contactNumber: contactNumber,
		email:         email,
	}
}

func (p *Patient) Username() string        { return p.username }
func (p *Patient) FirstName() string       { return p.firstName }
func (p *Patient) LastName() string        { return p.lastName }
func (p *Patient) DateOfBirth() time.Time  { return p.dateOfBirth }
func (p *Patient) ContactNumber() string   { return p.contactNumber }
func (p *Patient) Email() string           { return p.email }
func (p *Patient) Credential() Credential  { return p.credential }

func (p *Patient) SetUsername(value string) error {
	v, err := validateName("username", value)
	if err != nil {
		return err
	}
	p.username = v
	return nil
}

func (p *Patient) SetFirstName(value string) error {
	v, err := validateName("first_name", value)
	if err != nil {
		return err
	}
	p.firstName = v
	return nil
}

func (p *Patient) SetLastName(value string) error {
	v, err := validateName("last_name", value)
	if err != nil {
		return err
	}
	p.lastName = v
	return nil
}

func (p *Patient) SetEmail(value string) error {
	v, err := validateEmail("email", value)
	if err != nil {
		return err
	}
	p.email = v
	return nil
}

func (p *Patient) SetContactNumber(value string) error {
	v, err := validateContactNumber("contact_number", value)
	if err != nil {
		return err
	}
	p.contactNumber = v
	return nil
}

func (p *Patient) SetDateOfBirth(value time.Time) error {
	p.dateOfBirth = value
	return nil
}

// SetCredential hashes and stores the plaintext. The stored hash is
// write-only; use Authenticate to check a candidate secret.
func (p *Patient) SetCredential(plaintext string) error {
	return p.credential.Set(plaintext)
}

func (p *Patient) Authenticate(plaintext string) bool {
	return p.credential.Verify(plaintext)
}

// RestoreCredential rehydrates the stored hash from persistence.
func (p *Patient) RestoreCredential(c Credential) {
	p.credential = c
}

func (p *Patient) Appointments() []*Appointment { return p.appointments }
func (p *Patient) Bills() []*Bill               { return p.bills }

// Doctors projects the doctor reachable through each of the patient's
// appointments, in appointment order. It is computed on read and never
// stored.
func (p *Patient) Doctors() []*Doctor {
	doctors := make([]*Doctor, 0, len(p.appointments))
	for _, a := range p.appointments {
		if a.doctor != nil {
			doctors = append(doctors, a.doctor)
		}
	}
	return doctors
}

func (p *Patient) addAppointment(a *Appointment) {
	p.appointments = append(p.appointments, a)
}

func (p *Patient) removeAppointment(a *Appointment) {
	for i, existing := range p.appointments {
		if existing == a {
			p.appointments = append(p.appointments[:i], p.appointments[i+1:]...)
			return
		}
	}
}

func (p *Patient) addBill(b *Bill) {
	p.bills = append(p.bills, b)
}

func (p *Patient) removeBill(b *Bill) {
	for i, existing := range p.bills {
		if existing == b {
			p.bills = append(p.bills[:i], p.bills[i+1:]...)
			return
		}
	}
}

// Serialize renders the patient with nested appointments and bills.
// Nested entities omit their patient back-references to keep the
// output acyclic.
func (p *Patient) Serialize() map[string]interface{} {
	appointments := make([]map[string]interface{}, 0, len(p.appointments))
	for _, a := range p.appointments {
		appointments = append(appointments, a.Serialize())
	}
	bills := make([]map[string]interface{}, 0, len(p.bills))
	for _, b := range p.bills {
		bills = append(bills, b.serializeBase())
	}

	out := p.serializeBase()
	out["appointments"] = appointments
	out["bills"] = bills
	return out
}

func (p *Patient) serializeBase() map[string]interface{} {
	return map[string]interface{}{
		"id":             p.ID,
		"username":       p.username,
		"first_name":     p.firstName,
		"last_name":      p.lastName,
		"date_of_birth":  p.dateOfBirth,
		"contact_number": p.contactNumber,
		"email":          p.email,
	}
}
