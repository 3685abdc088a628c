package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/itsivali/careconnect-v1/pkg/errors"
)

type BillStatus string

const (
	BillStatusUnpaid        BillStatus = "Unpaid"
	BillStatusPaid          BillStatus = "Paid"
	BillStatusPartiallyPaid BillStatus = "Partially Paid"
)

var billStatuses = []string{
	string(BillStatusUnpaid),
	string(BillStatusPaid),
	string(BillStatusPartiallyPaid),
}

// Bill owns its line items; their lifetime is bounded by the bill's.
// The amount is never set directly: it is recomputed from the line
// totals (quantity x service price) after every mutation, so removal
// order and intermediate float rounding cannot drift it.
type Bill struct {
	ID        uuid.UUID
	patient   *Patient
	billDate  time.Time
	amount    float64
	status    BillStatus
	lineItems []*BillService
}

func NewBill(patient *Patient, billDate time.Time) (*Bill, error) {
	b := &Bill{
		ID:       uuid.New(),
		billDate: billDate,
		status:   BillStatusUnpaid,
	}
	if err := b.SetPatient(patient); err != nil {
		return nil, err
	}
	return b, nil
}

// RestoreBill rebuilds a bill from persisted state and registers it on
// the patient side. Line items are re-attached via RestoreLineItem.
func RestoreBill(id uuid.UUID, patient *Patient, billDate time.Time, status BillStatus) *Bill {
	b := &Bill{
		ID:       id,
		billDate: billDate,
		status:   status,
	}
	if patient != nil {
		b.patient = patient
		patient.addBill(b)
	}
	return b
}

func (b *Bill) Patient() *Patient        { return b.patient }
func (b *Bill) BillDate() time.Time      { return b.billDate }
func (b *Bill) Status() BillStatus       { return b.status }
func (b *Bill) LineItems() []*BillService { return b.lineItems }

// Amount is the sum of the current line totals.
func (b *Bill) Amount() float64 { return b.amount }

func (b *Bill) PatientID() uuid.UUID {
	if b.patient == nil {
		return uuid.Nil
	}
	return b.patient.ID
}

func (b *Bill) SetPatient(patient *Patient) error {
	if patient == nil {
		return errors.NewValidation("patient_id", "is required")
	}
	if b.patient != nil {
		b.patient.removeBill(b)
	}
	b.patient = patient
	patient.addBill(b)
	return nil
}

func (b *Bill) SetBillDate(value time.Time) error {
	b.billDate = value
	return nil
}

func (b *Bill) SetStatus(value BillStatus) error {
	v, err := validateOneOf("status", string(value), billStatuses)
	if err != nil {
		return err
	}
	b.status = BillStatus(v)
	return nil
}

// AddLineItem attaches a service to the bill and resyncs the amount.
// A service may appear on a bill at most once; the pair
// (bill, service) is the line item's identity.
func (b *Bill) AddLineItem(service *Service, quantity int, notes string) (*BillService, error) {
	if service == nil {
		return nil, errors.NewValidation("service_id", "is required")
	}
	for _, item := range b.lineItems {
		if item.service == service {
			return nil, errors.NewValidation("service_id", "already billed on this bill")
		}
	}
	q, err := validatePositiveQuantity("quantity", quantity)
	if err != nil {
		return nil, err
	}

	item := &BillService{
		bill:     b,
		service:  service,
		quantity: q,
		notes:    notes,
	}
	b.lineItems = append(b.lineItems, item)
	service.addLineItem(item)
	b.recomputeAmount()
	return item, nil
}

// RemoveLineItem detaches the line item for the given service and
// resyncs the amount. Removal order does not matter.
func (b *Bill) RemoveLineItem(serviceID uuid.UUID) error {
	for i, item := range b.lineItems {
		if item.service != nil && item.service.ID == serviceID {
			b.lineItems = append(b.lineItems[:i], b.lineItems[i+1:]...)
			item.service.removeLineItem(item)
			item.bill = nil
			b.recomputeAmount()
			return nil
		}
	}
	return errors.NewNotFound("bill service", nil)
}

// Services projects the service behind each line item, in line-item
// insertion order. Computed on read, never stored.
func (b *Bill) Services() []*Service {
	services := make([]*Service, 0, len(b.lineItems))
	for _, item := range b.lineItems {
		if item.service != nil {
			services = append(services, item.service)
		}
	}
	return services
}

// recomputeAmount resyncs the stored amount with the current line
// totals.
func (b *Bill) recomputeAmount() {
	var sum float64
	for _, item := range b.lineItems {
		sum += item.Total()
	}
	b.amount = sum
}

// Serialize renders the bill with its patient nested minus that
// patient's bills and appointments; line items are omitted.
func (b *Bill) Serialize() map[string]interface{} {
	out := b.serializeBase()
	if b.patient != nil {
		out["patient"] = b.patient.serializeBase()
	}
	return out
}

func (b *Bill) serializeBase() map[string]interface{} {
	return map[string]interface{}{
		"id":         b.ID,
		"patient_id": b.PatientID(),
		"bill_date":  b.billDate,
		"amount":     b.amount,
		"status":     b.status,
	}
}
