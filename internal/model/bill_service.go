package model

import (
	"github.com/google/uuid"
)

// BillService is the line item joining a bill to a service. Its
// identity is the (bill, service) pair.
type BillService struct {
	bill     *Bill
	service  *Service
	quantity int
	notes    string
}

// RestoreLineItem re-attaches a persisted line item to its bill and
// service and resyncs the bill amount, so the stored sum and the line
// totals agree after rehydration.
func RestoreLineItem(bill *Bill, service *Service, quantity int, notes string) *BillService {
	item := &BillService{
		bill:     bill,
		service:  service,
		quantity: quantity,
		notes:    notes,
	}
	if bill != nil {
		bill.lineItems = append(bill.lineItems, item)
		bill.recomputeAmount()
	}
	if service != nil {
		service.addLineItem(item)
	}
	return item
}

func (bs *BillService) Bill() *Bill       { return bs.bill }
func (bs *BillService) Service() *Service { return bs.service }
func (bs *BillService) Quantity() int     { return bs.quantity }
func (bs *BillService) Notes() string     { return bs.notes }

func (bs *BillService) BillID() uuid.UUID {
	if bs.bill == nil {
		return uuid.Nil
	}
	return bs.bill.ID
}

func (bs *BillService) ServiceID() uuid.UUID {
	if bs.service == nil {
		return uuid.Nil
	}
	return bs.service.ID
}

// Total is the line total: quantity x current service price.
func (bs *BillService) Total() float64 {
	if bs.service == nil {
		return 0
	}
	return bs.service.Price() * float64(bs.quantity)
}

// SetQuantity revalidates the quantity and resyncs the owning bill's
// amount.
func (bs *BillService) SetQuantity(value int) error {
	q, err := validatePositiveQuantity("quantity", value)
	if err != nil {
		return err
	}
	bs.quantity = q
	if bs.bill != nil {
		bs.bill.recomputeAmount()
	}
	return nil
}

func (bs *BillService) SetNotes(value string) error {
	bs.notes = value
	return nil
}

// Serialize nests the bill (with its patient, minus that patient's
// appointments) and the service; neither nested entity carries its
// own line-item collection back.
func (bs *BillService) Serialize() map[string]interface{} {
	out := bs.serializeBase()
	if bs.bill != nil {
		bill := bs.bill.serializeBase()
		if bs.bill.patient != nil {
			bill["patient"] = bs.bill.patient.serializeBase()
		}
		out["bill"] = bill
	}
	if bs.service != nil {
		out["service"] = bs.service.serializeBase()
	}
	return out
}

func (bs *BillService) serializeBase() map[string]interface{} {
	return map[string]interface{}{
		"bill_id":    bs.BillID(),
		"service_id": bs.ServiceID(),
		"quantity":   bs.quantity,
		"notes":      bs.notes,
	}
}
