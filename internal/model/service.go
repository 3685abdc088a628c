package model

import (
	"github.com/google/uuid"
)

// Service is a billable clinic service, referenced by bill line items.
type Service struct {
	ID          uuid.UUID
	name        string
	description string
	price       float64

	lineItems []*BillService
}

func NewService(name, description string, price float64) (*Service, error) {
	s := &Service{
		ID:          uuid.New(),
		description: description,
	}
	if err := s.SetName(name); err != nil {
		return nil, err
	}
	if err := s.SetPrice(price); err != nil {
		return nil, err
	}
	return s, nil
}

// RestoreService rebuilds a service from persisted, already-validated
// state.
func RestoreService(id uuid.UUID, name, description string, price float64) *Service {
	return &Service{
		ID:          id,
		name:        name,
		description: description,
		price:       price,
	}
}

func (s *Service) Name() string        { return s.name }
func (s *Service) Description() string { return s.description }
func (s *Service) Price() float64      { return s.price }

func (s *Service) SetName(value string) error {
	v, err := validateName("name", value)
	if err != nil {
		return err
	}
	s.name = v
	return nil
}

func (s *Service) SetDescription(value string) error {
	s.description = value
	return nil
}

// SetPrice validates the new price, then resyncs the amount of every
// bill that carries this service so stored sums keep matching the
// current line totals.
func (s *Service) SetPrice(value float64) error {
	v, err := validatePositivePrice("price", value)
	if err != nil {
		return err
	}
	s.price = v
	for _, item := range s.lineItems {
		if item.bill != nil {
			item.bill.recomputeAmount()
		}
	}
	return nil
}

func (s *Service) LineItems() []*BillService { return s.lineItems }

// Bills projects the bill behind each line item referencing this
// service.
func (s *Service) Bills() []*Bill {
	bills := make([]*Bill, 0, len(s.lineItems))
	for _, item := range s.lineItems {
		if item.bill != nil {
			bills = append(bills, item.bill)
		}
	}
	return bills
}

func (s *Service) addLineItem(item *BillService) {
	s.lineItems = append(s.lineItems, item)
}

func (s *Service) removeLineItem(item *BillService) {
	for i, existing := range s.lineItems {
		if existing == item {
			s.lineItems = append(s.lineItems[:i], s.lineItems[i+1:]...)
			return
		}
	}
}

// Serialize renders the service with its line items; each nested line
// item omits its service back-reference.
func (s *Service) Serialize() map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(s.lineItems))
	for _, item := range s.lineItems {
		items = append(items, item.serializeBase())
	}
	out := s.serializeBase()
	out["bill_services"] = items
	return out
}

func (s *Service) serializeBase() map[string]interface{} {
	return map[string]interface{}{
		"id":          s.ID,
		"name":        s.name,
		"description": s.description,
		"price":       s.price,
	}
}
