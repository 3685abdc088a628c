package billing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsivali/careconnect-v1/internal/model"
)

type billRepoMock struct {
	bills map[uuid.UUID]*model.Bill
}

func newBillRepoMock() *billRepoMock {
	return &billRepoMock{bills: make(map[uuid.UUID]*model.Bill)}
}

func (m *billRepoMock) Create(_ context.Context, bill *model.Bill) error {
	m.bills[bill.ID] = bill
	return nil
}

func (m *billRepoMock) Get(_ context.Context, id uuid.UUID) (*model.Bill, error) {
	bill, ok := m.bills[id]
	if !ok {
		return nil, fmt.Errorf("bill not found")
	}
	return bill, nil
}

func (m *billRepoMock) Update(_ context.Context, bill *model.Bill) error {
	m.bills[bill.ID] = bill
	return nil
}

func (m *billRepoMock) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.bills, id)
	return nil
}

func (m *billRepoMock) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*model.Bill, error) {
	var out []*model.Bill
	for _, b := range m.bills {
		if b.PatientID() == patientID {
			out = append(out, b)
		}
	}
	return out, nil
}

type patientRepoMock struct {
	patients map[uuid.UUID]*model.Patient
}

func (m *patientRepoMock) Create(_ context.Context, p *model.Patient) error {
	m.patients[p.ID] = p
	return nil
}

func (m *patientRepoMock) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, fmt.Errorf("patient not found")
	}
	return p, nil
}

func (m *patientRepoMock) GetByUsername(_ context.Context, username string) (*model.Patient, error) {
	for _, p := range m.patients {
		if p.Username() == username {
			return p, nil
		}
	}
	return nil, fmt.Errorf("patient not found")
}

func (m *patientRepoMock) Update(_ context.Context, p *model.Patient) error { return nil }
func (m *patientRepoMock) Delete(_ context.Context, id uuid.UUID) error     { return nil }
func (m *patientRepoMock) List(_ context.Context) ([]*model.Patient, error) { return nil, nil }

type serviceRepoMock struct {
	services map[uuid.UUID]*model.Service
}

func (m *serviceRepoMock) Create(_ context.Context, s *model.Service) error {
	m.services[s.ID] = s
	return nil
}

func (m *serviceRepoMock) Get(_ context.Context, id uuid.UUID) (*model.Service, error) {
	s, ok := m.services[id]
	if !ok {
		return nil, fmt.Errorf("service not found")
	}
	return s, nil
}

func (m *serviceRepoMock) Update(_ context.Context, s *model.Service) error { return nil }
func (m *serviceRepoMock) Delete(_ context.Context, id uuid.UUID) error     { return nil }
func (m *serviceRepoMock) List(_ context.Context) ([]*model.Service, error) { return nil, nil }

func newTestService(t *testing.T) (*Service, *model.Patient, *model.Service, *model.Service) {
	t.Helper()
	patient := model.NewPatient("njoki", time.Date(1988, 2, 2, 0, 0, 0, 0, time.UTC))
	xray, err := model.NewService("X-Ray", "chest", 100)
	require.NoError(t, err)
	bloodTest, err := model.NewService("Blood Test", "panel", 50)
	require.NoError(t, err)

	svc := NewService(
		newBillRepoMock(),
		&patientRepoMock{patients: map[uuid.UUID]*model.Patient{patient.ID: patient}},
		&serviceRepoMock{services: map[uuid.UUID]*model.Service{xray.ID: xray, bloodTest.ID: bloodTest}},
	)
	return svc, patient, xray, bloodTest
}

func TestCreateBillAccumulatesAmount(t *testing.T) {
	svc, patient, xray, bloodTest := newTestService(t)

	bill, err := svc.CreateBill(context.Background(), &model.CreateBillRequest{
		PatientID: patient.ID,
		Items: []model.BillLineItemRequest{
			{ServiceID: xray.ID, Quantity: 2},
			{ServiceID: bloodTest.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 250.0, bill.Amount())
	assert.Equal(t, model.BillStatusUnpaid, bill.Status())
}

func TestRemoveLineItemShrinksAmount(t *testing.T) {
	svc, patient, xray, bloodTest := newTestService(t)

	bill, err := svc.CreateBill(context.Background(), &model.CreateBillRequest{
		PatientID: patient.ID,
		Items: []model.BillLineItemRequest{
			{ServiceID: xray.ID, Quantity: 2},
			{ServiceID: bloodTest.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	bill, err = svc.RemoveLineItem(context.Background(), bill.ID, bloodTest.ID)
	require.NoError(t, err)
	assert.Equal(t, 200.0, bill.Amount())
	assert.Len(t, bill.LineItems(), 1)
}

func TestCreateBillRejectsInvalidStatus(t *testing.T) {
	svc, patient, _, _ := newTestService(t)

	_, err := svc.CreateBill(context.Background(), &model.CreateBillRequest{
		PatientID: patient.ID,
		Status:    "Overdue",
	})
	assert.Error(t, err)
}

func TestCreateBillRejectsUnknownService(t *testing.T) {
	svc, patient, _, _ := newTestService(t)

	_, err := svc.CreateBill(context.Background(), &model.CreateBillRequest{
		PatientID: patient.ID,
		Items:     []model.BillLineItemRequest{{ServiceID: uuid.New(), Quantity: 1}},
	})
	assert.Error(t, err)
}

func TestCreateBillRejectsNonPositiveQuantity(t *testing.T) {
	svc, patient, xray, _ := newTestService(t)

	_, err := svc.CreateBill(context.Background(), &model.CreateBillRequest{
		PatientID: patient.ID,
		Items:     []model.BillLineItemRequest{{ServiceID: xray.ID, Quantity: 0}},
	})
	assert.Error(t, err)
}
