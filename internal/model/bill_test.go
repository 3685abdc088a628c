package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBill(t *testing.T) (*Bill, *Service, *Service) {
	t.Helper()
	patient := newTestPatient()
	bill, err := NewBill(patient, time.Now())
	require.NoError(t, err)

	xray, err := NewService("X-Ray", "Chest X-Ray", 100)
	require.NoError(t, err)
	bloodTest, err := NewService("Blood Test", "Full panel", 50)
	require.NoError(t, err)
	return bill, xray, bloodTest
}

func TestBillAmountTracksLineItems(t *testing.T) {
	bill, xray, bloodTest := newTestBill(t)

	_, err := bill.AddLineItem(xray, 2, "")
	require.NoError(t, err)
	_, err = bill.AddLineItem(bloodTest, 1, "fasting")
	require.NoError(t, err)

	assert.Equal(t, 250.0, bill.Amount())

	require.NoError(t, bill.RemoveLineItem(bloodTest.ID))
	assert.Equal(t, 200.0, bill.Amount())

	require.NoError(t, bill.RemoveLineItem(xray.ID))
	assert.Equal(t, 0.0, bill.Amount())
	assert.Empty(t, bill.LineItems())
}

func TestBillAmountSurvivesOutOfOrderRemoval(t *testing.T) {
	bill, xray, bloodTest := newTestBill(t)
	ecg, err := NewService("ECG", "Resting ECG", 75)
	require.NoError(t, err)

	_, err = bill.AddLineItem(xray, 1, "")
	require.NoError(t, err)
	_, err = bill.AddLineItem(bloodTest, 2, "")
	require.NoError(t, err)
	_, err = bill.AddLineItem(ecg, 3, "")
	require.NoError(t, err)

	require.NoError(t, bill.RemoveLineItem(bloodTest.ID))

	var sum float64
	for _, item := range bill.LineItems() {
		sum += item.Total()
	}
	assert.Equal(t, sum, bill.Amount())
	assert.Equal(t, 325.0, bill.Amount())
}

func TestBillAmountExactWithNonRepresentablePrices(t *testing.T) {
	patient := newTestPatient()
	bill, err := NewBill(patient, time.Now())
	require.NoError(t, err)

	var services []*Service
	for i, price := range []float64{0.1, 0.2, 0.3} {
		svc, err := NewService("Consultation", "Tiered consultation", price)
		require.NoError(t, err)
		services = append(services, svc)
		_, err = bill.AddLineItem(svc, i+1, "")
		require.NoError(t, err)
	}

	// 0.1+0.2 already rounds; removing the middle item must not leave
	// the residue of intermediate additions behind.
	require.NoError(t, bill.RemoveLineItem(services[1].ID))

	var sum float64
	for _, item := range bill.LineItems() {
		sum += item.Total()
	}
	assert.Equal(t, sum, bill.Amount())

	require.NoError(t, bill.LineItems()[0].SetQuantity(7))
	sum = 0
	for _, item := range bill.LineItems() {
		sum += item.Total()
	}
	assert.Equal(t, sum, bill.Amount())
}

func TestBillLineItemQuantityValidation(t *testing.T) {
	bill, xray, _ := newTestBill(t)

	_, err := bill.AddLineItem(xray, 0, "")
	assert.Error(t, err)
	_, err = bill.AddLineItem(xray, -1, "")
	assert.Error(t, err)
	assert.Equal(t, 0.0, bill.Amount(), "rejected line items leave the amount untouched")

	item, err := bill.AddLineItem(xray, 1, "")
	require.NoError(t, err)
	assert.Equal(t, 100.0, bill.Amount())

	require.Error(t, item.SetQuantity(0))
	assert.Equal(t, 1, item.Quantity())

	require.NoError(t, item.SetQuantity(3))
	assert.Equal(t, 300.0, bill.Amount(), "quantity changes adjust the amount by the delta")
}

func TestBillRejectsDuplicateService(t *testing.T) {
	bill, xray, _ := newTestBill(t)

	_, err := bill.AddLineItem(xray, 1, "")
	require.NoError(t, err)
	_, err = bill.AddLineItem(xray, 2, "")
	assert.Error(t, err, "a service appears on a bill at most once")
	assert.Equal(t, 100.0, bill.Amount())
}

func TestBillStatusEnumeration(t *testing.T) {
	bill, _, _ := newTestBill(t)
	assert.Equal(t, BillStatusUnpaid, bill.Status(), "new bills default to Unpaid")

	require.NoError(t, bill.SetStatus(BillStatusPaid))
	require.NoError(t, bill.SetStatus(BillStatusPartiallyPaid))

	err := bill.SetStatus("Overdue")
	require.Error(t, err)
	assert.Equal(t, BillStatusPartiallyPaid, bill.Status())
}

func TestBillServicesProjectionPreservesInsertionOrder(t *testing.T) {
	bill, xray, bloodTest := newTestBill(t)

	_, err := bill.AddLineItem(bloodTest, 1, "")
	require.NoError(t, err)
	_, err = bill.AddLineItem(xray, 1, "")
	require.NoError(t, err)

	services := bill.Services()
	require.Len(t, services, 2)
	assert.Same(t, bloodTest, services[0])
	assert.Same(t, xray, services[1])
}

func TestServicePriceChangeResyncsBillAmounts(t *testing.T) {
	bill, xray, _ := newTestBill(t)

	_, err := bill.AddLineItem(xray, 2, "")
	require.NoError(t, err)
	require.Equal(t, 200.0, bill.Amount())

	require.NoError(t, xray.SetPrice(120))
	assert.Equal(t, 240.0, bill.Amount())
}
