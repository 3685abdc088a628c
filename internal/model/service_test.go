package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceNameValidation(t *testing.T) {
	svc, err := NewService("  General Checkup  ", "routine", 500)
	require.NoError(t, err)
	assert.Equal(t, "General Checkup", svc.Name())

	require.Error(t, svc.SetName("   "))
	assert.Equal(t, "General Checkup", svc.Name())

	_, err = NewService("", "no name", 10)
	assert.Error(t, err)
}

func TestServicePriceValidation(t *testing.T) {
	_, err := NewService("MRI Scan", "full body", 0)
	assert.Error(t, err)
	_, err = NewService("MRI Scan", "full body", -5)
	assert.Error(t, err)

	svc, err := NewService("MRI Scan", "full body", 0.01)
	require.NoError(t, err)
	assert.Equal(t, 0.01, svc.Price())

	require.Error(t, svc.SetPrice(0))
	assert.Equal(t, 0.01, svc.Price())
}
