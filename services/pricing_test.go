package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/little-lemon/little-lemon-api/models"
)

func TestLinePrice(t *testing.T) {
	tests := []struct {
		name      string
		unitPrice float64
		quantity  int
		expected  float64
	}{
		{"single item", 8.99, 1, 8.99},
		{"two items", 8.99, 2, 17.98},
		{"three items", 4.50, 3, 13.50},
		{"float rounding stays at cents", 0.10, 3, 0.30},
		{"zero price", 0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LinePrice(tt.unitPrice, tt.quantity))
		})
	}
}

func TestCartTotal(t *testing.T) {
	items := []models.CartItem{
		{Price: 17.98},
		{Price: 4.50},
	}
	assert.Equal(t, 22.48, CartTotal(items))
	assert.Equal(t, float64(0), CartTotal(nil))
}

func TestOrderTotal(t *testing.T) {
	items := []models.OrderItem{
		{Price: 17.98},
		{Price: 4.50},
		{Price: 0.30},
	}
	assert.Equal(t, 22.78, OrderTotal(items))
	assert.Equal(t, float64(0), OrderTotal(nil))
}
