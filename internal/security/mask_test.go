package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskSensitive(t *testing.T) {
	masked := MaskSensitive(map[string]interface{}{
		"email":       "customer@example.com",
		"phone":       "+15551234567",
		"api_key":     "sk-abcdef",
		"customer_id": uint(42),
		"intent":      "order_status",
	})

	assert.Equal(t, "cu***om", masked["email"])
	assert.Equal(t, "+1***67", masked["phone"])
	assert.Equal(t, "sk***ef", masked["api_key"])
	assert.Equal(t, uint(42), masked["customer_id"])
	assert.Equal(t, "order_status", masked["intent"])
}

func TestMaskSensitiveShortValues(t *testing.T) {
	masked := MaskSensitive(map[string]interface{}{
		"email": "a@b",
		"token": nil,
	})
	assert.Equal(t, "***", masked["email"])
	assert.Nil(t, masked["token"])
}

func TestMaskSensitiveLeavesEmptyValues(t *testing.T) {
	masked := MaskSensitive(map[string]interface{}{
		"email": "",
		"phone": "",
	})
	assert.Equal(t, "", masked["email"])
	assert.Equal(t, "", masked["phone"])
}

func TestMaskSensitiveMatchesSubstringKeys(t *testing.T) {
	masked := MaskSensitive(map[string]interface{}{
		"customer_email": "customer@example.com",
		"Authorization":  "Bearer abc123456",
	})
	assert.Equal(t, "cu***om", masked["customer_email"])
	assert.Equal(t, "Be***56", masked["Authorization"])
}
