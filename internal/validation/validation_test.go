package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidWalletID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"FLD20260001", true},
		{"FLD2026000199", true},
		{"FLDAB12CD34", true},
		{"FLD1234567", false},       // too short
		{"FLD1234567890123", false}, // too long
		{"fld20260001", false},      // lower case
		{"XYZ20260001", false},      // wrong prefix
		{"FLD2026-001", false},      // bad character
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidWalletID(tt.id))
		})
	}
}

func TestValidator_Registration(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		v := New()
		v.Registration("ade", "ade@example.com", "+2348012345678", "str0ng!pass", "Ade")
		assert.True(t, v.Valid())
	})

	t.Run("collects every failing field", func(t *testing.T) {
		v := New()
		v.Registration("", "not-an-email", "abc", "short", "")
		assert.False(t, v.Valid())
		for _, field := range []string{"username", "email", "phone", "password", "name"} {
			assert.Contains(t, v.Errors, field)
		}
	})
}

func TestValidator_Transfer(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		v := New()
		v.Transfer("FLD20260002", 500, "lunch")
		assert.True(t, v.Valid())
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		v := New()
		v.Transfer("FLD20260002", 0, "")
		assert.Contains(t, v.Errors, "amount")
	})

	t.Run("rejects oversized note", func(t *testing.T) {
		v := New()
		note := make([]byte, MaxNoteLength+1)
		for i := range note {
			note[i] = 'x'
		}
		v.Transfer("FLD20260002", 500, string(note))
		assert.Contains(t, v.Errors, "note")
	})
}

func TestValidator_TopUp(t *testing.T) {
	v := New()
	v.TopUp(60000)
	assert.Contains(t, v.Errors, "amount")

	v = New()
	v.TopUp(50000)
	assert.True(t, v.Valid())
}

func TestValidator_Password(t *testing.T) {
	v := New()
	v.Password("password", "longenough!")
	assert.True(t, v.Valid())

	v = New()
	v.Password("password", "nospecialchar1")
	assert.Contains(t, v.Errors, "password")
}
