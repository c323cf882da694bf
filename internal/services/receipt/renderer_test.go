package receipt

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	apperr "fluidit/internal/errors"
	"fluidit/internal/services/transaction"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReceipt() *transaction.Receipt {
	return &transaction.Receipt{
		Reference:         "TXN00000001AAAAA",
		Type:              "payment",
		Status:            "completed",
		Amount:            500,
		Fee:               10,
		Total:             510,
		SenderName:        "Ade",
		SenderWalletID:    "FLD20260001",
		RecipientName:     "Bisi",
		RecipientWalletID: "FLD20260002",
		Note:              "lunch",
		Date:              time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()

	t.Run("json round-trips the data", func(t *testing.T) {
		data, contentType, err := r.Render(sampleReceipt(), FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, "application/json", contentType)

		var decoded transaction.Receipt
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, *sampleReceipt(), decoded)
	})

	t.Run("empty format defaults to json", func(t *testing.T) {
		_, contentType, err := r.Render(sampleReceipt(), "")
		require.NoError(t, err)
		assert.Equal(t, "application/json", contentType)
	})

	t.Run("html shows every field", func(t *testing.T) {
		data, contentType, err := r.Render(sampleReceipt(), FormatHTML)
		require.NoError(t, err)
		assert.Equal(t, "text/html; charset=utf-8", contentType)

		html := string(data)
		for _, want := range []string{"TXN00000001AAAAA", "Ade", "Bisi",
			"FLD20260001", "FLD20260002", "NGN 500.00", "NGN 10.00", "NGN 510.00", "lunch"} {
			assert.Contains(t, html, want)
		}
	})

	t.Run("html escapes hostile notes", func(t *testing.T) {
		receipt := sampleReceipt()
		receipt.Note = `<script>alert("x")</script>`

		data, _, err := r.Render(receipt, FormatHTML)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "<script>")
	})

	t.Run("pdf produces a pdf document", func(t *testing.T) {
		data, contentType, err := r.Render(sampleReceipt(), FormatPDF)
		require.NoError(t, err)
		assert.Equal(t, "application/pdf", contentType)
		assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
	})

	t.Run("unknown format is a validation error", func(t *testing.T) {
		_, _, err := r.Render(sampleReceipt(), "docx")
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}
