package repository

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateQuotationNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^Q-[A-Z2-9]{8}$`)

	for i := 0; i < 100; i++ {
		ref := GenerateQuotationNumber()
		assert.Regexp(t, pattern, ref)

		// None of the easily confused characters may appear.
		body := strings.TrimPrefix(ref, "Q-")
		assert.NotContains(t, body, "O")
		assert.NotContains(t, body, "I")
		assert.NotContains(t, body, "0")
		assert.NotContains(t, body, "1")
	}
}

func TestGenerateQuotationNumberVariesAcrossCalls(t *testing.T) {
	// Back-to-back calls in a tight loop must not repeat; a time-seeded
	// per-call source collides when two calls land on the same nanosecond.
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[GenerateQuotationNumber()] = true
	}
	assert.Len(t, seen, 50)
}

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"defaults pass through", 1, 20, 1, 20},
		{"zero page size", 1, 0, 1, 20},
		{"negative page size", 3, -5, 3, 20},
		{"oversized page size", 1, 500, 1, 20},
		{"zero page", 0, 10, 1, 10},
		{"max page size kept", 2, 100, 2, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, pageSize := NormalizePage(tc.page, tc.pageSize)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantPageSize, pageSize)
		})
	}
}

func TestInvalidTransitionErrorMatching(t *testing.T) {
	base := &InvalidTransitionError{QuotationNo: "Q-7K2M9XQ4", From: "APPROVED", To: "DRAFT"}
	assert.Equal(t, "cannot transition quotation Q-7K2M9XQ4 from APPROVED to DRAFT", base.Error())

	wrapped := fmt.Errorf("update failed: %w", base)
	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, wrapped, &transitionErr)
	assert.Equal(t, "APPROVED", transitionErr.From)
}
