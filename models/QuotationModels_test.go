package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuotationStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to string }{
		{QuotationStatusDraft, QuotationStatusSent},
		{QuotationStatusDraft, QuotationStatusCancelled},
		{QuotationStatusSent, QuotationStatusApproved},
		{QuotationStatusSent, QuotationStatusRejected},
		{QuotationStatusSent, QuotationStatusCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransitionQuotationStatus(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	forbidden := []struct{ from, to string }{
		{QuotationStatusDraft, QuotationStatusApproved},
		{QuotationStatusDraft, QuotationStatusRejected},
		{QuotationStatusApproved, QuotationStatusSent},
		{QuotationStatusApproved, QuotationStatusCancelled},
		{QuotationStatusRejected, QuotationStatusDraft},
		{QuotationStatusCancelled, QuotationStatusSent},
		{QuotationStatusSent, QuotationStatusDraft},
		{QuotationStatusDraft, QuotationStatusDraft},
	}
	for _, tc := range forbidden {
		assert.False(t, CanTransitionQuotationStatus(tc.from, tc.to), "%s -> %s should be rejected", tc.from, tc.to)
	}

	assert.False(t, CanTransitionQuotationStatus("UNKNOWN", QuotationStatusSent))
}
