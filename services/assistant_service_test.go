package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"travomine/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatModel struct {
	reply      string
	err        error
	lastPrompt string
}

func (f *fakeChatModel) Complete(_ context.Context, systemPrompt string, _ []models.AssistantMessage) (string, error) {
	f.lastPrompt = systemPrompt
	return f.reply, f.err
}

type fakeIndex struct {
	hits []PackageHit
	err  error
}

func (f *fakeIndex) Upsert(context.Context, string, string) error { return nil }

func (f *fakeIndex) Search(context.Context, string, int) ([]PackageHit, error) {
	return f.hits, f.err
}

type fakeLookup struct {
	quotation *models.Quotation
	err       error
	lastRef   string
}

func (f *fakeLookup) FetchByNumber(quotationNo string) (*models.Quotation, error) {
	f.lastRef = quotationNo
	return f.quotation, f.err
}

func userMessage(content string) []models.AssistantMessage {
	return []models.AssistantMessage{{Role: "user", Content: content}}
}

const validReply = `{"message": "Here is your draft.", "pdfData": {"place": "Kandy", "groupSize": 4, "nights": 3, "total": 1280.00}}`

func TestDraftQuotationHappyPath(t *testing.T) {
	chat := &fakeChatModel{reply: validReply}
	svc := NewAssistantService(chat, &fakeIndex{}, &fakeLookup{err: errors.New("none")})

	resp, err := svc.DraftQuotation(context.Background(), userMessage("4 people, 3 nights in Kandy"))
	require.NoError(t, err)

	assert.Equal(t, "Here is your draft.", resp.Message)
	require.NotNil(t, resp.PDFData)
	assert.Equal(t, "Kandy", resp.PDFData.Place)
	assert.Equal(t, 4, resp.PDFData.GroupSize)
}

func TestDraftQuotationEmptyConversation(t *testing.T) {
	svc := NewAssistantService(&fakeChatModel{}, nil, &fakeLookup{})

	_, err := svc.DraftQuotation(context.Background(), nil)

	var invalidInput *InvalidInputError
	require.ErrorAs(t, err, &invalidInput)
}

func TestDraftQuotationFencedJSONReply(t *testing.T) {
	chat := &fakeChatModel{reply: "Sure, here you go:\n```json\n" + validReply + "\n```\nLet me know."}
	svc := NewAssistantService(chat, nil, &fakeLookup{err: errors.New("none")})

	resp, err := svc.DraftQuotation(context.Background(), userMessage("draft it"))
	require.NoError(t, err)
	assert.Equal(t, "Here is your draft.", resp.Message)
}

func TestDraftQuotationNoJSONInReply(t *testing.T) {
	chat := &fakeChatModel{reply: "I cannot help with that."}
	svc := NewAssistantService(chat, nil, &fakeLookup{err: errors.New("none")})

	_, err := svc.DraftQuotation(context.Background(), userMessage("draft it"))

	var parseErr *GenerationParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestDraftQuotationMissingMessageField(t *testing.T) {
	chat := &fakeChatModel{reply: `{"pdfData": {"place": "Kandy"}}`}
	svc := NewAssistantService(chat, nil, &fakeLookup{err: errors.New("none")})

	_, err := svc.DraftQuotation(context.Background(), userMessage("draft it"))

	var parseErr *GenerationParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestDraftQuotationMissingPDFDataField(t *testing.T) {
	chat := &fakeChatModel{reply: `{"message": "Here is some chat prose with no draft."}`}
	svc := NewAssistantService(chat, nil, &fakeLookup{err: errors.New("none")})

	_, err := svc.DraftQuotation(context.Background(), userMessage("draft it"))

	var parseErr *GenerationParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestDraftQuotationTimeout(t *testing.T) {
	chat := &fakeChatModel{err: fmt.Errorf("request aborted: %w", context.DeadlineExceeded)}
	svc := NewAssistantService(chat, nil, &fakeLookup{err: errors.New("none")})

	_, err := svc.DraftQuotation(context.Background(), userMessage("draft it"))

	var timeout *ExternalServiceTimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, "generation", timeout.Op)
}

func TestDraftQuotationUsesStoredQuotationContext(t *testing.T) {
	chat := &fakeChatModel{reply: validReply}
	lookup := &fakeLookup{quotation: &models.Quotation{QuotationNo: "Q-7K2M9XQ4", Place: "Ella", Total: 999}}
	svc := NewAssistantService(chat, &fakeIndex{}, lookup)

	_, err := svc.DraftQuotation(context.Background(), userMessage("resend Q-7K2M9XQ4 with one more night"))
	require.NoError(t, err)

	assert.Equal(t, "Q-7K2M9XQ4", lookup.lastRef)
	assert.Contains(t, chat.lastPrompt, "Stored data for quotation Q-7K2M9XQ4")
	assert.Contains(t, chat.lastPrompt, "Ella")
}

func TestDraftQuotationUnknownReference(t *testing.T) {
	chat := &fakeChatModel{reply: validReply}
	lookup := &fakeLookup{err: errors.New("record not found")}
	svc := NewAssistantService(chat, &fakeIndex{}, lookup)

	_, err := svc.DraftQuotation(context.Background(), userMessage("show me Q-ZZZZ99"))
	require.NoError(t, err)

	assert.Contains(t, chat.lastPrompt, "no quotation with that reference exists")
	assert.Contains(t, chat.lastPrompt, "do not invent")
}

func TestDraftQuotationRetrievalGroundsPrompt(t *testing.T) {
	chat := &fakeChatModel{reply: validReply}
	index := &fakeIndex{hits: []PackageHit{
		{ID: "pkg-1", Text: "Hill country rail tour, 5 nights"},
		{ID: "pkg-2", Text: "South coast surf escape, 4 nights"},
	}}
	svc := NewAssistantService(chat, index, &fakeLookup{err: errors.New("none")})

	_, err := svc.DraftQuotation(context.Background(), userMessage("something scenic for a week"))
	require.NoError(t, err)

	assert.Contains(t, chat.lastPrompt, "Hill country rail tour")
	assert.Contains(t, chat.lastPrompt, "South coast surf escape")
}

func TestDraftQuotationDegradesWhenRetrievalFails(t *testing.T) {
	chat := &fakeChatModel{reply: validReply}
	index := &fakeIndex{err: &RetrievalUnavailableError{Cause: errors.New("connection refused")}}
	svc := NewAssistantService(chat, index, &fakeLookup{err: errors.New("none")})

	resp, err := svc.DraftQuotation(context.Background(), userMessage("beach holiday for two"))
	require.NoError(t, err)

	assert.Equal(t, "Here is your draft.", resp.Message)
	assert.NotContains(t, chat.lastPrompt, "Context:")
}

func TestQuotationRefPattern(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"please reopen Q-7K2M9XQ4 for me", "Q-7K2M9XQ4"},
		{"is Q-ABC123 ready?", "Q-ABC123"},
		{"order q-abc123 is lowercase", ""},
		{"Q-12345 is too short", ""},
		{"no reference here", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, quotationRefPattern.FindString(tc.in), "input: %s", tc.in)
	}
}

func TestExtractDraftJSON(t *testing.T) {
	t.Run("bare JSON", func(t *testing.T) {
		payload, err := ExtractDraftJSON(`{"message": "hi"}`)
		require.NoError(t, err)
		assert.JSONEq(t, `{"message": "hi"}`, string(payload))
	})

	t.Run("fenced block", func(t *testing.T) {
		payload, err := ExtractDraftJSON("```json\n{\"message\": \"hi\"}\n```")
		require.NoError(t, err)
		assert.JSONEq(t, `{"message": "hi"}`, string(payload))
	})

	t.Run("prose wrapped", func(t *testing.T) {
		payload, err := ExtractDraftJSON(`Here is the draft: {"message": "hi"} hope that helps!`)
		require.NoError(t, err)
		assert.JSONEq(t, `{"message": "hi"}`, string(payload))
	})

	t.Run("repairable JSON", func(t *testing.T) {
		payload, err := ExtractDraftJSON(`{"message": "hi", "pdfData": {"place": "Kandy",}}`)
		require.NoError(t, err)
		assert.JSONEq(t, `{"message": "hi", "pdfData": {"place": "Kandy"}}`, string(payload))
	})

	t.Run("no JSON at all", func(t *testing.T) {
		_, err := ExtractDraftJSON("sorry, nothing structured here")
		var parseErr *GenerationParseError
		require.ErrorAs(t, err, &parseErr)
	})
}
