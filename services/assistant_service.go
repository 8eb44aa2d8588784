package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"travomine/models"

	"github.com/kaptinlin/jsonrepair"
	"github.com/sashabaranov/go-openai"
)

const (
	defaultChatModel = "gpt-4o-mini"

	// top-K historical package descriptions pulled in as grounding context
	retrievalTopK = 2
)

// quotationRefPattern matches quotation references like Q-7K2M9XQ4 in chat
// messages.
var quotationRefPattern = regexp.MustCompile(`\bQ-[A-Z0-9]{6,}\b`)

// ChatModel is the generative backend of the drafting pipeline.
type ChatModel interface {
	Complete(ctx context.Context, systemPrompt string, history []models.AssistantMessage) (string, error)
}

type openAIChatModel struct {
	client *openai.Client
	model  string
}

// NewOpenAIChatModel builds a chat model over the OpenAI chat completions
// API. baseURL and model are optional overrides.
func NewOpenAIChatModel(apiKey, baseURL, model string) (ChatModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required for chat completions")
	}

	if model == "" {
		model = defaultChatModel
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &openAIChatModel{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

func (m *openAIChatModel) Complete(ctx context.Context, systemPrompt string, history []models.AssistantMessage) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, msg := range history {
		role := openai.ChatMessageRoleUser
		if msg.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}

	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    m.model,
		Messages: msgs,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// QuotationLookup fetches a stored quotation aggregate by its reference.
type QuotationLookup interface {
	FetchByNumber(quotationNo string) (*models.Quotation, error)
}

// AssistantService runs the quotation drafting pipeline: intent extraction,
// context assembly (stored quotation or vector retrieval), constrained
// generation, and JSON extraction/repair.
type AssistantService struct {
	chat   ChatModel
	index  PackageIndex
	lookup QuotationLookup
}

func NewAssistantService(chat ChatModel, index PackageIndex, lookup QuotationLookup) *AssistantService {
	return &AssistantService{chat: chat, index: index, lookup: lookup}
}

// DraftQuotation converts the conversation into chat prose plus a
// structured draft. Retrieval failures degrade to ungrounded generation;
// generation failures are terminal.
func (s *AssistantService) DraftQuotation(ctx context.Context, messages []models.AssistantMessage) (*models.AssistantResponse, error) {
	if len(messages) == 0 {
		return nil, &InvalidInputError{Field: "messages", Reason: "at least one message is required"}
	}

	latest := messages[len(messages)-1].Content
	contextBlock := s.assembleContext(ctx, latest)

	raw, err := s.chat.Complete(ctx, buildSystemPrompt(contextBlock), messages)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &ExternalServiceTimeoutError{Op: "generation"}
		}
		return nil, err
	}

	payload, err := ExtractDraftJSON(raw)
	if err != nil {
		return nil, err
	}

	var out models.AssistantResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, &GenerationParseError{Reason: fmt.Sprintf("extracted JSON does not match the draft schema: %v", err)}
	}
	if out.Message == "" {
		return nil, &GenerationParseError{Reason: "generated document is missing the message field"}
	}
	if out.PDFData == nil {
		return nil, &GenerationParseError{Reason: "generated document is missing the pdfData field"}
	}

	return &out, nil
}

// assembleContext builds the grounding block for the system prompt. When the
// latest message references a quotation the stored aggregate is used;
// otherwise the vector index supplies similar package descriptions. Either
// source failing leaves the draft ungrounded rather than failing the
// request.
func (s *AssistantService) assembleContext(ctx context.Context, latest string) string {
	if ref := quotationRefPattern.FindString(latest); ref != "" {
		quotation, err := s.lookup.FetchByNumber(ref)
		if err != nil {
			// Tell the model the lookup failed so it informs the user
			// instead of fabricating data.
			return fmt.Sprintf("The user referenced quotation %s, but no quotation with that reference exists. Say so; do not invent its contents.", ref)
		}
		data, err := json.MarshalIndent(quotation, "", "  ")
		if err != nil {
			return fmt.Sprintf("The user referenced quotation %s but its data could not be serialised.", ref)
		}
		return fmt.Sprintf("Stored data for quotation %s:\n%s", ref, string(data))
	}

	if s.index == nil {
		return ""
	}

	hits, err := s.index.Search(ctx, latest, retrievalTopK)
	if err != nil {
		log.Printf("Warning: package retrieval unavailable, drafting without grounding: %v", err)
		return ""
	}

	var b strings.Builder
	for i, hit := range hits {
		fmt.Fprintf(&b, "Reference package %d:\n%s\n\n", i+1, hit.Text)
	}
	return strings.TrimSpace(b.String())
}

func buildSystemPrompt(contextBlock string) string {
	var b strings.Builder
	b.WriteString(`You are the quotation assistant of a travel agency back office. ` +
		`From the conversation, draft a client quotation.

Respond with a single JSON object and nothing else. It must have exactly two top-level fields:
- "message": a markdown summary for the chat window
- "pdfData": the structured quotation with fields quotationNo, place, startDate, endDate, groupSize, nights, mealPlan, subtotal, taxTotal, discount, total, accommodations, transfers, activities, itinerary, inclusions, exclusions

Dates are YYYY-MM-DD strings. Money fields are plain numbers. Leave unknown fields empty rather than inventing specifics.`)

	if contextBlock != "" {
		b.WriteString("\n\nContext:\n")
		b.WriteString(contextBlock)
	}
	return b.String()
}

var fencedJSONPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// ExtractDraftJSON locates the JSON payload inside raw model output. The
// output is not guaranteed to be bare JSON: it may sit in a fenced code
// block or be wrapped in prose. Tries the fence first, then the substring
// between the first { and the last }, repairing near-JSON along the way.
func ExtractDraftJSON(raw string) ([]byte, error) {
	candidate := ""
	if m := fencedJSONPattern.FindStringSubmatch(raw); m != nil {
		candidate = m[1]
	} else {
		start := strings.Index(raw, "{")
		end := strings.LastIndex(raw, "}")
		if start >= 0 && end > start {
			candidate = raw[start : end+1]
		}
	}

	if candidate == "" {
		return nil, &GenerationParseError{Reason: "no JSON object found in model output"}
	}

	if json.Valid([]byte(candidate)) {
		return []byte(candidate), nil
	}

	repaired, err := jsonrepair.JSONRepair(candidate)
	if err == nil && json.Valid([]byte(repaired)) {
		return []byte(repaired), nil
	}

	return nil, &GenerationParseError{Reason: "model output could not be repaired into valid JSON"}
}
