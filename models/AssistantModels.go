package models

// AssistantMessage is one turn of the drafting conversation.
type AssistantMessage struct {
	Role    string `json:"role" example:"user"`
	Content string `json:"content" example:"5 nights in Kandy for 4 people, half board"`
}

// AssistantRequest is the body of the assistant draft endpoint.
type AssistantRequest struct {
	Messages []AssistantMessage `json:"messages" binding:"required"`
}

// AssistantResponse carries the chat prose plus the structured draft.
type AssistantResponse struct {
	Message string          `json:"message"`
	PDFData *QuotationDraft `json:"pdfData,omitempty"`
}

// QuotationDraft is the fixed schema the generation step must emit under the
// pdfData key. It mirrors the quotation aggregate closely enough that the
// employee console can persist it after review.
type QuotationDraft struct {
	QuotationNo string  `json:"quotationNo"`
	Place       string  `json:"place"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	GroupSize   int     `json:"groupSize"`
	Nights      int     `json:"nights"`
	MealPlan    string  `json:"mealPlan"`
	Subtotal    float64 `json:"subtotal"`
	TaxTotal    float64 `json:"taxTotal"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`

	Accommodations []DraftAccommodation `json:"accommodations"`
	Transfers      []DraftTransfer      `json:"transfers"`
	Activities     []DraftActivity      `json:"activities"`
	Itinerary      []DraftItineraryDay  `json:"itinerary"`
	Inclusions     []string             `json:"inclusions"`
	Exclusions     []string             `json:"exclusions"`
}

type DraftAccommodation struct {
	Hotel    string  `json:"hotel"`
	RoomType string  `json:"roomType"`
	Nights   int     `json:"nights"`
	Rate     float64 `json:"rate"`
}

type DraftTransfer struct {
	Description string  `json:"description"`
	Vehicle     string  `json:"vehicle"`
	Days        int     `json:"days"`
	Rate        float64 `json:"rate"`
}

type DraftActivity struct {
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

type DraftItineraryDay struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
