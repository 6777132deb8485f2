package model

// SearchIntentKind is what the language model decided the user wants.
type SearchIntentKind string

const (
	IntentSearchSpecialist SearchIntentKind = "search_specialist"
	IntentSearchVenue      SearchIntentKind = "search_venue"
	IntentGeneralQuestion  SearchIntentKind = "general_question"
)

// SearchIntent is the structured object the model emits for a free-text
// query.
type SearchIntent struct {
	Category  string           `json:"category,omitempty"`
	City      string           `json:"city,omitempty"`
	MaxPrice  float64          `json:"maxPrice,omitempty"`
	Intent    SearchIntentKind `json:"intent"`
	QueryTags []string         `json:"query_tags"`
}

type SearchRequest struct {
	Query string `json:"query" binding:"required,min=2,max=500"`
}

// SearchResponse reports both the results and how they were found:
// "intent" for the structured path, "fallback" for plain text search.
type SearchResponse struct {
	Intent  *SearchIntent      `json:"intent,omitempty"`
	Path    string             `json:"path"`
	Results []*ProviderSummary `json:"results"`
}
