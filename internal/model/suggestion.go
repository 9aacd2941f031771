package model

// CitySuggestion is a single city autocomplete entry.
type CitySuggestion struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// StreetSuggestion is a single street autocomplete entry.
type StreetSuggestion struct {
	Name string `json:"name"`
}
