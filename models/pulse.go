package models

// Pulse is the payload returned by the sentiment backend's /market-pulse endpoint.
type Pulse struct {
	Ticker         string     `json:"ticker"`
	AsOf           string     `json:"as_of"`
	Momentum       Momentum   `json:"momentum"`
	News           []NewsItem `json:"news"`
	Pulse          string     `json:"pulse"` // bullish, bearish or neutral
	LLMExplanation string     `json:"llm_explanation"`
}

type Momentum struct {
	Returns []float64 `json:"returns"` // daily returns in percent
	Score   float64   `json:"score"`
}

type NewsItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}
