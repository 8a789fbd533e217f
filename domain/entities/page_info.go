package entities

import "time"

// PageInfo describes the page a test was on when it failed
type PageInfo struct {
	Test       string    `json:"test"`
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	Screenshot string    `json:"screenshot,omitempty"`
	CapturedAt time.Time `json:"captured_at"`
	// Errors lists what could not be captured
	Errors []string `json:"errors,omitempty"`
}
