package api

import "time"

// ToolRequest is the JSON payload accepted by every tool endpoint. Each
// endpoint reads the subset of fields it understands.
type ToolRequest struct {
	URL        string `json:"url"`
	Resolution string `json:"resolution,omitempty"`
	StartTime  string `json:"start_time,omitempty"`
	EndTime    string `json:"end_time,omitempty"`
	Chapter    string `json:"chapter,omitempty"`
	Language   string `json:"language,omitempty"`
}

// ToolResponse carries the outcome of a successful tool invocation.
type ToolResponse struct {
	Result string   `json:"result"`
	Files  []string `json:"files,omitempty"`
}

// ErrorResponse carries a failed invocation's message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports service liveness and tool availability.
type HealthResponse struct {
	Status       string             `json:"status"`
	Dependencies []DependencyStatus `json:"dependencies,omitempty"`
}

// DependencyStatus mirrors one external tool check.
type DependencyStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Detail    string `json:"detail,omitempty"`
}

// HistoryRecord is the JSON projection of one history store record.
type HistoryRecord struct {
	ID          int64     `json:"id"`
	Kind        string    `json:"kind"`
	URL         string    `json:"url"`
	Destination string    `json:"destination,omitempty"`
	Outcome     string    `json:"outcome"`
	Message     string    `json:"message,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// HistoryResponse wraps the history listing.
type HistoryResponse struct {
	Records []HistoryRecord `json:"records"`
}
