package models

// AskRequest is the question payload sent to the backend's
// /ask_question/ endpoint.
type AskRequest struct {
	DocumentID int64  `json:"document_id"`
	Question   string `json:"question"`
}

// ModelAnswer is one candidate answer from a single backend model.
type ModelAnswer struct {
	Model      string  `json:"model"`
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
}

// Answer is the backend's response to a question.
type Answer struct {
	Answer       string        `json:"answer"`
	Confidence   float64       `json:"confidence"`
	DocumentID   int64         `json:"document_id"`
	Question     string        `json:"question"`
	Timestamp    string        `json:"timestamp,omitempty"`
	ModelAnswers []ModelAnswer `json:"model_answers,omitempty"`
}

// HealthStatus is the backend's /health/ payload. Fields beyond Status are
// informational and may be absent.
type HealthStatus struct {
	Status    string `json:"status"`
	Database  string `json:"database,omitempty"`
	Model     string `json:"model,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}
