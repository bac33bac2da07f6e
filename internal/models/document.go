package models

// Document represents a PDF previously uploaded to the question-answering
// backend. The backend owns the record; the front end only displays it.
type Document struct {
	ID         int64   `json:"id"`
	Filename   string  `json:"filename"`
	UploadDate APITime `json:"upload_date"`
}
