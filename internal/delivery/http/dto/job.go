package dto

type JobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Stipend     string `json:"stipend"`
	Type        string `json:"type"`
	Location    string `json:"location"`
	Status      string `json:"status"`
}

type ApplyRequest struct {
	JobID string `json:"job_id"`
}

type BulkStatusRequest struct {
	ApplicationIDs []string `json:"application_ids"`
	Status         string   `json:"status"`
	Note           string   `json:"note"`
}
