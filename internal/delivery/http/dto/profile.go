package dto

type StudentRequest struct {
	Email     string `json:"email"`
	Skills    string `json:"skills"`
	Education string `json:"education"`
	ResumeURL string `json:"resume_url"`
}

type RecruiterRequest struct {
	Email       string `json:"email"`
	CompanyName string `json:"company_name"`
	Designation string `json:"designation"`
}
