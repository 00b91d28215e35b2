package dto

type UpdateMeRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

type UserStatusRequest struct {
	Active *bool `json:"active"`
}

type BookmarkResponse struct {
	JobID      string `json:"job_id"`
	Bookmarked bool   `json:"bookmarked"`
}
