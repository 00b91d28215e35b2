package dto

type ScheduleInterviewRequest struct {
	ApplicationID    string `json:"application_id"`
	Type             string `json:"type"`
	ScheduledAt      string `json:"scheduled_at"`
	EndAt            string `json:"end_at"`
	InterviewerEmail string `json:"interviewer_email"`
	InterviewerName  string `json:"interviewer_name"`
	Location         string `json:"location"`
	MeetingLink      string `json:"meeting_link"`
}

type RescheduleInterviewRequest struct {
	ScheduledAt string `json:"scheduled_at"`
	EndAt       string `json:"end_at"`
	Reason      string `json:"reason"`
}

type CompleteInterviewRequest struct {
	Score    *int   `json:"score"`
	Feedback string `json:"feedback"`
}

type CancelInterviewRequest struct {
	Reason string `json:"reason"`
}
