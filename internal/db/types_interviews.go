package db

// Interview is a logged interview round for an application
type Interview struct {
	ID               string `json:"id"`
	ApplicationID    string `json:"application_id"`
	InterviewDate    string `json:"interview_date,omitempty"`
	InterviewType    string `json:"interview_type,omitempty"`
	InterviewerName  string `json:"interviewer_name,omitempty"`
	InterviewerTitle string `json:"interviewer_title,omitempty"`
	QuestionsAsked   string `json:"questions_asked,omitempty"`
	MyAnswers        string `json:"my_answers,omitempty"`
	FeedbackReceived string `json:"feedback_received,omitempty"`
	NextSteps        string `json:"next_steps,omitempty"`
	PreparationNotes string `json:"preparation_notes,omitempty"`
	CreatedAt        string `json:"created_at"`
}

// InterviewCreateInput holds the fields for logging an interview
type InterviewCreateInput struct {
	ApplicationID    string
	InterviewDate    string
	InterviewType    string
	InterviewerName  string
	InterviewerTitle string
	QuestionsAsked   string
	MyAnswers        string
	FeedbackReceived string
	NextSteps        string
	PreparationNotes string
}
