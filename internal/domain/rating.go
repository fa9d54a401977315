package domain

type Rating struct {
	ID         int32  `json:"id"`
	RequestID  int32  `json:"request_id"`
	ReviewerID int32  `json:"reviewer_id"`
	RateeID    int32  `json:"ratee_id"`
	Score      int32  `json:"score"`
	Comment    string `json:"comment,omitempty"`
	CreatedOn  string `json:"created_on"`
}
