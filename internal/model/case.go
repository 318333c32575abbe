package model

import "time"

type CaseStatus string

const (
	StatusPending  CaseStatus = "pending"
	StatusApproved CaseStatus = "approved"
	StatusRejected CaseStatus = "rejected"
)

type Case struct {
	ID            int64      `json:"id"`
	DefendantName string     `json:"defendant_name"`
	PlaintiffName string     `json:"plaintiff_name"`
	Argument      string     `json:"argument"`
	Evidence      string     `json:"evidence"`
	Status        CaseStatus `json:"status"`
	SubmittedBy   string     `json:"submitted_by"`
	CreatedAt     time.Time  `json:"created_at"`
}

type SubmitCaseRequest struct {
	DefendantName string `json:"defendant_name" validate:"required"`
	PlaintiffName string `json:"plaintiff_name" validate:"required"`
	Argument      string `json:"argument" validate:"required"`
	Evidence      string `json:"evidence" validate:"required"`
}

type SubmitCaseResponse struct {
	CaseID int64      `json:"case_id"`
	Status CaseStatus `json:"status"`
}

// UpdateCaseRequest carries a judge's edit. Nil fields are left untouched.
type UpdateCaseRequest struct {
	Argument *string `json:"argument,omitempty"`
	Evidence *string `json:"evidence,omitempty"`
}
