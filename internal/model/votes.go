package model

import "time"

type Verdict string

const (
	VerdictGuilty    Verdict = "guilty"
	VerdictNotGuilty Verdict = "not_guilty"
)

func (v Verdict) Valid() bool {
	return v == VerdictGuilty || v == VerdictNotGuilty
}

type Vote struct {
	ID        int64     `json:"id"`
	CaseID    int64     `json:"case_id"`
	Juror     string    `json:"juror"`
	Verdict   Verdict   `json:"verdict"`
	CreatedAt time.Time `json:"created_at"`
}

type VoteRequest struct {
	Verdict Verdict `json:"verdict" validate:"required,verdict"`
}

type Tally struct {
	CaseID     int64 `json:"case_id"`
	Guilty     int64 `json:"guilty"`
	NotGuilty  int64 `json:"not_guilty"`
	TotalVotes int64 `json:"total_votes"`
}
