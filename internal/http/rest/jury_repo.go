package rest

import (
	"context"
	"fmt"

	"github.com/bwise1/court_cases/internal/model"
)

// CreateVoteRepo relies on votes_case_id_juror_key to reject a second vote
// from the same juror, including one racing this insert.
func (api *API) CreateVoteRepo(ctx context.Context, vote model.Vote) (model.Vote, error) {
	stmt := `
        INSERT INTO votes (case_id, juror, verdict)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `
	err := api.DB.QueryRow(ctx, stmt, vote.CaseID, vote.Juror, string(vote.Verdict)).Scan(
		&vote.ID,
		&vote.CreatedAt,
	)
	if err != nil {
		return model.Vote{}, fmt.Errorf("create vote: %w", err)
	}
	return vote, nil
}

func (api *API) GetTallyRepo(ctx context.Context, caseID int64) (model.Tally, error) {
	stmt := `SELECT verdict, COUNT(*) FROM votes WHERE case_id = $1 GROUP BY verdict`

	rows, err := api.DB.Query(ctx, stmt, caseID)
	if err != nil {
		return model.Tally{}, fmt.Errorf("tally votes: %w", err)
	}
	defer rows.Close()

	tally := model.Tally{CaseID: caseID}
	for rows.Next() {
		var (
			verdict string
			count   int64
		)
		if err := rows.Scan(&verdict, &count); err != nil {
			return model.Tally{}, fmt.Errorf("scan tally row: %w", err)
		}
		switch model.Verdict(verdict) {
		case model.VerdictGuilty:
			tally.Guilty = count
		case model.VerdictNotGuilty:
			tally.NotGuilty = count
		}
	}
	if err := rows.Err(); err != nil {
		return model.Tally{}, fmt.Errorf("tally votes: %w", err)
	}

	tally.TotalVotes = tally.Guilty + tally.NotGuilty
	return tally, nil
}
