package rest

import (
	"context"
	"errors"

	"github.com/bwise1/court_cases/internal/db"
	"github.com/bwise1/court_cases/internal/model"
	"github.com/bwise1/court_cases/util"
	"github.com/bwise1/court_cases/util/values"
	"go.uber.org/zap"
)

var errAlreadyVoted = errors.New("juror already voted on this case")

func (api *API) CastVoteHelper(ctx context.Context, caseID int64, req model.VoteRequest, actor model.User) (model.Vote, string, string, error) {
	if !hasRole(actor, model.RoleJuror) {
		return model.Vote{}, values.NotAllowed, "Only jurors can vote", forbidden(actor, "vote")
	}

	if err := util.ValidateStruct(req); err != nil {
		return model.Vote{}, values.BadRequestBody, "Verdict must be guilty or not_guilty", err
	}

	exists, err := api.CaseExists(ctx, caseID)
	if err != nil {
		return model.Vote{}, values.Error, "Failed to fetch case", err
	}
	if !exists {
		return model.Vote{}, values.NotFound, "Case not found", errCaseNotFound
	}

	vote, err := api.CreateVoteRepo(ctx, model.Vote{
		CaseID:  caseID,
		Juror:   actor.Username,
		Verdict: req.Verdict,
	})
	switch {
	case db.IsConstraintViolation(err, db.UniqueViolation, db.VotesCaseJurorKey):
		return model.Vote{}, values.Conflict, "Already voted", errAlreadyVoted
	case db.IsConstraintViolation(err, db.ForeignKeyViolation, db.VotesCaseForeignKey):
		// the case was deleted between the existence check and the insert
		return model.Vote{}, values.NotFound, "Case not found", errCaseNotFound
	case err != nil:
		return model.Vote{}, values.Error, "Failed to record vote", err
	}

	zap.S().Infow("vote recorded", "case_id", caseID, "juror", actor.Username)
	return vote, values.Created, "Vote recorded", nil
}

// TallyHelper is open to every authenticated caller and works for cases in
// any status.
func (api *API) TallyHelper(ctx context.Context, caseID int64) (model.Tally, string, string, error) {
	exists, err := api.CaseExists(ctx, caseID)
	if err != nil {
		return model.Tally{}, values.Error, "Failed to fetch case", err
	}
	if !exists {
		return model.Tally{}, values.NotFound, "Case not found", errCaseNotFound
	}

	tally, err := api.GetTallyRepo(ctx, caseID)
	if err != nil {
		return model.Tally{}, values.Error, "Failed to tally votes", err
	}
	return tally, values.Success, "Results fetched successfully", nil
}
