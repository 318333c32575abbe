package rest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwise1/court_cases/internal/model"
	"github.com/bwise1/court_cases/util"
	"github.com/bwise1/court_cases/util/values"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var (
	errForbidden    = errors.New("role not permitted for this action")
	errCaseNotFound = errors.New("case not found")
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// namePattern builds a case-insensitive substring LIKE pattern. Wildcards in
// name match literally.
func namePattern(name string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(name)) + "%"
}

func hasRole(actor model.User, roles ...model.Role) bool {
	for _, role := range roles {
		if actor.Role == role {
			return true
		}
	}
	return false
}

func forbidden(actor model.User, action string) error {
	return fmt.Errorf("%w: %s cannot %s", errForbidden, actor.Role, action)
}

func (api *API) SubmitCaseHelper(ctx context.Context, req model.SubmitCaseRequest, actor model.User) (model.SubmitCaseResponse, string, string, error) {
	if !actor.Role.CanSubmitCases() {
		return model.SubmitCaseResponse{}, values.NotAllowed, "Only defendants and plaintiffs can submit cases", forbidden(actor, "submit cases")
	}

	if err := util.ValidateStruct(req); err != nil {
		return model.SubmitCaseResponse{}, values.BadRequestBody, "Invalid case submission", err
	}

	id, err := api.CreateCaseRepo(ctx, newPendingCase(req, actor.Username))
	if err != nil {
		return model.SubmitCaseResponse{}, values.Error, "Failed to submit case", err
	}

	zap.S().Infow("case submitted", "case_id", id, "submitted_by", actor.Username)

	return model.SubmitCaseResponse{
		CaseID: id,
		Status: model.StatusPending,
	}, values.Created, "Case submitted", nil
}

func (api *API) GetAllCasesHelper(ctx context.Context) ([]model.Case, string, string, error) {
	cases, err := api.GetAllCasesRepo(ctx)
	if err != nil {
		return nil, values.Error, "Failed to fetch cases", err
	}
	return cases, values.Success, "Cases fetched successfully", nil
}

func (api *API) SearchCasesByNameHelper(ctx context.Context, name string, actor model.User) ([]model.Case, string, string, error) {
	if !hasRole(actor, model.RoleJuror) {
		return nil, values.NotAllowed, "Only jurors can search cases by name", forbidden(actor, "search cases")
	}

	cases, err := api.SearchCasesByNameRepo(ctx, namePattern(name))
	if err != nil {
		return nil, values.Error, "Failed to search cases", err
	}
	return cases, values.Success, "Cases fetched successfully", nil
}

func (api *API) EditCaseHelper(ctx context.Context, id int64, req model.UpdateCaseRequest, actor model.User) (model.Case, string, string, error) {
	if !hasRole(actor, model.RoleJudge) {
		return model.Case{}, values.NotAllowed, "Only judges can edit cases", forbidden(actor, "edit cases")
	}

	updated, err := api.UpdateCaseRepo(ctx, id, req)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Case{}, values.NotFound, "Case not found", errCaseNotFound
	}
	if err != nil {
		return model.Case{}, values.Error, "Failed to update case", err
	}
	return updated, values.Success, "Case updated", nil
}

func (api *API) DeleteCaseHelper(ctx context.Context, id int64, actor model.User) (string, string, error) {
	if !hasRole(actor, model.RoleJudge) {
		return values.NotAllowed, "Only judges can delete cases", forbidden(actor, "delete cases")
	}

	removedVotes, err := api.DeleteCaseRepo(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return values.NotFound, "Case not found", errCaseNotFound
	}
	if err != nil {
		return values.Error, "Failed to delete case", err
	}

	zap.S().Infow("case deleted", "case_id", id, "removed_votes", removedVotes, "judge", actor.Username)
	return values.Success, "Case deleted", nil
}

// SetCaseStatusHelper backs approve and reject. The write is unconditional,
// so repeating it is harmless.
func (api *API) SetCaseStatusHelper(ctx context.Context, id int64, status model.CaseStatus, actor model.User) (model.Case, string, string, error) {
	if !hasRole(actor, model.RoleJudge) {
		return model.Case{}, values.NotAllowed, "Only judges can decide cases", forbidden(actor, "decide cases")
	}
	if status != model.StatusApproved && status != model.StatusRejected {
		return model.Case{}, values.BadRequestBody, "Cases can only be approved or rejected", fmt.Errorf("invalid target status %q", status)
	}

	updated, err := api.SetCaseStatusRepo(ctx, id, status)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Case{}, values.NotFound, "Case not found", errCaseNotFound
	}
	if err != nil {
		return model.Case{}, values.Error, "Failed to update case status", err
	}

	zap.S().Infow("case status set", "case_id", id, "status", status, "judge", actor.Username)
	return updated, values.Success, "Case " + string(status), nil
}
