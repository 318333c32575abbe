package rest

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/bwise1/court_cases/internal/model"
	"github.com/bwise1/court_cases/util"
	"github.com/bwise1/court_cases/util/values"
	"github.com/bwise1/court_cases/util/websockets"
	"github.com/go-chi/chi/v5"
)

func (api *API) CaseRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)
		r.Method(http.MethodPost, "/submit", Handler(api.SubmitCase))
		r.Method(http.MethodGet, "/all", Handler(api.GetAllCases))
		r.Method(http.MethodGet, "/by-name/{name}", Handler(api.SearchCasesByName))
		r.Method(http.MethodPatch, "/edit/{id}", Handler(api.EditCase))
		r.Method(http.MethodDelete, "/delete/{id}", Handler(api.DeleteCase))
		r.Method(http.MethodPatch, "/approve/{id}", Handler(api.ApproveCase))
		r.Method(http.MethodPatch, "/reject/{id}", Handler(api.RejectCase))
	})

	return mux
}

func caseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (api *API) SubmitCase(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := util.TracingFromContext(r.Context())

	actor, err := util.GetUserFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user from context", values.NotAuthorised, &tc)
	}

	var req model.SubmitCaseRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	submitted, status, message, err := api.SubmitCaseHelper(r.Context(), req, actor)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}
	api.publish(websockets.EventCaseSubmitted, submitted.CaseID, actor.Username, submitted)

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       submitted,
	}
}

func (api *API) GetAllCases(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := util.TracingFromContext(r.Context())

	cases, status, message, err := api.GetAllCasesHelper(r.Context())
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       cases,
	}
}

func (api *API) SearchCasesByName(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := util.TracingFromContext(r.Context())

	actor, err := util.GetUserFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user from context", values.NotAuthorised, &tc)
	}

	// chi matches on RawPath when it is set, leaving the param escaped
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			return respondWithError(err, "invalid name", values.BadRequestBody, &tc)
		}
		name = unescaped
	}

	cases, status, message, err := api.SearchCasesByNameHelper(r.Context(), name, actor)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       cases,
	}
}

func (api *API) EditCase(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := util.TracingFromContext(r.Context())

	actor, err := util.GetUserFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user from context", values.NotAuthorised, &tc)
	}

	if !hasRole(actor, model.RoleJudge) {
		return respondWithError(forbidden(actor, "edit cases"), "Only judges can edit cases", values.NotAllowed, &tc)
	}

	id, err := caseIDParam(r)
	if err != nil {
		return respondWithError(err, "invalid case ID", values.BadRequestBody, &tc)
	}

	var req model.UpdateCaseRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	updated, status, message, err := api.EditCaseHelper(r.Context(), id, req, actor)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}
	api.publish(websockets.EventCaseUpdated, updated.ID, actor.Username, updated)

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       updated,
	}
}

func (api *API) DeleteCase(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := util.TracingFromContext(r.Context())

	actor, err := util.GetUserFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user from context", values.NotAuthorised, &tc)
	}

	if !hasRole(actor, model.RoleJudge) {
		return respondWithError(forbidden(actor, "delete cases"), "Only judges can delete cases", values.NotAllowed, &tc)
	}

	id, err := caseIDParam(r)
	if err != nil {
		return respondWithError(err, "invalid case ID", values.BadRequestBody, &tc)
	}

	status, message, err := api.DeleteCaseHelper(r.Context(), id, actor)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}
	api.publish(websockets.EventCaseDeleted, id, actor.Username, nil)

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

func (api *API) ApproveCase(w http.ResponseWriter, r *http.Request) *ServerResponse {
	return api.decideCase(w, r, model.StatusApproved)
}

func (api *API) RejectCase(w http.ResponseWriter, r *http.Request) *ServerResponse {
	return api.decideCase(w, r, model.StatusRejected)
}

func (api *API) decideCase(_ http.ResponseWriter, r *http.Request, decision model.CaseStatus) *ServerResponse {
	tc := util.TracingFromContext(r.Context())

	actor, err := util.GetUserFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user from context", values.NotAuthorised, &tc)
	}

	if !hasRole(actor, model.RoleJudge) {
		return respondWithError(forbidden(actor, "decide cases"), "Only judges can decide cases", values.NotAllowed, &tc)
	}

	id, err := caseIDParam(r)
	if err != nil {
		return respondWithError(err, "invalid case ID", values.BadRequestBody, &tc)
	}

	updated, status, message, err := api.SetCaseStatusHelper(r.Context(), id, decision, actor)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}
	api.publish(websockets.EventCaseStatus, updated.ID, actor.Username, updated)

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       updated,
	}
}
