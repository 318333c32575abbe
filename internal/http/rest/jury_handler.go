package rest

import (
	"net/http"

	"github.com/bwise1/court_cases/internal/model"
	"github.com/bwise1/court_cases/util"
	"github.com/bwise1/court_cases/util/values"
	"github.com/bwise1/court_cases/util/websockets"
	"github.com/go-chi/chi/v5"
)

func (api *API) JuryRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)
		r.Method(http.MethodPost, "/vote/{id}", Handler(api.CastVote))
		r.Method(http.MethodGet, "/results/{id}", Handler(api.GetResults))
	})

	return mux
}

func (api *API) CastVote(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := util.TracingFromContext(r.Context())

	actor, err := util.GetUserFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user from context", values.NotAuthorised, &tc)
	}

	if !hasRole(actor, model.RoleJuror) {
		return respondWithError(forbidden(actor, "vote"), "Only jurors can vote", values.NotAllowed, &tc)
	}

	caseID, err := caseIDParam(r)
	if err != nil {
		return respondWithError(err, "invalid case ID", values.BadRequestBody, &tc)
	}

	var req model.VoteRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	vote, status, message, err := api.CastVoteHelper(r.Context(), caseID, req, actor)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}
	// verdicts stay private until results are requested
	api.publish(websockets.EventVoteUpdate, vote.CaseID, "", nil)

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       vote,
	}
}

func (api *API) GetResults(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := util.TracingFromContext(r.Context())

	caseID, err := caseIDParam(r)
	if err != nil {
		return respondWithError(err, "invalid case ID", values.BadRequestBody, &tc)
	}

	tally, status, message, err := api.TallyHelper(r.Context(), caseID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       tally,
	}
}
