package rest

import (
	"errors"
	"net/http"

	"github.com/bwise1/court_cases/util"
	"github.com/bwise1/court_cases/util/values"
	"github.com/bwise1/court_cases/util/websockets"
	"github.com/go-chi/chi/v5"
)

var errEventsUnavailable = errors.New("event hub not configured")

func (api *API) EventRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)
		r.Get("/", api.CaseEvents)
	})

	return mux
}

// CaseEvents upgrades to a websocket that streams case and vote changes to
// any authenticated user.
func (api *API) CaseEvents(w http.ResponseWriter, r *http.Request) {
	actor, err := util.GetUserFromContext(r.Context())
	if err != nil {
		writeErrorResponse(w, err, values.NotAuthorised, "unable to get user from context")
		return
	}

	if api.Deps == nil || api.Deps.Hub == nil {
		writeErrorResponse(w, errEventsUnavailable, values.Error, values.SystemErr)
		return
	}

	api.Deps.Hub.HandleConnections(w, r, actor.Username)
}

func (api *API) publish(eventType string, caseID int64, actor string, data interface{}) {
	if api.Deps == nil {
		return
	}
	api.Deps.Hub.Publish(websockets.Event{
		Type:   eventType,
		CaseID: caseID,
		Actor:  actor,
		Data:   data,
	})
}
