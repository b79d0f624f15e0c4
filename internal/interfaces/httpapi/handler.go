package httpapi

import (
	"context"
	"net/http"

	"github.com/riskibarqy/event-scoring/internal/domain/user"
	"github.com/riskibarqy/event-scoring/internal/platform/logging"
	"github.com/riskibarqy/event-scoring/internal/usecase"
)

// Pinger reports whether the datastore is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Services struct {
	Users      *usecase.UserService
	Events     *usecase.EventService
	Activities *usecase.ActivityService
	Leaders    *usecase.LeaderService
	Teams      *usecase.TeamService
	Scores     *usecase.ScoreService
	Rankings   *usecase.RankingService
}

type Handler struct {
	users      *usecase.UserService
	events     *usecase.EventService
	activities *usecase.ActivityService
	leaders    *usecase.LeaderService
	teams      *usecase.TeamService
	scores     *usecase.ScoreService
	rankings   *usecase.RankingService
	datastore  Pinger
	logger     *logging.Logger
}

// NewHandler accepts a nil datastore, in which case /healthz only reports the process as up.
func NewHandler(services Services, datastore Pinger, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		users:      services.Users,
		events:     services.Events,
		activities: services.Activities,
		leaders:    services.Leaders,
		teams:      services.Teams,
		scores:     services.Scores,
		rankings:   services.Rankings,
		datastore:  datastore,
		logger:     logger.Named("httpapi"),
	}
}

// Endpoints is the route and auth table of the API.
func (h *Handler) Endpoints() []Endpoint {
	return []Endpoint{
		{
			Path: "/healthz",
			Routes: []Route{
				{Method: http.MethodGet, Handler: h.Healthz},
			},
		},
		{
			Path:          "/user",
			MissingAction: "Action not specified",
			Routes: []Route{
				{Method: http.MethodGet, Auth: true, Handler: h.GetUsers},
				{Method: http.MethodPost, Action: "register", Handler: h.Register},
				{Method: http.MethodPost, Action: "login", Handler: h.Login},
			},
		},
		{
			Path: "/event",
			Routes: []Route{
				{Method: http.MethodGet, Handler: h.GetEvents},
				{Method: http.MethodPost, Auth: true, Handler: h.CreateEvent},
				{Method: http.MethodPut, Auth: true, Handler: h.UpdateEvent},
				{Method: http.MethodDelete, Auth: true, Handler: h.DeleteEvent},
			},
		},
		{
			Path: "/activity",
			Routes: []Route{
				{Method: http.MethodGet, Handler: h.GetActivities},
				{Method: http.MethodPost, Auth: true, Handler: h.CreateActivity},
				{Method: http.MethodPut, Auth: true, Handler: h.UpdateActivity},
				{Method: http.MethodDelete, Auth: true, Handler: h.DeleteActivity},
			},
		},
		{
			Path: "/activity_leader",
			Routes: []Route{
				{Method: http.MethodGet, Auth: true, Handler: h.ListLeaders},
				{Method: http.MethodPost, Auth: true, Handler: h.AssignLeader},
				{Method: http.MethodDelete, Auth: true, Handler: h.RemoveLeader},
			},
		},
		{
			Path: "/team",
			Routes: []Route{
				{Method: http.MethodGet, Auth: true, Handler: h.ListTeams},
				{Method: http.MethodPost, Auth: true, Handler: h.CreateTeam},
				{Method: http.MethodPut, Auth: true, Handler: h.RenameTeam},
				{Method: http.MethodDelete, Auth: true, Handler: h.DeleteTeam},
			},
		},
		{
			Path: "/score",
			Routes: []Route{
				{Method: http.MethodGet, Action: "get_event_teams", Auth: true, Handler: h.ListTeams},
				{Method: http.MethodGet, Action: "get_activity_for_scoring", Auth: true, Handler: h.GetScoringSheet},
				{Method: http.MethodPost, Action: "get_event_teams", Auth: true, Handler: h.ListTeams},
				{Method: http.MethodPost, Action: "get_activity_for_scoring", Auth: true, Handler: h.GetScoringSheet},
				{Method: http.MethodPost, Action: "add_team", Auth: true, Handler: h.CreateTeam},
				{Method: http.MethodPost, Action: "submit_score", Auth: true, Handler: h.SubmitScore},
			},
		},
		{
			Path: "/rankings",
			Routes: []Route{
				{Method: http.MethodGet, Handler: h.GetRankings},
			},
		},
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	if h.datastore != nil {
		if err := h.datastore.PingContext(ctx); err != nil {
			h.logger.ErrorContext(ctx, "datastore ping failed", "error", err)
			writeJSON(ctx, w, http.StatusServiceUnavailable, errorBody{Error: "Datastore unavailable"})
			return
		}
	}
	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// fail logs at error level for anything that maps to a 5xx and at warn level otherwise.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if status, _ := classify(err); status >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
	} else {
		h.logger.WarnContext(ctx, msg, args...)
	}
	writeError(ctx, w, err)
}

// principal is only called from routes marked Auth, so a missing principal is a wiring bug.
func (h *Handler) principal(ctx context.Context, w http.ResponseWriter) (user.Principal, bool) {
	p, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, clientError(usecase.ErrUnauthorized, "Unauthorized"))
	}
	return p, ok
}
