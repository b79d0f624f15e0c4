package httpapi

import (
	"net/http"

	"github.com/riskibarqy/event-scoring/internal/usecase"
)

// ListTeams also serves the get_event_teams action of /score.
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}

	q, err := paramsFromContext(ctx).ids()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.teams.List(ctx, principal, q.EventID)
	if err != nil {
		h.fail(ctx, w, "list teams failed", err, "event_id", q.EventID)
		return
	}

	writeJSON(ctx, w, http.StatusOK, teamListDTO{Teams: teamsToDTO(teams)})
}

// CreateTeam also serves the add_team action of /score.
func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}

	var req usecase.CreateTeamInput
	if err := paramsFromContext(ctx).decode(&req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.teams.Create(ctx, principal, req)
	if err != nil {
		h.fail(ctx, w, "create team failed", err, "event_id", req.EventID)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, createdTeamDTO{
		ID:        created.ID,
		EventID:   created.EventID,
		Name:      created.Name,
		CreatedBy: created.CreatedBy,
	})
}

func (h *Handler) RenameTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RenameTeam")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}

	p := paramsFromContext(ctx)
	q, err := p.ids()
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req usecase.RenameTeamInput
	if err := p.decode(&req); err != nil {
		writeError(ctx, w, err)
		return
	}

	renamed, err := h.teams.Rename(ctx, principal, q.ID, req)
	if err != nil {
		h.fail(ctx, w, "rename team failed", err, "team_id", q.ID)
		return
	}

	writeJSON(ctx, w, http.StatusOK, teamToDTO(renamed))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}

	q, err := paramsFromContext(ctx).ids()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.teams.Delete(ctx, principal, q.ID); err != nil {
		h.fail(ctx, w, "delete team failed", err, "team_id", q.ID)
		return
	}

	writeMessage(ctx, w, "Team deleted successfully")
}
