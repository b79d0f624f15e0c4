package httpapi

import (
	"net/http"

	"github.com/riskibarqy/event-scoring/internal/usecase"
)

func (h *Handler) ListLeaders(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeaders")
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

	assignments, err := h.leaders.List(ctx, principal, q.ActivityID)
	if err != nil {
		h.fail(ctx, w, "list activity leaders failed", err, "activity_id", q.ActivityID)
		return
	}

	items := make([]leaderDTO, 0, len(assignments))
	for _, a := range assignments {
		items = append(items, leaderToDTO(a))
	}
	writeJSON(ctx, w, http.StatusOK, items)
}

func (h *Handler) AssignLeader(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignLeader")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}

	var req usecase.AssignLeaderInput
	if err := paramsFromContext(ctx).decode(&req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.leaders.Assign(ctx, principal, req)
	if err != nil {
		h.fail(ctx, w, "assign activity leader failed", err,
			"activity_id", req.ActivityID,
			"leader_user_id", req.UserID,
		)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, assignedLeaderDTO{
		ID:      created.ID,
		Message: "Activity leader assigned successfully",
	})
}

func (h *Handler) RemoveLeader(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveLeader")
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

	if err := h.leaders.Remove(ctx, principal, q.ID); err != nil {
		h.fail(ctx, w, "remove activity leader failed", err, "assignment_id", q.ID)
		return
	}

	writeMessage(ctx, w, "Activity leader removed successfully")
}
