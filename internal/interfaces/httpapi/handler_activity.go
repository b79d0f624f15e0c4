package httpapi

import (
	"net/http"

	"github.com/riskibarqy/event-scoring/internal/usecase"
)

func (h *Handler) GetActivities(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetActivities")
	defer span.End()

	p := paramsFromContext(ctx)
	q, err := p.ids()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	switch {
	case p.has("id"):
		detail, err := h.activities.Get(ctx, q.ID)
		if err != nil {
			h.fail(ctx, w, "get activity failed", err, "activity_id", q.ID)
			return
		}
		writeJSON(ctx, w, http.StatusOK, activityDetailToDTO(detail, true))
	case p.has("event_id"):
		details, err := h.activities.ListByEvent(ctx, q.EventID)
		if err != nil {
			h.fail(ctx, w, "list activities failed", err, "event_id", q.EventID)
			return
		}
		items := make([]activityDetailDTO, 0, len(details))
		for _, d := range details {
			items = append(items, activityDetailToDTO(d, false))
		}
		writeJSON(ctx, w, http.StatusOK, items)
	default:
		writeError(ctx, w, clientError(usecase.ErrInvalidInput, "Activity ID is required"))
	}
}

func (h *Handler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateActivity")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}

	var req usecase.CreateActivityInput
	if err := paramsFromContext(ctx).decode(&req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.activities.Create(ctx, principal, req)
	if err != nil {
		h.fail(ctx, w, "create activity failed", err, "event_id", req.EventID, "user_id", principal.UserID)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, activityDetailToDTO(created, true))
}

func (h *Handler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateActivity")
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
	var req usecase.UpdateActivityInput
	if err := p.decode(&req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.activities.Update(ctx, principal, q.ID, req)
	if err != nil {
		h.fail(ctx, w, "update activity failed", err, "activity_id", q.ID, "user_id", principal.UserID)
		return
	}

	writeJSON(ctx, w, http.StatusOK, activityDetailToDTO(updated, true))
}

func (h *Handler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteActivity")
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

	if err := h.activities.Delete(ctx, principal, q.ID); err != nil {
		h.fail(ctx, w, "delete activity failed", err, "activity_id", q.ID, "user_id", principal.UserID)
		return
	}

	h.logger.InfoContext(ctx, "activity deleted", "activity_id", q.ID, "user_id", principal.UserID)
	writeMessage(ctx, w, "Activity deleted successfully")
}
