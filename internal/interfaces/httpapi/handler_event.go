package httpapi

import (
	"net/http"

	"github.com/riskibarqy/event-scoring/internal/usecase"
)

// GetEvents lists every event, or returns one event with its activities when id is given.
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEvents")
	defer span.End()

	p := paramsFromContext(ctx)
	if p.has("id") {
		q, err := p.ids()
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		detail, err := h.events.Get(ctx, q.ID)
		if err != nil {
			h.fail(ctx, w, "get event failed", err, "event_id", q.ID)
			return
		}
		writeJSON(ctx, w, http.StatusOK, eventDetailToDTO(detail))
		return
	}

	events, err := h.events.List(ctx)
	if err != nil {
		h.fail(ctx, w, "list events failed", err)
		return
	}

	items := make([]eventDTO, 0, len(events))
	for _, e := range events {
		items = append(items, eventToDTO(e))
	}
	writeJSON(ctx, w, http.StatusOK, eventListDTO{Events: items})
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateEvent")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}

	var req usecase.CreateEventInput
	if err := paramsFromContext(ctx).decode(&req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.events.Create(ctx, principal, req)
	if err != nil {
		h.fail(ctx, w, "create event failed", err, "user_id", principal.UserID)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, createdEventDTO{
		ID:          created.ID,
		Name:        created.Name,
		Description: created.Description,
		StartDate:   formatDate(created.StartDate),
		EndDate:     formatDate(created.EndDate),
		CreatorID:   created.CreatorID,
	})
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateEvent")
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
	var req usecase.UpdateEventInput
	if err := p.decode(&req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.events.Update(ctx, principal, q.ID, req); err != nil {
		h.fail(ctx, w, "update event failed", err, "event_id", q.ID, "user_id", principal.UserID)
		return
	}

	writeMessage(ctx, w, "Event updated successfully")
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteEvent")
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

	if err := h.events.Delete(ctx, principal, q.ID); err != nil {
		h.fail(ctx, w, "delete event failed", err, "event_id", q.ID, "user_id", principal.UserID)
		return
	}

	h.logger.InfoContext(ctx, "event deleted", "event_id", q.ID, "user_id", principal.UserID)
	writeMessage(ctx, w, "Event deleted successfully")
}
