package httpapi

import (
	"net/http"

	"github.com/riskibarqy/event-scoring/internal/usecase"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Register")
	defer span.End()

	var req usecase.RegisterInput
	if err := paramsFromContext(ctx).decode(&req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.users.Register(ctx, req)
	if err != nil {
		h.fail(ctx, w, "register failed", err)
		return
	}

	h.logger.InfoContext(ctx, "user registered", "user_id", session.User.ID)
	writeJSON(ctx, w, http.StatusCreated, sessionToDTO(session))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Login")
	defer span.End()

	var req usecase.LoginInput
	if err := paramsFromContext(ctx).decode(&req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.users.Login(ctx, req)
	if err != nil {
		h.fail(ctx, w, "login failed", err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, sessionToDTO(session))
}

// GetUsers searches when a search parameter is given and otherwise returns the caller.
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUsers")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}

	p := paramsFromContext(ctx)
	if !p.has("search") {
		me, err := h.users.Get(ctx, principal.UserID)
		if err != nil {
			h.fail(ctx, w, "get current user failed", err, "user_id", principal.UserID)
			return
		}
		writeJSON(ctx, w, http.StatusOK, userToDTO(me))
		return
	}

	found, err := h.users.Search(ctx, p.str("search"))
	if err != nil {
		h.fail(ctx, w, "search users failed", err)
		return
	}

	items := make([]userDTO, 0, len(found))
	for _, u := range found {
		items = append(items, userToDTO(u))
	}
	writeJSON(ctx, w, http.StatusOK, items)
}
