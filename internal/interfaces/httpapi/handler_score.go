package httpapi

import (
	"net/http"

	"github.com/riskibarqy/event-scoring/internal/usecase"
)

func (h *Handler) GetScoringSheet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoringSheet")
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

	sheet, err := h.scores.ActivityForScoring(ctx, principal, q.ActivityID)
	if err != nil {
		h.fail(ctx, w, "get scoring sheet failed", err, "activity_id", q.ActivityID, "user_id", principal.UserID)
		return
	}

	writeJSON(ctx, w, http.StatusOK, scoringSheetToDTO(sheet))
}

func (h *Handler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitScore")
	defer span.End()

	principal, ok := h.principal(ctx, w)
	if !ok {
		return
	}

	var req usecase.SubmitScoreInput
	if err := paramsFromContext(ctx).decode(&req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.scores.Submit(ctx, principal, req)
	if err != nil {
		h.fail(ctx, w, "submit score failed", err,
			"activity_id", req.ActivityID,
			"team_id", req.TeamID,
			"category_id", req.CategoryID,
			"user_id", principal.UserID,
		)
		return
	}

	writeJSON(ctx, w, http.StatusOK, submittedScoreDTO{
		ActivityID: saved.ActivityID,
		TeamID:     saved.TeamID,
		CategoryID: saved.CategoryID,
		ScoreValue: saved.Value,
		Notes:      saved.Notes,
		ScoredBy:   saved.ScoredBy,
		ScoredAt:   saved.ScoredAt,
	})
}

func (h *Handler) GetRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRankings")
	defer span.End()

	q, err := paramsFromContext(ctx).ids()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rankings, err := h.rankings.Rankings(ctx, q.EventID)
	if err != nil {
		h.fail(ctx, w, "compute rankings failed", err, "event_id", q.EventID)
		return
	}

	writeJSON(ctx, w, http.StatusOK, rankingsToDTO(rankings))
}
