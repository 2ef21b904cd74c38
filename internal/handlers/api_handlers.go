package handlers

import (
	"context"
	"encoding/json"
	"goalTracker/internal/handlers/dto"
	"goalTracker/internal/logger"
	"goalTracker/internal/service"
	"goalTracker/internal/view"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JSON API. Unknown ids never fail: the response carries "changed": false.

func (h *GoalHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Goals.Initialize(r.Context()); err != nil {
		logger.Error("HTTP: Ошибка Service", err, zap.String("operation", "initialize"))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	filter := filterFromQuery(r.URL.Query())
	writeJSON(w, http.StatusOK, dto.FromGoalList(slices.Collect(h.Goals.FilteredGoals(filter))))
}

func (h *GoalHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.FromCompletedList(h.Goals.Snapshot().Completed))
}

func (h *GoalHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.FromStats(h.Goals.Snapshot().Stats))
}

func (h *GoalHandler) PostGoal(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	created, err := h.Goals.AddGoal(r.Context(), request.Title, request.Category, request.Priority, request.Description)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "add_goal"),
			zap.Duration("ms", time.Since(start)))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Цель создана",
		zap.String("goal_id", created.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	resp := dto.FromGoal(*created)
	h.writeAction(w, http.StatusCreated, dto.ActionResponse{Changed: true, Notice: view.NoticeAdded, Goal: &resp})
}

func (h *GoalHandler) PutGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := apiGoalID(w, r)
	if !ok {
		return
	}

	if !checkContentType(r, "application/json") {
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.UpdateGoalRequest
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if !request.Complete() {
		handleBusinessError(w, service.NewBusinessError(service.CodeEditCancelled,
			"title, category, priority and description are all required; nothing was changed"))
		return
	}

	found, err := h.Goals.EditGoal(r.Context(), id, *request.Title, *request.Category, *request.Priority, *request.Description)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err, zap.String("operation", "edit_goal"))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := dto.ActionResponse{Changed: found}
	if g, exists := h.Goals.Goal(id); found && exists {
		updated := dto.FromGoal(g)
		resp.Goal = &updated
		resp.Notice = view.NoticeUpdated
	}
	h.writeAction(w, http.StatusOK, resp)
}

func (h *GoalHandler) PostComplete(w http.ResponseWriter, r *http.Request) {
	id, ok := apiGoalID(w, r)
	if !ok {
		return
	}

	done, found, err := h.Goals.CompleteGoal(r.Context(), id)
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err, zap.String("operation", "complete_goal"))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := dto.ActionResponse{Changed: found}
	if found {
		completed := dto.FromCompletedGoal(*done)
		resp.Completed = &completed
		resp.Notice = view.NoticeCompleted
	}
	h.writeAction(w, http.StatusOK, resp)
}

func (h *GoalHandler) PostProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := apiGoalID(w, r)
	if !ok {
		return
	}

	progress, found, err := h.Goals.UpdateProgress(r.Context(), id)
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err, zap.String("operation", "update_progress"))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := dto.ActionResponse{Changed: found}
	if found {
		resp.Progress = &progress
		resp.Notice = view.ProgressNotice(progress)
	}
	h.writeAction(w, http.StatusOK, resp)
}

func (h *GoalHandler) DeleteGoalAPI(w http.ResponseWriter, r *http.Request) {
	h.deleteAPI(w, r, "delete_goal", h.Goals.DeleteGoal)
}

func (h *GoalHandler) DeleteCompletedAPI(w http.ResponseWriter, r *http.Request) {
	h.deleteAPI(w, r, "delete_completed_goal", h.Goals.DeleteCompletedGoal)
}

func (h *GoalHandler) deleteAPI(w http.ResponseWriter, r *http.Request, operation string,
	remove func(ctx context.Context, id uuid.UUID) (bool, error)) {
	id, ok := apiGoalID(w, r)
	if !ok {
		return
	}

	if r.URL.Query().Get("confirm") != "true" {
		handleBusinessError(w, service.NewBusinessError(service.CodeConfirmationRequired,
			"repeat the request with ?confirm=true to delete",
			service.ToDetail("id", id.String())))
		return
	}

	removed, err := remove(r.Context(), id)
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err, zap.String("operation", operation))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeAction(w, http.StatusOK, dto.ActionResponse{Changed: removed})
}

// writeAction attaches fresh stats, every action refreshes them.
func (h *GoalHandler) writeAction(w http.ResponseWriter, status int, resp dto.ActionResponse) {
	resp.Stats = dto.FromStats(h.Goals.Snapshot().Stats)
	writeJSON(w, status, resp)
}

func apiGoalID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Warn("HTTP: Не удалось получить id",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "invalid goal id: "+err.Error())
		return uuid.Nil, false
	}
	return id, true
}
