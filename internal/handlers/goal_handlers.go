package handlers

import (
	"bytes"
	"errors"
	"goalTracker/internal/logger"
	"goalTracker/internal/models/goal"
	"goalTracker/internal/service"
	"goalTracker/internal/view"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const messageSaveFailed = "Could not save your goals, please try again"

type GoalHandler struct {
	Goals    GoalService
	Renderer *view.Renderer
}

func NewGoalHandler(goals GoalService, renderer *view.Renderer) *GoalHandler {
	return &GoalHandler{
		Goals:    goals,
		Renderer: renderer,
	}
}

// Index draws today's board. Every page load runs the day rollover check.
func (h *GoalHandler) Index(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r.URL.Query())

	if _, err := h.Goals.Initialize(r.Context()); err != nil {
		logger.Error("HTTP: Ошибка Service", err, zap.String("operation", "initialize"))
		h.renderPage(w, http.StatusInternalServerError, filter, view.Page{Error: messageSaveFailed})
		return
	}

	h.renderPage(w, http.StatusOK, filter, view.Page{Notice: view.NoticeText(r.URL.Query().Get("notice"))})
}

func (h *GoalHandler) AddGoal(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")
	filter := filterFromQuery(r.URL.Query())

	if err := r.ParseForm(); err != nil {
		logger.Warn("HTTP: Ошибка чтения формы", zap.Error(err), zap.String("client_ip", r.RemoteAddr))
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	form := view.FormValues{
		Title:       r.PostForm.Get("title"),
		Category:    r.PostForm.Get("category"),
		Priority:    r.PostForm.Get("priority"),
		Description: r.PostForm.Get("description"),
	}

	created, err := h.Goals.AddGoal(r.Context(), form.Title, form.Category, form.Priority, form.Description)
	if err != nil {
		if service.IsValidation(err) {
			h.renderPage(w, http.StatusBadRequest, filter, view.Page{Error: errorMessage(err), Form: form})
			return
		}
		logger.Error("HTTP: Ошибка Service", err, zap.String("operation", "add_goal"))
		h.renderPage(w, http.StatusInternalServerError, filter, view.Page{Error: messageSaveFailed, Form: form})
		return
	}

	logger.Info("HTTP_OUT: Цель создана",
		zap.String("goal_id", created.ID.String()),
		zap.Duration("ms", time.Since(start)))

	redirectHome(w, r, filter, view.CodeAdded)
}

func (h *GoalHandler) CompleteGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := goalID(w, r)
	if !ok {
		return
	}
	filter := filterFromQuery(r.URL.Query())

	_, found, err := h.Goals.CompleteGoal(r.Context(), id)
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err, zap.String("operation", "complete_goal"))
		h.renderPage(w, http.StatusInternalServerError, filter, view.Page{Error: messageSaveFailed})
		return
	}

	redirectHome(w, r, filter, noticeIf(found, view.CodeCompleted))
}

func (h *GoalHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := goalID(w, r)
	if !ok {
		return
	}
	filter := filterFromQuery(r.URL.Query())

	progress, found, err := h.Goals.UpdateProgress(r.Context(), id)
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err, zap.String("operation", "update_progress"))
		h.renderPage(w, http.StatusInternalServerError, filter, view.Page{Error: messageSaveFailed})
		return
	}

	redirectHome(w, r, filter, noticeIf(found, view.ProgressCode(progress)))
}

func (h *GoalHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := goalID(w, r)
	if !ok {
		return
	}
	filter := filterFromQuery(r.URL.Query())

	g, found := h.Goals.Goal(id)
	if !found {
		redirectHome(w, r, filter, "")
		return
	}

	h.renderEdit(w, http.StatusOK, view.EditPage{Card: view.NewGoalCard(g), Filter: filter})
}

// EditGoal applies the submission only when all four fields are present.
// A partial submission counts as cancelled and changes nothing.
func (h *GoalHandler) EditGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := goalID(w, r)
	if !ok {
		return
	}
	filter := filterFromQuery(r.URL.Query())

	if err := r.ParseForm(); err != nil {
		logger.Warn("HTTP: Ошибка чтения формы", zap.Error(err), zap.String("client_ip", r.RemoteAddr))
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	for _, field := range []string{"title", "category", "priority", "description"} {
		if !r.PostForm.Has(field) {
			logger.Info("HTTP: Редактирование отменено", zap.String("missing_field", field))
			redirectHome(w, r, filter, "")
			return
		}
	}

	title := r.PostForm.Get("title")
	category := r.PostForm.Get("category")
	priority := r.PostForm.Get("priority")
	description := r.PostForm.Get("description")

	found, err := h.Goals.EditGoal(r.Context(), id, title, category, priority, description)
	if err != nil {
		if service.IsValidation(err) {
			card := h.currentCard(id)
			card.Title, card.Category, card.Priority, card.Description = title, category, priority, description
			h.renderEdit(w, http.StatusBadRequest, view.EditPage{Card: card, Error: errorMessage(err), Filter: filter})
			return
		}
		logger.Error("HTTP: Ошибка Service", err, zap.String("operation", "edit_goal"))
		h.renderPage(w, http.StatusInternalServerError, filter, view.Page{Error: messageSaveFailed})
		return
	}

	redirectHome(w, r, filter, noticeIf(found, view.CodeUpdated))
}

func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := goalID(w, r)
	if !ok {
		return
	}
	filter := filterFromQuery(r.URL.Query())

	if r.PostFormValue("confirm") != "yes" {
		g, found := h.Goals.Goal(id)
		if !found {
			redirectHome(w, r, filter, "")
			return
		}
		h.renderConfirm(w, view.ConfirmPage{
			Question:  view.QuestionDeleteGoal,
			Title:     g.Title,
			Action:    "/goals/" + id.String() + "/delete" + view.FilterQuery(filter),
			CancelURL: "/" + view.FilterQuery(filter),
		})
		return
	}

	if _, err := h.Goals.DeleteGoal(r.Context(), id); err != nil {
		logger.Error("HTTP: Ошибка Service", err, zap.String("operation", "delete_goal"))
		h.renderPage(w, http.StatusInternalServerError, filter, view.Page{Error: messageSaveFailed})
		return
	}

	redirectHome(w, r, filter, "")
}

func (h *GoalHandler) DeleteCompletedGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := goalID(w, r)
	if !ok {
		return
	}
	filter := filterFromQuery(r.URL.Query())

	if r.PostFormValue("confirm") != "yes" {
		completed := h.Goals.Snapshot().Completed
		ind := slices.IndexFunc(completed, func(g goal.CompletedGoal) bool { return g.ID == id })
		if ind == -1 {
			redirectHome(w, r, filter, "")
			return
		}
		h.renderConfirm(w, view.ConfirmPage{
			Question:  view.QuestionRemoveCompleted,
			Title:     completed[ind].Title,
			Action:    "/completed/" + id.String() + "/delete" + view.FilterQuery(filter),
			CancelURL: "/" + view.FilterQuery(filter),
		})
		return
	}

	if _, err := h.Goals.DeleteCompletedGoal(r.Context(), id); err != nil {
		logger.Error("HTTP: Ошибка Service", err, zap.String("operation", "delete_completed_goal"))
		h.renderPage(w, http.StatusInternalServerError, filter, view.Page{Error: messageSaveFailed})
		return
	}

	redirectHome(w, r, filter, "")
}

func (h *GoalHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.Goals.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Сервис недоступен", err)
		responseWithJSON(w, http.StatusServiceUnavailable,
			toPayload("status", "unavailable"),
			toPayload("service", "goal-tracker"),
			toPayload("time", time.Now().UTC()),
		)
		return
	}

	responseWithJSON(w, http.StatusOK,
		toPayload("status", "ok"),
		toPayload("service", "goal-tracker"),
		toPayload("time", time.Now().UTC()),
	)
}

func (h *GoalHandler) board(filter goal.Filter) view.Board {
	snap := h.Goals.Snapshot()
	return view.BuildBoard(view.BoardInput{
		Today:     h.Goals.Today(),
		Visible:   h.Goals.FilteredGoals(filter),
		Completed: snap.Completed,
		Filter:    filter,
		Stats:     snap.Stats,
	})
}

func (h *GoalHandler) currentCard(id uuid.UUID) view.GoalCard {
	g, found := h.Goals.Goal(id)
	if !found {
		return view.GoalCard{ID: id.String()}
	}
	return view.NewGoalCard(g)
}

func (h *GoalHandler) renderPage(w http.ResponseWriter, status int, filter goal.Filter, page view.Page) {
	page.Board = h.board(filter)

	var buf bytes.Buffer
	if err := h.Renderer.Page(&buf, page); err != nil {
		logger.Error("HTTP: Ошибка шаблона", err, zap.String("template", "page"))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

func (h *GoalHandler) renderEdit(w http.ResponseWriter, status int, page view.EditPage) {
	var buf bytes.Buffer
	if err := h.Renderer.Edit(&buf, page); err != nil {
		logger.Error("HTTP: Ошибка шаблона", err, zap.String("template", "edit"))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

func (h *GoalHandler) renderConfirm(w http.ResponseWriter, page view.ConfirmPage) {
	var buf bytes.Buffer
	if err := h.Renderer.Confirm(&buf, page); err != nil {
		logger.Error("HTTP: Ошибка шаблона", err, zap.String("template", "confirm"))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logger.Error("HTTP: Не удалось записать ответ", err)
	}
}

// redirectHome sends the browser back to the board, keeping the filters.
// notice is a view notice code.
func redirectHome(w http.ResponseWriter, r *http.Request, filter goal.Filter, notice string) {
	values := url.Values{}
	if filter.Category != "" {
		values.Set("category", string(filter.Category))
	}
	if filter.Priority != "" {
		values.Set("priority", string(filter.Priority))
	}
	if notice != "" {
		values.Set("notice", notice)
	}

	target := "/"
	if len(values) > 0 {
		target += "?" + values.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// filterFromQuery drops values outside the known enumerations.
func filterFromQuery(q url.Values) goal.Filter {
	var f goal.Filter
	if c := goal.Category(q.Get("category")); c.Valid() {
		f.Category = c
	}
	if p := goal.Priority(q.Get("priority")); p.Valid() {
		f.Priority = p
	}
	return f
}

func goalID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Warn("HTTP: Не удалось получить id",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		http.Error(w, "invalid goal id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func noticeIf(changed bool, notice string) string {
	if !changed {
		return ""
	}
	return notice
}

func errorMessage(err error) string {
	var businessErr *service.BusinessError
	if errors.As(err, &businessErr) {
		return businessErr.Message
	}
	return err.Error()
}
