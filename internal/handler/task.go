package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/osse101/habitquest/internal/domain"
	"github.com/osse101/habitquest/internal/logger"
	"github.com/osse101/habitquest/internal/task"
)

// TaskHandler serves task management, completion, habit, streak, analytics and audit endpoints
type TaskHandler struct {
	service task.Service
	loc     *time.Location
	now     Clock
}

// NewTaskHandler creates task handlers. loc is the game timezone used to read audit dates.
func NewTaskHandler(service task.Service, loc *time.Location, now Clock) *TaskHandler {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &TaskHandler{service: service, loc: loc, now: now}
}

// HandleCompleteTask completes a daily or to-do
// @Summary Complete a task
// @Description Completes a daily or to-do, awarding XP and gold. Dailies advance their streak.
// @Tags tasks
// @Produce json
// @Param X-User-ID header string true "User id"
// @Param taskID path string true "Task id"
// @Success 200 {object} DataResponse{data=domain.CompletionResult}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /tasks/{taskID}/complete [post]
func (h *TaskHandler) HandleCompleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.service.CompleteTask(r.Context(), userID, taskID, h.now())
	if err != nil {
		respondServiceError(w, r, OpCompleteTask, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: completionSummary(result), Data: result})
}

// HandleLogHabit records a positive or negative habit check-in
// @Summary Log a habit
// @Description Positive logs award XP and gold. Negative logs cost HP and may defeat the character.
// @Tags tasks
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User id"
// @Param taskID path string true "Task id"
// @Param request body LogHabitRequest true "Direction"
// @Success 200 {object} DataResponse{data=domain.HabitResult}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{taskID}/habit [post]
func (h *TaskHandler) HandleLogHabit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(w, r)
	if !ok {
		return
	}

	var req LogHabitRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpLogHabit); err != nil {
		return
	}

	result, err := h.service.LogHabit(r.Context(), userID, taskID, *req.Positive, h.now())
	if err != nil {
		respondServiceError(w, r, OpLogHabit, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: habitSummary(result), Data: result})
}

// HandleUpdateStreak advances or checks the streak of a daily without completing it
// @Summary Update a streak
// @Tags streaks
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User id"
// @Param taskID path string true "Task id"
// @Param request body UpdateStreakRequest true "Whether the daily was done today"
// @Success 200 {object} DataResponse{data=domain.StreakUpdateResult}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{taskID}/streak [post]
func (h *TaskHandler) HandleUpdateStreak(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateStreakRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpUpdateStreak); err != nil {
		return
	}

	result, err := h.service.UpdateStreak(r.Context(), userID, taskID, *req.Completed, h.now())
	if err != nil {
		respondServiceError(w, r, OpUpdateStreak, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: streakSummary(result), Data: result})
}

// HandleListStreaks lists the caller's streaks, longest first
// @Summary List streaks
// @Tags streaks
// @Produce json
// @Param X-User-ID header string true "User id"
// @Success 200 {object} DataResponse{data=[]domain.Streak}
// @Router /streaks [get]
func (h *TaskHandler) HandleListStreaks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	streaks, err := h.service.ListStreaks(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, OpListStreaks, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: streaks})
}

// HandleListDueToday lists dailies active today and open to-dos
// @Summary Tasks due today
// @Tags tasks
// @Produce json
// @Param X-User-ID header string true "User id"
// @Success 200 {object} DataResponse{data=[]domain.DueTask}
// @Router /tasks/due [get]
func (h *TaskHandler) HandleListDueToday(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	due, err := h.service.ListDueToday(r.Context(), userID, h.now())
	if err != nil {
		respondServiceError(w, r, OpListDue, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: due})
}

// HandleRunAudit runs the daily audit immediately, for today or the given date
// @Summary Run the daily audit
// @Description Resets lapsed streaks and reopens dailies. Safe to run more than once per day.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body RunAuditRequest false "Day to audit"
// @Success 200 {object} DataResponse{data=domain.AuditReport}
// @Failure 400 {object} ErrorResponse
// @Router /admin/audit [post]
func (h *TaskHandler) HandleRunAudit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req RunAuditRequest
	if r.ContentLength != 0 {
		if err := DecodeAndValidateRequest(r, w, &req, OpRunAudit); err != nil {
			return
		}
	}

	now := h.now()
	if req.Date != "" {
		day, err := time.ParseInLocation(time.DateOnly, req.Date, h.loc)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
			return
		}
		now = day
	}

	report, err := h.service.RunDailyAudit(r.Context(), now)
	if err != nil {
		respondServiceError(w, r, OpRunAudit, err)
		return
	}

	log.Info("Daily audit triggered via API",
		"day", report.Day.Format(time.DateOnly),
		"streaks_reset", report.StreaksReset,
		"dailies_reopened", report.DailiesReopened)
	respondJSON(w, http.StatusOK, DataResponse{Data: report})
}

// HandleCreateTask creates a habit, daily or to-do
// @Summary Create a task
// @Description Dailies may carry a repeat pattern and start with an empty streak. Difficulty defaults to easy.
// @Tags tasks
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User id"
// @Param request body CreateTaskRequest true "New task"
// @Success 201 {object} DataResponse{data=domain.Task}
// @Failure 400 {object} ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) HandleCreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpCreateTask); err != nil {
		return
	}

	input := domain.NewTask{
		Title:         req.Title,
		Description:   req.Description,
		Type:          domain.TaskType(req.Type),
		Difficulty:    domain.Difficulty(req.Difficulty),
		RepeatPattern: req.RepeatPattern,
	}
	if req.DueDate != "" {
		due, err := time.ParseInLocation(time.DateOnly, req.DueDate, h.loc)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
			return
		}
		input.DueDate = &due
	}

	created, err := h.service.CreateTask(r.Context(), userID, input)
	if err != nil {
		respondServiceError(w, r, OpCreateTask, err)
		return
	}

	respondJSON(w, http.StatusCreated, DataResponse{Message: MsgTaskCreated, Data: created})
}

// HandleListTasks lists the caller's tasks, newest first
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Param X-User-ID header string true "User id"
// @Param type query string false "habit, daily or todo"
// @Param completed query bool false "Completion state"
// @Param limit query int false "Page size (default 50, max 100)"
// @Param offset query int false "Tasks to skip"
// @Success 200 {object} DataResponse{data=domain.TaskPage}
// @Failure 400 {object} ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) HandleListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	filter, err := parseTaskFilter(r.URL.Query())
	if err != nil {
		logger.FromContext(r.Context()).Warn("Invalid task filter", "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidQuery)
		return
	}

	page, err := h.service.ListTasks(r.Context(), userID, filter)
	if err != nil {
		respondServiceError(w, r, OpListTasks, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: page})
}

// parseTaskFilter reads the type, completed, limit and offset query parameters
func parseTaskFilter(q url.Values) (domain.TaskFilter, error) {
	var filter domain.TaskFilter

	if raw := q.Get("type"); raw != "" {
		t, err := domain.ParseTaskType(raw)
		if err != nil {
			return filter, err
		}
		filter.Type = &t
	}
	if raw := q.Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, fmt.Errorf("completed: %w", err)
		}
		filter.IsCompleted = &completed
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return filter, fmt.Errorf("limit: %w", err)
		}
		filter.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return filter, fmt.Errorf("offset: %w", err)
		}
		filter.Offset = offset
	}
	return filter, nil
}

// HandleUpdateTask edits a task's title, description, difficulty, due date or repeat pattern
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User id"
// @Param taskID path string true "Task id"
// @Param request body UpdateTaskRequest true "Fields to change"
// @Success 200 {object} DataResponse{data=domain.Task}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{taskID} [patch]
func (h *TaskHandler) HandleUpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpUpdateTask); err != nil {
		return
	}

	update := domain.TaskUpdate{
		Title:         req.Title,
		Description:   req.Description,
		ClearDueDate:  req.ClearDueDate,
		RepeatPattern: req.RepeatPattern,
	}
	if req.Difficulty != nil {
		d := domain.Difficulty(*req.Difficulty)
		update.Difficulty = &d
	}
	if req.DueDate != nil {
		due, err := time.ParseInLocation(time.DateOnly, *req.DueDate, h.loc)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
			return
		}
		update.DueDate = &due
	}

	updated, err := h.service.UpdateTask(r.Context(), userID, taskID, update)
	if err != nil {
		respondServiceError(w, r, OpUpdateTask, err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Message: MsgTaskUpdated, Data: updated})
}

// HandleDeleteTask deletes a task with its streak and habit logs
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param X-User-ID header string true "User id"
// @Param taskID path string true "Task id"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{taskID} [delete]
func (h *TaskHandler) HandleDeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteTask(r.Context(), userID, taskID); err != nil {
		respondServiceError(w, r, OpDeleteTask, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTaskDeleted})
}
