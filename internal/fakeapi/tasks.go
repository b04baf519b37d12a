package fakeapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"taskvvts-cli/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	// exceededTolerance is how far past the estimate a task may run (10%).
	exceededTolerance = 1.10

	suggestionReevaluate = "Please re-evaluate or adjust the task."
	noticeClockOut       = "Time exceeded! Please register the clock-out."
	noticeWithin         = "Task is within the estimated time."
)

func (s *Server) listTasks(c *gin.Context) {
	s.mu.Lock()
	tasks := s.ownedTasks(owner(c))
	s.mu.Unlock()

	if !s.stringList {
		c.JSON(http.StatusOK, tasks)
		return
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, "could not encode tasks")
		return
	}
	c.JSON(http.StatusOK, string(b))
}

func (s *Server) tasksByStatus(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("status"))
	status := model.TaskStatus(strings.ToUpper(raw))
	valid := false
	for _, st := range model.Statuses() {
		if st == status {
			valid = true
			break
		}
	}
	if !valid {
		fail(c, http.StatusBadRequest, "Invalid status: "+raw)
		return
	}

	s.mu.Lock()
	all := s.ownedTasks(owner(c))
	s.mu.Unlock()

	out := make([]model.Task, 0, len(all))
	for _, t := range all {
		if t.Status == status {
			out = append(out, t)
		}
	}
	c.JSON(http.StatusOK, out)
}

// lookup must be called with s.mu held. Tasks of other users look missing.
func (s *Server) lookup(c *gin.Context) (*record, bool) {
	r, ok := s.tasks[c.Param("id")]
	if !ok || r.owner != owner(c) {
		fail(c, http.StatusNotFound, "Task not found")
		return nil, false
	}
	return r, true
}

func (s *Server) getTask(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, r.task)
}

// bindInput validates a create/edit body. It answers 400 itself.
func (s *Server) bindInput(c *gin.Context) (model.TaskInput, bool) {
	var in model.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return in, false
	}
	if strings.TrimSpace(in.Title) == "" {
		fail(c, http.StatusBadRequest, "Title is required")
		return in, false
	}
	if in.Deadline.IsZero() {
		fail(c, http.StatusBadRequest, "Deadline is required")
		return in, false
	}
	if !in.Deadline.After(s.now()) {
		fail(c, http.StatusBadRequest, "Cannot create task with outdated deadline")
		return in, false
	}
	if in.EstimatedTime != nil && *in.EstimatedTime < 0 {
		fail(c, http.StatusBadRequest, "Estimated time must not be negative")
		return in, false
	}
	return in, true
}

func (s *Server) createTask(c *gin.Context) {
	in, ok := s.bindInput(c)
	if !ok {
		return
	}
	t := model.Task{
		ID:            model.TaskID(newID()),
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		Deadline:      in.Deadline,
		Status:        model.StatusPending,
		EstimatedTime: in.EstimatedTime,
	}

	s.mu.Lock()
	s.insert(owner(c), t)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, t)
}

func (s *Server) editTask(c *gin.Context) {
	s.mu.Lock()
	_, found := s.lookup(c)
	s.mu.Unlock()
	if !found {
		return
	}
	in, ok := s.bindInput(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	r, found := s.lookup(c)
	if !found {
		return
	}
	r.task.Title = strings.TrimSpace(in.Title)
	r.task.Description = strings.TrimSpace(in.Description)
	r.task.Deadline = in.Deadline
	if in.EstimatedTime != nil {
		r.task.EstimatedTime = in.EstimatedTime
	}
	c.JSON(http.StatusOK, r.task)
}

func (s *Server) deleteTask(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lookup(c); !ok {
		return
	}
	delete(s.tasks, c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (s *Server) clockIn(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.lookup(c)
	if !ok {
		return
	}
	if r.task.Status != model.StatusPending {
		fail(c, http.StatusForbidden, "Only PENDING tasks can be started.")
		return
	}
	start := model.NewLocalTime(s.now())
	r.task.Status = model.StatusInProgress
	r.task.StartTime = &start
	c.Status(http.StatusNoContent)
}

func (s *Server) clockOut(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.lookup(c)
	if !ok {
		return
	}
	// A task flagged as exceeded still has to be clocked out.
	if r.task.Status != model.StatusInProgress && r.task.Status != model.StatusTimeExceeded {
		fail(c, http.StatusForbidden, "Only IN_PROGRESS tasks can be finished.")
		return
	}
	finish := model.NewLocalTime(s.now())
	spent := int64(0)
	if r.task.StartTime != nil {
		spent = int64(finish.Sub(r.task.StartTime.Time).Minutes())
	}
	r.task.Status = model.StatusCompleted
	r.task.FinishTime = &finish
	r.task.TimeSpent = &spent
	c.Status(http.StatusNoContent)
}

func (s *Server) markCompleted(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.lookup(c)
	if !ok {
		return
	}
	if r.task.Status != model.StatusInProgress {
		fail(c, http.StatusForbidden, "Only IN_PROGRESS tasks can be completed.")
		return
	}
	finish := model.NewLocalTime(s.now())
	r.task.Status = model.StatusCompleted
	r.task.FinishTime = &finish
	c.Status(http.StatusNoContent)
}

func (s *Server) spentTime(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.lookup(c)
	if !ok {
		return
	}
	var spent int64
	if r.task.TimeSpent != nil {
		spent = *r.task.TimeSpent
	}
	c.JSON(http.StatusOK, model.StatusBody[int64]{Status: spent})
}

// exceeded flags an In Progress task that ran past its estimate plus
// tolerance. Caller holds s.mu.
func (s *Server) exceeded(r *record) bool {
	if r.task.Status == model.StatusTimeExceeded {
		return true
	}
	if r.task.Status != model.StatusInProgress || r.task.StartTime == nil || r.task.EstimatedTime == nil {
		return false
	}
	elapsed := s.now().Sub(r.task.StartTime.Time).Minutes()
	if elapsed <= float64(*r.task.EstimatedTime)*exceededTolerance {
		return false
	}
	suggestion := suggestionReevaluate
	r.task.Status = model.StatusTimeExceeded
	r.task.Suggestion = &suggestion
	return true
}

func (s *Server) checkTimeExceeded(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, model.StatusBody[bool]{Status: s.exceeded(r)})
}

func (s *Server) notifyTimeExceeded(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.lookup(c)
	if !ok {
		return
	}
	notice := noticeWithin
	if s.exceeded(r) {
		notice = noticeClockOut
		if r.task.Suggestion != nil && *r.task.Suggestion != "" {
			notice = *r.task.Suggestion
		}
	}
	c.JSON(http.StatusOK, model.StatusBody[string]{Status: notice})
}
