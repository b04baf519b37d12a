// Package fakeapi is an in-memory stand-in for the task REST API. It backs
// the client tests and `taskvvts dev fake-server`.
package fakeapi

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"taskvvts-cli/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const BasePath = "/api/v1"

type user struct {
	Name     string
	LastName string
	Email    string
	Password string
}

type record struct {
	owner string
	seq   int
	task  model.Task
}

type Server struct {
	mu       sync.Mutex
	secret   []byte
	users    map[string]user
	tasks    map[string]*record
	seq      int
	now      func() time.Time
	tokenTTL time.Duration

	stringList bool
	forced     atomic.Int32
	hits       atomic.Int64

	log    *zap.Logger
	engine *gin.Engine
}

type Option func(*Server)

// WithClock replaces time.Now (tests move time forward).
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

func WithSecret(secret []byte) Option {
	return func(s *Server) { s.secret = secret }
}

// WithStringEncodedList makes /task/get-all answer with a JSON string that
// holds the array, like the original backend does.
func WithStringEncodedList() Option {
	return func(s *Server) { s.stringList = true }
}

func New(opts ...Option) *Server {
	s := &Server{
		secret:   []byte("fakeapi-dev-secret"),
		users:    map[string]user{},
		tasks:    map[string]*record{},
		now:      time.Now,
		tokenTTL: 24 * time.Hour,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Hits counts requests that reached the server.
func (s *Server) Hits() int64 { return s.hits.Load() }

// ForceStatus makes every following request fail with status (0 restores
// normal behavior).
func (s *Server) ForceStatus(status int) { s.forced.Store(int32(status)) }

// Seed registers a user directly; handy for demos and tests.
func (s *Server) Seed(email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	s.users[email] = user{Name: email, Email: email, Password: password}
}

// SeedTask stores a task for owner as-is and returns its id.
func (s *Server) SeedTask(owner string, t model.Task) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = model.TaskID(newID())
	}
	if t.Status == "" {
		t.Status = model.StatusPending
	}
	s.insert(strings.ToLower(owner), t)
	return string(t.ID)
}

// Task returns a copy of a stored task.
func (s *Server) Task(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.tasks[id]
	if !ok {
		return model.Task{}, false
	}
	return r.task, true
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.accessLog(), s.countAndForce())

	v1 := r.Group(BasePath)
	v1.POST("/authenticate", s.authenticate)
	v1.POST("/register", s.register)

	t := v1.Group("/task", s.requireAuth())
	t.GET("/get-all", s.listTasks)
	t.GET("/get-by-status", s.tasksByStatus)
	t.GET("/get/:id", s.getTask)
	t.POST("/create", s.createTask)
	t.PUT("/edit/:id", s.editTask)
	t.DELETE("/delete/:id", s.deleteTask)
	t.PUT("/clock-in/:id", s.clockIn)
	t.PUT("/clock-out/:id", s.clockOut)
	t.PUT("/mark-completed/:id", s.markCompleted)
	t.GET("/spent-time/:id", s.spentTime)
	t.GET("/check-time-exceeded/:id", s.checkTimeExceeded)
	t.GET("/notify-time-exceeded/:id", s.notifyTimeExceeded)
	return r
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			s.log.Error("http request", fields...)
			return
		}
		s.log.Info("http request", fields...)
	}
}

func (s *Server) countAndForce() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.hits.Add(1)
		if st := int(s.forced.Load()); st != 0 {
			c.AbortWithStatusJSON(st, gin.H{"message": http.StatusText(st)})
			return
		}
		c.Next()
	}
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}

// ownedTasks returns the owner's tasks, oldest first.
func (s *Server) ownedTasks(owner string) []model.Task {
	recs := make([]*record, 0)
	for _, r := range s.tasks {
		if r.owner == owner {
			recs = append(recs, r)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	out := make([]model.Task, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.task)
	}
	return out
}

// insert must be called with s.mu held.
func (s *Server) insert(owner string, t model.Task) {
	s.seq++
	s.tasks[string(t.ID)] = &record{owner: owner, seq: s.seq, task: t}
}
