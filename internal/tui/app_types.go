package tui

import (
	"taskvvts-cli/internal/page"
)

type view int

const (
	viewLogin view = iota
	viewRegister
	viewTasks
	viewTask
	viewCreate
	viewEdit
)

func viewFor(p page.Page) view {
	switch p {
	case page.Register:
		return viewRegister
	case page.TaskList:
		return viewTasks
	case page.TaskDetail:
		return viewTask
	case page.TaskCreate:
		return viewCreate
	case page.TaskEdit:
		return viewEdit
	default:
		return viewLogin
	}
}

func (v view) crumb() string {
	switch v {
	case viewRegister:
		return "Register"
	case viewTasks:
		return "Tasks"
	case viewTask:
		return "Task"
	case viewCreate:
		return "New task"
	case viewEdit:
		return "Edit task"
	default:
		return "Login"
	}
}

func (v view) isForm() bool {
	switch v {
	case viewLogin, viewRegister, viewCreate, viewEdit:
		return true
	}
	return false
}

// doneMsg carries a finished controller call back to the UI goroutine.
type doneMsg struct {
	op   string
	snap *snapshot
	nav  *navRec
	err  error
}
