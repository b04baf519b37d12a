package cli

import (
	"context"
	"strings"

	"taskvvts-cli/internal/page"
	"taskvvts-cli/internal/validate"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Task commands",
	}

	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksSelectCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksCreateCmd(app))
	cmd.AddCommand(newTasksEditCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	cmd.AddCommand(newTasksTransitionCmd(app, "clock-in", "Start working on a Pending task", (*page.TaskDetailController).ClockIn))
	cmd.AddCommand(newTasksTransitionCmd(app, "clock-out", "Stop working on an In Progress task (records time spent)", (*page.TaskDetailController).ClockOut))
	cmd.AddCommand(newTasksTransitionCmd(app, "complete", "Mark an In Progress task as completed", (*page.TaskDetailController).MarkComplete))
	cmd.AddCommand(newTasksSpentTimeCmd(app))
	cmd.AddCommand(newTasksCheckTimeCmd(app))

	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your tasks",
		Example: strings.TrimSpace(`
taskvvts tasks list
taskvvts tasks list --status in-progress --format text
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, app, func(rt *runtime) error {
				v := &flagView{}
				c := page.NewTaskList(rt.env(&nav{}), v)
				var err error
				if strings.TrimSpace(status) != "" {
					err = c.Filter(cmd.Context(), status)
				} else {
					err = c.Load(cmd.Context())
				}
				if err != nil {
					return writeErr(cmd, err)
				}
				meta := map[string]any{"count": len(v.rows)}
				if st := c.Status(); st != "" {
					meta["status"] = string(st)
				}
				return writeOut(cmd, app, envelope{
					Data:  taskRows(v.rows),
					Meta:  meta,
					Hints: []string{"taskvvts tasks show <task-id>"},
				})
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Only tasks with this status (pending|in-progress|completed|time-exceeded)")
	return cmd
}

func newTasksSelectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "select <task-id>",
		Short: "Remember a task for the task-scoped commands of this shell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, app, func(rt *runtime) error {
				n := &nav{}
				if err := page.NewTaskList(rt.env(n), &flagView{}).Select(args[0]); err != nil {
					return writeErr(cmd, err)
				}
				id, _ := rt.sess.SelectedTaskID()
				return writeOut(cmd, app, envelope{
					Data: map[string]any{"selected": id, "session": rt.sess.Scope()},
					Meta: n.meta(),
				})
			})
		},
	}
}

// selectArg stores an explicit task id the way picking it from the list does.
func selectArg(rt *runtime, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		if _, ok := rt.sess.SelectedTaskID(); !ok {
			return noTaskIDError{}
		}
		return nil
	}
	return page.NewTaskList(rt.env(&nav{}), &flagView{}).Select(args[0])
}

// showCard loads the selected task and writes it with meta.
func showCard(ctx context.Context, cmd *cobra.Command, app *App, rt *runtime, v *flagView, meta map[string]any) error {
	if err := page.NewTaskDetail(rt.env(&nav{}), v).Load(ctx); err != nil {
		return writeErr(cmd, err)
	}
	if meta == nil {
		meta = map[string]any{}
	}
	if v.message != "" {
		meta["message"] = v.message
	}
	return writeOut(cmd, app, envelope{Data: taskCard(*v.card), Meta: meta})
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "show [task-id]",
		Aliases: []string{"get"},
		Short:   "Show a task (re-fetched from the API)",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, app, func(rt *runtime) error {
				if err := selectArg(rt, args); err != nil {
					return writeErr(cmd, err)
				}
				return showCard(cmd.Context(), cmd, app, rt, &flagView{}, nil)
			})
		},
	}
}

func addFormFlags(cmd *cobra.Command, v *flagView) {
	cmd.Flags().StringVar(&v.title, "title", "", "Title")
	cmd.Flags().StringVar(&v.description, "description", "", "Description")
	cmd.Flags().StringVar(&v.deadline, "deadline", "", "Deadline (YYYY-MM-DDTHH:MM, local time)")
	cmd.Flags().StringVar(&v.estimate, "estimate", "", "Estimated time in minutes (optional)")
}

func newTasksCreateCmd(app *App) *cobra.Command {
	v := &flagView{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		Example: strings.TrimSpace(`
taskvvts tasks create --title "Write report" --description "Q3 numbers" --deadline 2030-01-31T17:00 --estimate 90
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, app, func(rt *runtime) error {
				n := &nav{}
				if err := page.NewTaskCreate(rt.env(n), v).Submit(cmd.Context()); err != nil {
					return writeErr(cmd, err)
				}
				deadline, _ := validate.DeadlineFromInput(v.deadline)
				return writeOut(cmd, app, envelope{
					Data:  map[string]any{"created": true, "title": strings.TrimSpace(v.title), "deadline": deadline},
					Meta:  n.meta(),
					Hints: []string{"taskvvts tasks list"},
				})
			})
		},
	}
	addFormFlags(cmd, v)
	return cmd
}

func newTasksEditCmd(app *App) *cobra.Command {
	v := &flagView{}
	cmd := &cobra.Command{
		Use:   "edit [task-id]",
		Short: "Edit a task; unspecified fields keep their current values",
		Example: strings.TrimSpace(`
taskvvts tasks edit 42 --deadline 2030-02-15T09:00
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v.override = map[string]bool{}
			for _, f := range []string{"title", "description", "deadline", "estimate"} {
				v.override[f] = cmd.Flags().Changed(f)
			}
			return withRuntime(cmd, app, func(rt *runtime) error {
				if err := selectArg(rt, args); err != nil {
					return writeErr(cmd, err)
				}
				id, _ := rt.sess.SelectedTaskID()

				n := &nav{}
				c := page.NewTaskEdit(rt.env(n), v)
				if err := c.Load(cmd.Context()); err != nil {
					return writeErr(cmd, err)
				}
				if err := c.Submit(cmd.Context()); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, envelope{
					Data:  map[string]any{"updated": true, "id": id, "title": v.Title(), "deadline": v.Deadline()},
					Meta:  n.meta(),
					Hints: []string{"taskvvts tasks show " + id},
				})
			})
		},
	}
	addFormFlags(cmd, v)
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete [task-id]",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, app, func(rt *runtime) error {
				if err := selectArg(rt, args); err != nil {
					return writeErr(cmd, err)
				}
				id, _ := rt.sess.SelectedTaskID()
				n := &nav{}
				if err := page.NewTaskDetail(rt.env(n), &flagView{}).Delete(cmd.Context()); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, envelope{
					Data: map[string]any{"deleted": true, "id": id},
					Meta: n.meta(),
				})
			})
		},
	}
}

type transition func(*page.TaskDetailController, context.Context) error

// newTasksTransitionCmd builds clock-in/clock-out/complete. Success reloads
// the task, so the output is the fresh card.
func newTasksTransitionCmd(app *App, use, short string, run transition) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [task-id]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, app, func(rt *runtime) error {
				if err := selectArg(rt, args); err != nil {
					return writeErr(cmd, err)
				}
				n := &nav{}
				v := &flagView{}
				if err := run(page.NewTaskDetail(rt.env(n), v), cmd.Context()); err != nil {
					return writeErr(cmd, err)
				}
				return showCard(cmd.Context(), cmd, app, rt, v, map[string]any{"action": use})
			})
		},
	}
}

func newTasksSpentTimeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "spent-time [task-id]",
		Short: "Show the minutes recorded for a task",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, app, func(rt *runtime) error {
				if err := selectArg(rt, args); err != nil {
					return writeErr(cmd, err)
				}
				id, _ := rt.sess.SelectedTaskID()
				v := &flagView{}
				minutes, err := page.NewTaskDetail(rt.env(&nav{}), v).SpentTime(cmd.Context())
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, envelope{
					Data: map[string]any{"id": id, "minutes": minutes, "human": validate.HumanizeMinutes(minutes)},
					Meta: map[string]any{"message": v.message},
				})
			})
		},
	}
}

func newTasksCheckTimeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check-time [task-id]",
		Short: "Ask the API whether a task ran over its estimate",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, app, func(rt *runtime) error {
				if err := selectArg(rt, args); err != nil {
					return writeErr(cmd, err)
				}
				v := &flagView{}
				if err := page.NewTaskDetail(rt.env(&nav{}), v).CheckTime(cmd.Context()); err != nil {
					return writeErr(cmd, err)
				}
				return showCard(cmd.Context(), cmd, app, rt, v, map[string]any{"action": "check-time"})
			})
		},
	}
}
