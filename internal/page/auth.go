package page

import (
	"context"
	"fmt"
	"strings"

	"taskvvts-cli/internal/api"
	"taskvvts-cli/internal/messages"
	"taskvvts-cli/internal/model"
	"taskvvts-cli/internal/validate"

	"go.uber.org/zap"
)

type LoginController struct {
	env  Env
	view LoginView
}

func NewLogin(env Env, view LoginView) *LoginController {
	return &LoginController{env: env, view: view}
}

// Submit authenticates, stores the token and opens the task list.
func (c *LoginController) Submit(ctx context.Context) error {
	m := c.env.msg()
	creds := model.Credentials{
		Username: strings.TrimSpace(c.view.Username()),
		Password: c.view.Password(),
	}
	if f, ok := validate.Required(
		validate.Field{Name: messages.UsernameRequired, Value: creds.Username},
		validate.Field{Name: messages.PasswordRequired, Value: creds.Password},
	); !ok {
		msg := m.T(f.Name)
		c.view.Alert(msg)
		return &Error{Message: msg}
	}

	tok, err := c.env.API.Login(ctx, creds)
	if err != nil {
		var msg string
		if api.KindOf(err) == api.KindTransport {
			msg = m.T(messages.LoginUnexpected)
		} else {
			reason := api.MessageOf(err)
			if reason == "" {
				reason = m.T(messages.LoginFailure)
			}
			msg = m.TData(messages.LoginError, map[string]any{"Reason": reason})
		}
		c.env.log().Info("login failed", zap.Stringer("kind", api.KindOf(err)), zap.Error(err))
		c.view.Alert(msg)
		return &Error{Message: msg, Err: err}
	}

	if err := c.env.Session.SetToken(tok); err != nil {
		return &Error{Message: fmt.Sprintf("store token: %v", err), Err: err}
	}
	c.env.Nav.Navigate(TaskList)
	return nil
}

// GoRegister opens the registration screen.
func (c *LoginController) GoRegister() {
	c.env.Nav.Navigate(Register)
}

type RegisterController struct {
	env  Env
	view RegisterView
}

func NewRegister(env Env, view RegisterView) *RegisterController {
	return &RegisterController{env: env, view: view}
}

// Submit validates the profile field by field and creates the account.
// The first failing field wins; no request is made until all pass.
func (c *RegisterController) Submit(ctx context.Context) error {
	m := c.env.msg()
	c.view.ClearErrors()

	p := model.Profile{
		Name:     strings.TrimSpace(c.view.Name()),
		LastName: strings.TrimSpace(c.view.LastName()),
		Email:    strings.TrimSpace(c.view.Email()),
		Password: c.view.Password(),
	}
	required := map[string]string{
		FieldName:     messages.NameRequired,
		FieldLastName: messages.LastNameRequired,
		FieldEmail:    messages.EmailRequired,
		FieldPassword: messages.PasswordRequired,
	}
	if f, ok := validate.Required(
		validate.Field{Name: FieldName, Value: p.Name},
		validate.Field{Name: FieldLastName, Value: p.LastName},
		validate.Field{Name: FieldEmail, Value: p.Email},
		validate.Field{Name: FieldPassword, Value: p.Password},
	); !ok {
		msg := m.T(required[f.Name])
		c.view.SetFieldError(f.Name, msg)
		return &Error{Message: msg}
	}
	if !validate.IsEmail(p.Email) {
		msg := m.T(messages.EmailInvalid)
		c.view.SetFieldError(FieldEmail, msg)
		return &Error{Message: msg}
	}

	err := c.env.API.Register(ctx, p)
	switch api.KindOf(err) {
	case api.KindUnknown:
		if err == nil {
			c.env.Nav.Navigate(Login)
			return nil
		}
	case api.KindConflict:
		return inline(c.view.SetFormError, m.T(messages.UsernameExists), err)
	}
	c.env.log().Warn("register failed", zap.Stringer("kind", api.KindOf(err)), zap.Error(err))
	msg := m.T(messages.RegisterUnexpected)
	c.view.Alert(msg)
	return &Error{Message: msg, Err: err}
}

// GoLogin returns to the login screen.
func (c *RegisterController) GoLogin() {
	c.env.Nav.Navigate(Login)
}
