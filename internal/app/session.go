package app

import (
	"context"
	"errors"
	"strings"

	"github.com/pearcec/todolist/internal/directory"
	"github.com/pearcec/todolist/internal/domain"
)

func (a *App) login(ctx context.Context) (bool, error) {
	username, err := a.console.ReadLine("Username: ")
	if err != nil {
		return false, err
	}
	password, err := a.console.ReadSecret("Password: ")
	if err != nil {
		return false, err
	}

	token, err := a.dir.Login(ctx, strings.TrimSpace(username), password)
	switch {
	case errors.Is(err, directory.ErrUnauthorized):
		a.console.Println(MsgWrongCredentials)
		return false, nil
	case isServiceError(err):
		a.logger.Warn("login failed", "error", err)
		a.console.Println(MsgLoginUnavailable)
		return false, nil
	case err != nil:
		return false, err
	}

	user, err := a.dir.CurrentUser(ctx, token)
	if err != nil {
		a.revoke(ctx, token)
		if !isServiceError(err) {
			return false, err
		}
		a.logger.Warn("resolving current user failed", "error", err)
		a.console.Println(MsgLoginUnavailable)
		return false, nil
	}
	author, err := domain.NewAuthor(user.ID)
	if err != nil {
		a.revoke(ctx, token)
		a.logger.Warn("service returned an invalid user", "pk", user.ID, "error", err)
		a.console.Println(MsgLoginUnavailable)
		return false, nil
	}

	a.token = token
	a.author = author
	return true, nil
}

func (a *App) register(ctx context.Context) error {
	username, err := a.console.ReadLine("Username: ")
	if err != nil {
		return err
	}
	email, err := a.console.ReadLine("Email: ")
	if err != nil {
		return err
	}
	password, err := a.console.ReadSecret("Password: ")
	if err != nil {
		return err
	}
	password2, err := a.console.ReadSecret("Repeat password: ")
	if err != nil {
		return err
	}
	if password != password2 {
		a.console.Println("Passwords do not match!")
		return nil
	}

	_, err = a.dir.Register(ctx, strings.TrimSpace(username), strings.TrimSpace(email), password, password2)
	if err != nil {
		if !isServiceError(err) {
			return err
		}
		a.logger.Warn("registration failed", "error", err)
		a.console.Println("Registration failed: " + err.Error())
		return nil
	}
	a.console.Println("Registration completed! You can log in now.")
	return nil
}

func (a *App) logout(ctx context.Context) {
	if err := a.dir.Logout(ctx, a.token); err != nil {
		a.logger.Warn("logout failed", "error", err)
		a.console.Println(MsgLogoutFailed)
	} else {
		a.console.Println(MsgLoggedOut)
	}
	a.token = ""
}

// revoke logs token out without telling the user; failures are only logged.
func (a *App) revoke(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := a.dir.Logout(ctx, token); err != nil {
		a.logger.Warn("revoking session token failed", "error", err)
	}
}

// reload replaces the list with the events stored by the service. Records
// that no longer validate, such as events already in the past, are skipped.
func (a *App) reload(ctx context.Context) error {
	a.list.Clear()

	records, err := a.dir.ListEvents(ctx, a.token)
	if err != nil {
		if !isServiceError(err) {
			return err
		}
		a.logger.Warn("listing events failed", "error", err)
		a.console.Println(MsgUnavailable)
		return nil
	}

	skipped := 0
	for _, r := range records {
		e, err := r.Event()
		if err != nil {
			a.logger.Warn("skipping event", "id", r.ID, "error", err)
			skipped++
			continue
		}
		a.list.Add(e)
	}
	if skipped > 0 {
		a.console.Printf("%d event(s) skipped because they are no longer valid.\n", skipped)
	}
	a.logger.Debug("events reloaded", "loaded", a.list.Len(), "skipped", skipped)
	return nil
}

func (a *App) addEvent(ctx context.Context) error {
	p, err := a.readEventParams()
	if err != nil {
		return err
	}
	e, err := domain.NewEvent(p)
	if err != nil {
		return err
	}

	saved, err := a.dir.CreateEvent(ctx, a.token, directory.NewRecord(e))
	if err != nil {
		if !isServiceError(err) {
			return err
		}
		a.logger.Warn("creating event failed", "error", err)
		a.console.Println("Unable to save the event at the moment. Please, try in a few minutes.")
		return nil
	}

	p.ID = saved.ID
	e, err = domain.NewEvent(p)
	if err != nil {
		return err
	}
	a.list.Add(e)
	a.console.Println(MsgEventAdded)
	return nil
}

func (a *App) removeEvent(ctx context.Context) error {
	index, err := readField(a.console, "Index (0 to cancel)", a.parseIndex)
	if err != nil {
		return err
	}
	if index == 0 {
		a.console.Println(MsgCancelled)
		return nil
	}

	e, err := a.list.Event(index - 1)
	if err != nil {
		return err
	}
	if err := a.dir.DeleteEvent(ctx, a.token, e.ID()); err != nil {
		if !isServiceError(err) {
			return err
		}
		a.logger.Warn("deleting event failed", "id", e.ID(), "error", err)
		a.console.Println("Unable to remove the event at the moment. Please, try in a few minutes.")
		return nil
	}
	if err := a.list.Remove(index - 1); err != nil {
		return err
	}
	a.console.Println(MsgEventRemoved)
	return nil
}

func (a *App) printEvents() {
	printEvents(a.console, a.list.Events())
}
