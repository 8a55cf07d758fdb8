package main

import (
	"context"
	"fmt"
	"html"
	"log"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/hashid/pkg/hashid"
	"go.uber.org/zap"

	navigation "github.com/goliatone/go-navigation"
	"github.com/goliatone/go-navigation/app"
	"github.com/goliatone/go-navigation/middleware/flash"
	"github.com/goliatone/go-navigation/middleware/guard"
	"github.com/goliatone/go-navigation/middleware/requestid"
	"github.com/goliatone/go-navigation/middleware/routecontext"
	"github.com/goliatone/go-navigation/ssr"
	"github.com/goliatone/go-navigation/view"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserStore struct {
	sync.RWMutex
	users map[string]User
}

func NewUserStore() *UserStore {
	s := &UserStore{users: map[string]User{}}
	s.add("Julie Smith", "julie.smith@example.com")
	s.add("Jose Bates", "jose.bates@example.com")
	s.add("Brad Miles", "brad.miles@example.com")
	return s
}

func (s *UserStore) add(name, email string) {
	id, _ := hashid.New(email)
	s.users[id] = User{ID: id, Name: name, Email: email}
}

func (s *UserStore) Get(id string) (User, bool) {
	s.RLock()
	defer s.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *UserStore) List() []User {
	s.RLock()
	defer s.RUnlock()
	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

const userListTemplate = `<h1>{{ title }}</h1>` +
	`{% if flash.toast_count %}<p class="toast">{{ flash.toast_text }}</p>{% endif %}` +
	`<ul>{% for u in users %}<li><a href="/users/{{ u.ID }}">{{ u.Name }}</a></li>{% endfor %}</ul>` +
	`<p>{{ pluralize("user", user_count) }}</p>`

// userDirectory installs the demo routes, components and hooks.
type userDirectory struct {
	users *UserStore
	flash *flash.Flash
}

func (d *userDirectory) Install(a *app.App) error {
	if err := a.Register("users", d.users); err != nil {
		return err
	}
	list := d.users.List()
	a.SetState(map[string]any{"users": list, "user_count": len(list)})

	listView, err := view.Inline(userListTemplate)
	if err != nil {
		return err
	}
	if err := a.Component("user_list", listView); err != nil {
		return err
	}
	if err := a.Component("user_detail", func(map[string]any) view.Component {
		return view.ComponentFunc(func(s *view.Scope) (string, error) {
			users, err := app.Lookup[*UserStore](a.Services(), "users")
			if err != nil {
				return "", err
			}
			u, ok := users.Get(s.Params.Get("id"))
			if !ok {
				return "", navigation.NewNotFoundError("/users/" + s.Params.Get("id"))
			}
			return fmt.Sprintf("<h1>%s</h1><p>%s</p>", html.EscapeString(u.Name), html.EscapeString(u.Email)), nil
		})
	}); err != nil {
		return err
	}
	if err := a.Component("admin", func(map[string]any) view.Component {
		return view.ComponentFunc(func(*view.Scope) (string, error) { return "<h1>admin</h1>", nil })
	}); err != nil {
		return err
	}
	if err := a.Component("not_found", func(map[string]any) view.Component {
		return view.ComponentFunc(func(s *view.Scope) (string, error) { return "<h1>Not here</h1>", nil })
	}); err != nil {
		return err
	}

	for _, route := range []struct{ pattern, handler string }{
		{"/", "user_list"},
		{"/users/:id", "user_detail"},
		{"/admin/:section", "admin"},
	} {
		if err := a.Route(route.pattern, route.handler); err != nil {
			return err
		}
	}
	a.SetDefaultRoute("not_found")

	return a.Hook(
		requestid.New(requestid.Config{Store: a.Store()}),
		flash.New(flash.Config{Flash: d.flash, Store: a.Store()}),
		routecontext.New(routecontext.Config{Store: a.Store(), ExportAsMap: true}),
		guard.New(
			func(*navigation.Navigation) bool { return a.State("authenticated", false) == true },
			guard.WithMatch("/admin/**"),
			guard.WithRedirect("/"),
			guard.WithReplace(true),
			guard.WithDenied(func(nav *navigation.Navigation) {
				d.flash.SetMessage(flash.Message{Type: "error", Text: "Sign in to open " + nav.Path})
			}),
			guard.WithErrorHandler(a.HandleError),
		),
	)
}

func newApp(users *UserStore, logger navigation.Logger) (*app.App, error) {
	cfg := app.DefaultConfig()
	cfg.State = map[string]any{"title": "Users"}

	a, err := app.New(cfg, app.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err := a.Use(&userDirectory{users: users, flash: flash.NewFlash()}); err != nil {
		return nil, err
	}
	return a, nil
}

func newServer(a *app.App, logger navigation.Logger) *fiber.App {
	return ssr.New(a, ssr.Config{ETag: true, Logger: logger}).FiberApp(fiber.Config{
		AppName:           "Go Navigation - Fiber",
		EnablePrintRoutes: true,
	})
}

func main() {
	zl, err := zap.NewDevelopment()
	if err != nil {
		log.Panic(err)
	}
	logger := navigation.NewZapLogger(zl.Sugar())

	a, err := newApp(NewUserStore(), logger)
	if err != nil {
		log.Panic(err)
	}
	if err := a.Mount(); err != nil {
		log.Panic(err)
	}

	server := newServer(a, logger)

	go func() {
		if err := server.Listen(":9092"); err != nil {
			log.Panic(err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	if err := server.ShutdownWithContext(context.TODO()); err != nil {
		log.Panic(err)
	}
}
