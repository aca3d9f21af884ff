package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	slogcontext "github.com/veqryn/slog-context"

	"github.com/bjaus/webdispatch"
)

func registerHandlers(reg *webdispatch.Registry) {
	reg.Register("Articles", newArticles)
	reg.Register("admin/api/Users", newUsers)
	reg.RegisterAbstract("admin/api/App")
}

type articles struct {
	*webdispatch.Base
}

func newArticles(req webdispatch.Request) webdispatch.Handler {
	c := &articles{Base: webdispatch.NewBase(req)}
	c.Handle("index", c.index)
	c.Handle("view", c.view)
	return c
}

func (c *articles) index(ctx context.Context, _ []string) (webdispatch.Result, error) {
	return webdispatch.Respond(jsonResponse(http.StatusOK, []string{"first", "second"})), nil
}

func (c *articles) view(ctx context.Context, args []string) (webdispatch.Result, error) {
	if len(args) == 0 {
		return webdispatch.Respond(jsonResponse(http.StatusBadRequest, map[string]string{"error": "missing id"})), nil
	}
	slogcontext.FromCtx(ctx).DebugContext(ctx, "viewing article", "id", args[0])
	return webdispatch.Respond(jsonResponse(http.StatusOK, map[string]string{"id": args[0]})), nil
}

// users rejects requests without an API token before any action runs.
type users struct {
	*webdispatch.Base
}

func newUsers(req webdispatch.Request) webdispatch.Handler {
	c := &users{Base: webdispatch.NewBase(req)}
	c.Handle("index", func(context.Context, []string) (webdispatch.Result, error) {
		return webdispatch.Respond(jsonResponse(http.StatusOK, []string{"alice", "bob"})), nil
	})
	return c
}

func (c *users) StartupProcess(context.Context) (*webdispatch.Response, error) {
	r := webdispatch.HTTPRequest(c.Request())
	if r == nil || !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		return jsonResponse(http.StatusUnauthorized, map[string]string{"error": "unauthorized"}), nil
	}
	return nil, nil
}

func jsonResponse(status int, v any) *webdispatch.Response {
	resp := webdispatch.NewResponse(status)
	resp.Header.Set("Content-Type", "application/json")
	body, err := json.Marshal(v)
	if err != nil {
		resp.Status = http.StatusInternalServerError
		return resp
	}
	resp.Body = body
	return resp
}
