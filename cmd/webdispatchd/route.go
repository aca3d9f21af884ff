package main

import (
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/bjaus/webdispatch"
)

var errNoRoute = errors.New("no route")

// route maps /<controller>[/<action>[/<pass>...]][.<ext>] to routing
// parameters. The prefix and plugin come from the query string.
func route(r *http.Request) (webdispatch.Request, error) {
	p := strings.Trim(r.URL.Path, "/")
	if p == "" {
		return nil, errNoRoute
	}

	values := map[string]string{
		webdispatch.ParamAction: "index",
		webdispatch.ParamPrefix: r.URL.Query().Get("prefix"),
		webdispatch.ParamPlugin: r.URL.Query().Get("plugin"),
	}
	if ext := path.Ext(p); ext != "" {
		values[webdispatch.ParamExt] = ext[1:]
		p = strings.TrimSuffix(p, ext)
	}

	segments := strings.Split(p, "/")
	values[webdispatch.ParamController] = webdispatch.Camelize(segments[0])
	if len(segments) > 1 {
		values[webdispatch.ParamAction] = segments[1]
	}
	var pass []string
	if len(segments) > 2 {
		pass = segments[2:]
	}

	return webdispatch.FromHTTP(r, webdispatch.NewParams(values, pass...)), nil
}
