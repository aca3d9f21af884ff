package webdispatch

import (
	"errors"
	"net/http"

	"github.com/tidwall/gjson"
)

// Routing parameters read by the factory. They are filled in by the router
// that runs before dispatch.
const (
	ParamController = "controller"
	ParamAction     = "action"
	ParamPlugin     = "plugin"
	ParamPrefix     = "prefix"
	ParamExt        = "_ext"
	ParamPass       = "pass"
)

// ErrInvalidJSON is returned when a routing document is not valid JSON.
var ErrInvalidJSON = errors.New("webdispatch: invalid JSON")

// Request is the read-only view of an inbound request used during dispatch.
type Request interface {
	// Param returns the routing parameter with the given name, or "" when
	// it is not set.
	Param(name string) string

	// Pass returns the positional arguments extracted by the router, in
	// route order.
	Pass() []string
}

// Params is a map-backed Request. Positional arguments live in Args and are
// returned by Pass; Values is read as-is by Param.
type Params struct {
	Values map[string]string
	Args   []string

	http *http.Request
}

// NewParams builds a Params request from named values and positional
// arguments.
//
//	req := webdispatch.NewParams(map[string]string{
//	    webdispatch.ParamController: "Articles",
//	    webdispatch.ParamAction:     "view",
//	}, "5")
func NewParams(values map[string]string, pass ...string) *Params {
	return &Params{Values: values, Args: pass}
}

func (p *Params) Param(name string) string {
	if p == nil || p.Values == nil {
		return ""
	}
	return p.Values[name]
}

func (p *Params) Pass() []string {
	if p == nil {
		return nil
	}
	return p.Args
}

// FromHTTP attaches the underlying HTTP request to p so handlers can reach
// it through HTTPRequest.
func FromHTTP(r *http.Request, p *Params) *Params {
	cp := *p
	cp.http = r
	return &cp
}

// HTTPRequest returns the HTTP request attached to req, or nil.
func HTTPRequest(req Request) *http.Request {
	if p, ok := req.(*Params); ok && p != nil {
		return p.http
	}
	return nil
}

// ParseRequest returns a Request backed by a JSON routing document:
//
//	{"controller": "Articles", "action": "view", "pass": ["5"]}
//
// Scalars that are not strings are read as their JSON text. The document is
// not copied; callers must not modify raw afterwards.
func ParseRequest(raw []byte) (Request, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidJSON
	}
	return jsonRequest{raw: raw}, nil
}

type jsonRequest struct {
	raw []byte
}

func (r jsonRequest) Param(name string) string {
	res := gjson.GetBytes(r.raw, name)
	if !res.Exists() || res.Type == gjson.Null {
		return ""
	}
	if res.Type == gjson.String {
		return res.Str
	}
	return res.Raw
}

func (r jsonRequest) Pass() []string {
	res := gjson.GetBytes(r.raw, ParamPass)
	if !res.IsArray() {
		return nil
	}
	items := res.Array()
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item.Type == gjson.String {
			out = append(out, item.Str)
			continue
		}
		out = append(out, item.Raw)
	}
	return out
}
