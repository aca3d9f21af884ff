package webdispatch

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type contextKey string

type HooksSuite struct {
	suite.Suite
	reg     *Registry
	handler *recordingHandler
}

func TestHooksSuite(t *testing.T) {
	suite.Run(t, new(HooksSuite))
}

func (s *HooksSuite) SetupTest() {
	s.reg = NewRegistry()
	s.reg.Register("Articles", func(req Request) Handler {
		s.handler = newRecordingHandler(req)
		return s.handler
	})
	s.reg.RegisterAbstract("Base")
}

func (s *HooksSuite) TestOnResolveChainsContext() {
	var order []string
	var seen any

	f := New(s.reg,
		WithOnResolve(func(ctx context.Context, id Identifier, t *Type) context.Context {
			order = append(order, "first:"+id.Name)
			return context.WithValue(ctx, contextKey("type"), t.Name)
		}),
		WithOnResolve(func(ctx context.Context, id Identifier, t *Type) context.Context {
			order = append(order, "second")
			return ctx
		}),
		WithOnInvoke(func(ctx context.Context, controller, action string) {
			seen = ctx.Value(contextKey("type"))
		}),
	)

	_, err := f.Dispatch(context.Background(), articlesRequest())

	s.Require().NoError(err)
	s.Assert().Equal([]string{"first:Articles", "second"}, order)
	s.Assert().Equal("App/Controller/ArticlesController", seen)
}

func (s *HooksSuite) TestOnResolveNotCalledForMissing() {
	called := false
	f := New(s.reg, WithOnResolve(func(ctx context.Context, _ Identifier, _ *Type) context.Context {
		called = true
		return ctx
	}))

	_, err := f.Create(context.Background(), NewParams(map[string]string{ParamController: "Base"}))

	s.Assert().ErrorIs(err, ErrMissingHandler)
	s.Assert().False(called)
}

func (s *HooksSuite) TestOnMissingCalledForEveryCause() {
	var got []string
	f := New(s.reg, WithOnMissing(func(_ context.Context, err *MissingHandlerError) {
		got = append(got, err.Handler)
	}))

	for _, name := range []string{"articles", "Comments", "Base"} {
		_, err := f.Create(context.Background(), NewParams(map[string]string{ParamController: name}))
		s.Require().Error(err)
	}

	s.Assert().Equal([]string{"articles", "Comments", "Base"}, got)
}

func (s *HooksSuite) TestOnInvokeBeforeStartup() {
	var order []string
	f := New(s.reg, WithOnInvoke(func(_ context.Context, controller, action string) {
		order = append(order, "invoke:"+controller+"/"+action)
	}))

	h := newRecordingHandler(articlesRequest())
	h.startup = NewResponse(http.StatusFound)
	_, err := f.Invoke(context.Background(), h)

	s.Require().NoError(err)
	order = append(order, h.calls...)
	s.Assert().Equal([]string{"invoke:Articles/view", "startup"}, order)
}

func (s *HooksSuite) TestOnHaltReportsPhase() {
	var phases []Phase
	f := New(s.reg, WithOnHalt(func(_ context.Context, controller string, phase Phase) {
		s.Assert().Equal("Articles", controller)
		phases = append(phases, phase)
	}))

	h := newRecordingHandler(articlesRequest())
	h.startup = NewResponse(http.StatusFound)
	_, err := f.Invoke(context.Background(), h)
	s.Require().NoError(err)

	h = newRecordingHandler(articlesRequest())
	h.shutdown = NewResponse(http.StatusFound)
	_, err = f.Invoke(context.Background(), h)
	s.Require().NoError(err)

	h = newRecordingHandler(articlesRequest())
	_, err = f.Invoke(context.Background(), h)
	s.Require().NoError(err)

	s.Assert().Equal([]Phase{PhaseStartup, PhaseShutdown}, phases)
}

func (s *HooksSuite) TestOnSuccess() {
	var gotController, gotAction string
	var gotDuration time.Duration = -1
	failed := false

	f := New(s.reg,
		WithOnSuccess(func(_ context.Context, controller, action string, d time.Duration) {
			gotController, gotAction, gotDuration = controller, action, d
		}),
		WithOnFailure(func(context.Context, string, string, error, time.Duration) {
			failed = true
		}),
	)

	_, err := f.Dispatch(context.Background(), articlesRequest())

	s.Require().NoError(err)
	s.Assert().Equal("Articles", gotController)
	s.Assert().Equal("view", gotAction)
	s.Assert().GreaterOrEqual(gotDuration, time.Duration(0))
	s.Assert().False(failed)
}

func (s *HooksSuite) TestOnFailure() {
	wantErr := errors.New("database down")
	var gotErr error
	succeeded := false

	f := New(s.reg,
		WithOnSuccess(func(context.Context, string, string, time.Duration) {
			succeeded = true
		}),
		WithOnFailure(func(_ context.Context, _, _ string, err error, _ time.Duration) {
			gotErr = err
		}),
	)

	h := newRecordingHandler(articlesRequest())
	h.actionErr = wantErr
	_, err := f.Invoke(context.Background(), h)

	s.Assert().ErrorIs(err, wantErr)
	s.Assert().ErrorIs(gotErr, wantErr)
	s.Assert().False(succeeded)
}

func (s *HooksSuite) TestOnFailureNotCalledForMissingHandler() {
	failed := false
	f := New(s.reg, WithOnFailure(func(context.Context, string, string, error, time.Duration) {
		failed = true
	}))

	_, err := f.Dispatch(context.Background(), NewParams(map[string]string{ParamController: "Comments"}))

	s.Assert().ErrorIs(err, ErrMissingHandler)
	s.Assert().False(failed)
}

func (s *HooksSuite) TestHooksCalledInOrder() {
	var order []string
	f := New(s.reg,
		WithOnSuccess(func(context.Context, string, string, time.Duration) { order = append(order, "a") }),
		WithOnSuccess(func(context.Context, string, string, time.Duration) { order = append(order, "b") }),
	)

	_, err := f.Dispatch(context.Background(), articlesRequest())

	s.Require().NoError(err)
	s.Assert().Equal([]string{"a", "b"}, order)
}
