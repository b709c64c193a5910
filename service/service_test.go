package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/parry/dynamic"
	"github.com/wesleyorama2/parry/header"
	"github.com/wesleyorama2/parry/metrics"
	"github.com/wesleyorama2/parry/request"
	"github.com/wesleyorama2/parry/response"
)

type user struct {
	Name string `json:"name"`
}

type testAPIError struct {
	Message string `json:"message"`
}

func (e *testAPIError) Error() string {
	return e.Message
}

func newTestService(t *testing.T, handler http.HandlerFunc, opts ...Option) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL}, opts...)
}

func TestGet_DecodesValue(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users/1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"name":"Ada"}`)
	})

	v, ok, err := Get[user](context.Background(), s, "/users/1").Result()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Ada", v.Name)
}

func TestPost_EncodesBody(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got user
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&got)) {
			assert.Equal(t, "Ada", got.Name)
		}

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"name":"Ada"}`)
	})

	v, ok, err := Post[user](context.Background(), s, "/users", user{Name: "Ada"}).Result()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Ada", v.Name)
}

func TestServerError_DecodesConfiguredPayload(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message":"no such user"}`)
	}, WithErrorPayload(func() error { return &testAPIError{} }))

	_, _, err := Get[user](context.Background(), s, "/users/404").Result()
	var se *response.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)

	var payload *testAPIError
	require.ErrorAs(t, err, &payload)
	assert.Equal(t, "no such user", payload.Message)
}

func TestServerError_AmbiguousWithoutPayloadType(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `<html>oops</html>`)
	})

	_, _, err := Get[user](context.Background(), s, "/boom").Result()
	var ae *response.AmbiguousServerError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusInternalServerError, ae.StatusCode)
	assert.Equal(t, `<html>oops</html>`, string(ae.Body))
}

func TestDelete_EmptyCompletion(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	o := Delete(context.Background(), s, "/users/1").Outcome()
	require.NoError(t, o.Err())
	assert.True(t, o.IsEmpty())
}

func TestDoEmpty_IgnoresSuccessBody(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"ignored":true}`)
	})

	o := DoEmpty(context.Background(), s, request.Get("/ack")).Outcome()
	require.NoError(t, o.Err())
	assert.True(t, o.IsEmpty())
}

func TestDo_NestingKeyUnwrapsPayload(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"user":{"name":"Ada"}}`)
	})

	d := request.Get("/users/1").WithNestingKey("user")
	v, ok, err := Do[user](context.Background(), s, d).Result()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Ada", v.Name)
}

func TestDo_NestingKeyMismatch(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"account":{"name":"Ada"}}`)
	})

	d := request.Get("/users/1").WithNestingKey("user")
	_, _, err := Do[user](context.Background(), s, d).Result()
	var ke *response.KeyNotFoundError
	require.ErrorAs(t, err, &ke)
	assert.Equal(t, "user", ke.Requested)
	assert.Equal(t, "account", ke.Found)
}

func TestDoKeyed_ExposesMatchedKey(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"user":{"name":"Ada"}}`)
	})

	d := request.Get("/users/1").WithNestingKey("user")
	w, ok, err := DoKeyed[user](context.Background(), s, d).Result()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "user", w.MatchedKey)
	assert.Equal(t, "Ada", w.Value.Name)
}

func TestDoDynamic(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"name":"Ada","age":36}`)
	})

	v, ok, err := DoDynamic(context.Background(), s, request.Get("/users/1")).Result()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, dynamic.Object, v.Kind())
	assert.Equal(t, "Ada", v.Get("name").StringValue())
	assert.Equal(t, float64(36), v.Get("age").NumberValue())
}

func TestCancel_SuppressesTerminalEvent(t *testing.T) {
	started := make(chan struct{})
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})

	c := Get[user](context.Background(), s, "/slow")
	<-started
	c.Cancel()

	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Call did not settle after cancel")
	}

	assert.True(t, c.Canceled())
	assert.ErrorIs(t, c.Outcome().Err(), context.Canceled)
}

func TestCancel_AfterCompletionIsNoop(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"name":"Ada"}`)
	})

	c := Get[user](context.Background(), s, "/users/1")
	v, ok, err := c.Result()
	require.NoError(t, err)
	require.True(t, ok)

	c.Cancel()
	assert.False(t, c.Canceled())

	got, ok := c.Outcome().Value()
	require.True(t, ok, "terminal event must survive a late cancel")
	assert.Equal(t, v.Name, got.Name)
}

func TestHeaders_AppliedToEveryRequest(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := New(Config{
		BaseURL: srv.URL,
		Headers: header.Header{header.Authorization: "Bearer token"},
	})
	require.NoError(t, Delete(context.Background(), s, "/x").Outcome().Err())
	assert.Equal(t, "Bearer token", seen)
}

func TestReconfigure_NewCallsObserveNewConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"name":"`+r.Header.Get("X-Token")+`"}`)
	}))
	defer srv.Close()

	s := New(Config{
		BaseURL: srv.URL,
		Headers: header.Header{"X-Token": "old"},
	})

	v, _, err := Get[user](context.Background(), s, "/whoami").Result()
	require.NoError(t, err)
	assert.Equal(t, "old", v.Name)

	s.Reconfigure(func(cfg *Config) {
		cfg.Headers.Set("X-Token", "new")
	})

	v, _, err = Get[user](context.Background(), s, "/whoami").Result()
	require.NoError(t, err)
	assert.Equal(t, "new", v.Name)
}

func TestReconfigure_DrainsInFlightCalls(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		w.WriteHeader(http.StatusNoContent)
	})

	c := Delete(context.Background(), s, "/slow")
	<-started

	reconfDone := make(chan struct{})
	go func() {
		s.Reconfigure(func(cfg *Config) {})
		close(reconfDone)
	}()

	select {
	case <-reconfDone:
		t.Fatal("Reconfigure returned while a call was still in flight")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	select {
	case <-reconfDone:
	case <-time.After(2 * time.Second):
		t.Fatal("Reconfigure did not return after the in-flight call finished")
	}
	require.NoError(t, c.Outcome().Err())
}

func TestBuildFailure_FailsFastWithoutDispatch(t *testing.T) {
	dispatched := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dispatched = true
	}))
	defer srv.Close()

	s := New(Config{BaseURL: "not a url"})
	_, _, err := Get[user](context.Background(), s, "/x").Result()

	var me *request.MalformedURLError
	require.ErrorAs(t, err, &me)
	assert.False(t, dispatched)
}

func TestMetrics_RecordedPerCall(t *testing.T) {
	rec := metrics.NewRecorder()
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/boom" {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, "x")
			return
		}
		io.WriteString(w, `{"name":"Ada"}`)
	}, WithMetrics(rec))

	_, _, err := Get[user](context.Background(), s, "/users/1").Result()
	require.NoError(t, err)
	_, _, err = Get[user](context.Background(), s, "/boom").Result()
	require.Error(t, err)

	snap := rec.Snapshot()
	assert.Equal(t, int64(2), snap.Total)
	assert.Equal(t, int64(1), snap.Success)
	assert.Equal(t, int64(1), snap.Failure)
	assert.Equal(t, int64(2), snap.Latency["GET"].Count)
}

func TestTransportError_OnUnreachableHost(t *testing.T) {
	s := New(Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	_, _, err := Get[user](context.Background(), s, "/x").Result()
	var te *response.TransportError
	require.ErrorAs(t, err, &te)
	assert.Error(t, te.Err)
}
