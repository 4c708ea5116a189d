package directory

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pearcec/todolist/internal/validation"
)

func futureStamp(d time.Duration) string {
	return time.Now().Add(d).UTC().Format(TimeLayout)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/api/v1/", WithTimeout(5*time.Second))
}

func TestLoginSendsFormAndReturnsKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/login/", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "dave", r.PostForm.Get("username"))
		assert.Equal(t, "pod-bay", r.PostForm.Get("password"))
		_ = json.NewEncoder(w).Encode(map[string]string{"key": "301ed42f"})
	})

	key, err := c.Login(context.Background(), "dave", "pod-bay")
	require.NoError(t, err)
	assert.Equal(t, "301ed42f", key)
}

func TestLoginWrongCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"non_field_errors":["Unable to log in"]}`, http.StatusBadRequest)
	})

	_, err := c.Login(context.Background(), "dave", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusBadRequest, serr.StatusCode)
	assert.Contains(t, serr.Detail, "Unable to log in")
}

func TestLoginMissingKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := c.Login(context.Background(), "dave", "pod-bay")
	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "login", serr.Op)
}

func TestRegister(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/registration/", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "dave@discovery.one", r.PostForm.Get("email"))
		assert.Equal(t, "secret", r.PostForm.Get("password1"))
		assert.Equal(t, "secret", r.PostForm.Get("password2"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"key":"abc"}`))
	})

	key, err := c.Register(context.Background(), "dave", "dave@discovery.one", "secret", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc", key)
}

func TestCurrentUserSendsToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Token abc", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/v1/auth/user/", r.URL.Path)
		_, _ = w.Write([]byte(`{"pk": 7, "username": "dave", "email": "dave@discovery.one"}`))
	})

	u, err := c.CurrentUser(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, User{ID: 7, Username: "dave", Email: "dave@discovery.one"}, u)
}

func TestListEvents(t *testing.T) {
	start, end := futureStamp(24*time.Hour), futureStamp(48*time.Hour)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/events/", r.URL.Path)
		assert.Equal(t, "Token abc", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]Record{{
			ID: 1, Name: "Calcetto", Description: "11 vs 11", Author: 1,
			StartDate: start, EndDate: end, Location: "stadio", Category: 1, Priority: 1,
		}})
	})

	records, err := c.ListEvents(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Calcetto", records[0].Name)

	e, err := records[0].Event()
	require.NoError(t, err)
	assert.Equal(t, 1, e.ID())
	assert.Equal(t, "stadio", e.Location().String())
}

func TestListEventsForbidden(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := c.ListEvents(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateEventOmitsPlaceholderID(t *testing.T) {
	start, end := futureStamp(24*time.Hour), futureStamp(48*time.Hour)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var raw map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, hasID := raw["id"]
		assert.False(t, hasID, "unsaved events must not send an id")
		assert.Equal(t, "Gita", raw["name"])

		w.WriteHeader(http.StatusCreated)
		raw["id"] = 42
		_ = json.NewEncoder(w).Encode(raw)
	})

	saved, err := c.CreateEvent(context.Background(), "abc", Record{
		ID: -1, Name: "Gita", Description: "al mare", Author: 7,
		StartDate: start, EndDate: end, Location: "Tropea", Category: 2, Priority: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, 42, saved.ID)
	assert.Equal(t, 7, saved.Author)
}

func TestDeleteEvent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/events/42/", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, c.DeleteEvent(context.Background(), "abc", 42))
}

func TestLogoutFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	err := c.Logout(context.Background(), "abc")
	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusInternalServerError, serr.StatusCode)
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, "logout: status 500: boom", serr.Error())
}

func TestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := NewClient(server.URL)
	_, err := c.ListEvents(context.Background(), "abc")
	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Zero(t, serr.StatusCode)
}

func TestRecordRoundTrip(t *testing.T) {
	start, end := futureStamp(24*time.Hour), futureStamp(72*time.Hour)
	r := Record{
		ID: 3, Name: "Riunione", Description: "budget 2027", Author: 2,
		StartDate: start, EndDate: end, Location: "sala A", Category: 3, Priority: 2,
	}
	e, err := r.Event()
	require.NoError(t, err)
	assert.Equal(t, r, NewRecord(e))
}

func TestRecordEventRejectsInvalidFields(t *testing.T) {
	valid := Record{
		Name: "ok", Description: "ok", Author: 1,
		StartDate: futureStamp(time.Hour), EndDate: futureStamp(2 * time.Hour),
		Location: "ok", Category: 0, Priority: 0,
	}

	tests := []struct {
		name  string
		edit  func(r *Record)
		field string
	}{
		{"bad name", func(r *Record) { r.Name = "no!" }, "name"},
		{"past start", func(r *Record) { r.StartDate = "2021-12-25T12:12:12Z" }, "start_date"},
		{"bad end format", func(r *Record) { r.EndDate = "tomorrow" }, "end_date"},
		{"end before start", func(r *Record) { r.StartDate, r.EndDate = r.EndDate, r.StartDate }, "end_date"},
		{"bad priority", func(r *Record) { r.Priority = 5 }, "priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.edit(&r)
			_, err := r.Event()
			var verr *validation.Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
