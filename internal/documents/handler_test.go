package documents_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/docmatrix/internal/documents"
	"github.com/JaimeStill/docmatrix/internal/identity"
	"github.com/JaimeStill/docmatrix/pkg/decode"
	"github.com/JaimeStill/docmatrix/pkg/logging"
	"github.com/JaimeStill/docmatrix/pkg/pagination"
)

type fakeSystem struct {
	docs    map[int64]documents.Document
	created *documents.CreateCommand
	scope   documents.Scope
}

func (f *fakeSystem) List(_ context.Context, _ uuid.UUID, scope documents.Scope, page pagination.PageRequest) (*pagination.PageResult[documents.Document], error) {
	f.scope = scope
	result := pagination.NewPageResult([]documents.Document{}, 0, page.Page, page.PageSize)
	return &result, nil
}

func (f *fakeSystem) Find(_ context.Context, id int64) (*documents.Document, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, documents.ErrNotFound
	}
	return &d, nil
}

func (f *fakeSystem) View(ctx context.Context, who identity.Identity, id int64) (*documents.Document, error) {
	d, err := f.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !who.IsAdmin() && !d.AccessibleTo(who.UserID) {
		return nil, documents.ErrForbidden
	}
	return d, nil
}

func (f *fakeSystem) ListAccessible(context.Context, uuid.UUID) ([]documents.Document, error) {
	return nil, nil
}

func (f *fakeSystem) Create(_ context.Context, cmd documents.CreateCommand) (*documents.Document, error) {
	f.created = &cmd
	return &documents.Document{ID: 1, OwnerID: cmd.OwnerID, Title: cmd.Title, IsPrivate: cmd.IsPrivate}, nil
}

func (f *fakeSystem) SetVisibility(ctx context.Context, who identity.Identity, id int64, private bool) (*documents.Document, error) {
	d, err := f.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !d.OwnedBy(who.UserID) {
		return nil, documents.ErrForbidden
	}
	d.IsPrivate = private
	return d, nil
}

func (f *fakeSystem) Delete(ctx context.Context, who identity.Identity, id int64) error {
	_, err := f.Find(ctx, id)
	return err
}

func setup(t *testing.T) (*fakeSystem, http.Handler, uuid.UUID) {
	t.Helper()
	owner := uuid.New()
	sys := &fakeSystem{docs: map[int64]documents.Document{
		1: {ID: 1, OwnerID: owner, Title: "mine", IsPrivate: true},
	}}

	cfg := pagination.Config{}
	require.NoError(t, cfg.Finalize(nil))

	h := documents.NewHandler(sys, logging.Discard(), decode.NewValidator(), cfg, 1024)
	g := h.Routes()

	mux := http.NewServeMux()
	for _, rt := range g.Routes {
		mux.HandleFunc(rt.Method+" "+g.Prefix+rt.Pattern, rt.Handler)
	}
	return sys, identity.Middleware(logging.Discard())(mux), owner
}

func as(req *http.Request, user uuid.UUID) *http.Request {
	req.Header.Set(identity.HeaderUserID, user.String())
	return req
}

func multipartBody(t *testing.T, fields map[string]string, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("file", "essay.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHandler_Unauthenticated(t *testing.T) {
	_, h, _ := setup(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/documents", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_List(t *testing.T) {
	sys, h, owner := setup(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, as(httptest.NewRequest(http.MethodGet, "/documents?scope=accessible", nil), owner))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, documents.ScopeAccessible, sys.scope)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, as(httptest.NewRequest(http.MethodGet, "/documents?scope=all", nil), owner))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Find(t *testing.T) {
	_, h, owner := setup(t)

	tests := []struct {
		name string
		path string
		user uuid.UUID
		want int
	}{
		{"owner", "/documents/1", owner, http.StatusOK},
		{"stranger", "/documents/1", uuid.New(), http.StatusForbidden},
		{"missing", "/documents/2", owner, http.StatusNotFound},
		{"bad id", "/documents/abc", owner, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, as(httptest.NewRequest(http.MethodGet, tt.path, nil), tt.user))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandler_Upload(t *testing.T) {
	sys, h, owner := setup(t)

	body, ct := multipartBody(t, map[string]string{"title": "Essay"}, "some text")
	req := as(httptest.NewRequest(http.MethodPost, "/documents", body), owner)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, sys.created)
	assert.Equal(t, owner, sys.created.OwnerID)
	assert.Equal(t, "Essay", sys.created.Title)
	assert.Equal(t, "essay.txt", sys.created.Filename)
	assert.True(t, sys.created.IsPrivate, "private by default")
	assert.Equal(t, []byte("some text"), sys.created.Data)
}

func TestHandler_Upload_Public(t *testing.T) {
	sys, h, owner := setup(t)

	body, ct := multipartBody(t, map[string]string{"is_private": "false"}, "x")
	req := as(httptest.NewRequest(http.MethodPost, "/documents", body), owner)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.False(t, sys.created.IsPrivate)
}

func TestHandler_Upload_Rejects(t *testing.T) {
	_, h, owner := setup(t)

	t.Run("too large", func(t *testing.T) {
		body, ct := multipartBody(t, nil, strings.Repeat("a", 2048))
		req := as(httptest.NewRequest(http.MethodPost, "/documents", body), owner)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("bad is_private", func(t *testing.T) {
		body, ct := multipartBody(t, map[string]string{"is_private": "maybe"}, "x")
		req := as(httptest.NewRequest(http.MethodPost, "/documents", body), owner)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_SetVisibility(t *testing.T) {
	_, h, owner := setup(t)

	rec := httptest.NewRecorder()
	req := as(httptest.NewRequest(http.MethodPut, "/documents/1/visibility", strings.NewReader(`{"is_private":false}`)), owner)
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var doc documents.Document
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&doc))
	assert.False(t, doc.IsPrivate)

	rec = httptest.NewRecorder()
	req = as(httptest.NewRequest(http.MethodPut, "/documents/1/visibility", strings.NewReader(`{}`)), owner)
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "is_private is required")

	rec = httptest.NewRecorder()
	req = as(httptest.NewRequest(http.MethodPut, "/documents/1/visibility", strings.NewReader(`{"is_private":true}`)), uuid.New())
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandler_Delete(t *testing.T) {
	_, h, owner := setup(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, as(httptest.NewRequest(http.MethodDelete, "/documents/1", nil), owner))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, as(httptest.NewRequest(http.MethodDelete, "/documents/5", nil), owner))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
