package documents

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/JaimeStill/docmatrix/internal/identity"
	"github.com/JaimeStill/docmatrix/pkg/decode"
)

func TestDocument_AccessibleTo(t *testing.T) {
	owner, other := uuid.New(), uuid.New()

	tests := []struct {
		name    string
		private bool
		user    uuid.UUID
		want    bool
	}{
		{"owner private", true, owner, true},
		{"owner public", false, owner, true},
		{"other public", false, other, true},
		{"other private", true, other, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Document{OwnerID: owner, IsPrivate: tt.private}
			assert.Equal(t, tt.want, d.AccessibleTo(tt.user))
		})
	}
}

func TestParseScope(t *testing.T) {
	s, err := ParseScope("")
	assert.NoError(t, err)
	assert.Equal(t, ScopeOwn, s)

	s, err = ParseScope("accessible")
	assert.NoError(t, err)
	assert.Equal(t, ScopeAccessible, s)

	_, err = ParseScope("everything")
	assert.ErrorIs(t, err, ErrInvalidScope)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, in := range []string{"", "0", "-1", "abc", "1.5"} {
		_, err := ParseID(in)
		assert.ErrorIs(t, err, ErrInvalidID, in)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrDuplicate, http.StatusConflict},
		{ErrForbidden, http.StatusForbidden},
		{ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{ErrInvalidFile, http.StatusBadRequest},
		{ErrInvalidScope, http.StatusBadRequest},
		{decode.ErrInvalidBody, http.StatusBadRequest},
		{identity.ErrMissingIdentity, http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, MapHTTPStatus(tt.err))
		})
	}
}

func TestTextContent(t *testing.T) {
	got, err := textContent([]byte("héllo world\n"))
	assert.NoError(t, err)
	assert.Equal(t, "héllo world\n", got)

	for name, data := range map[string][]byte{
		"empty":    nil,
		"invalid":  {0xff, 0xfe, 0xfd},
		"binary":   {0x00, 0x01, 0x02, 'a'},
		"pdf-like": []byte("%PDF-1.7\n"),
	} {
		_, err := textContent(data)
		assert.ErrorIs(t, err, ErrInvalidFile, name)
	}
}

func TestBuildStorageKey(t *testing.T) {
	owner := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	key := buildStorageKey(owner, "../my notes?.txt")

	assert.True(t, strings.HasPrefix(key, "documents/11111111-1111-1111-1111-111111111111/"))
	assert.True(t, strings.HasSuffix(key, "_my_notes_.txt"))
	assert.NotContains(t, key, "..")
}
