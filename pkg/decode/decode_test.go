package decode_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/docmatrix/pkg/decode"
)

type request struct {
	DocumentID int64    `json:"document_id" validate:"required,gt=0"`
	Threshold  *float64 `json:"threshold,omitempty" validate:"omitempty,gte=0,lte=100"`
}

func TestJSON(t *testing.T) {
	v := decode.NewValidator()

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"document_id": 4, "threshold": 55.5}`},
		{name: "threshold omitted", body: `{"document_id": 4}`},
		{name: "empty", body: ``, wantErr: "empty body"},
		{name: "malformed", body: `{"document_id":`, wantErr: "invalid request body"},
		{name: "unknown field", body: `{"document_id": 4, "extra": true}`, wantErr: "unknown field"},
		{name: "missing id", body: `{"threshold": 10}`, wantErr: "document_id failed required"},
		{name: "threshold above range", body: `{"document_id": 4, "threshold": 101}`, wantErr: "threshold failed lte=100"},
		{name: "threshold below range", body: `{"document_id": 4, "threshold": -1}`, wantErr: "threshold failed gte=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/scans", strings.NewReader(tt.body))
			got, err := decode.JSON[request](r, v)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, decode.ErrInvalidBody)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(4), got.DocumentID)
		})
	}
}
