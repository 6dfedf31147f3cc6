package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tallerpro/internal/usecase/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResendSender_Send(t *testing.T) {
	msg := interfaces.EmailMessage{To: "ana@example.com", Subject: "Recibo", HTML: "<p>Gracias</p>"}

	t.Run("missing key", func(t *testing.T) {
		_, err := NewResendSender("http://localhost", "", "taller@example.com", nil)
		require.ErrorIs(t, err, ErrMissingAPIKey)
	})

	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/emails", r.URL.Path)
			assert.Equal(t, "Bearer re_key", r.Header.Get("Authorization"))

			var body sendRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, sendRequest{From: "taller@example.com", To: []string{"ana@example.com"}, Subject: "Recibo", HTML: "<p>Gracias</p>"}, body)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"re_123"}`))
		}))
		defer srv.Close()

		s, err := NewResendSender(srv.URL+"/", "re_key", "taller@example.com", nil)
		require.NoError(t, err)

		id, err := s.Send(context.Background(), msg)
		require.NoError(t, err)
		assert.Equal(t, "re_123", id)
	})

	t.Run("provider error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"name":"validation_error","message":"invalid from"}`))
		}))
		defer srv.Close()

		s, err := NewResendSender(srv.URL, "re_key", "bad", nil)
		require.NoError(t, err)

		_, err = s.Send(context.Background(), msg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "422")
		assert.Contains(t, err.Error(), "invalid from")
	})
}
