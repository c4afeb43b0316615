package apierror

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_FromResponse_Envelope(t *testing.T) {
	body := []byte(`{"error":{"id":"error.api.request.2fa.please_enable","message":"enroll first","detailed_message":"  finish 2FA enrollment  ","status":400}}`)

	apiErr := FromResponse(http.StatusBadRequest, body)
	require.NotNil(t, apiErr)
	assert.Equal(t, CodePleaseEnableTFA, apiErr.ID)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "enroll first", apiErr.Message)
	// The detailed message wins when present, untrimmed until Trim is called.
	assert.Equal(t, "  finish 2FA enrollment  ", apiErr.Error())
}

func Test_FromResponse_EnvelopeStatusWins(t *testing.T) {
	body := []byte(`{"error":{"id":"error.api.app.inactive","message":"app inactive","status":403}}`)

	apiErr := FromResponse(http.StatusBadRequest, body)
	assert.Equal(t, 403, apiErr.Status)
}

func Test_FromResponse_NonJSONBody(t *testing.T) {
	apiErr := FromResponse(http.StatusBadGateway, []byte("  upstream unavailable\n"))
	require.NotNil(t, apiErr)
	assert.Empty(t, apiErr.ID)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "unexpected response status 502", apiErr.Message)
	assert.Equal(t, "upstream unavailable", apiErr.DetailedMessage)
}

func Test_FromResponse_EmptyEnvelope(t *testing.T) {
	apiErr := FromResponse(http.StatusInternalServerError, []byte(`{"error":{}}`))
	assert.Equal(t, "unexpected response status 500", apiErr.Message)
}

func Test_Is(t *testing.T) {
	err := New(CodeNetwork, "connection refused")
	assert.True(t, Is(err, CodeNetwork))
	assert.False(t, Is(err, CodeValidation))

	wrapped := fmt.Errorf("login: %w", err)
	assert.True(t, Is(wrapped, CodeNetwork))

	assert.False(t, Is(fmt.Errorf("plain"), CodeNetwork))
	assert.False(t, Is(nil, CodeNetwork))
}

func Test_Error_MessagePreference(t *testing.T) {
	assert.Equal(t, "detail", (&Error{Message: "short", DetailedMessage: "detail"}).Error())
	assert.Equal(t, "short", (&Error{Message: "short"}).Error())
	assert.Equal(t, "error.network", (&Error{ID: CodeNetwork}).Error())
}

func Test_Trim(t *testing.T) {
	apiErr := &Error{Message: " short ", DetailedMessage: "\tdetail\n"}
	trimmed := apiErr.Trim()
	assert.Same(t, apiErr, trimmed)
	assert.Equal(t, "short", apiErr.Message)
	assert.Equal(t, "detail", apiErr.DetailedMessage)
}
