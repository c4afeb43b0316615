package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_TFATypes_Unmarshal(t *testing.T) {
	t.Run("scalar normalizes to one-element list", func(t *testing.T) {
		var got TFATypes
		require.NoError(t, json.Unmarshal([]byte(`"app"`), &got))
		assert.Equal(t, TFATypes{TFATypeApp}, got)
	})

	t.Run("array passes through", func(t *testing.T) {
		var got TFATypes
		require.NoError(t, json.Unmarshal([]byte(`["sms","email"]`), &got))
		assert.Equal(t, TFATypes{TFATypeSMS, TFATypeEmail}, got)
	})

	t.Run("number is rejected", func(t *testing.T) {
		var got TFATypes
		require.Error(t, json.Unmarshal([]byte(`42`), &got))
	})
}

func Test_AppSettings_Unmarshal(t *testing.T) {
	body := []byte(`{
		"registrationForbidden": true,
		"tfaType": "app",
		"tfaStatus": "optional",
		"tfaResendTimeout": 30,
		"federatedProviders": ["google", "apple"],
		"loginWith": {"email": true, "phone": false}
	}`)

	var s AppSettings
	require.NoError(t, json.Unmarshal(body, &s))
	assert.True(t, s.RegistrationForbidden)
	assert.Equal(t, TFATypes{TFATypeApp}, s.TFAType)
	assert.Equal(t, TFAStatusOptional, s.TFAStatus)
	assert.Equal(t, 30, s.TFAResendTimeout)
	assert.Equal(t, []FederatedProvider{ProviderGoogle, ProviderApple}, s.FederatedProviders)
	assert.True(t, s.LoginWith.Email)
	assert.False(t, s.LoginWith.Phone)
}

func Test_LoginResponse_Unmarshal(t *testing.T) {
	body := []byte(`{
		"access_token": "at",
		"refresh_token": "rt",
		"require_2fa": true,
		"enabled_2fa": false,
		"user": {"id": "u-1", "email": "a@b.co", "tfa_info": {"is_enabled": false}, "active": true},
		"callbackUrl": "https://app.example.com/done"
	}`)

	var lr LoginResponse
	require.NoError(t, json.Unmarshal(body, &lr))
	assert.Equal(t, "at", lr.AccessToken)
	assert.True(t, lr.Require2FA)
	assert.False(t, lr.Enabled2FA)
	assert.Equal(t, "u-1", lr.User.ID)
	assert.False(t, lr.User.TFAInfo.IsEnabled)
	assert.Equal(t, "https://app.example.com/done", lr.CallbackURL)
}
