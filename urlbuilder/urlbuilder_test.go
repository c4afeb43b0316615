package urlbuilder

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var params = Params{
	BaseURL:     "https://id.example.com/",
	AppID:       "app-1",
	Scopes:      []string{"openid", "offline"},
	CallbackURL: "https://app.example.com/callback",
}

func Test_URL_TrailingSlash(t *testing.T) {
	withSlash := SigninURL(params)

	p := params
	p.BaseURL = "https://id.example.com"
	assert.Equal(t, withSlash, SigninURL(p))
}

func Test_URL_QueryParams(t *testing.T) {
	u, err := url.Parse(SignupURL(params))
	require.NoError(t, err)

	assert.Equal(t, "/web/signup", u.Path)
	q := u.Query()
	assert.Equal(t, "app-1", q.Get("appId"))
	assert.Equal(t, "openid,offline", q.Get("scopes"))
	assert.Equal(t, "https://app.example.com/callback", q.Get("callbackUrl"))
}

func Test_URL_OmitsEmptyParams(t *testing.T) {
	u, err := url.Parse(URL(FlowRenew, Params{BaseURL: "https://id.example.com", AppID: "app-1"}))
	require.NoError(t, err)

	q := u.Query()
	assert.False(t, q.Has("scopes"))
	assert.False(t, q.Has("callbackUrl"))
}

func Test_URL_Flows(t *testing.T) {
	for flow, build := range map[Flow]func(Params) string{
		FlowSignin: SigninURL,
		FlowSignup: SignupURL,
		FlowLogout: LogoutURL,
		FlowRenew:  RenewSessionURL,
	} {
		u, err := url.Parse(build(params))
		require.NoError(t, err)
		assert.Equal(t, "/web/"+string(flow), u.Path)
	}
}
