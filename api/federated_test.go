package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madappgang/identifo-go/model"
	"github.com/madappgang/identifo-go/storage"
)

type recordingNavigator struct {
	navigated []string
	submitted []FormSubmission
	replaced  []string
}

func (n *recordingNavigator) Navigate(u string) error { n.navigated = append(n.navigated, u); return nil }

func (n *recordingNavigator) SubmitForm(sub FormSubmission) error {
	n.submitted = append(n.submitted, sub)
	return nil
}

func (n *recordingNavigator) ReplaceURL(u string) error { n.replaced = append(n.replaced, u); return nil }

func Test_CenteredPopup(t *testing.T) {
	screen := Screen{X: 100, Y: 50, OuterWidth: 1920, OuterHeight: 1080}

	geo := CenteredPopup(screen, 600, 800)
	assert.Equal(t, 600, geo.Width)
	assert.Equal(t, 800, geo.Height)
	assert.Equal(t, 100+1920/2-300, geo.Left)
	assert.Equal(t, 50+1080/2-400, geo.Top)
}

func Test_FederatedLogin_NoNavigator(t *testing.T) {
	c, _ := newTestClient(t, "https://id.example.com")
	err := c.FederatedLogin(context.Background(), model.ProviderGoogle, nil, "https://app.example.com", "", FederatedOptions{})
	require.ErrorIs(t, err, ErrNoNavigator)
}

func Test_FederatedLogin_SubmitsForm(t *testing.T) {
	nav := &recordingNavigator{}
	c, _ := newTestClient(t, "https://id.example.com", WithNavigator(nav))

	err := c.FederatedLogin(context.Background(), model.ProviderApple,
		[]string{"openid", "offline"},
		"https://app.example.com/redirect",
		"https://app.example.com/callback",
		FederatedOptions{})
	require.NoError(t, err)
	require.Len(t, nav.submitted, 1)

	sub := nav.submitted[0]
	assert.Empty(t, sub.Target)
	assert.Nil(t, sub.Popup)

	action, err := url.Parse(sub.Action)
	require.NoError(t, err)
	assert.Equal(t, "/auth/federated", action.Path)
	q := action.Query()
	assert.Equal(t, testAppID, q.Get("appId"))
	assert.Equal(t, "apple", q.Get("provider"))
	assert.Equal(t, "openid,offline", q.Get("scopes"))
	assert.Equal(t, "https://app.example.com/redirect", q.Get("redirectUrl"))
	assert.Equal(t, "https://app.example.com/callback", q.Get("callbackUrl"))
}

func Test_FederatedLogin_Popup(t *testing.T) {
	nav := &recordingNavigator{}
	c, _ := newTestClient(t, "https://id.example.com", WithNavigator(nav))

	err := c.FederatedLogin(context.Background(), model.ProviderGoogle, nil, "https://app.example.com", "", FederatedOptions{
		Popup:  true,
		Screen: Screen{OuterWidth: 1000, OuterHeight: 1000},
	})
	require.NoError(t, err)
	require.Len(t, nav.submitted, 1)

	sub := nav.submitted[0]
	assert.Equal(t, TargetWindow, sub.Target)
	require.NotNil(t, sub.Popup)
	assert.Equal(t, DefaultPopupWidth, sub.Popup.Width)
	assert.Equal(t, DefaultPopupHeight, sub.Popup.Height)
	assert.Equal(t, 1000/2-DefaultPopupWidth/2, sub.Popup.Left)
}

func Test_FederatedLoginComplete(t *testing.T) {
	ctx := context.Background()
	access := freshToken(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/federated/complete", r.URL.Path)
		assert.Equal(t, "google", r.URL.Query().Get("provider"))
		assert.Equal(t, "s-1", r.URL.Query().Get("state"))
		json.NewEncoder(w).Encode(map[string]any{"access_token": access})
	}))
	defer srv.Close()

	c, tokens := newTestClient(t, srv.URL)
	lr, err := c.FederatedLoginComplete(ctx, url.Values{"provider": {"google"}, "state": {"s-1"}})
	require.NoError(t, err)
	assert.Equal(t, access, lr.AccessToken)

	tok, err := tokens.Token(ctx, storage.Access)
	require.NoError(t, err)
	require.NotNil(t, tok)
	assert.Equal(t, access, tok.Token)
}
