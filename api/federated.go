package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/madappgang/identifo-go/model"
)

// TargetWindow is the window name federated popups open under, so repeated
// attempts reuse one window instead of stacking popups.
const TargetWindow = "TargetWindow"

// Default federated popup dimensions.
const (
	DefaultPopupWidth  = 600
	DefaultPopupHeight = 800
)

// Screen describes the host display the popup should be centered on.
type Screen struct {
	X           int
	Y           int
	OuterWidth  int
	OuterHeight int
}

// PopupGeometry is a sized, positioned popup window.
type PopupGeometry struct {
	Width  int
	Height int
	Left   int
	Top    int
}

// CenteredPopup computes a popup centered on the given screen.
func CenteredPopup(s Screen, width, height int) PopupGeometry {
	return PopupGeometry{
		Width:  width,
		Height: height,
		Left:   s.X + s.OuterWidth/2 - width/2,
		Top:    s.Y + s.OuterHeight/2 - height/2,
	}
}

// FormSubmission is a prepared top-level form POST. The provider's consent
// screen must run as a real navigation, not an API call, which is why the
// transport hands this to a Navigator instead of executing it.
type FormSubmission struct {
	Action string
	Values url.Values
	// Target is TargetWindow when the submission opens a popup.
	Target string
	Popup  *PopupGeometry
}

// Navigator is the injected external redirect capability. Browser hosts remap
// these onto window.location, form.submit and history.replaceState; native
// hosts open the system browser and ignore ReplaceURL.
type Navigator interface {
	Navigate(url string) error
	SubmitForm(sub FormSubmission) error
	ReplaceURL(url string) error
}

// ErrNoNavigator is returned when federated login is attempted without an
// injected Navigator.
var ErrNoNavigator = errors.New("no navigator configured for federated login")

// FederatedOptions shape the federated login navigation.
type FederatedOptions struct {
	// Popup opens the consent screen in a centered popup instead of a
	// full-page navigation.
	Popup  bool
	Width  int
	Height int
	Screen Screen
}

// FederatedLogin starts an OAuth-style login with a third-party provider by
// submitting a form into either the current window or a centered popup.
func (c *Client) FederatedLogin(_ context.Context, provider model.FederatedProvider, scopes []string, redirectURL, callbackURL string, opts FederatedOptions) error {
	if c.nav == nil {
		return ErrNoNavigator
	}

	q := url.Values{}
	q.Set("appId", c.appID)
	q.Set("provider", string(provider))
	q.Set("scopes", strings.Join(scopes, ","))
	q.Set("redirectUrl", redirectURL)
	if callbackURL != "" {
		q.Set("callbackUrl", callbackURL)
	}

	sub := FormSubmission{
		Action: c.BaseURL() + "/auth/federated?" + q.Encode(),
		Values: url.Values{},
	}
	if opts.Popup {
		width, height := opts.Width, opts.Height
		if width == 0 {
			width = DefaultPopupWidth
		}
		if height == 0 {
			height = DefaultPopupHeight
		}
		geo := CenteredPopup(opts.Screen, width, height)
		sub.Target = TargetWindow
		sub.Popup = &geo
	}
	return c.nav.SubmitForm(sub)
}

// FederatedLoginComplete finishes the flow after the provider redirected the
// browser back with provider and state query parameters.
func (c *Client) FederatedLoginComplete(ctx context.Context, query url.Values) (model.LoginResponse, error) {
	var out model.LoginResponse
	if err := c.do(ctx, http.MethodGet, "/auth/federated/complete", query, nil, &out, authNone); err != nil {
		return out, err
	}
	return out, c.storeTokens(ctx, out.AccessToken, out.RefreshToken)
}

// Navigator returns the injected navigator, nil when none was configured.
func (c *Client) Navigator() Navigator { return c.nav }
