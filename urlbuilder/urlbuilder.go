// Package urlbuilder renders the hosted web flow URLs of the identity server
// from static configuration. Pure string work, no I/O.
package urlbuilder

import (
	"net/url"
	"strings"
)

// Flow names the hosted pages the server serves under /web.
type Flow string

const (
	FlowSignin Flow = "signin"
	FlowSignup Flow = "signup"
	FlowLogout Flow = "logout"
	FlowRenew  Flow = "renew"
)

// Params is everything a flow URL depends on. BaseURL keeps or drops its
// trailing slash freely; it is normalized before use.
type Params struct {
	BaseURL     string
	AppID       string
	Scopes      []string
	CallbackURL string
}

// URL renders the redirect URL for the given flow.
func URL(f Flow, p Params) string {
	q := url.Values{}
	q.Set("appId", p.AppID)
	if len(p.Scopes) > 0 {
		q.Set("scopes", strings.Join(p.Scopes, ","))
	}
	if p.CallbackURL != "" {
		q.Set("callbackUrl", p.CallbackURL)
	}
	return strings.TrimRight(p.BaseURL, "/") + "/web/" + string(f) + "?" + q.Encode()
}

// SigninURL renders the hosted password login page URL.
func SigninURL(p Params) string { return URL(FlowSignin, p) }

// SignupURL renders the hosted registration page URL.
func SignupURL(p Params) string { return URL(FlowSignup, p) }

// LogoutURL renders the hosted logout page URL.
func LogoutURL(p Params) string { return URL(FlowLogout, p) }

// RenewSessionURL renders the silent token renewal URL.
func RenewSessionURL(p Params) string { return URL(FlowRenew, p) }
