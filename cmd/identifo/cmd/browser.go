package cmd

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/madappgang/identifo-go/api"
)

// browserNavigator implements api.Navigator for a terminal host: every
// navigation opens the system browser, form submissions degrade to a plain
// navigation of the action URL (the parameters already live in its query),
// and ReplaceURL has no meaning outside a browser.
type browserNavigator struct{}

func (browserNavigator) Navigate(url string) error {
	return openBrowser(url)
}

func (browserNavigator) SubmitForm(sub api.FormSubmission) error {
	return openBrowser(sub.Action)
}

func (browserNavigator) ReplaceURL(string) error { return nil }

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		if err := exec.Command("xdg-open", url).Start(); err != nil {
			return fmt.Errorf("open browser: %w", err)
		}
		return nil
	}
}
