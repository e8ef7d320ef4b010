package tray

import "github.com/pkg/browser"

func openBrowser(url string) error {
	return browser.OpenURL(url)
}
