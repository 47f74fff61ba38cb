// Package browser owns the single long-lived headless browser shared by all
// browser-driven fetchers. Starting a browser is expensive; opening a page
// is not, so each concurrent fetch gets its own page and must close it.
package browser

import (
	"fmt"
	"sync"

	"github.com/playwright-community/playwright-go"
)

type Manager struct {
	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
}

func NewManager() *Manager {
	return &Manager{}
}

// start launches the browser on first use. Callers hold m.mu.
func (m *Manager) start() error {
	if m.browser != nil {
		return nil
	}

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		_ = pw.Stop()
		return fmt.Errorf("launch chromium: %w", err)
	}

	m.pw = pw
	m.browser = b
	return nil
}

// Page opens a fresh page and returns it with a release func. The release
// func is safe to defer and must run on every path, success or error.
func (m *Manager) Page() (playwright.Page, func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.start(); err != nil {
		return nil, nil, err
	}

	page, err := m.browser.NewPage()
	if err != nil {
		return nil, nil, fmt.Errorf("new page: %w", err)
	}
	return page, func() { _ = page.Close() }, nil
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.browser != nil {
		_ = m.browser.Close()
		m.browser = nil
	}
	if m.pw != nil {
		err := m.pw.Stop()
		m.pw = nil
		return err
	}
	return nil
}
