package web

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/pdpanel/internal/domain/model"
)

// pageWriter accumulates the first write error so components can emit
// markup without checking every call.
type pageWriter struct {
	w   io.Writer
	err error
}

func (p *pageWriter) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

// text writes s HTML-escaped.
func (p *pageWriter) text(s string) {
	p.raw(templ.EscapeString(s))
}

// url writes s as an attribute value after templ's scheme sanitization, so
// javascript: and data: links become about:invalid.
func (p *pageWriter) url(s string) {
	p.text(string(templ.URL(s)))
}

func (p *pageWriter) rawf(format string, args ...any) {
	p.raw(fmt.Sprintf(format, args...))
}

// Layout renders the page shell: primary navigation, the settings left
// navigation and body.
func Layout(title string, primary model.PrimaryNavItem, settings []model.NavAction, currentPath string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &pageWriter{w: w}

		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		p.text(title)
		p.raw(`</title><link rel="stylesheet" href="/static/pdpanel.css"></head><body>`)

		p.raw(`<nav class="primary-nav"><a href="`)
		p.url(primary.URL)
		p.raw(`"`)
		if slices.Contains(primary.Subviews, currentPath) {
			p.raw(` class="selected"`)
		}
		p.raw(`>`)
		p.text(primary.Name)
		p.raw(`</a></nav><div class="layout"><aside class="settings-nav">`)

		for _, a := range settings {
			p.raw(`<a href="`)
			p.url(a.Action)
			p.raw(`"`)
			if a.ID == model.SettingsPageID {
				p.raw(` class="selected"`)
			}
			p.raw(`>`)
			p.text(a.Name)
			p.raw(`</a>`)
		}

		p.raw(`</aside><main>`)
		if p.err != nil {
			return p.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		p.raw(`</main></div></body></html>`)
		return p.err
	})
}

// SettingsPage renders the account form and the services table.
func SettingsPage(vm SettingsViewModel) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &pageWriter{w: w}

		p.raw(`<h1>PagerDuty Settings</h1>`)

		if vm.Message != "" {
			class := "msg msg-fail"
			if vm.MessageOK {
				class = "msg msg-ok"
			}
			p.rawf(`<div class="%s" role="status">`, class)
			p.text(vm.Message)
			p.raw(`</div>`)
		}

		p.rawf(`<form method="post" action="%s">`, model.SettingsPagePath)
		p.rawf(`<input type="hidden" name="%s" value="`, csrfFormField)
		p.text(vm.CSRFToken)
		p.raw(`"><p><label>Subdomain <input name="subdomain" value="`)
		p.text(vm.Subdomain)
		p.raw(`">.pagerduty.com</label></p><p><label>API Access Key <input name="apiAccessKey" type="password" value="`)
		p.text(vm.APIAccessKey)
		p.raw(`"></label></p><p><label>API Timeout (seconds) <input name="apiTimeout" inputmode="numeric" value="`)
		p.text(vm.APITimeout)
		p.raw(`" placeholder="40"></label></p><p><button type="submit">Save</button></p></form>`)

		p.raw(`<h2>Services</h2>`)
		if vm.InlineMessage != "" {
			p.raw(`<p class="inline-msg">`)
			p.text(vm.InlineMessage)
			p.raw(`</p>`)
		}

		if len(vm.Services) > 0 {
			p.raw(`<table class="services"><thead><tr><th>Name</th><th>ID</th><th>Integration Key</th><th>Description</th></tr></thead><tbody>`)
			for _, s := range vm.Services {
				p.raw(`<tr><td>`)
				if s.HTMLURL != "" {
					p.raw(`<a href="`)
					p.url(s.HTMLURL)
					p.raw(`">`)
					p.text(s.Name)
					p.raw(`</a>`)
				} else {
					p.text(s.Name)
				}
				p.raw(`</td><td>`)
				p.text(s.ID)
				p.raw(`</td><td><code>`)
				p.text(s.ServiceKey)
				p.raw(`</code></td><td>`)
				// DescriptionHTML is sanitized by RenderMarkdown.
				p.raw(s.DescriptionHTML)
				p.raw(`</td></tr>`)
			}
			p.raw(`</tbody></table>`)
		}

		return p.err
	})
}
