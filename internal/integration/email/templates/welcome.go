// Package templates renders the welcome e-mail.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

// WelcomeSubject is the subject line of the welcome e-mail.
const WelcomeSubject = "Bem-vindo ao Organiza AI"

//go:embed welcome.html welcome.txt
var files embed.FS

var (
	welcomeHTML = htmltemplate.Must(htmltemplate.ParseFS(files, "welcome.html"))
	welcomeText = texttemplate.Must(texttemplate.ParseFS(files, "welcome.txt"))
)

// Welcome holds what the welcome e-mail shows.
type Welcome struct {
	Name         string
	DashboardURL string
}

// Rendered is a message ready for the provider.
type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

// Render fills both bodies. Names are escaped in the HTML body.
func (w Welcome) Render() (Rendered, error) {
	var html, text bytes.Buffer
	if err := welcomeHTML.Execute(&html, w); err != nil {
		return Rendered{}, fmt.Errorf("render welcome html: %w", err)
	}
	if err := welcomeText.Execute(&text, w); err != nil {
		return Rendered{}, fmt.Errorf("render welcome text: %w", err)
	}
	return Rendered{Subject: WelcomeSubject, HTML: html.String(), Text: text.String()}, nil
}
