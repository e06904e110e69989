package cms

import (
	"fmt"
	"html/template"
	"strings"
)

// Outbound mail bodies are rendered with html/template so user-supplied
// fields are escaped. The newsletter body itself is trusted HTML authored by
// an administrator and is injected unescaped.

var newsletterTmpl = template.Must(template.New("newsletter").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; max-width: 640px; margin: 0 auto;">
  <h1>{{.Title}}</h1>
  {{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Title}}" style="max-width: 100%;"/>{{end}}
  <div>{{.Body}}</div>
</body>
</html>`))

var eventNoticeTmpl = template.Must(template.New("event").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; max-width: 640px; margin: 0 auto;">
  <h1>{{.Name}}</h1>
  <p><strong>Date:</strong> {{.Date}}</p>
  <p><strong>Location:</strong> {{.Location}}</p>
  <p>{{.Description}}</p>
  {{if .RegistrationLink}}<p><a href="{{.RegistrationLink}}">Register here</a></p>{{end}}
</body>
</html>`))

func renderNewsletter(req NewsletterRequest) (string, error) {
	data := struct {
		Title    string
		ImageURL string
		Body     template.HTML
	}{
		Title: req.Title,
		Body:  template.HTML(req.HTMLBody),
	}
	if req.FeaturedImage != nil {
		data.ImageURL = req.FeaturedImage.URL
	}

	var b strings.Builder
	if err := newsletterTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render newsletter: %w", err)
	}
	return b.String(), nil
}

func renderEventNotice(req EventNoticeRequest) (string, error) {
	var b strings.Builder
	if err := eventNoticeTmpl.Execute(&b, req); err != nil {
		return "", fmt.Errorf("render event notice: %w", err)
	}
	return b.String(), nil
}
