package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
}

type visitApprovedEmailData struct {
	baseEmailData
	ClientName    string
	PropertyName  string
	UnitLabel     string
	ScheduledDate string
	AgentName     string
}

type visitAssignmentEmailData struct {
	baseEmailData
	AgentName     string
	ClientName    string
	ClientPhone   string
	PropertyName  string
	UnitLabel     string
	ScheduledDate string
	AdminMsg      string
}

type visitDeniedEmailData struct {
	baseEmailData
	ClientName   string
	PropertyName string
	UnitLabel    string
	Reason       string
}

type visitCompletedEmailData struct {
	baseEmailData
	ClientName   string
	PropertyName string
	UnitLabel    string
}

type visitCancelledEmailData struct {
	baseEmailData
	ClientName   string
	PropertyName string
	UnitLabel    string
	Message      string
}

type visitReminderEmailData struct {
	baseEmailData
	ClientName    string
	PropertyName  string
	UnitLabel     string
	ScheduledDate string
}

type reservationApprovedEmailData struct {
	baseEmailData
	ClientName   string
	PropertyName string
	UnitLabel    string
}

type reservationDeniedEmailData struct {
	baseEmailData
	ClientName   string
	PropertyName string
	UnitLabel    string
	Reason       string
}

type reservationCompletedEmailData struct {
	baseEmailData
	ClientName   string
	PropertyName string
	UnitLabel    string
}

type reservationCancelledEmailData struct {
	baseEmailData
	ClientName   string
	PropertyName string
	UnitLabel    string
	Message      string
}

type agentUpdateEmailData struct {
	baseEmailData
	AgentName    string
	PropertyName string
	UnitLabel    string
	Message      string
}

// nl2br escapes user-supplied free text and converts newlines to <br> tags.
// Escaping happens before the <br> insertion so the only markup in the result
// is the line breaks we added; admin and client messages can never inject HTML.
func nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

var templateFuncs = template.FuncMap{
	"nl2br": nl2br,
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").Funcs(templateFuncs).ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}
