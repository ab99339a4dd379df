package email

import (
	"strings"
	"testing"
)

func TestNl2brEscapesMarkup(t *testing.T) {
	out := string(nl2br(`<script>alert("x")</script> & 'quotes'`))

	for _, raw := range []string{"<script>", "</script>", `"x"`, " & ", "'"} {
		if strings.Contains(out, raw) {
			t.Fatalf("raw markup %q leaked into output: %s", raw, out)
		}
	}
	for _, escaped := range []string{"&lt;script&gt;", "&amp;", "&#34;", "&#39;"} {
		if !strings.Contains(out, escaped) {
			t.Fatalf("expected escaped entity %q in output: %s", escaped, out)
		}
	}
}

func TestNl2brConvertsNewlines(t *testing.T) {
	out := string(nl2br("line one\r\nline two\nline three"))
	if out != "line one<br>line two<br>line three" {
		t.Fatalf("unexpected conversion: %s", out)
	}
}

func TestRenderDeniedTemplateEscapesReason(t *testing.T) {
	body, err := renderEmailTemplate("visit_denied.html", visitDeniedEmailData{
		baseEmailData: baseEmailData{Title: "t", Heading: "h"},
		ClientName:    "Asha <b>Rao</b>",
		PropertyName:  "Lakeview & Sons",
		UnitLabel:     "A-101",
		Reason:        "bad slot <img src=x onerror=alert(1)>\nsecond line",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if strings.Contains(body, "<img") || strings.Contains(body, "<b>Rao</b>") {
		t.Fatalf("unescaped user markup in body: %s", body)
	}
	if !strings.Contains(body, "Lakeview &amp; Sons") {
		t.Fatalf("ampersand not escaped: %s", body)
	}
	if !strings.Contains(body, "second line") || !strings.Contains(body, "<br>") {
		t.Fatalf("newline not converted to line break: %s", body)
	}
}

func TestRenderAssignmentTemplateOmitsEmptyAdminMsg(t *testing.T) {
	body, err := renderEmailTemplate("visit_assignment.html", visitAssignmentEmailData{
		baseEmailData: baseEmailData{Title: "t", Heading: "h"},
		AgentName:     "Dev Patel",
		ClientName:    "Asha Rao",
		PropertyName:  "Lakeview",
		UnitLabel:     "A-101",
		ScheduledDate: "Friday, January 10, 2025 at 14:00",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(body, "Note from the office") {
		t.Fatalf("empty admin message should omit the note block: %s", body)
	}
}
