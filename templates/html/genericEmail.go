package templates

import (
	"fmt"
	"html"
	"strings"
)

// Row is a single label/value line of a notification email
type Row struct {
	Label string
	Value string
}

// RenderGenericEmail generates branded HTML for a generic email.
// The subject is displayed in the header banner, and bodyContent is plain text
// that gets HTML-escaped and has newlines converted to <br> tags.
func RenderGenericEmail(subject, bodyContent string) string {
	escaped := html.EscapeString(bodyContent)
	htmlBody := strings.ReplaceAll(escaped, "\n", "<br>")
	return layout(subject, htmlBody)
}

// RenderNotificationEmail generates the HTML for a case or hearing notification.
// Every value is escaped. The link button is omitted when link is empty.
func RenderNotificationEmail(subject, recipientName, intro string, rows []Row, link string) string {
	var b strings.Builder
	name := strings.TrimSpace(recipientName)
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&b, "<p>Hello %s,</p>\n", html.EscapeString(name))
	fmt.Fprintf(&b, "      <p>%s</p>\n", html.EscapeString(intro))
	if len(rows) > 0 {
		b.WriteString("      <table class=\"details\">\n")
		for _, r := range rows {
			fmt.Fprintf(&b, "        <tr><th>%s</th><td>%s</td></tr>\n", html.EscapeString(r.Label), html.EscapeString(r.Value))
		}
		b.WriteString("      </table>\n")
	}
	if link != "" {
		fmt.Fprintf(&b, "      <p><a class=\"button\" href=\"%s\">Open</a></p>\n", html.EscapeString(link))
	}
	return layout(subject, b.String())
}

// RenderNotificationText is the plain text alternative of RenderNotificationEmail
func RenderNotificationText(recipientName, intro string, rows []Row, link string) string {
	var b strings.Builder
	name := strings.TrimSpace(recipientName)
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&b, "Hello %s,\n\n%s\n\n", name, intro)
	for _, r := range rows {
		fmt.Fprintf(&b, "%s: %s\n", r.Label, r.Value)
	}
	if link != "" {
		fmt.Fprintf(&b, "\n%s\n", link)
	}
	return b.String()
}

func layout(subject, body string) string {
	safeSubject := html.EscapeString(subject)

	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>%s</title>
  <style type="text/css">
    body { font-family: Georgia, 'Times New Roman', serif; margin: 0; padding: 0; background-color: #f4f1ea; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background-color: #1f3a5f; padding: 32px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 22px; font-weight: 700; }
    .content { padding: 32px 30px; color: #1f2933; line-height: 1.6; font-size: 15px; }
    .details { border-collapse: collapse; width: 100%%; margin: 16px 0; }
    .details th { text-align: left; padding: 6px 12px 6px 0; color: #52606d; font-weight: 600; white-space: nowrap; }
    .details td { padding: 6px 0; }
    .button { display: inline-block; background-color: #1f3a5f; color: #fff; padding: 10px 22px; text-decoration: none; border-radius: 4px; }
    .footer { padding: 24px; text-align: center; color: #7b8794; font-size: 12px; border-top: 1px solid #e4e7eb; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>%s</h1>
    </div>
    <div class="content">
      %s
    </div>
    <div class="footer">
      <p>This is an automated message from the court e-filing service. Please do not reply.</p>
    </div>
  </div>
</body>
</html>`, safeSubject, safeSubject, body)
}
