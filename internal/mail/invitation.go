package mail

import (
	"bytes"
	htmltemplate "html/template"
	"net/url"
	"strings"
	texttemplate "text/template"
	"time"
)

// Invitation holds the data rendered into an invitation email.
type Invitation struct {
	To               string
	OrganizationName string
	InviterName      string
	Role             string
	Token            string
	ExpiresAt        time.Time
}

const invitationText = `Hi,

{{.InviterName}} invited you to join {{.OrganizationName}} as {{.Role}}.

Accept the invitation: {{.Link}}

The link expires on {{.Expires}}.
`

const invitationHTML = `<p>Hi,</p>
<p><strong>{{.InviterName}}</strong> invited you to join <strong>{{.OrganizationName}}</strong> as {{.Role}}.</p>
<p><a href="{{.Link}}">Accept the invitation</a></p>
<p>The link expires on {{.Expires}}.</p>
`

var (
	invitationTextTmpl = texttemplate.Must(texttemplate.New("invitation_text").Parse(invitationText))
	invitationHTMLTmpl = htmltemplate.Must(htmltemplate.New("invitation_html").Parse(invitationHTML))
)

// InvitationMessage renders the invitation email. Links point at publicURL/invitations/accept.
func InvitationMessage(publicURL string, inv Invitation) (Message, error) {
	link := strings.TrimRight(publicURL, "/") + "/invitations/accept?token=" + url.QueryEscape(inv.Token)
	data := struct {
		Invitation
		Link    string
		Expires string
	}{inv, link, inv.ExpiresAt.UTC().Format("2 Jan 2006 15:04 MST")}

	var text, html bytes.Buffer
	if err := invitationTextTmpl.Execute(&text, data); err != nil {
		return Message{}, err
	}
	if err := invitationHTMLTmpl.Execute(&html, data); err != nil {
		return Message{}, err
	}
	return Message{
		To:       inv.To,
		Subject:  "You're invited to join " + inv.OrganizationName,
		TextBody: text.String(),
		HTMLBody: html.String(),
	}, nil
}
