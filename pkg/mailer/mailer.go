// Package mailer relays verified contact submissions to the operator
// mailbox over SMTP.
package mailer

import (
	"context"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
)

// Contact carries the visitor-supplied fields interpolated into the
// outbound mail.
type Contact struct {
	Name    string
	Email   string
	Message string
}

// Mailer dispatches one contact submission as an email. An error means the
// message was not delivered; there is no retry.
type Mailer interface {
	Send(ctx context.Context, c Contact) error
}

// subjectFormat incorporates the visitor's name into the fixed subject line.
const subjectFormat = "Portfolio Contact from %s"

// Subject returns the subject line for a contact from the given name.
func Subject(name string) string {
	return fmt.Sprintf(subjectFormat, name)
}

// strict strips all markup from visitor-supplied text before it is
// interpolated into an HTML body. Plain-text bodies are sent verbatim.
var strict = bluemonday.StrictPolicy()

const htmlBodyFormat = `<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p>%s</p>
`

// HTMLBody renders an HTML mail body with each field sanitized.
func HTMLBody(c Contact) string {
	return fmt.Sprintf(htmlBodyFormat,
		strict.Sanitize(c.Name),
		strict.Sanitize(c.Email),
		strict.Sanitize(c.Message),
	)
}
