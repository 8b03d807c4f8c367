package mailer

import (
	"context"

	gomail "github.com/go-gomail/gomail"
)

// Options configures the SMTP mailer. From is the server's own verified
// sender identity, never the visitor's address; To is the fixed operator
// mailbox.
type Options struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
	// HTML switches the body from the raw message text to an HTML
	// rendering of the whole submission.
	HTML bool
}

// SMTPMailer sends contact mail through an authenticated SMTP account.
type SMTPMailer struct {
	opts Options

	// send dispatches a built message; overridable in tests.
	send func(m *gomail.Message) error
}

// NewSMTPMailer creates an SMTPMailer for the given account.
func NewSMTPMailer(opts Options) *SMTPMailer {
	d := gomail.NewDialer(opts.Host, opts.Port, opts.User, opts.Password)
	return &SMTPMailer{
		opts: opts,
		send: func(m *gomail.Message) error { return d.DialAndSend(m) },
	}
}

var _ Mailer = (*SMTPMailer)(nil)

// Send builds and dispatches one message. The SMTP dial itself is not
// cancelable, so the send runs in its own goroutine and Send returns early
// when ctx expires; the connection is torn down by the transport's own
// timeouts afterwards.
func (s *SMTPMailer) Send(ctx context.Context, c Contact) error {
	m := s.buildMessage(c)

	done := make(chan error, 1)
	go func() { done <- s.send(m) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// buildMessage composes the outbound mail: From = operator identity,
// Reply-To = visitor, To = operator mailbox.
func (s *SMTPMailer) buildMessage(c Contact) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.opts.From)
	m.SetHeader("To", s.opts.To)
	m.SetHeader("Reply-To", c.Email)
	m.SetHeader("Subject", Subject(c.Name))
	if s.opts.HTML {
		m.SetBody("text/html", HTMLBody(c))
	} else {
		m.SetBody("text/plain", c.Message)
	}
	return m
}
