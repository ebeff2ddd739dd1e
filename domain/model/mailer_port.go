package model

import "context"

// MailMessage is a plain-text report mail.
type MailMessage struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// MailerPort dispatches report mails.
type MailerPort interface {
	Send(ctx context.Context, msg MailMessage) error
}
