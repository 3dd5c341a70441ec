package email

import "context"

type Message struct {
	To      string
	Subject string
	Body    string

	AttachmentName string
	Attachment     []byte
}

type Provider interface {
	Send(ctx context.Context, msg Message) error
}
