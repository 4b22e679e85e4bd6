package models

import "time"

// Mail is an outgoing message handed to the mail sender.
type Mail struct {
	To       string `json:"to"`
	ToName   string `json:"to_name"`
	From     string `json:"from"`
	FromName string `json:"from_name"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
}

// MailReceipt is returned by the mail sender for an accepted message.
type MailReceipt struct {
	MessageID  string    `json:"message_id"`
	AcceptedAt time.Time `json:"accepted_at"`
}
