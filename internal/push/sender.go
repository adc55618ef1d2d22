package push

import "context"

// Message is a single device push.
type Message struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// Sender delivers push messages to devices. The production implementation is
// the FCM client; tests substitute a fake.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
