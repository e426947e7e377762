package types

// NotificationMessage is a fully-resolved dispatch: channel validated,
// destination selected, subject and body rendered. It is what crosses the
// notification bus.
type NotificationMessage struct {
	Channel NotificationChannel `json:"channel"`
	To      string              `json:"to"`
	Subject string              `json:"subject"`
	Body    string              `json:"body"`
}
