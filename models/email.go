package models

// Email is one rendered digest, ready for the mail transport.
type Email struct {
	To      string
	Subject string
	Body    string
}
