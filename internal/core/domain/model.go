package domain

import "time"

type Author string

const (
	User   Author = "user"
	System Author = "system"
)

type Prompt struct {
	Prompt string
	Author Author
}

// Update is one inbound event pushed by the platform. Exactly one of
// Message or Callback is set for dispatchable updates; both are nil for
// update kinds this bot does not consume.
type Update struct {
	ID       int64
	Message  *Message
	Callback *Callback
}

type Message struct {
	ID        int
	ChatID    int64
	UserID    int64
	Username  string
	FirstName string
	Text      string
	Date      time.Time
}

// Callback is a pressed inline keyboard button. ChatID and MessageID
// point at the message carrying the keyboard.
type Callback struct {
	ID        string
	Data      string
	UserID    int64
	ChatID    int64
	MessageID int
	FirstName string
}

type Action string

const (
	Typing       Action = "typing"
	SendingAudio Action = "upload_voice"
)

type Button struct {
	Text         string
	URL          string
	CallbackData string
	WebAppURL    string
}

type Keyboard [][]Button

type Audio struct {
	URL       string
	Title     string
	Performer string
}
