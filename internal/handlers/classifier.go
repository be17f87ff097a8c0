package handlers

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Input limits enforced before any expensive work.
const (
	MaxFileSizeBytes = 5 * 1024 * 1024
	MaxTextChars     = 500
)

// ValidationError is a user-correctable input problem. Msg is sent back to the
// chat verbatim and no extraction is attempted.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// InputKind is the closed set of extraction request shapes a message can
// classify into.
type InputKind int

const (
	InputCommand InputKind = iota
	InputAttachment
	InputText
)

// Input is the canonical extraction request derived from one inbound message.
type Input struct {
	Kind    InputKind
	Command string // InputCommand: start, daily, week or month
	FileID  string // InputAttachment: opaque transport file handle
	Caption string // InputAttachment: optional accompanying text
	Text    string // InputText: the expense description itself
}

// recognized bot commands; anything else starting with "/" is treated as
// plain text, matching how users actually mistype commands.
var commands = map[string]bool{
	"start": true,
	"daily": true,
	"week":  true,
	"month": true,
}

// Classify inspects an inbound message and decides which input case applies,
// first match wins: command, photo, document, plain text. Size ceilings are
// checked here so nothing oversized reaches the fetcher or the model. A
// non-nil *ValidationError carries the rejection message for the user.
func Classify(msg *tgbotapi.Message) (*Input, *ValidationError) {
	if cmd, ok := parseCommand(msg.Text); ok {
		return &Input{Kind: InputCommand, Command: cmd}, nil
	}

	if len(msg.Photo) > 0 {
		photo := largestPhoto(msg.Photo)
		return classifyAttachment(photo.FileID, photo.FileSize, msg.Caption)
	}

	if msg.Document != nil {
		return classifyAttachment(msg.Document.FileID, msg.Document.FileSize, msg.Caption)
	}

	if msg.Text != "" {
		if n := utf8.RuneCountInString(msg.Text); n > MaxTextChars {
			return nil, &ValidationError{Msg: fmt.Sprintf(msgTextTooLong, n, MaxTextChars)}
		}
		return &Input{Kind: InputText, Text: msg.Text}, nil
	}

	return nil, &ValidationError{Msg: msgInputError}
}

func classifyAttachment(fileID string, fileSize int, caption string) (*Input, *ValidationError) {
	if fileSize > MaxFileSizeBytes {
		sizeMB := float64(fileSize) / 1024 / 1024
		return nil, &ValidationError{Msg: fmt.Sprintf(msgFileTooLarge, sizeMB, MaxFileSizeBytes/1024/1024)}
	}
	if n := utf8.RuneCountInString(caption); n > MaxTextChars {
		return nil, &ValidationError{Msg: fmt.Sprintf(msgCaptionTooLong, n, MaxTextChars)}
	}
	return &Input{Kind: InputAttachment, FileID: fileID, Caption: caption}, nil
}

// parseCommand extracts a recognized command name from a message body.
func parseCommand(text string) (string, bool) {
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	cmd := strings.ToLower(strings.TrimPrefix(strings.Fields(text)[0], "/"))
	if at := strings.Index(cmd, "@"); at != -1 {
		cmd = cmd[:at]
	}
	return cmd, commands[cmd]
}

// largestPhoto picks the highest-resolution variant Telegram offers.
func largestPhoto(photos []tgbotapi.PhotoSize) tgbotapi.PhotoSize {
	best := photos[0]
	for _, p := range photos[1:] {
		if p.Width*p.Height > best.Width*best.Height {
			best = p
		}
	}
	return best
}
