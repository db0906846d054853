package store

import "errors"

type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindAuthorization ErrorKind = "authorization"
	KindNotFound      ErrorKind = "not_found"
)

// Error is a rejected operation. Msg is safe to show to the user.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func validation(msg string) *Error    { return &Error{Kind: KindValidation, Msg: msg} }
func authorization(msg string) *Error { return &Error{Kind: KindAuthorization, Msg: msg} }
func notFound(msg string) *Error      { return &Error{Kind: KindNotFound, Msg: msg} }

var (
	ErrEmptyContent   = validation("Please write something before posting.")
	ErrContentTooLong = validation("Posts are limited to 2000 characters.")
	ErrEmptyReply     = validation("Reply cannot be empty.")
	ErrEmptyReason    = validation("Please select a reason for the report.")
	ErrUnknownModule  = validation("Please choose a learning module.")
	ErrAgeRestricted  = authorization("Community participation is available to members aged 17 and over.")

	ErrPostNotFound         = notFound("Post not found.")
	ErrReplyNotFound        = notFound("Reply not found.")
	ErrNotificationNotFound = notFound("Notification not found.")
)

// KindOf reports the kind of a store error, or "" for anything else.
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}
