package installer

import "errors"

var (
	errInvalidURL    = errors.New("enter an absolute http(s) URL")
	errInvalidChatID = errors.New("chat ID must be a non-zero integer")
)
