package mail

import "errors"

var (
	ErrInvalidConfig = errors.New("mail: invalid config")
	ErrInvalidParams = errors.New("mail: invalid send params")
	ErrFailedToSend  = errors.New("mail: failed to send email")
)
