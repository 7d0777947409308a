package errors

import (
	"errors"
	"fmt"
)

var (
	ErrWorkerPanic       = fmt.Errorf("worker panic")
	ErrEmptyWords        = fmt.Errorf("no words have been found")
	ErrInvalidHandshake  = fmt.Errorf("invalid handshake")
	ErrInvalidPayload    = fmt.Errorf("invalid payload")
	ErrUnknownSubject    = fmt.Errorf("unknown subject")
	ErrUnknownSession    = fmt.Errorf("unknown session")
	ErrUnknownConnection = fmt.Errorf("unknown connection")
	ErrSlowConsumer      = fmt.Errorf("slow consumer: outbound buffer full")
	ErrPeerClosed        = fmt.Errorf("peer closed")
	ErrArchiveBacklog    = fmt.Errorf("archive backlog full")
	ErrRateLimited       = fmt.Errorf("rate limit exceeded")
	ErrUnknownTopic      = fmt.Errorf("%w: unknown topic", ErrInvalidPayload)
)

// Is mirrors the standard library so callers importing this package
// under the name errors keep errors.Is at hand.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
