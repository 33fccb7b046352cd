package consumer

import (
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/repository"
)

// MessageParser decodes a raw queue message body into an archive record
type MessageParser interface {
	Parse(body []byte) (*repository.EventRecord, error)
}
