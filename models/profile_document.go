package models

import (
	"time"

	"gorm.io/gorm"
)

// ProfileDocument is one remote-persisted document row, addressed by
// (collection, doc id). The body is a JSON object; writes overlay fields
// via merge, never replace the whole document. At most one row exists per
// address — enforced by the composite unique index.
type ProfileDocument struct {
	gorm.Model
	Collection string `gorm:"size:64;not null;uniqueIndex:idx_doc_addr"`
	DocID      string `gorm:"size:128;not null;uniqueIndex:idx_doc_addr"`
	Data       string `gorm:"type:text;not null"` // JSON object
	LastMerged time.Time
}
