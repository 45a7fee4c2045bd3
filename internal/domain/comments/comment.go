package comments

import (
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxContentLength is counted in characters, not bytes.
const MaxContentLength = 150

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusSpam     Status = "spam"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusSpam:
		return true
	}
	return false
}

type Comment struct {
	ID string `gorm:"type:varchar(64);primaryKey" json:"id"`

	TargetType TargetKind `gorm:"type:varchar(20);not null;index:idx_comments_target,priority:1" json:"target_type"`
	TargetID   string     `gorm:"type:varchar(64);not null;index:idx_comments_target,priority:2" json:"target_id"`

	Content string `gorm:"type:text;not null" json:"content"`
	Status  Status `gorm:"type:varchar(20);not null;default:'approved';index" json:"status"`

	IPAddress *string `json:"ip_address"`
	UserAgent *string `json:"user_agent"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Target decodes the stored pair. Rows written through this package always
// decode; a nil result means the row was written by something else.
func (c Comment) Target() Target {
	t, err := ParseTarget(string(c.TargetType), c.TargetID)
	if err != nil {
		return nil
	}
	return t
}

func (c *Comment) SetTarget(t Target) {
	c.TargetType = t.Kind()
	c.TargetID = t.RefID()
}

// ContentFits reports whether s is non-empty and within MaxContentLength.
func ContentFits(s string) bool {
	n := utf8.RuneCountInString(s)
	return n > 0 && n <= MaxContentLength
}
