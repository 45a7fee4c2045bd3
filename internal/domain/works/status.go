package works

// Type tells a comic series from an illustration collection.
type Type string

const (
	TypeComic        Type = "comic"
	TypeIllustration Type = "illustration"
)

func (t Type) Valid() bool {
	return t == TypeComic || t == TypeIllustration
}

// Status is shared by works, episodes and illustrations.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// OrDraft returns the status to create a row with.
func (s Status) OrDraft() Status {
	if s == "" {
		return StatusDraft
	}
	return s
}

// PublishedAt is the publish timestamp a freshly created row gets.
func PublishedAt(s Status, now int64) *int64 {
	if s != StatusPublished {
		return nil
	}
	return &now
}
