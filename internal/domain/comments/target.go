package comments

import "fmt"

type TargetKind string

const (
	TargetWork         TargetKind = "work"
	TargetEpisode      TargetKind = "episode"
	TargetIllustration TargetKind = "illustration"
)

// Target is what a comment is attached to. The set of implementations is
// closed: WorkRef, EpisodeRef and IllustrationRef.
type Target interface {
	Kind() TargetKind
	RefID() string
	target()
}

type WorkRef struct{ ID string }
type EpisodeRef struct{ ID string }
type IllustrationRef struct{ ID string }

func (r WorkRef) Kind() TargetKind         { return TargetWork }
func (r EpisodeRef) Kind() TargetKind      { return TargetEpisode }
func (r IllustrationRef) Kind() TargetKind { return TargetIllustration }

func (r WorkRef) RefID() string         { return r.ID }
func (r EpisodeRef) RefID() string      { return r.ID }
func (r IllustrationRef) RefID() string { return r.ID }

func (WorkRef) target()         {}
func (EpisodeRef) target()      {}
func (IllustrationRef) target() {}

// ParseTarget builds a Target from the stored (type, id) pair.
func ParseTarget(kind, id string) (Target, error) {
	if id == "" {
		return nil, fmt.Errorf("target_id is required")
	}
	switch TargetKind(kind) {
	case TargetWork:
		return WorkRef{ID: id}, nil
	case TargetEpisode:
		return EpisodeRef{ID: id}, nil
	case TargetIllustration:
		return IllustrationRef{ID: id}, nil
	}
	return nil, fmt.Errorf("unknown target_type %q", kind)
}
