package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReactionKind selects which of a post's two reaction sets a toggle targets.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// AppliedAction is the label reported when the toggle added the account to
// the matching set; RemovedAction when it removed an existing reaction.
func (k ReactionKind) AppliedAction() string {
	if k == ReactionDislike {
		return "disliked"
	}
	return "liked"
}

func (k ReactionKind) RemovedAction() string {
	if k == ReactionDislike {
		return "undisliked"
	}
	return "unliked"
}

// Post as persisted. Invariant: an account id appears in at most one of
// Likes and Dislikes at any time.
type Post struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID   `json:"userId" bson:"userId"`
	Content   string               `json:"content" bson:"content"`
	Image     string               `json:"image,omitempty" bson:"image,omitempty"`
	Likes     []primitive.ObjectID `json:"likes" bson:"likes"`
	Dislikes  []primitive.ObjectID `json:"dislikes" bson:"dislikes"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// HasReaction reports whether the account is currently in the set matching kind.
func (p *Post) HasReaction(userID primitive.ObjectID, kind ReactionKind) bool {
	set := p.Likes
	if kind == ReactionDislike {
		set = p.Dislikes
	}
	for _, id := range set {
		if id == userID {
			return true
		}
	}
	return false
}

// PostView is a post with its author and reaction sets resolved to display
// data, so clients can update counters without a second fetch.
type PostView struct {
	ID        primitive.ObjectID `json:"id"`
	Author    UserRef            `json:"author"`
	Content   string             `json:"content"`
	Image     string             `json:"image,omitempty"`
	Likes     []UserRef          `json:"likes"`
	Dislikes  []UserRef          `json:"dislikes"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
