package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email" bson:"email"`
	HashedPassword string             `json:"-" bson:"password"` // Not exposed
	Bio            string             `json:"bio,omitempty" bson:"bio,omitempty"`
	ProfilePic     string             `json:"profilePic,omitempty" bson:"profilePic,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Public returns a copy safe to serialize. The hash already carries a
// json:"-" tag; clearing it as well keeps redaction independent of the codec.
func (u *User) Public() *User {
	pub := *u
	pub.HashedPassword = ""
	return &pub
}

// UserRef is the display data attached to posts and reaction sets.
type UserRef struct {
	ID         primitive.ObjectID `json:"id"`
	Name       string             `json:"name"`
	ProfilePic string             `json:"profilePic,omitempty"`
}

func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, ProfilePic: u.ProfilePic}
}
