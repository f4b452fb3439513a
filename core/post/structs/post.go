// Package structs defines post domain models and their wire shapes.
package structs

import "time"

// PostTag is the resource tag posts are registered under.
const PostTag = "post"

// Post is the persisted entity. Version is the store-owned concurrency token.
type Post struct {
	ID        int64     `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	Version   int64     `bson:"version" json:"-"`
}

// PostDto is the wire representation. Clients never set CreatedAt; it is
// echoed back on responses only.
type PostDto struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title" validate:"required,notblank,max=255"`
	Content   string     `json:"content" validate:"required,notblank"`
	CreatedAt *time.Time `json:"created_at,omitempty" validate:"-"`
}
