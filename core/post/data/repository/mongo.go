package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ncobase/posts/core/post/structs"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	postsCollection    = "posts"
	countersCollection = "counters"
)

type mongoStore struct {
	db       *mongo.Database
	posts    *mongo.Collection
	counters *mongo.Collection
}

// NewMongoStore creates a store over a Mongo database. Numeric ids come from a
// sequence document in the counters collection.
func NewMongoStore(db *mongo.Database) Store {
	return &mongoStore{
		db:       db,
		posts:    db.Collection(postsCollection),
		counters: db.Collection(countersCollection),
	}
}

func (s *mongoStore) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": postsCollection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next post id: %w", err)
	}
	return counter.Seq, nil
}

func (s *mongoStore) ListAll(ctx context.Context) Outcome[[]*structs.Post] {
	cursor, err := s.posts.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return Failed[[]*structs.Post](fmt.Errorf("list posts: %w", err))
	}
	defer cursor.Close(ctx)

	posts := make([]*structs.Post, 0)
	if err := cursor.All(ctx, &posts); err != nil {
		return Failed[[]*structs.Post](fmt.Errorf("list posts: %w", err))
	}
	for _, p := range posts {
		p.CreatedAt = p.CreatedAt.UTC()
	}
	return Ok(posts)
}

func (s *mongoStore) FindByID(ctx context.Context, id int64) Outcome[*structs.Post] {
	var post structs.Post
	err := s.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Missing[*structs.Post]()
	}
	if err != nil {
		return Failed[*structs.Post](fmt.Errorf("find post %d: %w", id, err))
	}
	post.CreatedAt = post.CreatedAt.UTC()
	return Ok(&post)
}

func (s *mongoStore) Add(ctx context.Context, p *structs.Post) Outcome[*structs.Post] {
	if p == nil {
		return Failed[*structs.Post](errNilPost)
	}

	id, err := s.nextID(ctx)
	if err != nil {
		return Failed[*structs.Post](err)
	}

	row := p.Clone()
	row.ID = id
	row.Version = 1
	// BSON dates keep milliseconds
	row.CreatedAt = row.CreatedAt.UTC().Truncate(time.Millisecond)

	if _, err := s.posts.InsertOne(ctx, row); err != nil {
		return Failed[*structs.Post](fmt.Errorf("insert post: %w", err))
	}
	return Ok(row)
}

func (s *mongoStore) Update(ctx context.Context, p *structs.Post) Outcome[*structs.Post] {
	if p == nil {
		return Failed[*structs.Post](errNilPost)
	}

	res, err := s.posts.UpdateOne(ctx,
		bson.M{"_id": p.ID, "version": p.Version},
		bson.M{
			"$set": bson.M{"title": p.Title, "content": p.Content},
			"$inc": bson.M{"version": int64(1)},
		},
	)
	if err != nil {
		return Failed[*structs.Post](fmt.Errorf("update post %d: %w", p.ID, err))
	}
	if res.MatchedCount == 0 {
		return missingOrConflict[*structs.Post](s.exists(ctx, p.ID))
	}
	return s.FindByID(ctx, p.ID)
}

func (s *mongoStore) Remove(ctx context.Context, p *structs.Post) Outcome[struct{}] {
	if p == nil {
		return Failed[struct{}](errNilPost)
	}

	res, err := s.posts.DeleteOne(ctx, bson.M{"_id": p.ID, "version": p.Version})
	if err != nil {
		return Failed[struct{}](fmt.Errorf("delete post %d: %w", p.ID, err))
	}
	if res.DeletedCount == 0 {
		return missingOrConflict[struct{}](s.exists(ctx, p.ID))
	}
	return Ok(struct{}{})
}

func (s *mongoStore) exists(ctx context.Context, id int64) (bool, error) {
	n, err := s.posts.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check post %d: %w", id, err)
	}
	return n > 0, nil
}

func (s *mongoStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

// Close is a no-op: the client belongs to the data layer.
func (s *mongoStore) Close() error {
	return nil
}
