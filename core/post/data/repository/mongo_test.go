package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/ncobase/posts/core/post/structs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestMongoStoreContract runs the shared store contract against a live server.
func TestMongoStoreContract(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	n := 0
	runStoreContract(t, func(t *testing.T) Store {
		n++
		db := client.Database(fmt.Sprintf("posts_test_%d_%d", time.Now().UnixNano(), n))
		t.Cleanup(func() { _ = db.Drop(ctx) })
		return NewMongoStore(db)
	})
}

func postDoc(id int64, title string, version int64) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "content", Value: "body"},
		{Key: "created_at", Value: time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)},
		{Key: "version", Value: version},
	}
}

func TestMongoStoreMocked(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	ns := "posts.posts"

	mt.Run("add takes id from counter", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: "posts"},
				{Key: "seq", Value: int64(7)},
			}}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)
		in := &structs.Post{Title: "a", Content: "b", CreatedAt: time.Now()}
		out := NewMongoStore(mt.DB).Add(ctx, in)
		require.Equal(mt, OK, out.Kind, "%v", out.Err)
		assert.Equal(mt, int64(7), out.Value.ID)
		assert.Equal(mt, int64(1), out.Value.Version)
		assert.Equal(mt, time.UTC, out.Value.CreatedAt.Location())
		assert.Zero(mt, in.ID)
	})

	mt.Run("add fails when counter fails", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 2, Name: "BadValue", Message: "bad counter",
		}))
		out := NewMongoStore(mt.DB).Add(ctx, &structs.Post{Title: "a", Content: "b"})
		assert.Equal(mt, Fault, out.Kind)
		assert.ErrorContains(mt, out.Error(), "next post id")
	})

	mt.Run("find", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, postDoc(3, "a", 2)))
		out := NewMongoStore(mt.DB).FindByID(ctx, 3)
		require.Equal(mt, OK, out.Kind, "%v", out.Err)
		assert.Equal(mt, "a", out.Value.Title)
		assert.Equal(mt, int64(2), out.Value.Version)
		assert.Equal(mt, time.UTC, out.Value.CreatedAt.Location())
	})

	mt.Run("find missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		assert.Equal(mt, NotFound, NewMongoStore(mt.DB).FindByID(ctx, 3).Kind)
	})

	mt.Run("find fault", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 2, Name: "BadValue", Message: "boom",
		}))
		assert.Equal(mt, Fault, NewMongoStore(mt.DB).FindByID(ctx, 3).Kind)
	})

	mt.Run("list keeps order", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			postDoc(1, "first", 1), postDoc(2, "second", 1)))
		out := NewMongoStore(mt.DB).ListAll(ctx)
		require.Equal(mt, OK, out.Kind, "%v", out.Err)
		require.Len(mt, out.Value, 2)
		assert.Equal(mt, "first", out.Value[0].Title)
		assert.Equal(mt, "second", out.Value[1].Title)
	})

	mt.Run("update returns new row", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, postDoc(3, "changed", 2)),
		)
		out := NewMongoStore(mt.DB).Update(ctx, &structs.Post{ID: 3, Title: "changed", Content: "body", Version: 1})
		require.Equal(mt, OK, out.Kind, "%v", out.Err)
		assert.Equal(mt, "changed", out.Value.Title)
		assert.Equal(mt, int64(2), out.Value.Version)
	})

	mt.Run("update stale version conflicts", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}),
		)
		out := NewMongoStore(mt.DB).Update(ctx, &structs.Post{ID: 3, Title: "x", Content: "y", Version: 1})
		assert.Equal(mt, Conflict, out.Kind)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
		)
		out := NewMongoStore(mt.DB).Update(ctx, &structs.Post{ID: 3, Title: "x", Content: "y", Version: 1})
		assert.Equal(mt, NotFound, out.Kind)
	})

	mt.Run("remove", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		assert.Equal(mt, OK, NewMongoStore(mt.DB).Remove(ctx, &structs.Post{ID: 3, Version: 1}).Kind)
	})

	mt.Run("remove stale version conflicts", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}),
		)
		assert.Equal(mt, Conflict, NewMongoStore(mt.DB).Remove(ctx, &structs.Post{ID: 3, Version: 1}).Kind)
	})

	mt.Run("remove check fault", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "boom"}),
		)
		out := NewMongoStore(mt.DB).Remove(ctx, &structs.Post{ID: 3, Version: 1})
		assert.Equal(mt, Fault, out.Kind)
		assert.ErrorContains(mt, out.Error(), "check post 3")
	})

	mt.Run("nil post is a fault", func(mt *mtest.T) {
		s := NewMongoStore(mt.DB)
		assert.Equal(mt, Fault, s.Add(ctx, nil).Kind)
		assert.Equal(mt, Fault, s.Update(ctx, nil).Kind)
		assert.Equal(mt, Fault, s.Remove(ctx, nil).Kind)
		assert.NoError(mt, s.Close())
	})
}
