package structs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapperRoundTripKeepsFields(t *testing.T) {
	dto := &PostDto{ID: 3, Title: "hello", Content: "world"}

	back := ToDto(ToEntity(dto))
	require.NotNil(t, back)
	assert.Equal(t, dto.ID, back.ID)
	assert.Equal(t, dto.Title, back.Title)
	assert.Equal(t, dto.Content, back.Content)
}

func TestToEntityIgnoresCreatedAt(t *testing.T) {
	ts := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	p := ToEntity(&PostDto{Title: "a", Content: "b", CreatedAt: &ts})
	assert.True(t, p.CreatedAt.IsZero())
}

func TestToDtoCreatedAt(t *testing.T) {
	assert.Nil(t, ToDto(&Post{ID: 1}).CreatedAt)

	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	p := &Post{ID: 1, CreatedAt: ts}
	dto := ToDto(p)
	require.NotNil(t, dto.CreatedAt)
	assert.True(t, ts.Equal(*dto.CreatedAt))

	// the dto must not alias the entity
	*dto.CreatedAt = ts.Add(time.Hour)
	assert.True(t, p.CreatedAt.Equal(ts))
}

func TestToDtos(t *testing.T) {
	assert.NotNil(t, ToDtos(nil))
	assert.Empty(t, ToDtos(nil))

	got := ToDtos([]*Post{{ID: 1}, {ID: 2}})
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[1].ID)
}

func TestNilMapping(t *testing.T) {
	assert.Nil(t, ToDto(nil))
	assert.Nil(t, ToEntity(nil))
	assert.Nil(t, (*Post)(nil).Clone())
}

func TestTouchUsesUTC(t *testing.T) {
	loc := time.FixedZone("X", 3600)
	p := &Post{}
	p.Touch(time.Date(2024, 1, 1, 12, 0, 0, 0, loc))
	assert.Equal(t, time.UTC, p.CreatedAt.Location())
	assert.Equal(t, 11, p.CreatedAt.Hour())
}
