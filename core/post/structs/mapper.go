package structs

import "time"

// ToDto maps an entity to its wire form.
func ToDto(p *Post) *PostDto {
	if p == nil {
		return nil
	}
	dto := &PostDto{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
	}
	if !p.CreatedAt.IsZero() {
		createdAt := p.CreatedAt
		dto.CreatedAt = &createdAt
	}
	return dto
}

// ToDtos maps a slice of entities, never returning nil.
func ToDtos(posts []*Post) []*PostDto {
	out := make([]*PostDto, 0, len(posts))
	for _, p := range posts {
		out = append(out, ToDto(p))
	}
	return out
}

// ToEntity maps client input to an entity. CreatedAt is ignored: it is set
// once by the service on create.
func ToEntity(dto *PostDto) *Post {
	if dto == nil {
		return nil
	}
	return &Post{
		ID:      dto.ID,
		Title:   dto.Title,
		Content: dto.Content,
	}
}

// Clone returns a copy of p.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// Touch stamps a new entity with its creation time.
func (p *Post) Touch(now time.Time) {
	p.CreatedAt = now.UTC()
}
