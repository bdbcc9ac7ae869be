package httpdto

import (
	"encoding/json"
	"time"

	"huddle-api/internal/domain/resource"

	"github.com/samber/lo"
)

type MessageRequest struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Owner   string `json:"owner"`
}

// CreateResourceRequest is the body found under the "project"/"chatroom" key on POST.
// Owner is accepted for compatibility but always replaced by the caller's id.
type CreateResourceRequest struct {
	Owner    string           `json:"owner"`
	User1    string           `json:"user1"`
	User2    string           `json:"user2"`
	Messages []MessageRequest `json:"messages"`
}

func (r CreateResourceRequest) ToResource() resource.Resource {
	return resource.Resource{
		Owner:    r.Owner,
		User1:    r.User1,
		User2:    r.User2,
		Messages: toMessages(r.Messages),
	}
}

// UpdateResourceRequest is the body found under the "project"/"chatroom" key on PATCH.
// There is no owner field, so a client-supplied owner is dropped during decoding.
type UpdateResourceRequest struct {
	User1    *string           `json:"user1"`
	User2    *string           `json:"user2"`
	Messages *[]MessageRequest `json:"messages"`
}

func (r UpdateResourceRequest) ToPatch() resource.Patch {
	patch := resource.Patch{User1: r.User1, User2: r.User2}
	if r.Messages != nil {
		msgs := toMessages(*r.Messages)
		patch.Messages = &msgs
	}
	return patch
}

func toMessages(in []MessageRequest) []resource.Message {
	return lo.Map(in, func(m MessageRequest, _ int) resource.Message {
		return resource.Message{ID: m.ID, Content: m.Content, Owner: m.Owner}
	})
}

// UnwrapResource pulls the object stored under key out of a request envelope
// such as {"project": {...}}. A missing key yields an empty object.
func UnwrapResource(body map[string]json.RawMessage, key string, dst any) error {
	raw, ok := body[key]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

type MessageResponse struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Owner   string `json:"owner"`
}

type ResourceResponse struct {
	ID        string            `json:"id"`
	Owner     string            `json:"owner"`
	User1     string            `json:"user1"`
	User2     string            `json:"user2,omitempty"`
	Messages  []MessageResponse `json:"messages"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func FromResource(r resource.Resource) ResourceResponse {
	return ResourceResponse{
		ID:    r.ID,
		Owner: r.Owner,
		User1: r.User1,
		User2: r.User2,
		Messages: lo.Map(r.Messages, func(m resource.Message, _ int) MessageResponse {
			return MessageResponse{ID: m.ID, Content: m.Content, Owner: m.Owner}
		}),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func FromResourceSlice(items []resource.Resource) []ResourceResponse {
	return lo.Map(items, func(r resource.Resource, _ int) ResourceResponse {
		return FromResource(r)
	})
}
