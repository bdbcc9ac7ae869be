package resource

import (
	"time"
)

// Resource is the shared shape of projects and chatrooms.
type Resource struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner" validate:"required"`
	User1     string    `json:"user1" validate:"required"`
	User2     string    `json:"user2,omitempty"`
	Messages  []Message `json:"messages" validate:"dive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Message is embedded in a Resource and keeps its insertion order.
type Message struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Owner   string `json:"owner" validate:"required"`
}

// IsSingleParty reports whether the resource has no second participant.
func (r Resource) IsSingleParty() bool {
	return r.User2 == ""
}

// Patch is a partial update. Nil fields leave the stored value untouched.
// Owner is not patchable; it is set once at creation.
type Patch struct {
	User1    *string
	User2    *string
	Messages *[]Message
}

func (p Patch) IsEmpty() bool {
	return p.User1 == nil && p.User2 == nil && p.Messages == nil
}

// Apply returns a copy of r with the present patch fields written over it.
func (r Resource) Apply(p Patch) Resource {
	out := r
	if p.User1 != nil {
		out.User1 = *p.User1
	}
	if p.User2 != nil {
		out.User2 = *p.User2
	}
	if p.Messages != nil {
		out.Messages = append([]Message(nil), (*p.Messages)...)
	}
	return out
}
