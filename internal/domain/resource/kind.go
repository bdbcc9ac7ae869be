package resource

// Kind describes one resource family: where it is stored and how it is named on the wire.
type Kind struct {
	Collection string
	Singular   string
	Plural     string
}

var (
	ProjectKind = Kind{
		Collection: "projects",
		Singular:   "project",
		Plural:     "projects",
	}
	ChatroomKind = Kind{
		Collection: "chatrooms",
		Singular:   "chatroom",
		Plural:     "chatrooms",
	}
)

// Kinds lists every resource family served by the API.
func Kinds() []Kind {
	return []Kind{ProjectKind, ChatroomKind}
}
