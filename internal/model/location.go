package model

// Conversation groups the dialogues of one topic.
type Conversation struct {
	Name      string `json:"name"`
	Dialogues Graph  `json:"dialogues"`
}

// Location groups dialogues and conversations by place.
type Location struct {
	Name          string                  `json:"name"`
	Dialogues     Graph                   `json:"dialogues"`
	Conversations map[string]Conversation `json:"conversations"`
	Exits         []string                `json:"exits"` // names of reachable locations
}

// NewConversation returns an empty conversation.
func NewConversation(name string) *Conversation {
	return &Conversation{Name: name, Dialogues: Graph{}}
}

// AddDialogue stores d under id, replacing any dialogue already there.
func (c *Conversation) AddDialogue(id string, d Dialogue) {
	c.Dialogues[id] = d
}

// NewLocation returns an empty location with no exits.
func NewLocation(name string) *Location {
	return &Location{
		Name:          name,
		Dialogues:     Graph{},
		Conversations: map[string]Conversation{},
	}
}

// AddDialogue stores d under id, replacing any dialogue already there.
func (l *Location) AddDialogue(id string, d Dialogue) {
	l.Dialogues[id] = d
}

// AddConversation stores c under id.
func (l *Location) AddConversation(id string, c Conversation) {
	l.Conversations[id] = c
}

// AddExit appends a reachable location name.
func (l *Location) AddExit(name string) {
	l.Exits = append(l.Exits, name)
}
