package dto

type Candidate struct {
	Name     string            `json:"name"`
	Post     string            `json:"post"`
	PostKind string            `json:"post_kind"`
	Votes    *int              `json:"votes,omitempty"`
	Elected  bool              `json:"elected,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
}

type Tab struct {
	ID         string      `json:"id"`
	Label      string      `json:"label"`
	Term       string      `json:"term,omitempty"`
	Category   string      `json:"category"`
	Kind       string      `json:"kind"`
	Active     bool        `json:"active"`
	Count      int         `json:"count"`
	Children   []Tab       `json:"children,omitempty"`
	Candidates []Candidate `json:"candidates,omitempty"`
}

type Tree struct {
	Mode       string `json:"mode"`
	ElectionID string `json:"election_id,omitempty"`
	Total      int    `json:"total"`
	Tabs       []Tab  `json:"tabs"`
}
