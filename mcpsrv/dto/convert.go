package dto

import (
	"github.com/qyinm/ballottui/loader"
	"github.com/qyinm/ballottui/types"
)

func postKind(k types.PostKind) string {
	switch k {
	case types.PostPlain:
		return "plain"
	case types.PostStructured:
		return "structured"
	default:
		return "malformed"
	}
}

func FromCandidate(c types.Candidate) Candidate {
	out := Candidate{
		Name:     c.Name(),
		Post:     c.PostTitle(),
		PostKind: postKind(c.Post().Kind()),
		Elected:  c.Elected(),
	}
	if n, ok := c.Votes(); ok {
		out.Votes = &n
	}
	for _, k := range c.Fields() {
		switch k {
		case "Post", "post", "Votes", "Elected":
			continue
		}
		v := c.Field(k)
		if v == "" {
			continue
		}
		if k == "Manifesto" {
			v = loader.PlainText(v)
		}
		if out.Fields == nil {
			out.Fields = make(map[string]string)
		}
		out.Fields[k] = v
	}
	return out
}

func FromCandidates(cs []types.Candidate) []Candidate {
	out := make([]Candidate, 0, len(cs))
	for _, c := range cs {
		out = append(out, FromCandidate(c))
	}
	return out
}

// FromTab converts a node and its children. Candidate lists are only
// included on request; counts are always filled.
func FromTab(n types.TabNode, withCandidates bool) Tab {
	out := Tab{
		ID:       n.ID,
		Label:    n.Label,
		Term:     n.Term,
		Category: n.Category.Code(),
		Kind:     n.Kind.String(),
		Active:   n.Active,
		Count:    n.Count(),
	}
	if n.Kind == types.MergedLeafNode {
		out.Count = len(n.Candidates)
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, FromTab(c, withCandidates))
	}
	if withCandidates && n.IsLeaf() {
		out.Candidates = FromCandidates(n.Candidates)
	}
	return out
}

func FromTree(t types.Tree, req types.Request, withCandidates bool) Tree {
	out := Tree{
		Mode:       req.Mode.String(),
		ElectionID: req.ElectionID,
		Tabs:       make([]Tab, 0, len(t.Branches)),
	}
	for _, b := range t.Branches {
		tab := FromTab(b, withCandidates)
		out.Total += tab.Count
		out.Tabs = append(out.Tabs, tab)
	}
	return out
}
