package tabtree

import "github.com/qyinm/ballottui/types"

func candidate(name, post string) types.Candidate {
	return types.NewCandidate(types.PlainTitle(post), map[string]string{"Name": name})
}

func structured(name, post string) types.Candidate {
	return types.NewCandidate(types.StructuredTitle(post), map[string]string{"Name": name})
}

func names(cs []types.Candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Name())
	}
	return out
}

var fixture = []types.Candidate{
	candidate("Ada", "President"),
	structured("Bo", "VP Education and Welfare"),
	candidate("Cy", "President"),
	candidate("Di", "Women's Officer"),
	candidate("Ed", "NUS National Conference Delegate"),
	candidate("Fi", "Bioscience Faculty Rep"),
	candidate("Gu", "Bioscience Society Officer"),
	candidate("Hal", "Law Faculty Rep"),
	types.NewCandidate(types.MalformedPost(), map[string]string{"Name": "Ivo"}),
}
