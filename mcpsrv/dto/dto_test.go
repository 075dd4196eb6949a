package dto

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/qyinm/ballottui/tabtree"
	"github.com/qyinm/ballottui/types"
)

func TestDTOJSONMarshal(t *testing.T) {
	records := []types.Candidate{
		types.NewCandidate(types.PlainTitle("X"), map[string]string{"Name": "one", "Manifesto": "<p>Hi</p>"}),
		types.NewCandidate(types.StructuredTitle("Y"), map[string]string{"Name": "two"}),
		types.NewCandidate(types.PlainTitle("X"), map[string]string{"Name": "three"}),
	}
	cfg := tabtree.NewConfig(tabtree.Options{Results: true, NetworkOfficers: "X|Y"})
	tree := tabtree.Build(cfg, records)

	out := FromTree(tree, types.Request{Mode: types.Results, ElectionID: "e1"}, true)
	b, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal tree dto: %v", err)
	}

	var got struct {
		Mode  string `json:"mode"`
		Total int    `json:"total"`
		Tabs  []struct {
			ID       string `json:"id"`
			Count    int    `json:"count"`
			Children []struct {
				ID         string `json:"id"`
				Kind       string `json:"kind"`
				Count      int    `json:"count"`
				Candidates []struct {
					Name     string            `json:"name"`
					PostKind string            `json:"post_kind"`
					Fields   map[string]string `json:"fields"`
				} `json:"candidates"`
			} `json:"children"`
		} `json:"tabs"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal tree dto: %v", err)
	}

	if got.Mode != "results" {
		t.Fatalf("unexpected mode: %v", got.Mode)
	}
	if got.Total != 3 {
		t.Fatalf("unexpected total: %d", got.Total)
	}
	if len(got.Tabs) != 1 || got.Tabs[0].ID != "NO0" {
		t.Fatalf("unexpected tabs: %+v", got.Tabs)
	}
	children := got.Tabs[0].Children
	if len(children) != 3 {
		t.Fatalf("unexpected children: %+v", children)
	}
	if children[0].Kind != "merged" || children[0].Count != 3 {
		t.Fatalf("unexpected merged tab: %+v", children[0])
	}
	if children[1].Count != 2 || children[2].Count != 1 {
		t.Fatalf("unexpected leaf counts: %d, %d", children[1].Count, children[2].Count)
	}
	first := children[1].Candidates[0]
	if first.Name != "one" || first.PostKind != "plain" || first.Fields["Manifesto"] != "Hi" {
		t.Fatalf("unexpected candidate: %+v", first)
	}
	if children[2].Candidates[0].PostKind != "structured" {
		t.Fatalf("unexpected post kind: %+v", children[2].Candidates[0])
	}
}

func TestFromTabOmitsCandidatesByDefault(t *testing.T) {
	node := types.TabNode{
		ID:         "NUS0",
		Kind:       types.LeafNode,
		Category:   types.NusDelegate,
		Candidates: []types.Candidate{types.NewCandidate(types.PlainTitle(types.NusDelegateRole), nil)},
	}
	tab := FromTab(node, false)
	if tab.Count != 1 || tab.Candidates != nil {
		t.Fatalf("unexpected tab: %+v", tab)
	}
}

func TestDTOFields(t *testing.T) {
	assertNoInterfaceFields(t, reflect.TypeOf(Candidate{}), map[reflect.Type]bool{})
	assertNoInterfaceFields(t, reflect.TypeOf(Tab{}), map[reflect.Type]bool{})
	assertNoInterfaceFields(t, reflect.TypeOf(Tree{}), map[reflect.Type]bool{})
}

func assertNoInterfaceFields(t *testing.T, typ reflect.Type, seen map[reflect.Type]bool) {
	t.Helper()
	if seen[typ] {
		return
	}
	seen[typ] = true

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		fieldType := field.Type
		if fieldType.Kind() == reflect.Pointer {
			fieldType = fieldType.Elem()
		}

		switch fieldType.Kind() {
		case reflect.Interface:
			t.Fatalf("field %s in %s must not be interface type", field.Name, typ.Name())
		case reflect.Struct:
			assertNoInterfaceFields(t, fieldType, seen)
		case reflect.Slice, reflect.Array, reflect.Map:
			elem := fieldType.Elem()
			if elem.Kind() == reflect.Interface {
				t.Fatalf("field %s in %s must not contain interface elements", field.Name, typ.Name())
			}
			if elem.Kind() == reflect.Struct {
				assertNoInterfaceFields(t, elem, seen)
			}
		}
	}
}
