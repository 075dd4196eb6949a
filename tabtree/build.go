package tabtree

import (
	"strconv"

	"github.com/qyinm/ballottui/types"
	"go.uber.org/zap"
)

// AllLabel is the header of the merged results tab.
const AllLabel = "All"

// Builder builds tab trees for one Config.
type Builder struct {
	cfg Config
	log *zap.Logger
}

// NewBuilder returns a Builder that reports configuration problems to log.
// A nil logger discards them.
func NewBuilder(cfg Config, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{cfg: cfg, log: log.Named("tabtree")}
}

// Build is shorthand for NewBuilder(cfg, nil).Build(records).
func Build(cfg Config, records []types.Candidate) types.Tree {
	return NewBuilder(cfg, nil).Build(records)
}

func (b *Builder) Config() Config { return b.cfg }

// WithConfig returns a Builder for cfg that logs where b does.
func (b *Builder) WithConfig(cfg Config) *Builder {
	return &Builder{cfg: cfg, log: b.log}
}

// Build lays out the category tabs in fixed order, skipping categories that
// were not configured and the NUS tab when nobody stands for it.
func (b *Builder) Build(records []types.Candidate) types.Tree {
	var cats []types.Category
	for _, cat := range types.AllCategories {
		if b.include(cat, records) {
			cats = append(cats, cat)
		}
	}

	branches := make([]types.TabNode, 0, len(cats))
	for i, cat := range cats {
		branches = append(branches, b.branch(cat, i, records))
	}
	b.markActive(branches)
	return types.Tree{Branches: branches}
}

func (b *Builder) include(cat types.Category, records []types.Candidate) bool {
	if cat == types.NusDelegate {
		return len(FilterByExactRole(records, types.NusDelegateRole)) > 0
	}
	return b.cfg.Configured(cat)
}

// markActive activates the branch named by the configured active id, or the
// first branch when no branch has that id.
func (b *Builder) markActive(branches []types.TabNode) {
	if len(branches) == 0 {
		return
	}
	want, known := types.ParseCategory(b.cfg.ActiveID())
	if !known {
		b.log.Warn("unknown active tab id, using first tab",
			zap.String("active_id", b.cfg.ActiveID()))
	}
	for i := range branches {
		if known && branches[i].Category == want {
			branches[i].Active = true
			return
		}
	}
	if known {
		b.log.Debug("active tab not present, using first tab",
			zap.String("active_id", b.cfg.ActiveID()))
	}
	branches[0].Active = true
}

func (b *Builder) branch(cat types.Category, pos int, records []types.Candidate) types.TabNode {
	node := types.TabNode{
		ID:       tabID(cat, pos),
		Label:    cat.Title(),
		Category: cat,
		Kind:     types.BranchNode,
	}

	switch cat {
	case types.NusDelegate:
		node.Kind = types.LeafNode
		node.Term = types.NusDelegateRole
		node.Candidates = FilterByExactRole(records, types.NusDelegateRole)
	case types.StudentOfficers, types.NetworkOfficers, types.Academic:
		node.Children = b.innerTabs(cat, records)
	default:
		b.log.Warn("unknown category, branch left empty", zap.Int("category", int(cat)))
	}
	return node
}

func (b *Builder) innerTabs(cat types.Category, records []types.Candidate) []types.TabNode {
	roles := b.cfg.roles[cat]
	tabs := make([]types.TabNode, 0, len(roles)+1)

	if b.cfg.Results() && cat.Officer() {
		merged, err := b.cfg.CombinedPosts(records, cat)
		if err != nil {
			b.log.Warn("merged tab has no roles", zap.String("category", cat.Code()), zap.Error(err))
		}
		tabs = append(tabs, types.TabNode{
			Label:      AllLabel,
			Category:   cat,
			Kind:       types.MergedLeafNode,
			Candidates: merged,
		})
	}

	for _, role := range roles {
		label, ok := Shorten(role, cat)
		if !ok {
			b.log.Warn("cannot shorten title for category",
				zap.String("category", cat.String()), zap.String("title", role))
		}
		leaf := types.TabNode{
			Label:    label,
			Term:     role,
			Category: cat,
			Kind:     types.LeafNode,
		}
		if cat == types.Academic {
			leaf.Display = types.DisplayAcademic
			leaf.Candidates = FilterByAcademicSubstring(records, role)
		} else {
			leaf.Candidates = FilterByExactRole(records, role)
		}
		tabs = append(tabs, leaf)
	}

	for i := range tabs {
		tabs[i].ID = tabID(cat, i)
		tabs[i].Active = i == 0
	}
	return tabs
}

func tabID(cat types.Category, pos int) string {
	return cat.Code() + strconv.Itoa(pos)
}
