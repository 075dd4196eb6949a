package mcpsrv

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/qyinm/ballottui/mcpsrv/dto"
	"github.com/qyinm/ballottui/tabtree"
	"github.com/qyinm/ballottui/types"
	"go.uber.org/zap"
)

type tabsGetArgs struct {
	IncludeCandidates bool   `json:"include_candidates,omitempty" jsonschema:"Include candidate lists on leaf tabs"`
	Category          string `json:"category,omitempty" jsonschema:"Only return this category tab: SO, NO, NUS or ACADEMIC"`
}

type candidatesByRoleArgs struct {
	Role string `json:"role" jsonschema:"Exact role name, e.g. President"`
}

type candidatesByGroupArgs struct {
	Group string `json:"group" jsonschema:"Academic group search term, e.g. Bioscience"`
}

type candidatesCombinedArgs struct {
	Category string `json:"category" jsonschema:"Officer category: SO or NO"`
}

type titleShortenArgs struct {
	Title    string `json:"title" jsonschema:"Full role title"`
	Category string `json:"category" jsonschema:"Category code: SO, NO, NUS or ACADEMIC"`
}

type tabsGetOutput struct {
	Tree dto.Tree `json:"tree"`
}

type candidatesOutput struct {
	Query string          `json:"query"`
	Total int             `json:"total"`
	Items []dto.Candidate `json:"items"`
}

type titleShortenOutput struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Label    string `json:"label"`
}

type cacheClearOutput struct {
	Status string `json:"status"`
}

// ServerOptions gates optional tools. HTTP callers should only set
// EnableAdmin when an API key protects the endpoint.
type ServerOptions struct {
	EnableAdmin bool
	Logger      *zap.Logger
}

type cacheClearSource interface {
	ClearCache()
}

// service is what every tool handler reads from: one feed request and the
// tab configuration it is grouped with.
type service struct {
	source  types.CandidateSource
	builder *tabtree.Builder
	request types.Request
	log     *zap.Logger
}

func (s *service) records(ctx context.Context) ([]types.Candidate, error) {
	return s.source.GetCandidates(ctx, s.request)
}

func NewServer(source types.CandidateSource, cfg tabtree.Config, req types.Request, version string, opts *ServerOptions) *mcp.Server {
	if strings.TrimSpace(version) == "" {
		version = "dev"
	}
	if opts == nil {
		opts = &ServerOptions{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	svc := &service{
		source:  source,
		builder: tabtree.NewBuilder(cfg, log),
		request: req,
		log:     log.Named("mcp"),
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "ballottui", Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "tabs_get",
		Description: "Get the candidate directory as category tabs and role tabs.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args tabsGetArgs) (*mcp.CallToolResult, tabsGetOutput, error) {
		return tabsGetHandler(ctx, req, args, svc)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "candidates_by_role",
		Description: "List candidates standing for an exact role name.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args candidatesByRoleArgs) (*mcp.CallToolResult, candidatesOutput, error) {
		return candidatesByRoleHandler(ctx, req, args, svc)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "candidates_by_group",
		Description: "List candidates whose role contains an academic group term.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args candidatesByGroupArgs) (*mcp.CallToolResult, candidatesOutput, error) {
		return candidatesByGroupHandler(ctx, req, args, svc)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "candidates_combined",
		Description: "List every candidate for the configured roles of an officer category.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args candidatesCombinedArgs) (*mcp.CallToolResult, candidatesOutput, error) {
		return candidatesCombinedHandler(ctx, req, args, svc)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "title_shorten",
		Description: "Shorten a role title to its tab label.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args titleShortenArgs) (*mcp.CallToolResult, titleShortenOutput, error) {
		return titleShortenHandler(ctx, req, args, svc)
	})

	if opts.EnableAdmin {
		mcp.AddTool(server, &mcp.Tool{
			Name:        "cache_clear",
			Description: "Clear the loader cache so the next call refetches (admin).",
		}, func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, cacheClearOutput, error) {
			return cacheClearHandler(ctx, req, svc)
		})
	}

	return server
}

func tabsGetHandler(ctx context.Context, _ *mcp.CallToolRequest, args tabsGetArgs, svc *service) (*mcp.CallToolResult, tabsGetOutput, error) {
	var only types.Category
	filtered := strings.TrimSpace(args.Category) != ""
	if filtered {
		cat, ok := types.ParseCategory(args.Category)
		if !ok {
			return errorToolResult("invalid category; expected SO|NO|NUS|ACADEMIC"), tabsGetOutput{}, nil
		}
		only = cat
	}

	records, err := svc.records(ctx)
	if err != nil {
		svc.log.Warn("tabs_get fetch failed", zap.Error(err))
		return errorToolResult("fetch candidates failed"), tabsGetOutput{}, nil
	}
	tree := svc.builder.Build(records)
	if filtered {
		branch, ok := tree.Branch(only)
		if !ok {
			return errorToolResult("no " + only.Code() + " tab in this directory"), tabsGetOutput{}, nil
		}
		tree = types.Tree{Branches: []types.TabNode{branch}}
	}
	return nil, tabsGetOutput{Tree: dto.FromTree(tree, svc.request, args.IncludeCandidates)}, nil
}

func candidatesByRoleHandler(ctx context.Context, _ *mcp.CallToolRequest, args candidatesByRoleArgs, svc *service) (*mcp.CallToolResult, candidatesOutput, error) {
	role := strings.TrimSpace(args.Role)
	if role == "" {
		return errorToolResult("role is required"), candidatesOutput{}, nil
	}
	records, err := svc.records(ctx)
	if err != nil {
		return errorToolResult("fetch candidates failed"), candidatesOutput{}, nil
	}
	return nil, candidatesResult(role, tabtree.FilterByExactRole(records, role)), nil
}

func candidatesByGroupHandler(ctx context.Context, _ *mcp.CallToolRequest, args candidatesByGroupArgs, svc *service) (*mcp.CallToolResult, candidatesOutput, error) {
	group := strings.TrimSpace(args.Group)
	if group == "" {
		return errorToolResult("group is required"), candidatesOutput{}, nil
	}
	records, err := svc.records(ctx)
	if err != nil {
		return errorToolResult("fetch candidates failed"), candidatesOutput{}, nil
	}
	return nil, candidatesResult(group, tabtree.FilterByAcademicSubstring(records, group)), nil
}

func candidatesCombinedHandler(ctx context.Context, _ *mcp.CallToolRequest, args candidatesCombinedArgs, svc *service) (*mcp.CallToolResult, candidatesOutput, error) {
	cat, ok := types.ParseCategory(args.Category)
	if !ok {
		return errorToolResult("invalid category; expected SO|NO"), candidatesOutput{}, nil
	}
	records, err := svc.records(ctx)
	if err != nil {
		return errorToolResult("fetch candidates failed"), candidatesOutput{}, nil
	}
	merged, err := svc.builder.Config().CombinedPosts(records, cat)
	switch {
	case errors.Is(err, tabtree.ErrNotMergeable):
		return errorToolResult("category " + cat.Code() + " has no merged tab; expected SO|NO"), candidatesOutput{}, nil
	case errors.Is(err, tabtree.ErrEmptyRoleConfig):
		return errorToolResult("no roles configured for " + cat.Code()), candidatesOutput{}, nil
	case err != nil:
		return errorToolResult(err.Error()), candidatesOutput{}, nil
	}
	return nil, candidatesResult(cat.Code(), merged), nil
}

func titleShortenHandler(_ context.Context, _ *mcp.CallToolRequest, args titleShortenArgs, svc *service) (*mcp.CallToolResult, titleShortenOutput, error) {
	title := strings.TrimSpace(args.Title)
	if title == "" {
		return errorToolResult("title is required"), titleShortenOutput{}, nil
	}
	cat, ok := types.ParseCategory(args.Category)
	if !ok {
		return errorToolResult("invalid category; expected SO|NO|NUS|ACADEMIC"), titleShortenOutput{}, nil
	}
	label, ok := tabtree.Shorten(title, cat)
	if !ok {
		svc.log.Warn("cannot shorten title for category",
			zap.String("category", cat.String()), zap.String("title", title))
	}
	return nil, titleShortenOutput{Title: title, Category: cat.Code(), Label: label}, nil
}

func cacheClearHandler(_ context.Context, _ *mcp.CallToolRequest, svc *service) (*mcp.CallToolResult, cacheClearOutput, error) {
	clearable, ok := svc.source.(cacheClearSource)
	if !ok {
		return errorToolResult("cache clear is not supported by this source"), cacheClearOutput{}, nil
	}
	clearable.ClearCache()
	svc.log.Info("cache cleared")
	return nil, cacheClearOutput{Status: "ok"}, nil
}

func candidatesResult(query string, cs []types.Candidate) candidatesOutput {
	return candidatesOutput{
		Query: query,
		Total: len(cs),
		Items: dto.FromCandidates(cs),
	}
}

func errorToolResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}
