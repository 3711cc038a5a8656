package usecase

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"archlens/internal/domain"
	"archlens/internal/port"
)

// DepsUseCase builds the unified dependency graph. Nodes and declared edges
// come from the analysis results; four model passes then discover edges the
// static data cannot see. The passes run concurrently, each collecting its
// edges into its own slice, and the slices are applied to the graph in a
// fixed order after all passes join. An edge naming an unknown node is
// dropped, never invented.
type DepsUseCase struct {
	client port.ChunkAnalyzer
	log    *slog.Logger
}

// NewDepsUseCase creates a new dependency graph use case.
func NewDepsUseCase(client port.ChunkAnalyzer, log *slog.Logger) *DepsUseCase {
	if log == nil {
		log = slog.Default()
	}
	return &DepsUseCase{client: client, log: log}
}

// BuildGraph assembles the graph from the three layers' results.
func (u *DepsUseCase) BuildGraph(
	ctx context.Context,
	components map[string]*domain.CodeComponent,
	entities map[string]*domain.BusinessEntity,
	services map[string]*domain.DockerService,
) *domain.Graph {
	g := domain.NewGraph()

	for _, path := range sortedKeys(components) {
		c := components[path]
		g.AddNode(&domain.Node{
			ID:   path,
			Type: domain.NodeTypeCode,
			Attrs: map[string]any{
				"component_type": string(c.Type),
				"language":       c.Language,
				"complexity":     c.Complexity,
			},
		})
	}
	for _, name := range sortedKeys(entities) {
		e := entities[name]
		g.AddNode(&domain.Node{
			ID:   domain.EntityNodeID(name),
			Type: domain.NodeTypeBiz,
			Attrs: map[string]any{
				"attributes": e.Attributes.Sorted(),
				"methods":    e.Methods.Sorted(),
			},
		})
	}
	for _, name := range sortedKeys(services) {
		s := services[name]
		g.AddNode(&domain.Node{
			ID:   domain.ServiceNodeID(name),
			Type: domain.NodeTypeInfra,
			Attrs: map[string]any{
				"image": s.Image,
				"ports": s.Ports,
			},
		})
	}

	u.declaredEdges(g, components, entities, services)

	passes := []func(context.Context) []*domain.Edge{
		func(ctx context.Context) []*domain.Edge { return u.codePass(ctx, components) },
		func(ctx context.Context) []*domain.Edge { return u.businessPass(ctx, entities) },
		func(ctx context.Context) []*domain.Edge { return u.infraPass(ctx, services) },
		func(ctx context.Context) []*domain.Edge { return u.crossLayerPass(ctx, components, entities, services) },
	}

	discovered := make([][]*domain.Edge, len(passes))
	eg, gctx := errgroup.WithContext(ctx)
	for i, pass := range passes {
		eg.Go(func() error {
			discovered[i] = pass(gctx)
			return nil
		})
	}
	eg.Wait()

	for _, edges := range discovered {
		for _, e := range edges {
			if !g.AddEdge(e) {
				u.log.Debug("dropped edge to unknown node", "source", e.Source, "target", e.Target)
			}
		}
	}

	return g
}

// declaredEdges adds the edges already present in the analysis results. Code
// dependencies mostly name external libraries that are not nodes; those are
// silently dropped by AddEdge.
func (u *DepsUseCase) declaredEdges(
	g *domain.Graph,
	components map[string]*domain.CodeComponent,
	entities map[string]*domain.BusinessEntity,
	services map[string]*domain.DockerService,
) {
	for _, path := range sortedKeys(components) {
		c := components[path]
		for _, dep := range c.Dependencies.Sorted() {
			g.AddEdge(&domain.Edge{Source: path, Target: dep, Type: domain.EdgeAssociation})
		}
		for _, target := range sortedKeys(c.Relationships) {
			g.AddEdge(&domain.Edge{Source: path, Target: target, Type: c.Relationships[target]})
		}
	}
	for _, name := range sortedKeys(entities) {
		for _, dep := range entities[name].Dependencies.Sorted() {
			g.AddEdge(&domain.Edge{
				Source: domain.EntityNodeID(name),
				Target: domain.EntityNodeID(dep),
				Type:   domain.EdgeAssociation,
			})
		}
	}
	for _, name := range sortedKeys(services) {
		for _, dep := range services[name].DependsOn.Sorted() {
			g.AddEdge(&domain.Edge{
				Source: domain.ServiceNodeID(name),
				Target: domain.ServiceNodeID(dep),
				Type:   domain.EdgeRequires,
			})
		}
	}
}

func (u *DepsUseCase) codePass(ctx context.Context, components map[string]*domain.CodeComponent) []*domain.Edge {
	if len(components) == 0 {
		return nil
	}
	summary, err := componentSummary(components)
	if err != nil {
		u.log.Warn("failed to build component summary", "error", err)
		return nil
	}

	a := u.client.AnalyzeChunk(ctx, summary, "Implicit code dependency analysis")
	var edges []*domain.Edge
	for _, rel := range a.ImplicitDependencies {
		edges = append(edges, &domain.Edge{
			Source: rel.Source,
			Target: rel.Target,
			Type:   domain.EdgeImplicit,
			Attrs:  edgeAttrs("reason", rel.Reason),
		})
	}
	return edges
}

func (u *DepsUseCase) businessPass(ctx context.Context, entities map[string]*domain.BusinessEntity) []*domain.Edge {
	if len(entities) == 0 {
		return nil
	}
	summary, err := businessSummary(entities, nil)
	if err != nil {
		u.log.Warn("failed to build business summary", "error", err)
		return nil
	}

	a := u.client.AnalyzeChunk(ctx, summary, "Business entity dependency analysis")
	var edges []*domain.Edge
	for _, rel := range a.Relationships {
		relType := rel.Type
		if relType == "" {
			relType = domain.EdgeAssociation
		}
		edges = append(edges, &domain.Edge{
			Source: domain.EntityNodeID(rel.Source),
			Target: domain.EntityNodeID(rel.Target),
			Type:   relType,
			Attrs:  edgeAttrs("strength", rel.Strength),
		})
	}
	return edges
}

func (u *DepsUseCase) infraPass(ctx context.Context, services map[string]*domain.DockerService) []*domain.Edge {
	if len(services) == 0 {
		return nil
	}
	summary, err := infraSummary(services)
	if err != nil {
		u.log.Warn("failed to build infrastructure summary", "error", err)
		return nil
	}

	a := u.client.AnalyzeChunk(ctx, summary, "Infrastructure dependency analysis")
	var edges []*domain.Edge
	for _, rel := range a.Dependencies {
		relType := rel.Type
		if relType == "" {
			relType = domain.EdgeRequires
		}
		edges = append(edges, &domain.Edge{
			Source: domain.ServiceNodeID(rel.Source),
			Target: domain.ServiceNodeID(rel.Target),
			Type:   relType,
			Attrs:  edgeAttrs("protocol", rel.Protocol),
		})
	}
	return edges
}

func (u *DepsUseCase) crossLayerPass(
	ctx context.Context,
	components map[string]*domain.CodeComponent,
	entities map[string]*domain.BusinessEntity,
	services map[string]*domain.DockerService,
) []*domain.Edge {
	summary, err := projectSummary(components, entities, services)
	if err != nil {
		u.log.Warn("failed to build project summary", "error", err)
		return nil
	}

	a := u.client.AnalyzeChunk(ctx, summary, "Cross-layer dependency analysis")
	var edges []*domain.Edge
	for _, f := range a.CrossLayerDependencies {
		src := layerNodeID(f.Source, f.SourceType)
		dst := layerNodeID(f.Target, f.TargetType)
		if src == "" || dst == "" {
			continue
		}
		edges = append(edges, &domain.Edge{
			Source: src,
			Target: dst,
			Type:   domain.EdgeCrossLayer,
			Attrs:  edgeAttrs("reason", f.Reason),
		})
	}
	return edges
}

// layerNodeID maps a cross-layer finding endpoint to a namespaced node id.
func layerNodeID(name, layerType string) string {
	switch layerType {
	case domain.NodeTypeCode:
		return name
	case domain.NodeTypeBiz:
		return domain.EntityNodeID(name)
	case domain.NodeTypeInfra:
		return domain.ServiceNodeID(name)
	}
	return ""
}

func edgeAttrs(key, value string) map[string]string {
	if value == "" {
		return nil
	}
	return map[string]string{key: value}
}
