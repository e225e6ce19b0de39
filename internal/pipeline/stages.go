package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/specialistvlad/framegrid/internal/chain"
	"github.com/specialistvlad/framegrid/internal/ctxlog"
	"github.com/specialistvlad/framegrid/internal/frame"
	"github.com/specialistvlad/framegrid/internal/report"
	"github.com/specialistvlad/framegrid/internal/transformer"
)

// PropagateStage assigns frames to every node.
type PropagateStage struct{}

func (PropagateStage) Name() string { return "propagate" }

func (PropagateStage) Run(ctx context.Context, b *Build) error {
	return b.propagation.Run(ctx, b.Network)
}

// ResolveStage resolves the requirements of every node and inserts the
// producers they need, re-propagating after each round that inserted nodes.
// Selections are frozen once no round inserts anything.
type ResolveStage struct{}

func (ResolveStage) Name() string { return "resolve" }

func (ResolveStage) Run(ctx context.Context, b *Build) error {
	logger := ctxlog.FromContext(ctx)
	for round := 1; ; round++ {
		if round > 1 {
			if err := b.propagation.Run(ctx, b.Network); err != nil {
				return fmt.Errorf("round %d: %w", round, err)
			}
		}

		inserted := 0
		for _, n := range slices.Collect(b.Network.Nodes()) {
			if n.State().Resolved {
				continue
			}
			count, err := resolveNode(ctx, b, n)
			if err != nil {
				return err
			}
			n.State().Resolved = true
			inserted += count
		}
		b.Result.Rounds = round
		b.Result.Producers = b.producers.Created()
		logger.Debug("Resolve: Round finished.", "round", round, "inserted", inserted)
		if inserted == 0 {
			break
		}
	}

	for n := range b.Network.Nodes() {
		n.State().Selected.Freeze()
	}
	return nil
}

func resolveNode(ctx context.Context, b *Build, n transformer.Node) (int, error) {
	logger := ctxlog.FromContext(ctx)
	a := n.Annotations()
	if a == nil {
		return 0, nil
	}
	state := n.State()
	local := localProducers(b.Network, n)

	var dynamic []chain.Segment
	for need := range a.Needs() {
		t, ok := state.ResolveTransform(need)
		if !ok {
			// Reported by the validate stage.
			continue
		}
		logger.Debug("Resolve: Looking for chain.", "node_id", n.ID(), "from", t.From, "to", t.To, "local_producers", len(local))
		c, err := b.resolver.Resolve(t.From, t.To, local)
		if err != nil {
			invalid := &InvalidChainError{Node: n.ID(), Need: need, Transform: t, Err: err}
			if b.Settings.Strict || !errors.As(err, new(*chain.NoChainError)) {
				return 0, invalid
			}
			state.Unresolved[need] = invalid
			logger.Debug("Resolve: Skipping unresolved requirement.", "node_id", n.ID(), "from", t.From, "to", t.To)
			continue
		}
		delete(state.Unresolved, need)
		state.Chains[need] = c

		static, dyn := c.Partition()
		for _, seg := range static {
			state.AddStatic(seg)
		}
		dynamic = append(dynamic, dyn...)
		logger.Debug("Resolve: Found chain.", "node_id", n.ID(), "chain", c.String(), "frames", c.Frames(), "static", len(static), "dynamic", len(dyn))
	}

	if len(dynamic) == 0 {
		return 0, nil
	}
	return b.producers.Instantiate(ctx, n, dynamic)
}

// localProducers collects the producers a node already has: its explicit
// producer choices, overridden by its connected input transform ports.
func localProducers(net transformer.Network, n transformer.Node) map[frame.Transform]chain.LocalProducer {
	state := n.State()
	local := make(map[frame.Transform]chain.LocalProducer)
	for t, ref := range state.Producers {
		local[t] = chain.LocalProducer{Producer: ref}
	}
	for port, lt := range n.Annotations().TransformPorts() {
		if port.Direction != transformer.Input || !connected(net, n, port.Name) {
			continue
		}
		if t, ok := state.ResolveTransform(lt); ok {
			local[t] = chain.LocalProducer{Port: port.Name}
		}
	}
	return local
}

func connected(net transformer.Network, n transformer.Node, port string) bool {
	for range net.Sources(n, port) {
		return true
	}
	return false
}

// ValidateStage checks that every requirement of every node was resolved.
type ValidateStage struct{}

func (ValidateStage) Name() string { return "validate" }

func (ValidateStage) Run(ctx context.Context, b *Build) error {
	logger := ctxlog.FromContext(ctx)
	var issues []Unresolved
	for n := range b.Network.Nodes() {
		issues = append(issues, validateNode(n)...)
	}
	if len(issues) == 0 {
		return nil
	}

	if b.Settings.Strict {
		errs := make([]error, len(issues))
		for i, u := range issues {
			errs[i] = u.Err
		}
		return errors.Join(errs...)
	}

	for _, u := range issues {
		logger.Warn("Validate: Unresolved transformation requirement.", "node_id", u.Node, "from", u.From, "to", u.To, "reason", u.Reason)
	}
	b.Result.Unresolved = issues
	b.Result.Complete = false
	return nil
}

func validateNode(n transformer.Node) []Unresolved {
	state := n.State()
	var issues []Unresolved
	add := func(need frame.LocalTransform, err error) {
		issues = append(issues, Unresolved{Node: n.ID(), From: need.From, To: need.To, Reason: err.Error(), Err: err})
	}
	for need := range n.Annotations().Needs() {
		if _, ok := state.Selected.Lookup(need.From); !ok {
			add(need, &frame.InvalidConfigurationError{Node: n.ID(), Alias: need.From, Role: frame.RoleFrom})
			continue
		}
		if _, ok := state.Selected.Lookup(need.To); !ok {
			add(need, &frame.InvalidConfigurationError{Node: n.ID(), Alias: need.To, Role: frame.RoleTo})
		}
	}
	for _, need := range state.UnresolvedNeeds() {
		add(need, state.Unresolved[need])
	}
	return issues
}

// ReportStage projects the result of the build.
type ReportStage struct{}

func (ReportStage) Name() string { return "report" }

func (ReportStage) Run(ctx context.Context, b *Build) error {
	b.Result.Report = report.Build(ctx, b.Settings.Catalog, b.Network, b.now())
	return nil
}
