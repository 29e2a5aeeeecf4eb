package explorer

import (
	"context"
	"log/slog"

	"github.com/isometry/eventbridge-explorer/internal/session"
	"github.com/isometry/eventbridge-explorer/internal/topology"
)

// ListBuses lists the account's event buses and records the listing in sess.
func (e *Explorer) ListBuses(ctx context.Context, sess *session.Session) ([]topology.EventBus, error) {
	buses, err := e.resolver.ListBuses(ctx)
	if err != nil {
		e.logger.Warn("failed to list event buses", slog.Any("error", err))
		return nil, err
	}
	sess.Buses = buses
	return buses, nil
}

// SelectBus makes name the selected bus of sess. The session's last bus listing is used
// when it knows the bus; otherwise the listing is refreshed once.
func (e *Explorer) SelectBus(ctx context.Context, sess *session.Session, name string) (topology.EventBus, error) {
	name = NormalizeBusName(name)
	if name == "" {
		return topology.EventBus{}, topology.ErrNoBusSelected
	}
	bus, found := sess.FindBus(name)
	if !found {
		if _, err := e.ListBuses(ctx, sess); err != nil {
			return topology.EventBus{}, err
		}
		bus, found = sess.FindBus(name)
	}
	if !found {
		return topology.EventBus{}, &NotFoundError{Kind: "Event bus", Name: name}
	}
	sess.Select(bus.Name)
	e.logger.Debug("event bus selected", "session", sess.ID, "bus", bus.Name)
	return bus, nil
}

// ListRules fetches the rules of bus, or of the session's selected bus when bus is empty,
// and caches them in sess.
func (e *Explorer) ListRules(ctx context.Context, sess *session.Session, bus string) ([]topology.Rule, error) {
	name, err := e.target(ctx, sess, bus)
	if err != nil {
		return nil, err
	}
	rules, err := e.resolver.FetchRules(ctx, name)
	if err != nil {
		return nil, err
	}
	sess.Rules = rules
	return rules, nil
}

// BuildGraph renders the topology of bus restricted to filter. Rules already cached in
// the session for that bus are reused.
func (e *Explorer) BuildGraph(ctx context.Context, sess *session.Session, bus string, filter []string) (*topology.Graph, error) {
	name, rules, err := e.rules(ctx, sess, bus)
	if err != nil {
		return nil, err
	}
	g := topology.Build(name, rules, filter)
	e.logger.Debug("graph built", "bus", name, "rules", len(g.Nodes)-len(g.Targets())-1, "targets", len(g.Targets()))
	return g, nil
}

// BuildGraphWithDetails renders the topology of bus after resolving every selected rule through DescribeRule.
func (e *Explorer) BuildGraphWithDetails(ctx context.Context, sess *session.Session, bus string, filter []string) (*topology.Graph, error) {
	name, rules, err := e.rules(ctx, sess, bus)
	if err != nil {
		return nil, err
	}
	return e.resolver.DetailedGraph(ctx, name, rules, filter)
}

func (e *Explorer) rules(ctx context.Context, sess *session.Session, bus string) (string, []topology.Rule, error) {
	name, err := e.target(ctx, sess, bus)
	if err != nil {
		return "", nil, err
	}
	if len(sess.Rules) > 0 {
		return name, sess.Rules, nil
	}
	rules, err := e.resolver.FetchRules(ctx, name)
	if err != nil {
		return "", nil, err
	}
	sess.Rules = rules
	return name, rules, nil
}

// target selects bus when given, and falls back to the session's selection otherwise.
func (e *Explorer) target(ctx context.Context, sess *session.Session, bus string) (string, error) {
	if NormalizeBusName(bus) != "" {
		selected, err := e.SelectBus(ctx, sess, bus)
		if err != nil {
			return "", err
		}
		return selected.Name, nil
	}
	if sess.Bus == "" {
		return "", topology.ErrNoBusSelected
	}
	return sess.Bus, nil
}
