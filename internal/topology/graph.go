package topology

import (
	"context"
	"fmt"
	"slices"

	"github.com/isometry/eventbridge-explorer/internal/resource"
)

// Build renders the bus, its rules and their targets as a graph.
// Rules keep their input order and targets keep their rule's order. When filter is
// non-empty only the named rules are included. Targets shared between rules get one
// node per rule. A rule named like its bus gets the node id "rule:<name>".
func Build(bus string, rules []Rule, filter []string) *Graph {
	g := &Graph{
		Bus:   bus,
		Nodes: []Node{{ID: bus, Type: NodeBus, Name: bus, Label: bus}},
		Edges: []Edge{},
	}

	for _, rule := range rules {
		if len(filter) > 0 && !slices.Contains(filter, rule.Name) {
			continue
		}
		ruleID := rule.Name
		if ruleID == bus {
			ruleID = "rule:" + rule.Name
		}
		node := ruleNode(rule)
		node.ID = ruleID
		g.Nodes = append(g.Nodes, node)
		g.addEdge(bus, ruleID)

		for i, target := range rule.Targets {
			targetID := target.ID
			if targetID == "" {
				targetID = fmt.Sprintf("unknown_%d", i)
			}
			nodeID := ruleID + ":" + targetID
			g.Nodes = append(g.Nodes, Node{
				ID:       nodeID,
				Type:     NodeTarget,
				Name:     targetID,
				Label:    resource.DisplayName(target.Arn, targetID),
				Arn:      target.Arn,
				RuleName: rule.Name,
			})
			g.addEdge(ruleID, nodeID)
		}
	}
	return g
}

// DetailedGraph resolves each selected rule through RuleDetail before building the graph.
// A rule whose detail cannot be resolved is rendered without targets.
func (r *Resolver) DetailedGraph(ctx context.Context, bus string, rules []Rule, filter []string) (*Graph, error) {
	if bus == "" {
		return nil, ErrNoBusSelected
	}
	detailed := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		if len(filter) > 0 && !slices.Contains(filter, rule.Name) {
			continue
		}
		detail, err := r.RuleDetail(ctx, bus, rule.Name, &rule)
		if err != nil {
			return nil, err
		}
		if detail == nil {
			detailed = append(detailed, Rule{Name: rule.Name, EventBusName: bus})
			continue
		}
		detailed = append(detailed, *detail)
	}
	return Build(bus, detailed, nil), nil
}

// Elements returns the graph in the nodes/edges data-wrapper shape consumed by graph front-ends.
func (g *Graph) Elements() Elements {
	elements := Elements{
		Nodes: make([]Element, 0, len(g.Nodes)),
		Edges: make([]Element, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		elements.Nodes = append(elements.Nodes, Element{Data: n})
	}
	for _, e := range g.Edges {
		elements.Edges = append(elements.Edges, Element{Data: e})
	}
	return elements
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Targets returns the target nodes of the graph.
func (g *Graph) Targets() []Node {
	var targets []Node
	for _, n := range g.Nodes {
		if n.Type == NodeTarget {
			targets = append(targets, n)
		}
	}
	return targets
}

func (g *Graph) addEdge(src, dst string) {
	g.Edges = append(g.Edges, Edge{ID: src + "-" + dst, Source: src, Target: dst})
}

func ruleNode(rule Rule) Node {
	n := Node{
		ID:    rule.Name,
		Type:  NodeRule,
		Name:  rule.Name,
		Label: rule.Name,
		Arn:   rule.Arn,
	}
	metadata := map[string]any{}
	if rule.State != "" {
		metadata["state"] = rule.State
	}
	if rule.ScheduleExpression != "" {
		metadata["scheduleExpression"] = rule.ScheduleExpression
	}
	if rule.EventPattern != "" {
		metadata["eventPattern"] = rule.EventPattern
		summary := summarizePattern(rule.EventPattern)
		if len(summary.Sources) > 0 {
			metadata["sources"] = summary.Sources
		}
		if len(summary.DetailTypes) > 0 {
			metadata["detailTypes"] = summary.DetailTypes
		}
	}
	if len(metadata) > 0 {
		n.Metadata = metadata
	}
	return n
}
