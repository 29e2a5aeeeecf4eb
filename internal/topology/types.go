package topology

import (
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
)

// EventBus is an EventBridge event bus as returned by a single listing.
type EventBus struct {
	Name        string `json:"Name"`
	Arn         string `json:"Arn"`
	Description string `json:"Description,omitempty"`
}

// Target is a rule target. InputTransformer is passed through untouched.
type Target struct {
	ID               string                  `json:"Id"`
	Arn              string                  `json:"Arn"`
	Input            string                  `json:"Input,omitempty"`
	InputPath        string                  `json:"InputPath,omitempty"`
	InputTransformer *types.InputTransformer `json:"InputTransformer,omitempty"`
}

// Rule is an EventBridge rule together with its targets.
type Rule struct {
	Name               string   `json:"Name"`
	Arn                string   `json:"Arn,omitempty"`
	EventBusName       string   `json:"EventBusName,omitempty"`
	EventPattern       string   `json:"EventPattern,omitempty"`
	ScheduleExpression string   `json:"ScheduleExpression,omitempty"`
	State              string   `json:"State,omitempty"`
	Description        string   `json:"Description,omitempty"`
	Targets            []Target `json:"Targets"`
}

// NodeType is the kind of a graph node.
type NodeType string

const (
	NodeBus    NodeType = "bus"
	NodeRule   NodeType = "rule"
	NodeTarget NodeType = "target"
)

// Node is a vertex of the topology graph.
type Node struct {
	ID       string         `json:"id"`
	Type     NodeType       `json:"type"`
	Name     string         `json:"name"`
	Label    string         `json:"label"`
	Arn      string         `json:"arn,omitempty"`
	RuleName string         `json:"rule_name,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Edge is a directed bus-to-rule or rule-to-target link.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is the rendered topology of one bus.
type Graph struct {
	Bus   string `json:"bus"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Element wraps a node or edge the way graph front-ends expect it.
type Element struct {
	Data any `json:"data"`
}

// Elements is the front-end shape of a Graph.
type Elements struct {
	Nodes []Element `json:"nodes"`
	Edges []Element `json:"edges"`
}
