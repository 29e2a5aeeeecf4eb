package topology_test

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/isometry/eventbridge-explorer/internal/testutil/awsmock"
	"github.com/isometry/eventbridge-explorer/internal/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func nodeIDs(g *topology.Graph) []string {
	ids := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

func edgePairs(g *topology.Graph) [][2]string {
	pairs := make([][2]string, 0, len(g.Edges))
	for _, e := range g.Edges {
		pairs = append(pairs, [2]string{e.Source, e.Target})
	}
	return pairs
}

func TestBuild(t *testing.T) {
	rules := []topology.Rule{
		{
			Name:         "R1",
			EventPattern: `{"source":["orders"],"detail-type":["OrderPlaced",{"prefix":"Order"}]}`,
			Targets: []topology.Target{
				{ID: "T1", Arn: "arn:aws:lambda:us-east-1:123456789012:function:myFn"},
			},
		},
		{
			Name: "R2",
			Targets: []topology.Target{
				{ID: "T1", Arn: "arn:aws:lambda:us-east-1:123456789012:function:myFn"},
				{ID: "Q", Arn: "arn:aws:sqs:us-east-1:123456789012:queue"},
			},
		},
	}

	testCases := []struct {
		Name   string
		Filter []string
		Nodes  []string
		Edges  [][2]string
	}{
		{
			Name:   "all_rules",
			Filter: nil,
			Nodes:  []string{"default", "R1", "R1:T1", "R2", "R2:T1", "R2:Q"},
			Edges: [][2]string{
				{"default", "R1"}, {"R1", "R1:T1"},
				{"default", "R2"}, {"R2", "R2:T1"}, {"R2", "R2:Q"},
			},
		},
		{
			Name:   "filtered",
			Filter: []string{"R1"},
			Nodes:  []string{"default", "R1", "R1:T1"},
			Edges:  [][2]string{{"default", "R1"}, {"R1", "R1:T1"}},
		},
		{
			Name:   "filter_without_match",
			Filter: []string{"missing"},
			Nodes:  []string{"default"},
			Edges:  [][2]string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			g := topology.Build("default", rules, tc.Filter)
			assert.Equal(t, tc.Nodes, nodeIDs(g))
			assert.Equal(t, tc.Edges, edgePairs(g))
		})
	}
}

func TestBuildRuleNamedLikeBus(t *testing.T) {
	rules := []topology.Rule{
		{Name: "default", Targets: []topology.Target{{ID: "T1"}}},
		{Name: "R1", Targets: []topology.Target{{ID: "T1"}}},
	}
	g := topology.Build("default", rules, nil)

	assert.Equal(t, []string{"default", "rule:default", "rule:default:T1", "R1", "R1:T1"}, nodeIDs(g))
	assert.Equal(t, [][2]string{
		{"default", "rule:default"},
		{"rule:default", "rule:default:T1"},
		{"default", "R1"},
		{"R1", "R1:T1"},
	}, edgePairs(g))

	seen := map[string]bool{}
	for _, n := range g.Nodes {
		assert.False(t, seen[n.ID], "duplicate node id %s", n.ID)
		seen[n.ID] = true
	}
	for _, e := range g.Edges {
		assert.NotEqual(t, e.Source, e.Target)
	}

	rule, ok := g.Node("rule:default")
	require.True(t, ok)
	assert.Equal(t, "default", rule.Name)
	target, ok := g.Node("rule:default:T1")
	require.True(t, ok)
	assert.Equal(t, "default", target.RuleName)
}

func TestBuildNodeDetails(t *testing.T) {
	g := topology.Build("default", []topology.Rule{{
		Name:         "R1",
		EventPattern: `{"source":["orders"],"detail-type":["OrderPlaced",{"prefix":"Order"}]}`,
		Targets: []topology.Target{
			{ID: "T1", Arn: "arn:aws:lambda:us-east-1:123456789012:function:myFn"},
			{ID: "Q", Arn: "arn:aws:sqs:us-east-1:123456789012:queue"},
			{Arn: "arn:aws:sns:us-east-1:123456789012:topic"},
		},
	}}, nil)

	bus, ok := g.Node("default")
	require.True(t, ok)
	assert.Equal(t, topology.NodeBus, bus.Type)

	rule, ok := g.Node("R1")
	require.True(t, ok)
	assert.Equal(t, topology.NodeRule, rule.Type)
	assert.Equal(t, `{"source":["orders"],"detail-type":["OrderPlaced",{"prefix":"Order"}]}`, rule.Metadata["eventPattern"])
	assert.Equal(t, []string{"orders"}, rule.Metadata["sources"])
	assert.Equal(t, []string{"OrderPlaced", `{"prefix":"Order"}`}, rule.Metadata["detailTypes"])

	fn, ok := g.Node("R1:T1")
	require.True(t, ok)
	assert.Equal(t, "myFn", fn.Label)
	assert.Equal(t, "T1", fn.Name)
	assert.Equal(t, "R1", fn.RuleName)

	queue, ok := g.Node("R1:Q")
	require.True(t, ok)
	assert.Equal(t, "Q", queue.Label)

	_, ok = g.Node("R1:unknown_2")
	assert.True(t, ok)

	assert.Len(t, g.Targets(), 3)
	assert.Equal(t, "R1-R1:T1", g.Edges[1].ID)
}

func TestBuildInvalidPattern(t *testing.T) {
	g := topology.Build("default", []topology.Rule{{Name: "R1", EventPattern: "not json"}}, nil)
	rule, ok := g.Node("R1")
	require.True(t, ok)
	assert.Equal(t, "not json", rule.Metadata["eventPattern"])
	assert.NotContains(t, rule.Metadata, "sources")
}

func TestBuildIsDeterministic(t *testing.T) {
	rules := []topology.Rule{
		{Name: "R1", Targets: []topology.Target{{ID: "A"}, {ID: "B"}}},
		{Name: "R2", Targets: []topology.Target{{ID: "C"}}},
	}
	first := topology.Build("bus", rules, nil)
	for range 10 {
		assert.Equal(t, first, topology.Build("bus", rules, nil))
	}
}

func TestElements(t *testing.T) {
	g := topology.Build("default", []topology.Rule{{Name: "R1", Targets: []topology.Target{{ID: "T1"}}}}, nil)
	elements := g.Elements()
	require.Len(t, elements.Nodes, 3)
	require.Len(t, elements.Edges, 2)
	assert.Equal(t, g.Nodes[2], elements.Nodes[2].Data)
}

func TestDetailedGraph(t *testing.T) {
	api := &awsmock.Events{}
	api.On("DescribeRule", mock.Anything, mock.MatchedBy(func(in *eventbridge.DescribeRuleInput) bool {
		return aws.ToString(in.Name) == "R1"
	})).Return(&eventbridge.DescribeRuleOutput{
		Name:         aws.String("R1"),
		EventPattern: aws.String(`{"source":["orders"]}`),
	}, nil)
	api.On("ListTargetsByRule", mock.Anything, mock.Anything).Return(&eventbridge.ListTargetsByRuleOutput{
		Targets: []types.Target{{Id: aws.String("T1"), Arn: aws.String("arn:aws:lambda:us-east-1:123456789012:function:myFn:live")}},
	}, nil)

	rules := []topology.Rule{{Name: "R1"}, {Name: "R2"}}
	g, err := topology.NewResolver(api).DetailedGraph(context.Background(), "default", rules, []string{"R1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "R1", "R1:T1"}, nodeIDs(g))

	target, ok := g.Node("R1:T1")
	require.True(t, ok)
	assert.Equal(t, "myFn", target.Label)
	api.AssertNotCalled(t, "DescribeRule", mock.Anything, mock.MatchedBy(func(in *eventbridge.DescribeRuleInput) bool {
		return aws.ToString(in.Name) == "R2"
	}))

	_, err = topology.NewResolver(api).DetailedGraph(context.Background(), "", rules, nil)
	assert.ErrorIs(t, err, topology.ErrNoBusSelected)
}
