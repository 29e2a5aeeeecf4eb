package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/isometry/eventbridge-explorer/internal/capabilities"
	"github.com/isometry/eventbridge-explorer/internal/explorer"
	"github.com/isometry/eventbridge-explorer/internal/helpers"
	"github.com/isometry/eventbridge-explorer/internal/logs"
	"github.com/isometry/eventbridge-explorer/internal/models"
	"github.com/isometry/eventbridge-explorer/internal/session"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	outputTable = "table"
	outputJSON  = "json"

	messageWidth = 120
	patternWidth = 60
)

type inspectFunc func(cmd *cobra.Command, exp *explorer.Explorer, args []string) (any, [][]string, []string, error)

// inspect wires a one-shot command that prints its result as a table, or as JSON with --output json.
func inspect(use, short string, args cobra.PositionalArgs, fn inspectFunc) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, err := newExplorer(cmd)
			if err != nil {
				return err
			}
			data, rows, header, err := fn(cmd, exp, args)
			if err != nil {
				return err
			}
			switch output {
			case outputJSON:
				return writeJSON(cmd.OutOrStdout(), data)
			case outputTable:
				return writeTable(cmd.OutOrStdout(), header, rows)
			default:
				return fmt.Errorf("invalid output format: %s", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format. Supported values are 'table' and 'json'")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "failed to encode output")
}

func writeTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	headings := make([]any, 0, len(header))
	for _, h := range header {
		headings = append(headings, h)
	}
	table.Header(headings...)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return errors.Wrap(err, "failed to render row")
		}
	}
	return errors.Wrap(table.Render(), "failed to render table")
}

func cmdBuses() *cobra.Command {
	return inspect("buses", "List the event buses of the account", cobra.NoArgs,
		func(cmd *cobra.Command, exp *explorer.Explorer, _ []string) (any, [][]string, []string, error) {
			buses, err := exp.ListBuses(cmd.Context(), &session.Session{})
			if err != nil {
				return nil, nil, nil, err
			}
			rows := make([][]string, 0, len(buses))
			for _, b := range buses {
				rows = append(rows, []string{b.Name, b.Arn, b.Description})
			}
			return buses, rows, []string{"Name", "Arn", "Description"}, nil
		})
}

func cmdRules() *cobra.Command {
	return inspect("rules BUS", "List the rules of an event bus and their targets", cobra.ExactArgs(1),
		func(cmd *cobra.Command, exp *explorer.Explorer, args []string) (any, [][]string, []string, error) {
			rules, err := exp.ListRules(cmd.Context(), &session.Session{}, args[0])
			if err != nil {
				return nil, nil, nil, err
			}
			rows := make([][]string, 0, len(rules))
			for _, r := range rules {
				trigger := r.EventPattern
				if trigger == "" {
					trigger = r.ScheduleExpression
				}
				rows = append(rows, []string{r.Name, r.State, strconv.Itoa(len(r.Targets)), helpers.Truncate(trigger, patternWidth)})
			}
			return rules, rows, []string{"Name", "State", "Targets", "Trigger"}, nil
		})
}

func cmdGraph() *cobra.Command {
	var details bool
	cmd := inspect("graph BUS [RULE...]", "Render the bus, rule and target topology of an event bus", cobra.MinimumNArgs(1),
		func(cmd *cobra.Command, exp *explorer.Explorer, args []string) (any, [][]string, []string, error) {
			build := exp.BuildGraph
			if details {
				build = exp.BuildGraphWithDetails
			}
			g, err := build(cmd.Context(), &session.Session{}, args[0], args[1:])
			if err != nil {
				return nil, nil, nil, err
			}
			parents := make(map[string]string, len(g.Edges))
			for _, e := range g.Edges {
				parents[e.Target] = e.Source
			}
			rows := make([][]string, 0, len(g.Nodes))
			for _, n := range g.Nodes {
				rows = append(rows, []string{n.ID, string(n.Type), n.Label, parents[n.ID], n.Arn})
			}
			return g.Elements(), rows, []string{"Id", "Type", "Label", "Parent", "Arn"}, nil
		})
	cmd.Flags().BoolVarP(&details, "details", "d", false, "Resolve every rule through DescribeRule before rendering")
	return cmd
}

func cmdLogs() *cobra.Command {
	var (
		search string
		limit  int
		since  time.Duration
	)
	cmd := inspect("logs TARGET_ARN", "Search the logs of a rule target", cobra.ExactArgs(1),
		func(cmd *cobra.Command, exp *explorer.Explorer, args []string) (any, [][]string, []string, error) {
			req := logs.Request{TargetArn: args[0], SearchTerm: search, Limit: limit}
			if since > 0 {
				end := time.Now()
				req.Window = &logs.Window{Start: end.Add(-since).Unix(), End: end.Unix()}
			}
			out := exp.FetchLogs(cmd.Context(), req)
			if !out.Success {
				return nil, nil, nil, fmt.Errorf("%s: %s", out.Kind, out.Message)
			}
			return out, entryRows(out.Logs), []string{"Time", "Stream", "Message"}, nil
		})
	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive term the messages must contain")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of entries (default from configuration)")
	cmd.Flags().DurationVar(&since, "since", 0, "Only search this far back (default from configuration)")
	return cmd
}

func cmdStreams() *cobra.Command {
	return inspect("streams TARGET_ARN", "List the most recently active log streams of a rule target", cobra.ExactArgs(1),
		func(cmd *cobra.Command, exp *explorer.Explorer, args []string) (any, [][]string, []string, error) {
			streams := exp.ListStreams(cmd.Context(), args[0], nil)
			rows := make([][]string, 0, len(streams))
			for _, s := range streams {
				rows = append(rows, []string{s.LogStreamName, s.FirstEventTime, s.LastEventTime})
			}
			return streams, rows, []string{"Stream", "First Event", "Last Event"}, nil
		})
}

func cmdEntries() *cobra.Command {
	var limit int
	cmd := inspect("entries LOG_GROUP LOG_STREAM", "Read the latest entries of a log stream", cobra.ExactArgs(2),
		func(cmd *cobra.Command, exp *explorer.Explorer, args []string) (any, [][]string, []string, error) {
			out := exp.FetchStreamEntries(cmd.Context(), args[0], args[1], limit)
			if out.Status == logs.StatusError {
				return nil, nil, nil, errors.New(out.Message)
			}
			return out, entryRows(out.Entries), []string{"Time", "Stream", "Message"}, nil
		})
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of entries (default from configuration)")
	return cmd
}

func cmdPublish() *cobra.Command {
	var msg models.TestMessage
	var detail string
	cmd := inspect("publish", "Publish a test message to an event bus", cobra.NoArgs,
		func(cmd *cobra.Command, exp *explorer.Explorer, _ []string) (any, [][]string, []string, error) {
			if !capabilities.Publish.Enabled {
				return nil, nil, nil, errors.New("publishing test events is disabled")
			}
			if detail != "" {
				msg.Detail = json.RawMessage(detail)
			}
			event, err := exp.PublishTestMessage(cmd.Context(), msg)
			if err != nil {
				return nil, nil, nil, err
			}
			rows := [][]string{{event.ID, event.EventBusName, event.Source, event.DetailType}}
			return event, rows, []string{"Id", "Bus", "Source", "Detail Type"}, nil
		})
	cmd.Flags().StringVarP(&msg.EventBusName, "bus", "b", "", "Target event bus (default from configuration)")
	cmd.Flags().StringVar(&msg.Source, "source", "", "Event source (default from configuration)")
	cmd.Flags().StringVar(&msg.DetailType, "detail-type", "", "Event detail-type (default from configuration)")
	cmd.Flags().StringVar(&detail, "detail", "", "Event detail as a JSON object")
	cmd.Flags().StringSliceVar(&msg.Resources, "resource", nil, "Resource ARN attached to the event (repeatable)")
	return cmd
}

func cmdWhoami() *cobra.Command {
	return inspect("whoami", "Show the AWS identity and region in use", cobra.NoArgs,
		func(cmd *cobra.Command, exp *explorer.Explorer, _ []string) (any, [][]string, []string, error) {
			id, err := exp.Identity(cmd.Context())
			if err != nil {
				return nil, nil, nil, err
			}
			return id, [][]string{{id.Account, id.Arn, id.Region}}, []string{"Account", "Arn", "Region"}, nil
		})
}

func entryRows(entries []logs.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.FormattedTime, e.Stream, helpers.Truncate(e.Message, messageWidth)})
	}
	return rows
}
