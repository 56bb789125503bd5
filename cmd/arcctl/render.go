package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/arcdefender/arc-defender/internal/model"
)

var (
	colorRed    = color.New(color.FgRed).SprintFunc()
	colorYellow = color.New(color.FgYellow).SprintFunc()
	colorGreen  = color.New(color.FgGreen).SprintFunc()
	colorCyan   = color.New(color.FgCyan).SprintFunc()
	colorBold   = color.New(color.Bold).SprintFunc()
)

const timeLayout = "2006-01-02 15:04:05"

func severityLabel(s model.Severity) string {
	switch s {
	case model.SeverityHigh:
		return colorRed(string(s))
	case model.SeverityMedium:
		return colorYellow(string(s))
	case model.SeverityLow:
		return colorGreen(string(s))
	default:
		return string(s)
	}
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func renderOverview(w io.Writer, o model.SeverityOverview) {
	table := newTable(w, "Severity", "Threats")
	table.Append([]string{severityLabel(model.SeverityHigh), strconv.Itoa(o.HighSeverity)})
	table.Append([]string{severityLabel(model.SeverityMedium), strconv.Itoa(o.MediumSeverity)})
	table.Append([]string{severityLabel(model.SeverityLow), strconv.Itoa(o.LowSeverity)})
	table.Render()
}

func renderOrigins(w io.Writer, origins []model.OriginCount) {
	table := newTable(w, "#", "Source IP", "Count")
	for i, o := range origins {
		table.Append([]string{strconv.Itoa(i + 1), colorCyan(o.SourceIP), strconv.Itoa(o.Count)})
	}
	table.Render()
}

func renderTrends(w io.Writer, trends []model.TrendBucket) {
	table := newTable(w, "Minute", "Count")
	for _, b := range trends {
		table.Append([]string{b.Key, strconv.Itoa(b.Count)})
	}
	table.Render()
}

func renderEfficiency(w io.Writer, e model.EfficiencyStats) {
	table := newTable(w, "Metric", "Value")
	table.Append([]string{"Efficiency (latest)", e.Efficiency.String() + "%"})
	table.Append([]string{"Efficiency (window)", e.AvgEfficiency.String() + "%"})
	table.Append([]string{"Blocked", strconv.Itoa(e.Blocked)})
	table.Append([]string{"Total", strconv.Itoa(e.Total)})
	table.Render()
}

func renderThreats(w io.Writer, threats []model.Threat) {
	table := newTable(w, "Time", "Type", "Category", "Severity", "Source IP", "Count")
	for _, t := range threats {
		table.Append([]string{
			t.Timestamp.Local().Format(timeLayout),
			t.Type,
			t.Category,
			severityLabel(t.Severity),
			t.SourceIP,
			strconv.Itoa(t.Count),
		})
	}
	table.Render()
}

func renderAlerts(w io.Writer, alerts []model.Alert) {
	table := newTable(w, "Time", "Severity", "Message")
	for _, a := range alerts {
		table.Append([]string{a.Timestamp.Local().Format(timeLayout), severityLabel(a.Severity), a.Message})
	}
	table.Render()
}

func renderStatus(w io.Writer, s model.DashboardSummary) {
	if s.Metrics != nil {
		fmt.Fprintf(w, "%s  active threats %s  blocked %s  uptime %s  users online %s\n\n",
			colorBold("Metrics"),
			colorRed(strconv.Itoa(s.Metrics.ActiveThreats)),
			colorGreen(strconv.Itoa(s.Metrics.BlockedIntrusions)),
			s.Metrics.SystemUptime,
			strconv.Itoa(s.Metrics.UsersOnline),
		)
	}
	table := newTable(w, "Component", "Status")
	for _, st := range s.SystemStatus {
		table.Append([]string{st.Component, colorCyan(st.Status)})
	}
	table.Render()
}
