package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/ngmaloney/portman-terminal/internal/models"
)

const timeLayout = "2006-01-02 15:04"

// listedPortCall is a port call with its status at print time
type listedPortCall struct {
	models.PortCall
	Status models.Status `json:"status"`
}

func listed(records []models.PortCall, now time.Time) []listedPortCall {
	out := make([]listedPortCall, len(records))
	for i, pc := range records {
		out[i] = listedPortCall{PortCall: pc, Status: models.Classify(pc, now)}
	}
	return out
}

func statusColor(s models.Status) *color.Color {
	switch s {
	case models.StatusDelayed:
		return color.New(color.FgRed, color.Bold)
	case models.StatusArrivingSoon:
		return color.New(color.FgYellow)
	case models.StatusArrived:
		return color.New(color.FgGreen)
	case models.StatusExpected:
		return color.New(color.FgCyan)
	default:
		return color.New(color.Faint)
	}
}

// printPortCalls renders records as a table
func printPortCalls(w io.Writer, records []models.PortCall, now time.Time) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 32
	tbl.AddRow(
		bold.Sprint("ID"), bold.Sprint("VESSEL"), bold.Sprint("IMO"), bold.Sprint("STATUS"),
		bold.Sprint("PORT AREA"), bold.Sprint("ETA"), bold.Sprint("ATA"), bold.Sprint("ETD"),
	)
	for _, pc := range records {
		status := models.Classify(pc, now)
		tbl.AddRow(
			pc.PortCallID,
			pc.VesselName,
			formatNumber(pc.IMO),
			statusColor(status).Sprint(status.Label()),
			pc.PortAreaName,
			formatTime(pc.ETA),
			formatTime(pc.ATA),
			formatTime(pc.ETD),
		)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(w, tbl)
}

// printPortCall renders every field of one record
func printPortCall(w io.Writer, pc models.PortCall, now time.Time) {
	bold := color.New(color.Bold)
	status := models.Classify(pc, now)

	_, _ = fmt.Fprintf(w, "%s  %s\n\n", bold.Sprint(pc.VesselName), statusColor(status).Sprint(status.Label()))

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 100
	tbl.Wrap = true
	tbl.AddRow("Port call", pc.PortCallID)
	tbl.AddRow("IMO", formatNumber(pc.IMO))
	tbl.AddRow("MMSI", formatNumber(pc.MMSI))
	tbl.AddRow("Vessel type", pc.VesselTypeCode)
	tbl.AddRow("Company", pc.ShippingCompany)
	tbl.AddRow("Agent", pc.AgentName)
	tbl.AddRow("Port", pc.PortToVisit)
	tbl.AddRow("Port area", joinCode(pc.PortAreaName, pc.PortAreaCode))
	tbl.AddRow("Berth", joinCode(pc.BerthName, pc.BerthCode))
	tbl.AddRow("Previous port", pc.PrevPort)
	tbl.AddRow("Next port", pc.NextPort)
	tbl.AddRow("ETA", relative(pc.ETA, now))
	tbl.AddRow("ATA", relative(pc.ATA, now))
	tbl.AddRow("ETD", relative(pc.ETD, now))
	tbl.AddRow("ATD", relative(pc.ATD, now))
	tbl.AddRow("Crew", fmt.Sprintf("%d / %d", pc.CrewOnArrival, pc.CrewOnDeparture))
	tbl.AddRow("Passengers", fmt.Sprintf("%s / %s",
		humanize.Comma(int64(pc.PassengersOnArrival)), humanize.Comma(int64(pc.PassengersOnDeparture))))
	for _, d := range pc.Documents() {
		tbl.AddRow(string(d.Kind)+" document", d.URL)
	}

	_, _ = fmt.Fprintln(w, tbl)
}

// printPresets renders saved filters as a table
func printPresets(w io.Writer, list []models.Preset) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("NAME"), bold.Sprint("FILTER"), bold.Sprint("SAVED"))
	for _, p := range list {
		tbl.AddRow(p.Name, p.Summary(), humanize.Time(p.CreatedAt))
	}

	_, _ = fmt.Fprintln(w, tbl)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatNumber(n int64) string {
	if n == 0 {
		return ""
	}
	return strconv.FormatInt(n, 10)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(timeLayout)
}

func relative(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s (%s)", formatTime(t), humanize.RelTime(t, now, "ago", "from now"))
}

func joinCode(name, code string) string {
	switch {
	case name != "" && code != "":
		return fmt.Sprintf("%s (%s)", name, code)
	case name != "":
		return name
	default:
		return code
	}
}
