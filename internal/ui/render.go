package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/dustin/go-humanize"
	"github.com/ngmaloney/portman-terminal/internal/models"
)

const timeLayout = "2006-01-02 15:04"

func tableColumns() []table.Column {
	return []table.Column{
		{Title: "Vessel", Width: 24},
		{Title: "IMO", Width: 9},
		{Title: "Status", Width: 13},
		{Title: "Port Area", Width: 20},
		{Title: "ETA", Width: 16},
		{Title: "ATA", Width: 16},
		{Title: "ETD", Width: 16},
	}
}

// tableRows renders records as table rows, classified at now
func tableRows(records []models.PortCall, now time.Time) []table.Row {
	rows := make([]table.Row, len(records))
	for i, pc := range records {
		rows[i] = table.Row{
			pc.VesselName,
			formatIMO(pc.IMO),
			models.Classify(pc, now).Label(),
			portArea(pc),
			formatTime(pc.ETA),
			formatTime(pc.ATA),
			formatTime(pc.ETD),
		}
	}
	return rows
}

// renderDetail renders every field of a record for the detail viewport
func renderDetail(pc models.PortCall, now time.Time) string {
	status := models.Classify(pc, now)

	var lines []string
	lines = append(lines,
		titleStyle.Render(pc.VesselName)+"  "+statusStyle(status).Render(status.Label()),
		mutedStyle.Render(fmt.Sprintf("Port call %d", pc.PortCallID)),
	)

	lines = append(lines, sectionHeaderStyle.Render("Vessel"))
	lines = append(lines,
		field("IMO", formatIMO(pc.IMO)),
		field("MMSI", formatIMO(pc.MMSI)),
		field("Type", pc.VesselTypeCode),
		field("Company", pc.ShippingCompany),
		field("Agent", pc.AgentName),
	)

	lines = append(lines, sectionHeaderStyle.Render("Itinerary"))
	lines = append(lines,
		field("Port", pc.PortToVisit),
		field("Port area", portArea(pc)),
		field("Berth", joinNonEmpty(pc.BerthName, pc.BerthCode)),
		field("Previous port", pc.PrevPort),
		field("Next port", pc.NextPort),
	)

	lines = append(lines, sectionHeaderStyle.Render("Times"))
	lines = append(lines,
		field("ETA", relative(pc.ETA, now)),
		field("ATA", relative(pc.ATA, now)),
		field("ETD", relative(pc.ETD, now)),
		field("ATD", relative(pc.ATD, now)),
		field("Created", relative(pc.Created, now)),
		field("Modified", relative(pc.Modified, now)),
	)

	lines = append(lines, sectionHeaderStyle.Render("People on board"))
	lines = append(lines,
		field("Crew", fmt.Sprintf("%d arriving, %d departing", pc.CrewOnArrival, pc.CrewOnDeparture)),
		field("Passengers", fmt.Sprintf("%s arriving, %s departing",
			humanize.Comma(int64(pc.PassengersOnArrival)), humanize.Comma(int64(pc.PassengersOnDeparture)))),
	)

	docs := pc.Documents()
	lines = append(lines, sectionHeaderStyle.Render("Documents"))
	if len(docs) == 0 {
		lines = append(lines, mutedStyle.Render("No documents"))
	}
	for i, d := range docs {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			labelStyle.Render(fmt.Sprintf("[%d]", i+1)),
			valueStyle.Render(string(d.Kind)),
			mutedStyle.Render(d.URL)))
	}

	return strings.Join(lines, "\n")
}

func field(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fmt.Sprintf("%s %s", labelStyle.Render(fmt.Sprintf("%-14s", label+":")), valueStyle.Render(value))
}

func portArea(pc models.PortCall) string {
	return joinNonEmpty(pc.PortAreaName, pc.PortAreaCode)
}

// joinNonEmpty renders "name (code)" or whichever of the two is present
func joinNonEmpty(name, code string) string {
	switch {
	case name != "" && code != "":
		return fmt.Sprintf("%s (%s)", name, code)
	case name != "":
		return name
	default:
		return code
	}
}

func formatIMO(n int64) string {
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

// relative formats t with its distance from now, e.g. "2024-05-01 10:00 (3 hours ago)"
func relative(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s (%s)", formatTime(t), humanize.RelTime(t, now, "ago", "from now"))
}
