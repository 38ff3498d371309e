package models

import "time"

// DocumentKind identifies which source message a document link points at
type DocumentKind string

const (
	DocumentNOA DocumentKind = "NOA" // Notice of arrival
	DocumentATA DocumentKind = "ATA" // Actual time of arrival
	DocumentVID DocumentKind = "VID" // Vessel identity
)

// DocumentLink is an opaque reference to a source document.
// The URL is handed to an external viewer and never fetched here.
type DocumentLink struct {
	Kind DocumentKind
	URL  string
}

// PortCall represents one vessel visit to a port.
// Zero timestamps mean the value was not reported.
type PortCall struct {
	PortCallID int64 `json:"portcallid"`

	// Vessel
	VesselName     string `json:"vesselname"`
	IMO            int64  `json:"imolloyds"`
	MMSI           int64  `json:"mmsi"`
	VesselTypeCode string `json:"vesseltypecode"`

	// Itinerary
	PortToVisit  string `json:"porttovisit"`
	PortAreaCode string `json:"portareacode"`
	PortAreaName string `json:"portareaname"`
	BerthCode    string `json:"berthcode"`
	BerthName    string `json:"berthname"`
	PrevPort     string `json:"prevport"`
	NextPort     string `json:"nextport"`

	AgentName             string `json:"agentname"`
	ShippingCompany       string `json:"shippingcompany"`
	CrewOnArrival         int    `json:"crewonarrival"`
	CrewOnDeparture       int    `json:"crewondeparture"`
	PassengersOnArrival   int    `json:"passengersonarrival"`
	PassengersOnDeparture int    `json:"passengersondeparture"`

	ETA      time.Time `json:"eta,omitzero"`
	ATA      time.Time `json:"ata,omitzero"`
	ETD      time.Time `json:"etd,omitzero"`
	ATD      time.Time `json:"atd,omitzero"`
	Created  time.Time `json:"created,omitzero"`
	Modified time.Time `json:"modified,omitzero"`

	NOAXMLURL string `json:"noa_xml_url,omitempty"`
	ATAXMLURL string `json:"ata_xml_url,omitempty"`
	VIDXMLURL string `json:"vid_xml_url,omitempty"`
}

// Documents returns the document links present on the record
func (pc *PortCall) Documents() []DocumentLink {
	var docs []DocumentLink
	if pc.NOAXMLURL != "" {
		docs = append(docs, DocumentLink{Kind: DocumentNOA, URL: pc.NOAXMLURL})
	}
	if pc.ATAXMLURL != "" {
		docs = append(docs, DocumentLink{Kind: DocumentATA, URL: pc.ATAXMLURL})
	}
	if pc.VIDXMLURL != "" {
		docs = append(docs, DocumentLink{Kind: DocumentVID, URL: pc.VIDXMLURL})
	}
	return docs
}

// Status classifies the port call at the given instant
func (pc *PortCall) Status(now time.Time) Status {
	return Classify(*pc, now)
}

// Page is one response from the paginated voyages endpoint
type Page struct {
	Records []PortCall

	// NextToken is the opaque continuation token, empty when the source is exhausted
	NextToken string

	// Malformed is set when a next link was returned but no token could be read from it
	Malformed bool
	NextLink  string
}

// HasMore reports whether another page can be requested
func (p *Page) HasMore() bool {
	return p.NextToken != "" && !p.Malformed
}
