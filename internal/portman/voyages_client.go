package portman

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ngmaloney/portman-terminal/internal/models"
)

const (
	DefaultBaseURL  = "http://localhost:5000"
	DefaultPageSize = 1000
	DefaultTimeout  = 30 * time.Second
)

// StatusError is returned when the API answers with a non-200 status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Body)
}

// VoyagesClient implements PortCallClient against the Portman data API
type VoyagesClient struct {
	baseURL     string
	httpClient  *http.Client
	userAgent   string
	functionKey string
	authToken   string
	pageSize    int
}

// Option configures a VoyagesClient
type Option func(*VoyagesClient)

// WithFunctionKey sends the function key as the code query parameter
func WithFunctionKey(key string) Option {
	return func(c *VoyagesClient) { c.functionKey = key }
}

// WithAuthToken sends a bearer token with every request
func WithAuthToken(token string) Option {
	return func(c *VoyagesClient) { c.authToken = token }
}

// WithPageSize sets the $first page size
func WithPageSize(n int) Option {
	return func(c *VoyagesClient) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(c *VoyagesClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewVoyagesClient creates a new Portman API client
func NewVoyagesClient(baseURL string, opts ...Option) *VoyagesClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &VoyagesClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent: "PortmanTerminal/1.0 (github.com/ngmaloney/portman-terminal)",
		pageSize:  DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPage retrieves one page of voyages matching the filter's date range
func (c *VoyagesClient) FetchPage(ctx context.Context, filter models.FilterState, token string) (*models.Page, error) {
	params := url.Values{}
	params.Set("$first", strconv.Itoa(c.pageSize))
	if token != "" {
		params.Set(afterParam, token)
	}
	if expr := filterExpression(filter); expr != "" {
		params.Set("$filter", expr)
	}

	var resp voyagesResponse
	if err := c.get(ctx, "/api/voyages", params, &resp); err != nil {
		return nil, err
	}

	page := &models.Page{
		Records: make([]models.PortCall, 0, len(resp.Value)),
	}
	for _, v := range resp.Value {
		page.Records = append(page.Records, v.toModel())
	}

	if resp.NextLink != nil && *resp.NextLink != "" {
		page.NextLink = *resp.NextLink
		next, err := ParseContinuation(*resp.NextLink)
		if err != nil {
			page.Malformed = true
		} else {
			page.NextToken = next
		}
	}

	return page, nil
}

// GetPortCall retrieves a single port call by ID
func (c *VoyagesClient) GetPortCall(ctx context.Context, id int64) (*models.PortCall, error) {
	var v voyage
	if err := c.get(ctx, fmt.Sprintf("/api/port-calls/%d", id), url.Values{}, &v); err != nil {
		return nil, err
	}
	pc := v.toModel()
	return &pc, nil
}

func (c *VoyagesClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if c.functionKey != "" {
		params.Set("code", c.functionKey)
	}

	requestURL := c.baseURL + path
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Internal types for Portman API responses

type voyagesResponse struct {
	Value    []voyage `json:"value"`
	NextLink *string  `json:"nextLink"`
}

type voyage struct {
	PortCallID            int64  `json:"portcallid"`
	IMOLloyds             int64  `json:"imolloyds"`
	MMSI                  int64  `json:"mmsi"`
	VesselTypeCode        string `json:"vesseltypecode"`
	VesselName            string `json:"vesselname"`
	PrevPort              string `json:"prevport"`
	PortToVisit           string `json:"porttovisit"`
	NextPort              string `json:"nextport"`
	AgentName             string `json:"agentname"`
	ShippingCompany       string `json:"shippingcompany"`
	ETA                   string `json:"eta"`
	ATA                   string `json:"ata"`
	PortAreaCode          string `json:"portareacode"`
	PortAreaName          string `json:"portareaname"`
	BerthCode             string `json:"berthcode"`
	BerthName             string `json:"berthname"`
	ETD                   string `json:"etd"`
	ATD                   string `json:"atd"`
	PassengersOnArrival   int    `json:"passengersonarrival"`
	PassengersOnDeparture int    `json:"passengersondeparture"`
	CrewOnArrival         int    `json:"crewonarrival"`
	CrewOnDeparture       int    `json:"crewondeparture"`
	Created               string `json:"created"`
	Modified              string `json:"modified"`
	NOAXMLURL             string `json:"noa_xml_url"`
	ATAXMLURL             string `json:"ata_xml_url"`
	VIDXMLURL             string `json:"vid_xml_url"`
}

func (v voyage) toModel() models.PortCall {
	return models.PortCall{
		PortCallID:            v.PortCallID,
		VesselName:            v.VesselName,
		IMO:                   v.IMOLloyds,
		MMSI:                  v.MMSI,
		VesselTypeCode:        v.VesselTypeCode,
		PortToVisit:           v.PortToVisit,
		PortAreaCode:          v.PortAreaCode,
		PortAreaName:          v.PortAreaName,
		BerthCode:             v.BerthCode,
		BerthName:             v.BerthName,
		PrevPort:              v.PrevPort,
		NextPort:              v.NextPort,
		AgentName:             v.AgentName,
		ShippingCompany:       v.ShippingCompany,
		CrewOnArrival:         v.CrewOnArrival,
		CrewOnDeparture:       v.CrewOnDeparture,
		PassengersOnArrival:   v.PassengersOnArrival,
		PassengersOnDeparture: v.PassengersOnDeparture,
		ETA:                   parseTimestamp(v.ETA),
		ATA:                   parseTimestamp(v.ATA),
		ETD:                   parseTimestamp(v.ETD),
		ATD:                   parseTimestamp(v.ATD),
		Created:               parseTimestamp(v.Created),
		Modified:              parseTimestamp(v.Modified),
		NOAXMLURL:             v.NOAXMLURL,
		ATAXMLURL:             v.ATAXMLURL,
		VIDXMLURL:             v.VIDXMLURL,
	}
}
