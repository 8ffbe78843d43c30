package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/paramount/restobid/internal/models"
)

// esxProject is the wire shape the conversion server expects.
type esxProject struct {
	Name           string                 `json:"name"`
	DamageType     string                 `json:"damageType"`
	Classification *models.Classification `json:"classification,omitempty"`
}

type esxRoom struct {
	Name   string  `json:"name"`
	Type   string  `json:"type,omitempty"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type esxLineItem struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
}

type esxRequest struct {
	Project   esxProject    `json:"project"`
	Rooms     []esxRoom     `json:"rooms"`
	LineItems []esxLineItem `json:"lineItems"`
}

// ESXClient uploads estimates to an external ESX conversion server. The
// server converts the estimate to the Xactimate exchange format; restobid
// never parses ESX itself.
type ESXClient struct {
	serverURL string
	timeout   time.Duration
	client    *fasthttp.Client
}

// NewESXClient creates a client for the conversion server at serverURL. A
// non-positive timeout defaults to 30 seconds.
func NewESXClient(serverURL string, timeout time.Duration) *ESXClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ESXClient{
		serverURL: strings.TrimRight(serverURL, "/"),
		timeout:   timeout,
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
	}
}

// BuildPayload shapes the project into the conversion server's request body.
// Split out so tests can check payload shaping without a server.
func BuildPayload(p *models.Project) ([]byte, error) {
	req := esxRequest{
		Project: esxProject{
			Name:           p.Name,
			DamageType:     string(p.DamageType),
			Classification: p.Classification,
		},
		Rooms:     []esxRoom{},
		LineItems: []esxLineItem{},
	}
	for _, room := range p.Rooms {
		req.Rooms = append(req.Rooms, esxRoom{
			Name:   room.Name,
			Type:   room.Type,
			Length: room.Length,
			Width:  room.Width,
			Height: room.EffectiveHeight(),
		})
	}
	for _, item := range p.LineItems {
		req.LineItems = append(req.LineItems, esxLineItem{
			Code:        item.Code,
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
		})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode export payload: %w", err)
	}
	return body, nil
}

// Upload posts the project to the conversion server and returns the ESX
// document bytes. Timeout and connectivity failures return distinct errors
// so callers can suggest the right remedy.
func (c *ESXClient) Upload(p *models.Project) ([]byte, error) {
	body, err := BuildPayload(p)
	if err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.serverURL + "/create-esx")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			return nil, fmt.Errorf("conversion server did not respond within %s: %w", c.timeout, err)
		}
		return nil, fmt.Errorf("cannot reach conversion server at %s: %w", c.serverURL, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("conversion server returned %d: %s", resp.StatusCode(), truncate(string(resp.Body()), 200))
	}

	// Body is reused after release; copy it out.
	out := make([]byte, len(resp.Body()))
	copy(out, resp.Body())
	return out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
