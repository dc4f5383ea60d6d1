package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"AstroChart/internal/domain/models"
	drepo "AstroChart/internal/domain/repository"
	"AstroChart/pkg/util"
)

var (
	ErrMissingAPIKey = errors.New("gemini: api key is not configured")
	ErrEmptyResponse = errors.New("gemini: empty response")
)

// Options configures the model client.
type Options struct {
	APIKey  string
	Model   string
	BaseURL string
	// Timeout bounds one call; zero means the caller's context decides.
	Timeout time.Duration
}

// Client implements ChartModel on top of the Gemini API.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	schema  *genai.Schema
}

// New creates the client. A missing API key is not fatal: the server still
// starts and every Generate call fails with ErrMissingAPIKey.
func New(ctx context.Context, opts Options) (*Client, error) {
	c := &Client{model: opts.Model, timeout: opts.Timeout, schema: ResponseSchema()}
	if c.model == "" {
		c.model = "gemini-2.5-flash"
	}
	if opts.APIKey == "" {
		return c, nil
	}

	cc := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	c.client = client
	return c, nil
}

var _ drepo.ChartModel = (*Client)(nil)

// Name returns the model identifier.
func (c *Client) Name() string { return c.model }

// Generate asks the model for a chart and returns its JSON text untouched.
func (c *Client) Generate(ctx context.Context, b models.BirthData) ([]byte, error) {
	if c.client == nil {
		return nil, ErrMissingAPIKey
	}
	prompt, err := BuildPrompt(b)
	if err != nil {
		return nil, err
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   c.schema,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, ErrEmptyResponse
	}
	return []byte(text), nil
}

// BuildPrompt renders the Suriyayart instruction for one birth record.
func BuildPrompt(b models.BirthData) (string, error) {
	at, err := b.Moment()
	if err != nil {
		return "", fmt.Errorf("build prompt: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Role: Expert Thai Astrologer (Suriyayart System).\n")
	sb.WriteString("Task: Calculate the planetary positions and generate a horoscope prediction based on the birth data.\n\n")
	sb.WriteString("Birth Data:\n")
	fmt.Fprintf(&sb, "Name: %s\n", b.Name)
	fmt.Fprintf(&sb, "Date: %s (วัน%s, พ.ศ. %d)\n", b.Date, util.ThaiWeekday(at.Weekday()), util.BuddhistYear(at))
	fmt.Fprintf(&sb, "Time: %s\n", b.Time)
	fmt.Fprintf(&sb, "Location: %s, Thailand\n\n", b.Province)
	sb.WriteString("Instructions:\n")
	sb.WriteString("1. Calculate approximate positions of Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu, Uranus, Neptune, and Pluto based on the Suriyayart system.\n")
	sb.WriteString("2. Determine the Ascendant (Lagana) based on the time and location.\n")
	sb.WriteString("3. Provide a detailed prediction in Thai language covering Personality, Career, Finance, and Love.\n")
	fmt.Fprintf(&sb, "4. For 'zodiacIndex', use 0 for Aries (%s), 1 for Taurus (%s), up to 11 for Pisces (%s).\n",
		models.Aries.ThaiName(), models.Taurus.ThaiName(), models.Pisces.ThaiName())
	sb.WriteString("5. 'symbol' must be the single digit Thai numeral (e.g., Sun=๑, Moon=๒, Mars=๓, Mercury=๔, Jupiter=๕, Venus=๖, Saturn=๗, Rahu=๘, Ketu=๙, Uranus=๐).\n")
	sb.WriteString("6. 'degrees' is the position within the sign, at least 0 and below 30.\n\n")
	sb.WriteString("Return strict JSON.\n")
	return sb.String(), nil
}

// ResponseSchema is the structured output contract sent with every request.
func ResponseSchema() *genai.Schema {
	position := func(desc string) map[string]*genai.Schema {
		return map[string]*genai.Schema{
			"zodiacIndex": {Type: genai.TypeInteger, Description: desc},
			"degrees":     {Type: genai.TypeNumber, Description: "0-30"},
		}
	}

	planet := position("0-11, where 0 is Aries")
	planet["name"] = &genai.Schema{Type: genai.TypeString}
	planet["thaiName"] = &genai.Schema{Type: genai.TypeString}
	planet["symbol"] = &genai.Schema{Type: genai.TypeString}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"planets": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type:       genai.TypeObject,
					Properties: planet,
					Required:   []string{"name", "thaiName", "symbol", "zodiacIndex", "degrees"},
				},
			},
			"ascendant": {
				Type:       genai.TypeObject,
				Properties: position("0-11, where 0 is Aries"),
				Required:   []string{"zodiacIndex", "degrees"},
			},
			"prediction": {
				Type:        genai.TypeString,
				Description: "A detailed horoscope reading in Thai.",
			},
		},
		Required: []string{"planets", "ascendant", "prediction"},
	}
}
