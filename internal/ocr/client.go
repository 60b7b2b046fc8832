// Package ocr calls an OCR.space-compatible gateway and returns the parsed
// text for an image URL. The service is a black box: this package does no
// interpretation of the text.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"loteria-engine/internal/scrape/util"
)

const DefaultEndpoint = "https://api.ocr.space/parse/image"

// Engine selects the gateway's accuracy mode. Engine 2 has higher recall on
// stylized lottery templates but misreads more digits; engine 1 is cleaner
// on plain fonts. The reconciler runs both when the first pass comes short.
type Engine int

const (
	Engine1 Engine = 1
	Engine2 Engine = 2
)

// ProcessingError is the gateway's explicit "errored on processing" signal,
// distinct from transport failures.
type ProcessingError struct {
	Messages []string
}

func (e *ProcessingError) Error() string {
	return "ocr: processing error: " + strings.Join(e.Messages, ", ")
}

type Client struct {
	endpoint string
	apiKey   string
	hc       *http.Client
	limiter  *util.HostLimiter
}

func New(endpoint, apiKey string, limiter *util.HostLimiter) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		hc:       &http.Client{Timeout: 30 * time.Second},
		limiter:  limiter,
	}
}

type apiResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool `json:"IsErroredOnProcessing"`
	// ErrorMessage is a string or an array depending on the failure mode.
	ErrorMessage json.RawMessage `json:"ErrorMessage"`
}

// Recognize runs OCR on the image behind imageURL with the given engine and
// returns the raw parsed text. Spanish language hint, no overlay. A gateway
// processing error surfaces as *ProcessingError.
func (c *Client) Recognize(ctx context.Context, imageURL string, engine Engine) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, c.endpoint); err != nil {
			return "", err
		}
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fields := map[string]string{
		"url":               imageURL,
		"apikey":            c.apiKey,
		"language":          "spa",
		"isOverlayRequired": "false",
		"OCREngine":         strconv.Itoa(int(engine)),
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return "", fmt.Errorf("ocr: build form: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("ocr: build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("ocr: build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	res, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr: request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return "", fmt.Errorf("ocr: gateway status %d", res.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("ocr: read response: %w", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("ocr: decode response: %w", err)
	}

	if parsed.IsErroredOnProcessing {
		return "", &ProcessingError{Messages: errorMessages(parsed.ErrorMessage)}
	}
	if len(parsed.ParsedResults) == 0 {
		return "", nil
	}
	return parsed.ParsedResults[0].ParsedText, nil
}

func errorMessages(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		return []string{one}
	}
	return []string{string(raw)}
}
