package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultEndpoint is the unauthenticated Google translation endpoint.
const DefaultEndpoint = "https://translate.googleapis.com/translate_a/single"

// Google translates text through the free gtx endpoint. The source language
// is auto-detected.
type Google struct {
	endpoint   string
	httpClient *http.Client
}

func NewGoogle(endpoint string) *Google {
	return &Google{endpoint: endpoint, httpClient: &http.Client{}}
}

func (g *Google) Translate(ctx context.Context, text, lang string) (string, error) {
	query := url.Values{
		"client": {"gtx"},
		"sl":     {"auto"},
		"tl":     {lang},
		"dt":     {"t"},
		"q":      {text},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("error creating translation request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error executing translation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading translation response: %w", err)
	}

	log.Debug().Str("lang", lang).Int("bytes", len(body)).Msg("translation lookup")

	translated, err := parseSegments(body)
	if err != nil {
		return "", fmt.Errorf("error parsing translation response: %w", err)
	}

	return translated, nil
}

// parseSegments walks the endpoint's nested-array payload: the first element
// is a list of segments whose first element is the translated text.
func parseSegments(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}

	if len(payload) == 0 {
		return "", errors.New("empty translation payload")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, segment := range segments {
		if len(segment) == 0 {
			continue
		}

		var text string
		if err := json.Unmarshal(segment[0], &text); err != nil {
			return "", err
		}

		sb.WriteString(text)
	}

	if sb.Len() == 0 {
		return "", errors.New("no translated segments in payload")
	}

	return sb.String(), nil
}
