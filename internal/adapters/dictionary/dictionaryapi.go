package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
)

// DefaultEndpoint is the free dictionaryapi.dev API.
const DefaultEndpoint = "https://api.dictionaryapi.dev/api/v2/entries/en"

// API looks up definitions and synonyms on a dictionaryapi.dev-compatible
// endpoint.
type API struct {
	endpoint   string
	httpClient *http.Client
}

func NewAPI(endpoint string) *API {
	return &API{endpoint: endpoint, httpClient: &http.Client{}}
}

type entryResponse struct {
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string   `json:"definition"`
			Synonyms   []string `json:"synonyms"`
		} `json:"definitions"`
		Synonyms []string `json:"synonyms"`
	} `json:"meanings"`
}

func (a *API) Define(ctx context.Context, word string) ([]string, error) {
	entries, err := a.lookup(ctx, word)
	if err != nil {
		return nil, err
	}

	var definitions []string
	for _, entry := range entries {
		for _, meaning := range entry.Meanings {
			for _, definition := range meaning.Definitions {
				definitions = append(definitions,
					fmt.Sprintf("*%s* %s", meaning.PartOfSpeech, definition.Definition))
			}
		}
	}

	return definitions, nil
}

func (a *API) Synonyms(ctx context.Context, word string) ([]string, error) {
	entries, err := a.lookup(ctx, word)
	if err != nil {
		return nil, err
	}

	var synonyms []string
	seen := make(map[string]bool)
	for _, entry := range entries {
		for _, meaning := range entry.Meanings {
			for _, synonym := range meaning.Synonyms {
				if !seen[synonym] {
					seen[synonym] = true
					synonyms = append(synonyms, synonym)
				}
			}
			for _, definition := range meaning.Definitions {
				for _, synonym := range definition.Synonyms {
					if !seen[synonym] {
						seen[synonym] = true
						synonyms = append(synonyms, synonym)
					}
				}
			}
		}
	}

	return synonyms, nil
}

func (a *API) lookup(ctx context.Context, word string) ([]entryResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		a.endpoint+"/"+url.PathEscape(word), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating dictionary request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error executing dictionary request: %w", err)
	}
	defer resp.Body.Close()

	// unknown words answer 404 with a message body; that is an empty
	// result, not a failure
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dictionary API returned status %d for %q", resp.StatusCode, word)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading dictionary response: %w", err)
	}

	log.Debug().Str("word", word).Int("bytes", len(body)).Msg("dictionary lookup")

	var entries []entryResponse
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("error unmarshalling dictionary response: %w", err)
	}

	return entries, nil
}
