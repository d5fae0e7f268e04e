package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/corsacca/voice-changer/internal/types"
)

const (
	defaultModelID = "eleven_monolingual_v1"

	requestTimeout = 90 * time.Second
)

type Adapter struct {
	key     string
	baseURL string
	client  *http.Client
}

func New(apiKey, baseURL string) *Adapter {
	baseURL = normalizeBaseURL(baseURL)
	return &Adapter{key: apiKey, baseURL: baseURL, client: &http.Client{Timeout: 5 * time.Minute}}
}

// Synthesize sends the text to the voice-synthesis API and writes the
// returned MP3 to outPath.
func (a *Adapter) Synthesize(ctx context.Context, text, voiceID, outPath string) error {
	if a.key == "" {
		return errors.New("synthesis API key not set: add ELEVEN_LABS_KEY to your .env file or pass --api-key (get one at https://elevenlabs.io/)")
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("nothing to synthesize: transcript is empty")
	}

	payload := map[string]any{
		"text":     text,
		"model_id": defaultModelID,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	endpoint := a.baseURL + "/v1/text-to-speech/" + url.PathEscape(voiceID)

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("xi-api-key", a.key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := a.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("synthesis timeout after %s (voice=%s)", requestTimeout, voiceID)
		}
		return err
	}
	defer resp.Body.Close()
	if err := a.checkStatus(resp); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("write synthesized audio: %w", err)
	}
	return f.Close()
}

// Voices fetches the provider's voice catalog.
func (a *Adapter) Voices(ctx context.Context) ([]types.Voice, error) {
	if a.key == "" {
		return nil, errors.New("synthesis API key not set: add ELEVEN_LABS_KEY to your .env file or pass --api-key")
	}

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, "GET", a.baseURL+"/v1/voices", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", a.key)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := a.checkStatus(resp); err != nil {
		return nil, err
	}

	var raw struct {
		Voices []types.Voice `json:"voices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode voice catalog: %w", err)
	}
	return raw.Voices, nil
}

func (a *Adapter) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	rb, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return fmt.Errorf("elevenlabs status %d and read body failed: %v", resp.StatusCode, readErr)
	}
	detail := truncate(redactSecrets(string(rb), a.key), 400)
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("elevenlabs rejected the API key (status 401, check ELEVEN_LABS_KEY): %s", detail)
	}
	return fmt.Errorf("elevenlabs status %d: %s", resp.StatusCode, detail)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var (
	xiKeyHeaderRE = regexp.MustCompile(`(?i)(xi-api-key\s*[:=]\s*)([^\n\r,;]+)`)
	apiKeyFieldRE = regexp.MustCompile(`(?i)(api[_-]?key\s*[:=]\s*)([^\n\r,;]+)`)
)

func redactSecrets(s, apiKey string) string {
	if s == "" {
		return s
	}
	out := s
	if apiKey != "" {
		out = strings.ReplaceAll(out, apiKey, "[REDACTED]")
	}
	out = xiKeyHeaderRE.ReplaceAllString(out, "${1}[REDACTED]")
	out = apiKeyFieldRE.ReplaceAllString(out, "${1}[REDACTED]")
	return out
}
