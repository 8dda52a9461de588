package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"wayfarer/utils"

	"github.com/julienschmidt/httprouter"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Client fetches current conditions from OpenWeather. The feature is
// optional: with no API key configured the endpoint reports itself
// disabled instead of failing.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Report is the trimmed-down forecast handed to clients.
type Report struct {
	Destination string  `json:"destination"`
	Description string  `json:"description"`
	TempC       float64 `json:"temp_c"`
	FeelsLikeC  float64 `json:"feels_like_c"`
	Humidity    int     `json:"humidity"`
}

func (c *Client) Current(ctx context.Context, destination string) (*Report, error) {
	params := url.Values{
		"q":     {destination},
		"appid": {c.APIKey},
		"units": {"metric"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	report := &Report{
		Destination: destination,
		TempC:       payload.Main.Temp,
		FeelsLikeC:  payload.Main.FeelsLike,
		Humidity:    payload.Main.Humidity,
	}
	if len(payload.Weather) > 0 {
		report.Description = payload.Weather[0].Description
	}
	return report, nil
}

// GET /api/weather?destination=X
func (c *Client) GetWeather(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if c.APIKey == "" {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Weather features are disabled")
		return
	}

	destination := r.URL.Query().Get("destination")
	if destination == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "destination is required")
		return
	}

	report, err := c.Current(r.Context(), destination)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "Weather lookup failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, report)
}
