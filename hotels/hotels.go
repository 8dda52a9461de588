package hotels

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"wayfarer/rdx"
	"wayfarer/utils"

	"github.com/julienschmidt/httprouter"
)

const (
	defaultLocationsURL = "https://booking-com.p.rapidapi.com/v1/hotels/locations"
	defaultSearchURL    = "https://booking-com.p.rapidapi.com/v2/hotels/search"
	rapidAPIHost        = "booking-com.p.rapidapi.com"
	cacheTTL            = 6 * time.Hour
)

// Client looks up average nightly hotel prices through the Booking.com
// RapidAPI. Lookups never fail upward: any error falls back to the default
// price, matching how the planner treats pricing as advisory.
type Client struct {
	APIKey       string
	DefaultPrice float64
	HTTP         *http.Client

	// Overridable in tests.
	LocationsURL string
	SearchURL    string
}

func NewClient(apiKey string, defaultPrice float64) *Client {
	return &Client{
		APIKey:       apiKey,
		DefaultPrice: defaultPrice,
		HTTP:         &http.Client{Timeout: 20 * time.Second},
		LocationsURL: defaultLocationsURL,
		SearchURL:    defaultSearchURL,
	}
}

// AveragePrice returns the average nightly price for the destination, from
// cache when possible, or the default price when the API is unavailable.
func (c *Client) AveragePrice(ctx context.Context, destination string) float64 {
	if c.APIKey == "" {
		return c.DefaultPrice
	}

	cacheKey := "hotel:price:" + strings.ToLower(destination)
	if rdx.Conn != nil {
		if cached, err := rdx.RdxGet(cacheKey); err == nil {
			if price, err := strconv.ParseFloat(cached, 64); err == nil {
				return price
			}
		}
	}

	price, err := c.lookup(ctx, destination)
	if err != nil {
		log.Printf("hotel price lookup failed for %s: %v", destination, err)
		return c.DefaultPrice
	}

	if rdx.Conn != nil {
		if err := rdx.SetWithExpiry(cacheKey, strconv.FormatFloat(price, 'f', 2, 64), cacheTTL); err != nil {
			log.Println("hotel price cache error:", err)
		}
	}
	return price
}

// lookup is the two-step RapidAPI flow: resolve the city to a destination
// id, then average the first few gross prices from a hotel search.
func (c *Client) lookup(ctx context.Context, destination string) (float64, error) {
	destID, err := c.destinationID(ctx, destination)
	if err != nil {
		return 0, err
	}

	checkin := time.Now().AddDate(0, 0, 60)
	checkout := checkin.AddDate(0, 0, 1)
	params := url.Values{
		"order_by":           {"popularity"},
		"adults_number":      {"1"},
		"units":              {"metric"},
		"room_number":        {"1"},
		"checkin_date":       {checkin.Format("2006-01-02")},
		"checkout_date":      {checkout.Format("2006-01-02")},
		"filter_by_currency": {"INR"},
		"dest_type":          {"city"},
		"locale":             {"en-gb"},
		"dest_id":            {destID},
	}

	var result struct {
		Results []struct {
			PriceBreakdown struct {
				GrossPrice struct {
					Value float64 `json:"value"`
				} `json:"grossPrice"`
			} `json:"priceBreakdown"`
		} `json:"results"`
	}
	if err := c.get(ctx, c.SearchURL, params, &result); err != nil {
		return 0, err
	}

	var sum float64
	var n int
	for i, hotel := range result.Results {
		if i >= 5 {
			break
		}
		if v := hotel.PriceBreakdown.GrossPrice.Value; v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, fmt.Errorf("no prices found for %s", destination)
	}
	return sum / float64(n), nil
}

func (c *Client) destinationID(ctx context.Context, destination string) (string, error) {
	params := url.Values{"name": {destination}, "locale": {"en-gb"}}

	var locations []struct {
		DestID   string `json:"dest_id"`
		DestType string `json:"dest_type"`
	}
	if err := c.get(ctx, c.LocationsURL, params, &locations); err != nil {
		return "", err
	}
	for _, loc := range locations {
		if loc.DestType == "city" {
			return loc.DestID, nil
		}
	}
	return "", fmt.Errorf("no city match for %s", destination)
}

func (c *Client) get(ctx context.Context, rawURL string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-RapidAPI-Key", c.APIKey)
	req.Header.Set("X-RapidAPI-Host", rapidAPIHost)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// GET /api/hotels/price?destination=X
func (c *Client) GetAveragePrice(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	destination := r.URL.Query().Get("destination")
	if destination == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "destination is required")
		return
	}

	price := c.AveragePrice(r.Context(), destination)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"destination":       destination,
		"average_price_inr": price,
	})
}
