// Package lookup holds the best-effort enrichment clients. Both calls are
// fire-and-forget: a failure leaves the dependent field blank and never
// blocks workout creation.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"backend-waytrack/internal/workout"
)

type Client struct {
	httpc      *http.Client
	geocodeURL string
	weatherURL string
}

func New(geocodeBaseURL, weatherBaseURL string) *Client {
	return &Client{
		httpc:      &http.Client{Timeout: 5 * time.Second},
		geocodeURL: geocodeBaseURL,
		weatherURL: weatherBaseURL,
	}
}

// ReverseGeocode resolves coords to a place label (nominatim reverse API).
func (c *Client) ReverseGeocode(ctx context.Context, coords workout.Coords) (string, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", coords.Lat))
	q.Set("lon", fmt.Sprintf("%f", coords.Lng))
	q.Set("format", "jsonv2")

	var body struct {
		DisplayName string `json:"display_name"`
	}
	if err := c.getJSON(ctx, c.geocodeURL+"/reverse?"+q.Encode(), &body); err != nil {
		return "", err
	}
	if body.DisplayName == "" {
		return "", fmt.Errorf("no place found for %.4f,%.4f", coords.Lat, coords.Lng)
	}
	return body.DisplayName, nil
}

// CurrentTemperature fetches the temperature at coords in °C (open-meteo
// current_weather API).
func (c *Client) CurrentTemperature(ctx context.Context, coords workout.Coords) (float64, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%f", coords.Lat))
	q.Set("longitude", fmt.Sprintf("%f", coords.Lng))
	q.Set("current_weather", "true")

	var body struct {
		CurrentWeather struct {
			Temperature float64 `json:"temperature"`
		} `json:"current_weather"`
	}
	if err := c.getJSON(ctx, c.weatherURL+"/v1/forecast?"+q.Encode(), &body); err != nil {
		return 0, err
	}
	return body.CurrentWeather.Temperature, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("lookup status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
