package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"familykarting/pkg/metrics"

	"github.com/hashicorp/go-retryablehttp"
	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	dateLayout   = "2006-01-02"
	dailyFields  = "weather_code,temperature_2m_max,temperature_2m_min,relative_humidity_2m_mean,wind_speed_10m_max"
	forecastDays = 16
)

var (
	ErrNoData          = errors.New("weather provider returned no daily data")
	ErrDateOutOfRange  = errors.New("date is beyond the forecast range")
	ErrInvalidLocation = errors.New("invalid coordinates")
)

// Data is the weather of a single day.
type Data struct {
	Temp        float64 `json:"temp"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
}

// Report is a weather lookup along with the timezone of the coordinates.
type Report struct {
	Data
	Date     string `json:"date"`
	Timezone string `json:"timezone"`
}

// Options configures the client.
type Options struct {
	ForecastURL string
	ArchiveURL  string
	Timeout     time.Duration
	MaxRetries  int
	RateLimit   float64
	CacheTTL    time.Duration
	Logger      *logrus.Logger
}

// Client talks to the Open-Meteo forecast and archive APIs.
type Client struct {
	http        *retryablehttp.Client
	limiter     *rate.Limiter
	cache       *gocache.Cache
	forecastURL string
	archiveURL  string
	log         *logrus.Logger

	now func() time.Time
}

type apiResponse struct {
	Timezone string `json:"timezone"`
	Daily    *struct {
		Time        []string  `json:"time"`
		WeatherCode []int     `json:"weather_code"`
		TempMax     []float64 `json:"temperature_2m_max"`
		TempMin     []float64 `json:"temperature_2m_min"`
		Humidity    []float64 `json:"relative_humidity_2m_mean"`
		WindSpeed   []float64 `json:"wind_speed_10m_max"`
	} `json:"daily"`
}

// NewClient creates the weather client.
func NewClient(opts Options) *Client {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = opts.Timeout
	retryClient.RetryMax = opts.MaxRetries
	retryClient.RetryWaitMin = 200 * time.Millisecond
	retryClient.RetryWaitMax = 3 * time.Second
	// Retries are reported through the returned error.
	retryClient.Logger = nil

	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	limit := opts.RateLimit
	if limit <= 0 {
		limit = 1
	}

	return &Client{
		http:        retryClient,
		limiter:     rate.NewLimiter(rate.Limit(limit), 1),
		cache:       gocache.New(ttl, 2*ttl),
		forecastURL: opts.ForecastURL,
		archiveURL:  opts.ArchiveURL,
		log:         log,
		now:         time.Now,
	}
}

func validCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ForDate returns the weather of the coordinates on the calendar day of date.
// Dates older than a day come from the archive, everything else from the forecast.
func (c *Client) ForDate(ctx context.Context, lat, lon float64, date time.Time) (*Report, error) {
	if !validCoordinates(lat, lon) {
		return nil, ErrInvalidLocation
	}

	dateStr := date.Format(dateLayout)
	key := fmt.Sprintf("%.4f:%.4f:%s", lat, lon, dateStr)
	if cached, found := c.cache.Get(key); found {
		metrics.WeatherRequestsTotal.WithLabelValues("cache").Inc()
		report := cached.(Report)
		return &report, nil
	}

	daysDiff := math.Floor(date.Sub(c.now()).Hours() / 24)

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("daily", dailyFields)
	params.Set("timezone", "auto")

	endpoint := c.forecastURL
	if daysDiff < -1 {
		endpoint = c.archiveURL
		params.Set("start_date", dateStr)
		params.Set("end_date", dateStr)
	} else {
		params.Set("forecast_days", strconv.Itoa(forecastDays))
	}

	response, err := c.get(ctx, endpoint, params)
	if err != nil {
		metrics.WeatherRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	daily := response.Daily
	if daily == nil || len(daily.Time) == 0 {
		metrics.WeatherRequestsTotal.WithLabelValues("empty").Inc()
		return nil, ErrNoData
	}

	index := -1
	for i, day := range daily.Time {
		if day == dateStr {
			index = i
			break
		}
	}
	if index == -1 {
		metrics.WeatherRequestsTotal.WithLabelValues("empty").Inc()
		return nil, ErrDateOutOfRange
	}

	if index >= len(daily.WeatherCode) || index >= len(daily.TempMax) || index >= len(daily.TempMin) ||
		index >= len(daily.Humidity) || index >= len(daily.WindSpeed) {
		metrics.WeatherRequestsTotal.WithLabelValues("empty").Inc()
		return nil, ErrNoData
	}

	condition := FromWMOCode(daily.WeatherCode[index])
	report := Report{
		Data: Data{
			Temp:        math.Round((daily.TempMax[index]+daily.TempMin[index])/2*10) / 10,
			Condition:   condition.Condition,
			Description: condition.Description,
			Icon:        condition.Icon,
			Humidity:    int(math.Round(daily.Humidity[index])),
			WindSpeed:   math.Round(daily.WindSpeed[index]*10) / 10,
		},
		Date:     dateStr,
		Timezone: response.Timezone,
	}

	c.cache.SetDefault(key, report)
	metrics.WeatherRequestsTotal.WithLabelValues("success").Inc()

	return &report, nil
}

// Timezone resolves the IANA timezone of the coordinates.
func (c *Client) Timezone(ctx context.Context, lat, lon float64) (string, error) {
	if !validCoordinates(lat, lon) {
		return "", ErrInvalidLocation
	}

	key := fmt.Sprintf("tz:%.4f:%.4f", lat, lon)
	if cached, found := c.cache.Get(key); found {
		return cached.(string), nil
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("daily", "weather_code")
	params.Set("timezone", "auto")
	params.Set("forecast_days", "1")

	response, err := c.get(ctx, c.forecastURL, params)
	if err != nil {
		return "", err
	}

	if response.Timezone == "" {
		return "", ErrNoData
	}

	// Cache forever, a circuit doesn't move.
	c.cache.Set(key, response.Timezone, gocache.NoExpiration)

	return response.Timezone, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (*apiResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather provider returned status code %d", resp.StatusCode)
	}

	var response apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to parse weather response: %w", err)
	}

	c.log.WithFields(logrus.Fields{"endpoint": endpoint, "timezone": response.Timezone}).Debug("Weather fetched")

	return &response, nil
}
