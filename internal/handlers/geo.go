package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const geoCacheTTL = 24 * time.Hour

// Default upstream: the PDOK Locatieserver, free geocoding for NL addresses.
const defaultGeoLookupURL = "https://api.pdok.nl/bzk/locatieserver/search/v3_1/free"

type geoResult struct {
	CountryCode string  `json:"country_code"`
	Postcode    string  `json:"postcode"`
	HouseNumber string  `json:"house_number"`
	Addition    string  `json:"addition,omitempty"`
	Street      string  `json:"street"`
	City        string  `json:"city"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Confidence  float64 `json:"confidence"`
}

type pdokResponse struct {
	Response struct {
		Docs []struct {
			Straatnaam     string  `json:"straatnaam"`
			Woonplaatsnaam string  `json:"woonplaatsnaam"`
			Postcode       string  `json:"postcode"`
			Huisnummer     int     `json:"huisnummer"`
			CentroideLL    string  `json:"centroide_ll"`
			Score          float64 `json:"score"`
		} `json:"docs"`
	} `json:"response"`
}

// GeoLookup resolves a postcode + house number to a street address. Results
// are cached in Redis for a day; a nil cache client disables caching.
func GeoLookup(cache *redis.Client, lookupURL string) gin.HandlerFunc {
	if lookupURL == "" {
		lookupURL = defaultGeoLookupURL
	}
	client := &http.Client{Timeout: 8 * time.Second}

	return func(c *gin.Context) {
		const route = "GET /geo/lookup"
		defer handlePanic(c, route)

		country := strings.ToUpper(strings.TrimSpace(c.DefaultQuery("country", "NL")))
		postcode := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(c.Query("postcode")), " ", ""))
		number := strings.TrimSpace(c.Query("number"))
		addition := strings.TrimSpace(c.Query("addition"))

		if postcode == "" || number == "" {
			respondWithError(c, http.StatusBadRequest, route, "postcode and number are required")
			return
		}
		if country != "NL" {
			// Only NL is wired to a geocoder; other countries enter their
			// address manually.
			respondWithError(c, http.StatusNotFound, route, "address lookup not available for country")
			return
		}

		cacheKey := fmt.Sprintf("geo:%s:%s:%s:%s", country, postcode, number, addition)
		if cache != nil {
			if cached, err := cache.Get(c.Request.Context(), cacheKey).Result(); err == nil {
				var result geoResult
				if json.Unmarshal([]byte(cached), &result) == nil {
					c.JSON(http.StatusOK, result)
					return
				}
			}
		}

		result, found, err := lookupAddress(c.Request.Context(), client, lookupURL, postcode, number)
		if err != nil {
			log.Printf("[%s] upstream lookup failed: %v", route, err)
			respondWithError(c, http.StatusBadGateway, route, "address lookup unavailable")
			return
		}
		if !found {
			respondWithError(c, http.StatusNotFound, route, "address not found")
			return
		}
		result.CountryCode = country
		result.HouseNumber = number
		result.Addition = addition

		if cache != nil {
			if encoded, err := json.Marshal(result); err == nil {
				cache.Set(c.Request.Context(), cacheKey, encoded, geoCacheTTL)
			}
		}

		c.JSON(http.StatusOK, result)
	}
}

func lookupAddress(ctx context.Context, client *http.Client, lookupURL, postcode, number string) (geoResult, bool, error) {
	query := url.Values{}
	query.Set("q", fmt.Sprintf("postcode:%s and huisnummer:%s", postcode, number))
	query.Set("fq", "type:adres")
	query.Set("rows", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL+"?"+query.Encode(), nil)
	if err != nil {
		return geoResult{}, false, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return geoResult{}, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geoResult{}, false, fmt.Errorf("upstream status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return geoResult{}, false, err
	}

	var parsed pdokResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return geoResult{}, false, err
	}
	if len(parsed.Response.Docs) == 0 {
		return geoResult{}, false, nil
	}

	doc := parsed.Response.Docs[0]
	lat, lon, ok := parseCentroid(doc.CentroideLL)

	result := geoResult{
		Postcode:   doc.Postcode,
		Street:     doc.Straatnaam,
		City:       doc.Woonplaatsnaam,
		Confidence: normalizeScore(doc.Score),
	}
	if ok {
		result.Lat = lat
		result.Lon = lon
	}
	return result, true, nil
}

// parseCentroid reads the WKT "POINT(lon lat)" the geocoder returns.
func parseCentroid(wkt string) (lat, lon float64, ok bool) {
	wkt = strings.TrimSpace(wkt)
	if !strings.HasPrefix(wkt, "POINT(") || !strings.HasSuffix(wkt, ")") {
		return 0, 0, false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(wkt, "POINT("), ")")
	parts := strings.Fields(inner)
	if len(parts) != 2 {
		return 0, 0, false
	}
	if _, err := fmt.Sscanf(parts[0], "%f", &lon); err != nil {
		return 0, 0, false
	}
	if _, err := fmt.Sscanf(parts[1], "%f", &lat); err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

// normalizeScore maps the geocoder's unbounded relevance score into [0,1].
func normalizeScore(score float64) float64 {
	if score <= 0 {
		return 0
	}
	normalized := score / 20
	if normalized > 1 {
		return 1
	}
	return normalized
}
