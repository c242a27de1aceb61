package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseCentroid(t *testing.T) {
	lat, lon, ok := parseCentroid("POINT(4.895168 52.370216)")
	if !ok {
		t.Fatal("expected centroid to parse")
	}
	if lon < 4.89 || lon > 4.90 {
		t.Fatalf("lon = %f", lon)
	}
	if lat < 52.37 || lat > 52.38 {
		t.Fatalf("lat = %f", lat)
	}

	if _, _, ok := parseCentroid("LINESTRING(0 0, 1 1)"); ok {
		t.Fatal("non-point WKT should not parse")
	}
	if _, _, ok := parseCentroid("POINT(4.8)"); ok {
		t.Fatal("single coordinate should not parse")
	}
}

func TestNormalizeScore(t *testing.T) {
	if got := normalizeScore(0); got != 0 {
		t.Fatalf("normalizeScore(0) = %f", got)
	}
	if got := normalizeScore(10); got != 0.5 {
		t.Fatalf("normalizeScore(10) = %f", got)
	}
	if got := normalizeScore(100); got != 1 {
		t.Fatalf("normalizeScore(100) = %f", got)
	}
}

func TestLookupAddressParsesUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"response": {
				"docs": [{
					"straatnaam": "Dorpsstraat",
					"woonplaatsnaam": "Ons Dorp",
					"postcode": "1234AB",
					"huisnummer": 7,
					"centroide_ll": "POINT(5.1 52.2)",
					"score": 14
				}]
			}
		}`))
	}))
	defer upstream.Close()

	client := &http.Client{Timeout: 2 * time.Second}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	result, found, err := lookupAddress(ctx, client, upstream.URL, "1234AB", "7")
	if err != nil {
		t.Fatalf("lookupAddress returned error: %v", err)
	}
	if !found {
		t.Fatal("expected a match")
	}
	if result.Street != "Dorpsstraat" || result.City != "Ons Dorp" {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Lat != 52.2 || result.Lon != 5.1 {
		t.Fatalf("unexpected coordinates %+v", result)
	}
	if result.Confidence != 0.7 {
		t.Fatalf("confidence = %f, want 0.7", result.Confidence)
	}
}

func TestLookupAddressNoMatch(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response": {"docs": []}}`))
	}))
	defer upstream.Close()

	client := &http.Client{Timeout: 2 * time.Second}
	_, found, err := lookupAddress(context.Background(), client, upstream.URL, "9999ZZ", "1")
	if err != nil {
		t.Fatalf("lookupAddress returned error: %v", err)
	}
	if found {
		t.Fatal("expected no match")
	}
}
