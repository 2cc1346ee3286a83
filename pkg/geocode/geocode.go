package geocode

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Lokasi adalah snapshot hasil reverse geocoding.
type Lokasi struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Alamat    string  `json:"alamat"`
	Akurasi   float64 `json:"akurasi"`
}

// Client memanggil Nominatim untuk reverse geocoding. Timeout pendek karena
// ini hanya pengayaan best-effort: kegagalan tidak boleh menggagalkan absensi.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}
	return &Client{
		httpClient: &http.Client{Timeout: 3 * time.Second},
		baseURL:    baseURL,
	}
}

type nominatimResponse struct {
	DisplayName string `json:"display_name"`
	Importance  float64 `json:"importance"`
}

func (c *Client) ReverseGeocode(lat, lon float64) (*Lokasi, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))

	resp, err := c.httpClient.Get(c.baseURL + "/reverse?" + q.Encode())
	if err != nil {
		return nil, fmt.Errorf("gagal memanggil geocoding: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding mengembalikan status %d", resp.StatusCode)
	}

	var hasil nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&hasil); err != nil {
		return nil, fmt.Errorf("gagal membaca respons geocoding: %w", err)
	}

	return &Lokasi{
		Latitude:  lat,
		Longitude: lon,
		Alamat:    hasil.DisplayName,
		Akurasi:   hasil.Importance,
	}, nil
}
