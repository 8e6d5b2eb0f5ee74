package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"Odekake-App/internal/domain/model"
)

// GooglePlacesProvider はGoogle Places APIを使用したスポット検索の実装
// 検索戦略のタイプをprimary→fallbackの順に試し、最初に結果が得られた時点で返す
type GooglePlacesProvider struct {
	apiKey     string
	httpClient *http.Client
}

// NewGooglePlacesProvider は新しいプロバイダを生成する
func NewGooglePlacesProvider(apiKey string) *GooglePlacesProvider {
	return &GooglePlacesProvider{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SearchByStrategy は検索戦略を1つ実行して候補スポットを取得する
func (g *GooglePlacesProvider) SearchByStrategy(ctx context.Context, location model.LatLng, strategy model.SearchStrategy) ([]model.PlaceCandidate, error) {
	// primaryTypes → fallbackTypes の順に検索し、結果が得られた時点で打ち切る
	typeChains := append(append([]string{}, strategy.PrimaryTypes...), strategy.FallbackTypes...)

	for _, placeType := range typeChains {
		candidates, err := g.nearbySearch(ctx, location, placeType, strategy.Keywords, strategy.SearchRadius)
		if err != nil {
			return nil, err
		}
		if len(candidates) > 0 {
			return candidates, nil
		}
	}

	return []model.PlaceCandidate{}, nil
}

// nearbySearch はNearby Search APIを1回呼び出す
func (g *GooglePlacesProvider) nearbySearch(ctx context.Context, location model.LatLng, placeType string, keywords []string, radiusMeters int) ([]model.PlaceCandidate, error) {
	reqURL := g.buildURL(location, placeType, keywords, radiusMeters)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("APIからエラーステータスが返されました: %s", resp.Status)
	}

	var apiResp googlePlacesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	// ZERO_RESULTSはエラーではなく空の結果として扱う
	if apiResp.Status != "OK" && apiResp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("Places APIエラー: %s (%s)", apiResp.Status, apiResp.ErrorMessage)
	}

	candidates := make([]model.PlaceCandidate, 0, len(apiResp.Results))
	for _, result := range apiResp.Results {
		candidates = append(candidates, result.toPlaceCandidate())
	}
	return candidates, nil
}

func (g *GooglePlacesProvider) buildURL(location model.LatLng, placeType string, keywords []string, radiusMeters int) string {
	baseURL := "https://maps.googleapis.com/maps/api/place/nearbysearch/json"
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", location.Lat, location.Lng))
	params.Set("radius", fmt.Sprintf("%d", radiusMeters))
	if placeType != "" {
		params.Set("type", placeType)
	}
	if len(keywords) > 0 {
		params.Set("keyword", strings.Join(keywords, " "))
	}
	params.Set("language", "ja")
	params.Set("key", g.apiKey)

	return fmt.Sprintf("%s?%s", baseURL, params.Encode())
}

// --- Places APIのレスポンスをパースするための構造体 ---

type googlePlacesResponse struct {
	Results      []placeResult `json:"results"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

type placeResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Vicinity         string   `json:"vicinity"`
	Types            []string `json:"types"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	PriceLevel       *int     `json:"price_level,omitempty"`
	OpeningHours     *struct {
		OpenNow *bool `json:"open_now,omitempty"`
	} `json:"opening_hours,omitempty"`
	Photos []struct {
		PhotoReference string `json:"photo_reference"`
	} `json:"photos,omitempty"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// toPlaceCandidate APIレスポンスをドメインモデルに変換
func (p placeResult) toPlaceCandidate() model.PlaceCandidate {
	candidate := model.PlaceCandidate{
		PlaceID:          p.PlaceID,
		Name:             p.Name,
		Vicinity:         p.Vicinity,
		Types:            p.Types,
		Rating:           p.Rating,
		UserRatingsTotal: p.UserRatingsTotal,
		PriceLevel:       p.PriceLevel,
		MapsURL:          fmt.Sprintf("https://www.google.com/maps/place/?q=place_id:%s", p.PlaceID),
		Location: &model.Location{
			Latitude:  p.Geometry.Location.Lat,
			Longitude: p.Geometry.Location.Lng,
		},
	}

	if p.OpeningHours != nil {
		candidate.OpenNow = p.OpeningHours.OpenNow
	}
	for _, photo := range p.Photos {
		candidate.PhotoReferences = append(candidate.PhotoReferences, photo.PhotoReference)
	}
	return candidate
}
