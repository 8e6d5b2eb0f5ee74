package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"Odekake-App/internal/domain/helper"
	"Odekake-App/internal/domain/model"
	"Odekake-App/internal/domain/repository"
	"Odekake-App/internal/infrastructure/database"
)

// SupabasePlacesRepository はSupabase (PostgREST)経由でPOIテーブルを検索する実装
// PostgRESTでは地理演算ができないため、距離の絞り込みと並べ替えはアプリ側で行う
type SupabasePlacesRepository struct {
	client *database.SupabaseClient
}

func NewSupabasePlacesRepository(client *database.SupabaseClient) repository.PlacesSearchRepository {
	return &SupabasePlacesRepository{
		client: client,
	}
}

// supabasePlaceRow POIテーブルの1行分のJSON表現
type supabasePlaceRow struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Vicinity   string          `json:"vicinity"`
	Location   *model.Geometry `json:"location"`
	Category   string          `json:"category"`
	Rating     float64         `json:"rating"`
	PriceLevel *int            `json:"price_level"`
	URL        *string         `json:"url"`
}

// SearchByStrategy は戦略のタイプに合致するPOIを取得し、半径内に絞って距離順で返す
func (r *SupabasePlacesRepository) SearchByStrategy(ctx context.Context, location model.LatLng, strategy model.SearchStrategy) ([]model.PlaceCandidate, error) {
	types := append(append([]string{}, strategy.PrimaryTypes...), strategy.FallbackTypes...)

	data, count, err := r.client.GetClient().From("pois").
		Select("*", "exact", false).
		In("category", types).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("POIデータの取得失敗: %w", err)
	}
	_ = count

	var poiRows []supabasePlaceRow
	if err := json.Unmarshal([]byte(data), &poiRows); err != nil {
		return nil, fmt.Errorf("POIデータのJSONアンマーシャル失敗: %w", err)
	}

	// 境界ボックスで粗く絞ってから正確な距離で判定する
	bound := helper.SearchBound(location, strategy.SearchRadius)

	var candidates []model.PlaceCandidate
	for _, row := range poiRows {
		candidate := row.toPlaceCandidate()
		if candidate.Location == nil {
			continue
		}
		if !bound.Contains(helper.LatLngToPoint(candidate.Location.ToLatLng())) {
			continue
		}

		distance := helper.HaversineDistance(
			location.Lat, location.Lng,
			candidate.Location.Latitude, candidate.Location.Longitude,
		)
		if distance > float64(strategy.SearchRadius) {
			continue
		}
		candidate.DistanceMeters = &distance
		candidates = append(candidates, candidate)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return *candidates[i].DistanceMeters < *candidates[j].DistanceMeters
	})

	return candidates, nil
}

func (row *supabasePlaceRow) toPlaceCandidate() model.PlaceCandidate {
	candidate := model.PlaceCandidate{
		PlaceID:  row.ID,
		Name:     row.Name,
		Vicinity: row.Vicinity,
		Types:    []string{strings.ToLower(row.Category)},
		Rating:   row.Rating,
		Location: model.GeometryToLocation(row.Location),
	}
	if row.PriceLevel != nil {
		candidate.PriceLevel = row.PriceLevel
	}
	if row.URL != nil {
		candidate.MapsURL = *row.URL
	}
	return candidate
}
