package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"Odekake-App/internal/domain/model"
	"Odekake-App/internal/domain/repository"
	"Odekake-App/internal/infrastructure/database"
)

// PostgresPlacesRepository は自前POIテーブル（PostGIS）を検索戦略で引く実装
// 外部APIが使えない環境やオフライン開発時の候補ソースとして使う
type PostgresPlacesRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresPlacesRepository(client *database.PostgreSQLClient) repository.PlacesSearchRepository {
	return &PostgresPlacesRepository{
		client: client,
	}
}

// placeRow PostGISクエリの結果を受け取るための構造体
type placeRow struct {
	ID             string
	Name           string
	Vicinity       sql.NullString
	Location       string
	Category       string
	Rating         float64
	PriceLevel     sql.NullInt64
	URL            sql.NullString
	DistanceMeters float64
}

// toPlaceCandidate placeRowをドメインモデルに変換
func (row *placeRow) toPlaceCandidate() (*model.PlaceCandidate, error) {
	var geometry model.Geometry
	if err := json.Unmarshal([]byte(row.Location), &geometry); err != nil {
		return nil, fmt.Errorf("location GeoJSONパースエラー: %w", err)
	}

	candidate := &model.PlaceCandidate{
		PlaceID:  row.ID,
		Name:     row.Name,
		Types:    []string{row.Category},
		Rating:   row.Rating,
		Location: model.GeometryToLocation(&geometry),
	}

	distance := row.DistanceMeters
	candidate.DistanceMeters = &distance

	if row.Vicinity.Valid {
		candidate.Vicinity = row.Vicinity.String
	}
	if row.PriceLevel.Valid {
		level := int(row.PriceLevel.Int64)
		candidate.PriceLevel = &level
	}
	if row.URL.Valid {
		candidate.MapsURL = row.URL.String
	}

	return candidate, nil
}

// SearchByStrategy は戦略のタイプ・キーワードに合致するPOIを距離順に取得する
func (r *PostgresPlacesRepository) SearchByStrategy(ctx context.Context, location model.LatLng, strategy model.SearchStrategy) ([]model.PlaceCandidate, error) {
	types := append(append([]string{}, strategy.PrimaryTypes...), strategy.FallbackTypes...)

	// キーワードは名前への部分一致で拾う
	patterns := make([]string, 0, len(strategy.Keywords))
	for _, keyword := range strategy.Keywords {
		patterns = append(patterns, "%"+keyword+"%")
	}

	query := `
		SELECT
			id, name, vicinity,
			ST_AsGeoJSON(location) AS location,
			category, rating, price_level, url,
			ST_Distance(
				location::geography,
				ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography
			) AS distance_meters
		FROM pois
		WHERE ST_DWithin(
				location::geography,
				ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
				$3
			)
			AND (category = ANY($4) OR name ILIKE ANY($5))
		ORDER BY distance_meters ASC
		LIMIT 20`

	rows, err := r.client.DB.QueryContext(ctx, query,
		location.Lng, location.Lat, strategy.SearchRadius,
		pq.Array(types), pq.Array(patterns),
	)
	if err != nil {
		return nil, fmt.Errorf("POI検索クエリの実行に失敗: %w", err)
	}
	defer rows.Close()

	var candidates []model.PlaceCandidate
	for rows.Next() {
		var row placeRow
		if err := rows.Scan(
			&row.ID, &row.Name, &row.Vicinity, &row.Location,
			&row.Category, &row.Rating, &row.PriceLevel, &row.URL,
			&row.DistanceMeters,
		); err != nil {
			return nil, fmt.Errorf("POI行のスキャンに失敗: %w", err)
		}

		candidate, err := row.toPlaceCandidate()
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, *candidate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("POI検索結果の読み取りに失敗: %w", err)
	}

	return candidates, nil
}
