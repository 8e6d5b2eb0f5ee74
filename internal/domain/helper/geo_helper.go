package helper

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"

	"Odekake-App/internal/domain/model"
)

const (
	earthRadiusM  = 6371000.0
	earthRadiusKm = 6371.0

	walkingSpeedMetersPerMin = 1.4 * 60 // 徒歩速度 1.4m/s
)

// HaversineDistance は2地点間の大圏距離を計算する (メートル)
// 緯度経度の範囲チェックは呼び出し側の責務
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	rLat1 := lat1 * math.Pi / 180
	rLng1 := lng1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180
	rLng2 := lng2 * math.Pi / 180
	dLat := rLat2 - rLat1
	dLng := rLng2 - rLng1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}

// HaversineDistanceKm は2地点間の大圏距離を計算する (km)
func HaversineDistanceKm(p1, p2 model.LatLng) float64 {
	lat1 := p1.Lat * math.Pi / 180
	lng1 := p1.Lng * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	lng2 := p2.Lng * math.Pi / 180
	dLat := lat2 - lat1
	dLng := lng2 - lng1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// FormatDistance は距離を人が読みやすい表記に変換する（1000m未満は "840m"、以上は "1.2km"）
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%dm", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.1fkm", meters/1000)
}

// WalkingTimeMinutes は距離から徒歩時間（分）を見積もる
func WalkingTimeMinutes(meters float64) int {
	return int(math.Round(meters / walkingSpeedMetersPerMin))
}

// DistanceCategoryConstants は距離カテゴリの定数
const (
	DistanceVeryClose  = "very_close"  // 500m未満
	DistanceClose      = "close"       // 1000m未満
	DistanceNearby     = "nearby"      // 2000m未満
	DistanceWithinArea = "within_area" // 5000m未満
	DistanceFar        = "far"         // 5000m以上
)

// DistanceCategoryNameMap は距離カテゴリから日本語ラベルへのマッピング
var DistanceCategoryNameMap = map[string]string{
	DistanceVeryClose:  "すぐそこ",
	DistanceClose:      "徒歩圏内",
	DistanceNearby:     "少し歩く",
	DistanceWithinArea: "エリア内",
	DistanceFar:        "遠出",
}

// DistanceCategoryOf は距離から距離カテゴリを判定する
func DistanceCategoryOf(meters float64) string {
	switch {
	case meters < 500:
		return DistanceVeryClose
	case meters < 1000:
		return DistanceClose
	case meters < 2000:
		return DistanceNearby
	case meters < 5000:
		return DistanceWithinArea
	default:
		return DistanceFar
	}
}

// GetDistanceCategoryJapaneseName は距離カテゴリから日本語ラベルを取得する
func GetDistanceCategoryJapaneseName(category string) string {
	if name, ok := DistanceCategoryNameMap[category]; ok {
		return name
	}
	return category
}

// AddDistanceToPlaces は現在地からの距離を各候補に付与した新しいスライスを返す
// 候補は変更せず再構築する
func AddDistanceToPlaces(origin model.LatLng, places []model.PlaceCandidate) []model.PlaceCandidate {
	annotated := make([]model.PlaceCandidate, len(places))
	for i, p := range places {
		annotated[i] = p
		if p.Location != nil {
			d := HaversineDistance(origin.Lat, origin.Lng, p.Location.Latitude, p.Location.Longitude)
			annotated[i].DistanceMeters = &d
		}
	}
	return annotated
}

// GetDistanceBasedRecommendations は距離を付与して近い順に並べ、
// 距離と評価を組み合わせたルールで再ソートした候補一覧を返す
// limitToArea が true の場合は5000mを超える候補を除外する
// ルール: 距離差が500mを超える場合は近い方、それ以外は評価の高い方を優先
func GetDistanceBasedRecommendations(origin model.LatLng, places []model.PlaceCandidate, limitToArea bool) []model.PlaceCandidate {
	annotated := AddDistanceToPlaces(origin, places)

	if limitToArea {
		var filtered []model.PlaceCandidate
		for _, p := range annotated {
			if p.DistanceMeters != nil && *p.DistanceMeters <= 5000 {
				filtered = append(filtered, p)
			}
		}
		annotated = filtered
	}

	// まず距離の近い順
	sort.Slice(annotated, func(i, j int) bool {
		return distanceOrInf(annotated[i]) < distanceOrInf(annotated[j])
	})

	// 距離と評価の組み合わせで再ソート
	sort.SliceStable(annotated, func(i, j int) bool {
		di := distanceOrInf(annotated[i])
		dj := distanceOrInf(annotated[j])
		if math.Abs(di-dj) > 500 {
			return di < dj
		}
		return annotated[i].Rating > annotated[j].Rating
	})

	return annotated
}

func distanceOrInf(p model.PlaceCandidate) float64 {
	if p.DistanceMeters == nil {
		return math.Inf(1)
	}
	return *p.DistanceMeters
}

// LatLngToPoint LatLng を orb.Point に変換（地理演算・DB変換で使用）
func LatLngToPoint(l model.LatLng) orb.Point {
	return orb.Point{l.Lng, l.Lat}
}

// PointToLatLng orb.Point を LatLng に変換
func PointToLatLng(p orb.Point) model.LatLng {
	return model.LatLng{Lat: p.Lat(), Lng: p.Lon()}
}

// SearchBound は中心と半径から検索用の境界ボックスを作成する
// PostGISを使わない簡易絞り込みに使用（緯度1度 ≈ 111km）
func SearchBound(center model.LatLng, radiusMeters int) orb.Bound {
	point := LatLngToPoint(center)
	padding := float64(radiusMeters) / 111000.0
	bound := orb.Bound{Min: point, Max: point}
	return bound.Pad(padding)
}
