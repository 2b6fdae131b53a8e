// Package location は配送先テキストから地図座標を推定する。
// ジオコーディングではなく固定テーブルの照合のみ。
package location

import (
	"strings"

	"scm/internal/domain/model"
)

type city struct {
	key    string
	coords model.Coordinate
}

// 照合順を固定するためスライスで持つ
var cities = []city{
	{"jakarta", model.Coordinate{Lat: -6.208763, Lng: 106.845599}},
	{"bandung", model.Coordinate{Lat: -6.914744, Lng: 107.60981}},
	{"surabaya", model.Coordinate{Lat: -7.257472, Lng: 112.75209}},
	{"makassar", model.Coordinate{Lat: -5.147665, Lng: 119.432732}},
	{"yogyakarta", model.Coordinate{Lat: -7.79558, Lng: 110.36949}},
	{"semarang", model.Coordinate{Lat: -6.966667, Lng: 110.416664}},
	{"medan", model.Coordinate{Lat: 3.583333, Lng: 98.666664}},
	{"bali", model.Coordinate{Lat: -8.409518, Lng: 115.188919}},
}

// インドネシア中心
var DefaultCenter = model.Coordinate{Lat: -2.548926, Lng: 118.014863}

// Resolve は既知の都市名を含んでいればその座標を返す。
func Resolve(text string) (model.Coordinate, bool) {
	normal := strings.ToLower(strings.TrimSpace(text))
	if normal == "" {
		return model.Coordinate{}, false
	}

	for _, c := range cities {
		if strings.Contains(normal, c.key) {
			return c.coords, true
		}
	}

	//区切り文字で分割してトークン一致
	tokens := strings.FieldsFunc(normal, func(r rune) bool {
		return r == ',' || r == '/' || r == '-'
	})
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		for _, c := range cities {
			if t == c.key {
				return c.coords, true
			}
		}
	}

	return model.Coordinate{}, false
}

// ResolveOrDefault は見つからなければ DefaultCenter を返す。
func ResolveOrDefault(text string) model.Coordinate {
	if c, ok := Resolve(text); ok {
		return c
	}
	return DefaultCenter
}
