package model

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah は "Rp 2.500.000" 形式の表示文字列を返す。
func FormatRupiah(amount int64) string {
	return idPrinter.Sprintf("Rp %d", amount)
}

// ParseAmount は表示価格から数字だけを取り出して整数額にする。
// 数字が無ければ 0。
func ParseAmount(display string) int64 {
	var n int64 = 0
	for _, r := range display {
		if r < '0' || r > '9' {
			continue
		}
		n = n*10 + int64(r-'0')
	}
	return n
}
