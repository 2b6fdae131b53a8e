package usecase

import "time"

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// RealClock は現在時刻を返す Clock。
func RealClock() Clock {
	return realClock{}
}

// 固定時刻（テスト用）
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}
