package loyalty

import "github.com/mallhub-next/internal/constants"

// 等级区间为左闭右开：[0,500) Bronze，[500,1500) Silver，[1500,∞) Gold。
// 等级与进度永远按积分现算，任何地方都不落库缓存。

// TierOf 根据累计积分计算会员等级
func TierOf(points int) string {
	if points < 0 {
		points = 0
	}
	switch {
	case points >= constants.TierGoldThreshold:
		return constants.TierGold
	case points >= constants.TierSilverThreshold:
		return constants.TierSilver
	default:
		return constants.TierBronze
	}
}

// Progress 返回当前等级内的进度，范围 [0,1]
func Progress(points int) float64 {
	if points < 0 {
		points = 0
	}
	var ratio float64
	switch TierOf(points) {
	case constants.TierGold:
		ratio = 1
	case constants.TierSilver:
		ratio = float64(points-constants.TierSilverThreshold) /
			float64(constants.TierGoldThreshold-constants.TierSilverThreshold)
	default:
		ratio = float64(points) / float64(constants.TierSilverThreshold)
	}
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// PointsToNext 返回升到下一等级还差的积分，Gold 为 0
func PointsToNext(points int) int {
	if points < 0 {
		points = 0
	}
	switch TierOf(points) {
	case constants.TierGold:
		return 0
	case constants.TierSilver:
		return constants.TierGoldThreshold - points
	default:
		return constants.TierSilverThreshold - points
	}
}
