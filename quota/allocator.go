// Package quota 는 외부 API 호출 예산을 모니터링 채널들에 가중치 비례로 분배한다.
package quota

import (
	"math"
	"sort"

	"judol-guard/models"
)

// Distribute 는 totalUnits 를 각 채널의 weight 비율에 따라 정수로 분배한다.
// 1차로 floor(weight/totalWeight*totalUnits) 를 배분하고, 내림으로 남은 단위는
// ceil(weight/totalWeight*totalUnits) 한도를 아직 채우지 못한 채널 중
// 가중치가 가장 높은 채널부터 하나씩 배분한다.
// 동률인 채널 사이에서는 입력 순서를 유지한다(stable sort).
// 합계는 항상 totalUnits 가 되며, 음수 배분은 발생하지 않는다.
func Distribute(channels []models.Channel, totalUnits int) map[string]int {
	units := make(map[string]int, len(channels))
	if len(channels) == 0 || totalUnits <= 0 {
		return units
	}

	totalWeight := 0
	for _, ch := range channels {
		totalWeight += ch.Weight
	}
	if totalWeight <= 0 {
		return units
	}

	allocated := 0
	for _, ch := range channels {
		share := int(math.Floor(float64(ch.Weight) / float64(totalWeight) * float64(totalUnits)))
		units[ch.ID] = share
		allocated += share
	}

	// 잔여분은 가중치 내림차순으로 ceil 한도까지 하나씩 채운다.
	sorted := make([]models.Channel, len(channels))
	copy(sorted, channels)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight > sorted[j].Weight
	})

	for allocated < totalUnits {
		assigned := false
		for _, ch := range sorted {
			ceil := int(math.Ceil(float64(ch.Weight) / float64(totalWeight) * float64(totalUnits)))
			if units[ch.ID] < ceil {
				units[ch.ID]++
				allocated++
				assigned = true
				break
			}
		}
		if !assigned {
			break
		}
	}

	return units
}
