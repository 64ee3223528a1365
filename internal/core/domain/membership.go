package domain

type MembershipLevel string

const (
	MembershipLevelBasic MembershipLevel = "Cơ bản"
	MembershipLevelLoyal MembershipLevel = "Thân thiết"
	MembershipLevelVIP   MembershipLevel = "VIP"
)

// Пороги годовых трат, без копеек
const (
	VIPThreshold   float64 = 12_000_000
	LoyalThreshold float64 = 5_000_000

	// Пороги удержания уровня. Пока нигде не применяются.
	VIPMaintenanceThreshold   float64 = 8_000_000
	LoyalMaintenanceThreshold float64 = 3_000_000
)

var membershipLevels = []MembershipLevel{
	MembershipLevelBasic,
	MembershipLevelLoyal,
	MembershipLevelVIP,
}

// Rank возвращает порядковый номер уровня, -1 для неизвестного
func (l MembershipLevel) Rank() int {
	for i, level := range membershipLevels {
		if level == l {
			return i
		}
	}
	return -1
}

func (l MembershipLevel) Less(other MembershipLevel) bool {
	return l.Rank() < other.Rank()
}

type NextTierInfo struct {
	NextTier     MembershipLevel `json:"nextTier"`
	AmountNeeded float64         `json:"amountNeeded"`
}

// TierFor вычисляет уровень по сумме трат за год. Границы включительно.
func TierFor(yearlySpend float64) MembershipLevel {
	if yearlySpend >= VIPThreshold {
		return MembershipLevelVIP
	}
	if yearlySpend >= LoyalThreshold {
		return MembershipLevelLoyal
	}
	return MembershipLevelBasic
}

// NextTier возвращает следующий уровень и сколько до него осталось.
// AmountNeeded не ограничивается нулем.
func NextTier(current MembershipLevel, currentSpend float64) (NextTierInfo, bool) {
	switch current {
	case MembershipLevelBasic:
		return NextTierInfo{NextTier: MembershipLevelLoyal, AmountNeeded: LoyalThreshold - currentSpend}, true
	case MembershipLevelLoyal:
		return NextTierInfo{NextTier: MembershipLevelVIP, AmountNeeded: VIPThreshold - currentSpend}, true
	default:
		return NextTierInfo{}, false
	}
}

func IsValidLevel(s string) bool {
	return MembershipLevel(s).Rank() >= 0
}
