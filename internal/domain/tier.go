package domain

// Tier is a qualitative rating derived from accuracy.
type Tier string

const (
	TierExceptional Tier = "exceptional"
	TierGreat       Tier = "great"
	TierGood        Tier = "good"
	TierFair        Tier = "fair"
	TierLow         Tier = "low"
)

// TierFor maps an accuracy percentage onto a Tier.
func TierFor(accuracy int) Tier {
	switch {
	case accuracy >= 90:
		return TierExceptional
	case accuracy >= 80:
		return TierGreat
	case accuracy >= 70:
		return TierGood
	case accuracy >= 60:
		return TierFair
	default:
		return TierLow
	}
}
