package types

// OnboardingKind identifies one onboarding step.
type OnboardingKind string

// Onboarding steps in display order.
const (
	StepProfile       OnboardingKind = "profile"
	StepHousehold     OnboardingKind = "household"
	StepFirstTask     OnboardingKind = "first_task"
	StepFirstPurchase OnboardingKind = "first_purchase"
	StepHouseRules    OnboardingKind = "house_rules"
)

// OnboardingSteps is the fixed step order every user receives.
var OnboardingSteps = []OnboardingKind{
	StepProfile,
	StepHousehold,
	StepFirstTask,
	StepFirstPurchase,
	StepHouseRules,
}

// OnboardingBonus is granted once when the last step is completed.
const OnboardingBonus = 50

// OnboardingItem tracks a single step for one user.
type OnboardingItem struct {
	Kind      OnboardingKind `json:"kind"`
	Completed bool           `json:"completed"`
}

// ParseOnboardingKind reports whether s names a known step.
func ParseOnboardingKind(s string) (OnboardingKind, bool) {
	for _, k := range OnboardingSteps {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// NewOnboarding returns the full step list, all incomplete.
func NewOnboarding() []OnboardingItem {
	items := make([]OnboardingItem, len(OnboardingSteps))
	for i, k := range OnboardingSteps {
		items[i] = OnboardingItem{Kind: k}
	}
	return items
}
