package store

import (
	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// CompleteOnboardingStep marks a step done for the acting user. Finishing
// the last open step grants types.OnboardingBonus once. It returns false for
// an unknown step or without a user.
func (s *Store) CompleteOnboardingStep(kind types.OnboardingKind) bool {
	u := s.session.User
	if u == nil {
		return false
	}
	if _, known := types.ParseOnboardingKind(string(kind)); !known {
		return false
	}
	if s.completeStep(u, kind) {
		s.upsert(u)
	}
	return true
}

// OnboardingProgress returns the acting user's completed fraction. A user
// with no steps is complete; no user is zero.
func (s *Store) OnboardingProgress() float64 {
	u := s.session.User
	if u == nil {
		return 0
	}
	return onboardingRatio(u.Onboarding)
}

func onboardingRatio(items []types.OnboardingItem) float64 {
	if len(items) == 0 {
		return 1
	}
	done := 0
	for _, item := range items {
		if item.Completed {
			done++
		}
	}
	return float64(done) / float64(len(items))
}

// completeStep marks kind done on u and applies the completion bonus on the
// false to true transition of OnboardingCompleted. It reports whether u
// changed. The caller mirrors u.
func (s *Store) completeStep(u *types.User, kind types.OnboardingKind) bool {
	if u == nil || len(u.Onboarding) == 0 {
		return false
	}
	changed := false
	for i := range u.Onboarding {
		if u.Onboarding[i].Kind == kind && !u.Onboarding[i].Completed {
			u.Onboarding[i].Completed = true
			changed = true
		}
	}
	if !u.OnboardingCompleted && onboardingRatio(u.Onboarding) == 1 {
		u.OnboardingCompleted = true
		u.AddPoints(types.OnboardingBonus)
		s.addLog("%s finished onboarding", u.Name)
		changed = true
	}
	return changed
}

// forceCompleteOnboarding marks every step done without the bonus.
func (s *Store) forceCompleteOnboarding(u *types.User) {
	for i := range u.Onboarding {
		u.Onboarding[i].Completed = true
	}
	u.OnboardingCompleted = true
}
