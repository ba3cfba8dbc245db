package types

type RewardTier string

const (
	TierBasic        RewardTier = "basic"
	TierIntermediate RewardTier = "intermediate"
	TierAdvanced     RewardTier = "advanced"
	TierPremium      RewardTier = "premium"
)

type RewardType string

const (
	RewardTaskCompletion RewardType = "task_completion"
	RewardEngagement     RewardType = "engagement"
	RewardMilestone      RewardType = "milestone"
	RewardContribution   RewardType = "contribution"
)
