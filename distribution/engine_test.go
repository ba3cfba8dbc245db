package distribution

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/dacr-network/dacr-backend/types"
)

func setupTestEngine(t *testing.T) *Engine {
	lgr, err := zap.NewDevelopment()
	assert.Nil(t, err)
	return NewEngine(Config{Logger: lgr})
}

func TestEngine_NewUserDefaultsToBasic(t *testing.T) {
	engine := setupTestEngine(t)
	assert.Equal(t, types.TierBasic, engine.GetTier("newcomer"))
	assert.True(t, engine.GetBalance("newcomer").IsZero())
}

func TestEngine_TierFollowsBalance(t *testing.T) {
	engine := setupTestEngine(t)

	cases := []struct {
		balance int64
		tier    types.RewardTier
	}{
		{0, types.TierBasic},
		{99, types.TierBasic},
		{100, types.TierIntermediate},
		{999, types.TierIntermediate},
		{1000, types.TierAdvanced},
		{9999, types.TierAdvanced},
		{10000, types.TierPremium},
	}
	for i, tc := range cases {
		user := string(rune('a' + i))
		if tc.balance > 0 {
			assert.Nil(t, engine.Distribute(user, decimal.NewFromInt(tc.balance), types.RewardTaskCompletion))
		}
		assert.Equal(t, tc.tier, engine.GetTier(user), "balance %d", tc.balance)
	}
}

func TestEngine_TierPromotionAccumulates(t *testing.T) {
	engine := setupTestEngine(t)

	assert.Nil(t, engine.Distribute("alice", decimal.NewFromInt(60), types.RewardTaskCompletion))
	assert.Equal(t, types.TierBasic, engine.GetTier("alice"))

	assert.Nil(t, engine.Distribute("alice", decimal.NewFromInt(40), types.RewardTaskCompletion))
	assert.Equal(t, types.TierIntermediate, engine.GetTier("alice"))
	assert.True(t, engine.GetBalance("alice").Equal(decimal.NewFromInt(100)))
}

func TestEngine_CalculateReward_TaskCompletion(t *testing.T) {
	engine := setupTestEngine(t)

	// basic tier, default complexity: 1 * 1
	reward, err := engine.CalculateReward("alice", types.RewardTaskCompletion, nil)
	assert.Nil(t, err)
	assert.True(t, reward.Equal(decimal.NewFromInt(1)))

	reward, err = engine.CalculateReward("alice", types.RewardTaskCompletion, map[string]string{"complexity": "3"})
	assert.Nil(t, err)
	assert.True(t, reward.Equal(decimal.NewFromInt(3)))
}

func TestEngine_CalculateReward_Engagement(t *testing.T) {
	engine := setupTestEngine(t)

	// an hour of engagement doubles the base rate
	reward, err := engine.CalculateReward("alice", types.RewardEngagement, map[string]string{"duration": "3600"})
	assert.Nil(t, err)
	assert.True(t, reward.Equal(decimal.NewFromInt(2)))

	// default duration 0 leaves the base rate
	reward, err = engine.CalculateReward("alice", types.RewardEngagement, nil)
	assert.Nil(t, err)
	assert.True(t, reward.Equal(decimal.NewFromInt(1)))
}

func TestEngine_CalculateReward_MilestoneAndContribution(t *testing.T) {
	engine := setupTestEngine(t)

	reward, err := engine.CalculateReward("alice", types.RewardMilestone, map[string]string{"importance": "3"})
	assert.Nil(t, err)
	assert.True(t, reward.Equal(decimal.NewFromInt(6)))

	reward, err = engine.CalculateReward("alice", types.RewardContribution, map[string]string{"impact": "2"})
	assert.Nil(t, err)
	assert.True(t, reward.Equal(decimal.NewFromInt(3)))
}

func TestEngine_CalculateReward_ScalesWithTier(t *testing.T) {
	engine := setupTestEngine(t)
	assert.Nil(t, engine.Distribute("whale", decimal.NewFromInt(10000), types.RewardContribution))

	// premium tier base rate 10
	reward, err := engine.CalculateReward("whale", types.RewardTaskCompletion, map[string]string{"complexity": "2"})
	assert.Nil(t, err)
	assert.True(t, reward.Equal(decimal.NewFromInt(20)))
}

func TestEngine_CalculateReward_UnknownType(t *testing.T) {
	engine := setupTestEngine(t)
	_, err := engine.CalculateReward("alice", types.RewardType("staking"), nil)
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
}

func TestEngine_CalculateReward_MalformedMetadata(t *testing.T) {
	engine := setupTestEngine(t)
	_, err := engine.CalculateReward("alice", types.RewardTaskCompletion, map[string]string{"complexity": "very hard"})
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
}
