package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
)

func TestCanTransition(t *testing.T) {
	rules := NewPipelineRules()

	t.Run("allows forward movement through the pipeline", func(t *testing.T) {
		assert.True(t, rules.CanTransition(dating.StageNew, dating.StageScreening))
		assert.True(t, rules.CanTransition(dating.StageScreening, dating.StageProposed))
		assert.True(t, rules.CanTransition(dating.StageProposed, dating.StageApproved))
		assert.True(t, rules.CanTransition(dating.StageApproved, dating.StageScheduled))
		assert.True(t, rules.CanTransition(dating.StageScheduled, dating.StageCompleted))
		assert.True(t, rules.CanTransition(dating.StageCompleted, dating.StageArchived))
	})

	t.Run("allows rejection from active stages", func(t *testing.T) {
		for _, from := range []dating.PipelineStage{
			dating.StageNew, dating.StageScreening, dating.StageProposed, dating.StageApproved,
		} {
			assert.True(t, rules.CanTransition(from, dating.StageRejected), "from %s", from)
		}
	})

	t.Run("a cancelled date returns the candidate to approved", func(t *testing.T) {
		assert.True(t, rules.CanTransition(dating.StageScheduled, dating.StageApproved))
	})

	t.Run("forbids skipping stages", func(t *testing.T) {
		assert.False(t, rules.CanTransition(dating.StageNew, dating.StageApproved))
		assert.False(t, rules.CanTransition(dating.StageScreening, dating.StageScheduled))
		assert.False(t, rules.CanTransition(dating.StageNew, dating.StageCompleted))
	})

	t.Run("forbids moving backwards", func(t *testing.T) {
		assert.False(t, rules.CanTransition(dating.StageApproved, dating.StageScreening))
		assert.False(t, rules.CanTransition(dating.StageProposed, dating.StageNew))
	})

	t.Run("archived is terminal", func(t *testing.T) {
		for _, to := range []dating.PipelineStage{
			dating.StageNew, dating.StageScreening, dating.StageProposed, dating.StageApproved,
			dating.StageScheduled, dating.StageCompleted, dating.StageRejected,
		} {
			assert.False(t, rules.CanTransition(dating.StageArchived, to), "to %s", to)
		}
	})

	t.Run("rejected can only be archived", func(t *testing.T) {
		assert.True(t, rules.CanTransition(dating.StageRejected, dating.StageArchived))
		assert.False(t, rules.CanTransition(dating.StageRejected, dating.StageScreening))
		assert.False(t, rules.CanTransition(dating.StageRejected, dating.StageApproved))
	})

	t.Run("rejection is not possible after a completed date", func(t *testing.T) {
		assert.False(t, rules.CanTransition(dating.StageCompleted, dating.StageRejected))
		assert.False(t, rules.CanTransition(dating.StageScheduled, dating.StageRejected))
	})
}

func TestAuthorizeTransition(t *testing.T) {
	rules := NewPipelineRules()

	t.Run("rejects unknown target stage", func(t *testing.T) {
		err := rules.AuthorizeTransition(dating.RoleSingle, dating.TrustFullDelegation, dating.StageNew, "limbo")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown pipeline stage")
	})

	t.Run("rejects graph violations regardless of role", func(t *testing.T) {
		err := rules.AuthorizeTransition(dating.RoleSingle, dating.TrustFullDelegation, dating.StageNew, dating.StageApproved)
		require.Error(t, err)
	})

	t.Run("the single has full authority over their pipeline", func(t *testing.T) {
		assert.NoError(t, rules.AuthorizeTransition(dating.RoleSingle, dating.TrustFullDelegation, dating.StageProposed, dating.StageApproved))
		assert.NoError(t, rules.AuthorizeTransition(dating.RoleSingle, dating.TrustFullDelegation, dating.StageNew, dating.StageScreening))
	})

	t.Run("view-only wingman cannot touch the pipeline", func(t *testing.T) {
		err := rules.AuthorizeTransition(dating.RoleWingman, dating.TrustViewOnly, dating.StageNew, dating.StageScreening)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "view-only")
	})

	t.Run("approval-required wingman works the early pipeline", func(t *testing.T) {
		assert.NoError(t, rules.AuthorizeTransition(dating.RoleWingman, dating.TrustApprovalRequired, dating.StageNew, dating.StageScreening))
		assert.NoError(t, rules.AuthorizeTransition(dating.RoleWingman, dating.TrustApprovalRequired, dating.StageScreening, dating.StageProposed))
	})

	t.Run("only full delegation lets a wingman decide a proposal", func(t *testing.T) {
		err := rules.AuthorizeTransition(dating.RoleWingman, dating.TrustApprovalRequired, dating.StageProposed, dating.StageApproved)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "only the single")

		assert.NoError(t, rules.AuthorizeTransition(dating.RoleWingman, dating.TrustFullDelegation, dating.StageProposed, dating.StageApproved))
		assert.NoError(t, rules.AuthorizeTransition(dating.RoleWingman, dating.TrustFullDelegation, dating.StageProposed, dating.StageRejected))
	})

	t.Run("candidates can never move themselves", func(t *testing.T) {
		err := rules.AuthorizeTransition(dating.RoleCandidate, dating.TrustFullDelegation, dating.StageNew, dating.StageScreening)
		require.Error(t, err)
	})
}
