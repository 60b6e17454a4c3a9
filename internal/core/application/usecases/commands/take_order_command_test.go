package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTakeOrderCommand(t *testing.T) {
	t.Run("valid_take_request", func(t *testing.T) {
		cmd, err := commands.NewTakeOrderCommand(42, "TAKEN")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, int64(42), cmd.OrderID())
		assert.Equal(t, order.Taken, cmd.RequestedStatus())
	})

	t.Run("missing_status_is_required_error", func(t *testing.T) {
		_, err := commands.NewTakeOrderCommand(42, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unrecognized_status_is_invalid", func(t *testing.T) {
		_, err := commands.NewTakeOrderCommand(42, "DELIVERED")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unassigned_is_not_a_valid_target", func(t *testing.T) {
		_, err := commands.NewTakeOrderCommand(42, "UNASSIGNED")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero_value_command_fails_validation", func(t *testing.T) {
		var cmd commands.TakeOrderCommand

		err := cmd.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrTakeOrderCommandIsNotConstructed)
	})
}
