package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awsinventory/errors"
)

func TestCustomError(t *testing.T) {
	wrapped := stderrors.New("connection refused")
	err := errors.New(errors.ErrRegionAccess, "could not list region",
		map[string]interface{}{
			"region": "eu-west-1",
		}, wrapped)

	assert.Equal(t, "[REGION_ACCESS_ERROR] could not list region: connection refused", err.Error())
	assert.True(t, errors.Is(err, errors.ErrRegionAccess))
	assert.False(t, errors.Is(err, errors.ErrConfigParse))
	assert.ErrorIs(t, err, wrapped)
}

func TestMissingFieldError(t *testing.T) {
	t.Run("with record identity", func(t *testing.T) {
		err := errors.NewMissingField("State", "i-1234")
		assert.Equal(t, `[MISSING_FIELD_ERROR] required field "State" missing from record i-1234`, err.Error())
	})

	t.Run("without record identity", func(t *testing.T) {
		err := errors.NewMissingField("InstanceId", "")
		assert.Equal(t, `[MISSING_FIELD_ERROR] required field "InstanceId" missing from record`, err.Error())
	})

	t.Run("matchable through wrapping", func(t *testing.T) {
		inner := errors.NewMissingField("LaunchTime", "i-1")
		err := fmt.Errorf("region us-east-2: %w", inner)

		var missing *errors.MissingFieldError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "LaunchTime", missing.Field)
		assert.Equal(t, "i-1", missing.RecordID)
	})

	t.Run("matchable through CustomError", func(t *testing.T) {
		inner := errors.NewMissingField("Tags", "i-2")
		err := errors.New(errors.ErrMissingField, "failed to normalize instance record",
			map[string]interface{}{
				"region": "us-west-2",
			}, inner)

		var missing *errors.MissingFieldError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "Tags", missing.Field)
	})
}
