package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTallyValueCodec(t *testing.T) {
	t.Parallel()

	codec := TallyValueCodec{}

	t.Run("RoundTrip", func(t *testing.T) {
		data, err := codec.Encode(TallyValue(42))
		require.NoError(t, err)
		assert.Equal(t, "42", string(data))

		v, err := codec.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, TallyValue(42), v)
	})

	t.Run("InvalidValueType", func(t *testing.T) {
		_, err := codec.Encode("42")
		require.ErrorIs(t, err, ErrInvalidValueType)
	})

	t.Run("InvalidData", func(t *testing.T) {
		_, err := codec.Decode([]byte("not-a-number"))
		require.Error(t, err)
	})
}
