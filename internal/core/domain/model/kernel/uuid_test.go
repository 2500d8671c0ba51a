package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	id := kernel.NewUUID()

	require.NoError(t, id.Validate())
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, id.String())

	// Two generated identifiers never collide in practice.
	assert.False(t, id.IsEqual(kernel.NewUUID()))
}

// Identifiers arrive in path parameters and JSON bodies as strings; parsing
// must accept the canonical form and reject everything malformed.
func TestUUIDFromString(t *testing.T) {
	const canonical = "3f2b8a10-77cd-4e21-9b65-0d41c2a90f11"

	t.Run("canonical_form_roundtrips", func(t *testing.T) {
		id, err := kernel.UUIDFromString(canonical)

		require.NoError(t, err)
		require.NoError(t, id.Validate())
		assert.Equal(t, canonical, id.String())
	})

	t.Run("malformed_input_is_rejected", func(t *testing.T) {
		tests := []struct {
			name  string
			input string
		}{
			{"empty", ""},
			{"not_a_uuid", "order-42"},
			{"truncated", "3f2b8a10-77cd-4e21-9b65"},
			{"trailing_garbage", canonical + "-x"},
			{"non_hex_digits", "zzzb8a10-77cd-4e21-9b65-0d41c2a90f11"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := kernel.UUIDFromString(tt.input)

				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid UUID format")
			})
		}
	})
}

// Persistence stores identifiers in binary form; rehydration goes through
// UUIDFromBytes, which refuses anything that would validate as unconstructed.
func TestUUIDFromBytes(t *testing.T) {
	t.Run("sixteen_bytes_roundtrip", func(t *testing.T) {
		original := kernel.NewUUID()
		raw := original.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("wrong_length_is_rejected", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x3f, 0x2b, 0x8a})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("all_zero_bytes_are_rejected", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		require.Error(t, err)
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_Bytes(t *testing.T) {
	id := kernel.NewUUID()
	raw := id.Bytes()

	assert.IsType(t, uuid.UUID{}, raw)
	assert.Equal(t, id.String(), raw.String())

	// Bytes returns a copy; mutating it leaves the identifier untouched.
	before := id.String()
	for i := range raw {
		raw[i] = 0xff
	}
	assert.Equal(t, before, id.String())
}

func TestUUID_IsEqual(t *testing.T) {
	const canonical = "3f2b8a10-77cd-4e21-9b65-0d41c2a90f11"

	a, err := kernel.UUIDFromString(canonical)
	require.NoError(t, err)
	b, err := kernel.UUIDFromString(canonical)
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.True(t, b.IsEqual(a))
	assert.False(t, a.IsEqual(kernel.NewUUID()))

	var zeroA, zeroB kernel.UUID
	assert.True(t, zeroA.IsEqual(zeroB))
	assert.False(t, zeroA.IsEqual(a))
}

func TestUUID_Validate(t *testing.T) {
	t.Run("constructed_id_is_valid", func(t *testing.T) {
		assert.NoError(t, kernel.NewUUID().Validate())
	})

	t.Run("zero_value_is_not_constructed", func(t *testing.T) {
		var id kernel.UUID

		err := id.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})

	t.Run("parsed_nil_uuid_is_not_constructed", func(t *testing.T) {
		id, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")
		require.NoError(t, err)

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})
}
