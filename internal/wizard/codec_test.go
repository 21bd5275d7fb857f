package wizard

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragmentRoundTrip(t *testing.T) {
	s := NewStore()
	applyFixture(t, s)
	_, ok := s.SetHoursCell(0, 1, 4)
	require.True(t, ok)
	snap := Serialize(s, Step3)

	fragment, err := EncodeFragment(snap)
	require.NoError(t, err)
	assert.NotContains(t, fragment, "=")

	decoded, ok := DecodeFragment(fragment)
	require.True(t, ok)
	assert.Equal(t, snap, decoded)
}

func TestDecodeFragmentToleratesMarkerAndPadding(t *testing.T) {
	s := NewStore()
	applyFixture(t, s)
	fragment, err := EncodeFragment(Serialize(s, Step2))
	require.NoError(t, err)

	decoded, ok := DecodeFragment(FragmentPrefix + fragment)
	require.True(t, ok)
	assert.Equal(t, 5, decoded.Days)

	_, ok = DecodeFragment("state=" + fragment + "==")
	assert.True(t, ok)
}

func TestDecodeFragmentRejectsGarbage(t *testing.T) {
	for _, fragment := range []string{
		"",
		"#state=",
		"not base64!!!",
		base64.RawURLEncoding.EncodeToString([]byte("[1,2,3]")),
		base64.RawURLEncoding.EncodeToString([]byte(`{"days":`)),
	} {
		_, ok := DecodeFragment(fragment)
		assert.False(t, ok, "fragment %q should not decode", fragment)
	}
}

func TestDecodeFragmentLegacyAvailabilityCells(t *testing.T) {
	raw := `{"currentStep":2,"days":2,"morningHours":2,"afternoonHours":0,` +
		`"numProf":1,"numClass":1,"availability":[[true,[false]]],` +
		`"hoursMatrix":[[0]]}`
	fragment := base64.RawURLEncoding.EncodeToString([]byte(raw))

	snap, ok := DecodeFragment(fragment)
	require.True(t, ok)
	require.Len(t, snap.Availability, 1)
	assert.Equal(t, AvailabilityCell{true, true}, snap.Availability[0][0])
	assert.Equal(t, AvailabilityCell{false, false}, snap.Availability[0][1])
}
