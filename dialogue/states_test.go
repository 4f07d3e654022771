package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbqjunction/tabletalk/knowledge"
)

func TestDefaultStatesLoad(t *testing.T) {
	reg, err := NewRegistry(knowledge.NewStore())
	require.NoError(t, err)

	for _, id := range []string{
		StateStart, StateVerifyLocation, StateCollectName, StateCollectPhone,
		StateConfirmDetails, StateDiscover, StateProvideInfo, StateAskMoreHelp,
		StateCollectDateTime, StateCollectPaxSize, StateConfirmBooking,
		StateBookingConfirmed, StateCollectBookingRef, StateVerifyBooking,
		StateCollectNewDateTime, StateConfirmModification, StateModificationConfirmd,
		StateConfirmCancellation, StateCancellationConfirmd, StateEnd,
	} {
		assert.True(t, reg.Has(id), "missing state %s", id)
	}
}

func TestLoadRejectsBrokenGraphs(t *testing.T) {
	tests := []struct {
		name    string
		defs    []*StateDef
		wantErr string
	}{
		{
			name: "missing wildcard",
			defs: []*StateDef{
				{ID: "A", Template: "a", Transitions: map[string]string{"yes": "A"}},
			},
			wantErr: "wildcard",
		},
		{
			name: "unknown transition target",
			defs: []*StateDef{
				{ID: "A", Template: "a", Transitions: map[string]string{Wildcard: "MISSING"}},
			},
			wantErr: "unknown state",
		},
		{
			name: "unbound placeholder",
			defs: []*StateDef{
				{ID: "A", Template: "hello {name}", Transitions: map[string]string{Wildcard: "A"}},
			},
			wantErr: "unbound placeholder",
		},
		{
			name: "unused binding",
			defs: []*StateDef{
				{
					ID: "A", Template: "hello", Transitions: map[string]string{Wildcard: "A"},
					Bindings: []Binding{{Placeholder: "name", Slot: SlotName}},
				},
			},
			wantErr: "never uses",
		},
		{
			name: "duplicate state",
			defs: []*StateDef{
				{ID: "A", Template: "a", Transitions: map[string]string{Wildcard: "A"}},
				{ID: "A", Template: "b", Transitions: map[string]string{Wildcard: "A"}},
			},
			wantErr: "duplicate",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.defs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidators(t *testing.T) {
	assert.True(t, validYesNo("yes"))
	assert.True(t, validYesNo("no"))
	assert.False(t, validYesNo("maybe"))

	assert.True(t, validPhone("9876543210"))
	assert.True(t, validPhone("98765-43210"))
	assert.False(t, validPhone("12345"))

	assert.True(t, validPax("4"))
	assert.False(t, validPax("0"))
	assert.False(t, validPax("-3"))
	assert.False(t, validPax("abc"))

	assert.True(t, validBookingRef("bn123456"))
	assert.True(t, validBookingRef("XY000001"))
	assert.False(t, validBookingRef("123456"))
	assert.False(t, validBookingRef("BN12345"))
	assert.False(t, validBookingRef("BN1234567"))

	assert.True(t, validDiscoverOption("1"))
	assert.True(t, validDiscoverOption("7"))
	assert.False(t, validDiscoverOption("0"))
	assert.False(t, validDiscoverOption("8"))
	assert.False(t, validDiscoverOption("12"))
}

func TestSlotsApplyValidation(t *testing.T) {
	var s Slots

	s.apply(SlotPhoneNumber, "98-7654-3210")
	assert.Equal(t, "9876543210", s.PhoneNumber)

	s.apply(SlotPhoneNumber, "12345")
	assert.Equal(t, "9876543210", s.PhoneNumber, "short numbers are ignored")

	s.apply(SlotPaxSize, "abc")
	assert.Zero(t, s.PaxSize)
	s.apply(SlotPaxSize, "6")
	assert.Equal(t, 6, s.PaxSize)

	s.apply(SlotBookingRef, "nope")
	assert.Empty(t, s.BookingRef)
	s.apply(SlotBookingRef, "BN123456")
	assert.Equal(t, "BN123456", s.BookingRef)

	s.apply(SlotActionType, "modify")
	assert.Equal(t, ActionModify, s.ActionType)
	s.apply(SlotActionType, "explode")
	assert.Equal(t, ActionModify, s.ActionType, "unknown actions are ignored")

	s.apply("unknownKey", "value")
	s.apply(SlotName, "   ")
	assert.Empty(t, s.Name)
}
