package domain_test

import (
	"testing"

	"github.com/aretw0/latword/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelSequence_Name(t *testing.T) {
	tests := []struct {
		name string
		seq  domain.LabelSequence
		want string
	}{
		{name: "Empty Is Epsilon", seq: nil, want: "0"},
		{name: "Single", seq: domain.LabelSequence{3}, want: "3"},
		{name: "Joined Without Trailing Separator", seq: domain.LabelSequence{1, 2}, want: "1_2"},
		{name: "Multi Digit", seq: domain.LabelSequence{12, 345, 6}, want: "12_345_6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.seq.Name())
		})
	}
}

func TestLabelSequence_Append(t *testing.T) {
	base := make(domain.LabelSequence, 1, 8)
	base[0] = 1

	a := base.Append(2)
	b := base.Append(3)

	// Both children must survive: no shared backing array with the parent.
	assert.Equal(t, domain.LabelSequence{1, 2}, a)
	assert.Equal(t, domain.LabelSequence{1, 3}, b)
	assert.Equal(t, domain.LabelSequence{1}, base)

	assert.Equal(t, base, base.Append(domain.Epsilon), "epsilon is never stored")
}

func TestLabelSequence_KeyRoundTrip(t *testing.T) {
	for _, seq := range []domain.LabelSequence{{}, {7}, {1, 2, 3}} {
		got, err := domain.ParseSequenceKey(seq.Key())
		require.NoError(t, err)
		assert.True(t, seq.Equal(got), "round trip of %v gave %v", seq, got)
	}

	_, err := domain.ParseSequenceKey("1_x")
	assert.Error(t, err)
}

func TestLabelSequence_KeyIsOrderSensitive(t *testing.T) {
	assert.NotEqual(t, domain.LabelSequence{1, 2}.Key(), domain.LabelSequence{2, 1}.Key())
	assert.NotEqual(t, domain.LabelSequence{12}.Key(), domain.LabelSequence{1, 2}.Key())
}
