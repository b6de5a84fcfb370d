package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases and collapses whitespace", "  Vladimir   PUTIN ", "vladimir putin"},
		{"strips punctuation", "O'Brien, John-Paul", "o brien john paul"},
		{"drops courtesy affixes", "Dr. John Smith Jr.", "john smith"},
		{"empty input", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "vp", Initials("Vladimir Putin"))
	assert.Equal(t, "", Initials(""))
}

func TestPhoneticKey(t *testing.T) {
	t.Run("sound-alike spellings collide", func(t *testing.T) {
		assert.Equal(t, PhoneticKey("John Smith"), PhoneticKey("Jon Smyth"))
		assert.Equal(t, PhoneticKey("Philip"), PhoneticKey("Filip"))
		assert.Equal(t, PhoneticKey("Katherine"), PhoneticKey("Catherine"))
	})

	t.Run("distinct names stay apart", func(t *testing.T) {
		assert.NotEqual(t, PhoneticKey("John Smith"), PhoneticKey("John Smithson"))
		assert.NotEqual(t, PhoneticKey("Ivanov"), PhoneticKey("Petrov"))
	})

	t.Run("token count is part of the key", func(t *testing.T) {
		assert.NotEqual(t, PhoneticKey("John Smith"), PhoneticKey("John Michael Smith"))
	})

	t.Run("empty name yields empty key", func(t *testing.T) {
		assert.Equal(t, "", PhoneticKey("  "))
	})
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 1.0, Ratio("putin", "putin"))
	assert.Equal(t, 1.0, Ratio("", ""))
	assert.InDelta(t, 0.8, Ratio("jon smyth", "john smith"), 0.01)
	assert.Less(t, Ratio("vladimir", "ivan"), 0.5)
}

func TestTokenSortRatio(t *testing.T) {
	assert.Equal(t, 1.0, TokenSortRatio("putin vladimir", "vladimir putin"))
	assert.Greater(t, TokenSortRatio("smith john", "john smyth"), 0.75)
}

func TestTokenSetRatio(t *testing.T) {
	t.Run("token subset scores 1.0", func(t *testing.T) {
		assert.Equal(t, 1.0, TokenSetRatio("vladimir putin", "vladimir vladimirovich putin"))
		assert.Equal(t, 1.0, TokenSetRatio("vladimir vladimirovich putin", "vladimir putin"))
	})

	t.Run("reordered tokens score 1.0", func(t *testing.T) {
		assert.Equal(t, 1.0, TokenSetRatio("putin vladimir", "vladimir putin"))
	})

	t.Run("disjoint sets fall back to sorted-token ratio", func(t *testing.T) {
		assert.InDelta(t, 0.8, TokenSetRatio("jon smyth", "john smith"), 0.01)
		assert.Less(t, TokenSetRatio("angela merkel", "vladimir putin"), 0.5)
	})
}

func TestPartialRatio(t *testing.T) {
	assert.Equal(t, 1.0, PartialRatio("putin", "vladimir putin"))
	assert.Less(t, PartialRatio("merkel", "vladimir putin"), 0.6)
	assert.Zero(t, PartialRatio("", "putin"))
}
