package livequiz

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode_LengthAndAlphabet(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		code := GenerateCode(rng)

		assert.Len(t, code, CodeLength)
		for _, r := range code {
			assert.Contains(t, codeAlphabet, string(r),
				"Код не должен содержать неоднозначных символов (0, 1, I, O)")
		}
	}
}

func TestGenerateCode_ExcludesAmbiguousCharacters(t *testing.T) {
	assert.NotContains(t, codeAlphabet, "0")
	assert.NotContains(t, codeAlphabet, "1")
	assert.NotContains(t, codeAlphabet, "I")
	assert.NotContains(t, codeAlphabet, "O")
}

func TestGenerateNickname_Format(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		nickname := GenerateNickname(rng)

		parts := strings.Split(nickname, " ")
		require.Len(t, parts, 2, "Никнейм должен иметь вид 'Adjective Animal'")
		assert.Contains(t, nicknameAdjectives, parts[0])
		assert.Contains(t, nicknameAnimals, parts[1])
	}
}
