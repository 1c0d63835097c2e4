package randomutils

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestChoose_EmptyChooser tests that choosing from an empty chooser returns an error
func TestChoose_EmptyChooser(t *testing.T) {
	chooser := NewWeightedRandomChooser[string](rand.New(rand.NewSource(1)))
	choice, err := chooser.Choose()
	assert.Error(t, err)
	assert.Nil(t, choice)
}

// TestChoose_ZeroWeights tests that a chooser holding only zero-weight choices cannot make a selection
func TestChoose_ZeroWeights(t *testing.T) {
	chooser := NewWeightedRandomChooser[string](rand.New(rand.NewSource(1)))
	chooser.AddChoices(NewWeightedRandomChoice("a", 0), NewWeightedRandomChoice("b", 0))

	_, err := chooser.Choose()
	assert.Error(t, err)
}

// TestChoose_SingleChoice tests that a single choice is always returned
func TestChoose_SingleChoice(t *testing.T) {
	chooser := NewWeightedRandomChooser[string](rand.New(rand.NewSource(1)))
	chooser.AddChoices(NewWeightedRandomChoice("only", 1))

	for i := 0; i < 20; i++ {
		choice, err := chooser.Choose()
		assert.NoError(t, err)
		assert.Equal(t, "only", *choice)
	}
}

// TestChoose_RespectsWeights tests that selection frequencies roughly follow the configured weights
func TestChoose_RespectsWeights(t *testing.T) {
	chooser := NewWeightedRandomChooser[string](rand.New(rand.NewSource(42)))
	chooser.AddChoices(
		NewWeightedRandomChoice("common", 9),
		NewWeightedRandomChoice("rare", 1),
	)

	counts := make(map[string]int)
	for i := 0; i < 10000; i++ {
		choice, err := chooser.Choose()
		assert.NoError(t, err)
		counts[*choice]++
	}

	// With a 9:1 weighting, the common choice should dominate while the rare one still appears.
	assert.Greater(t, counts["common"], 8000)
	assert.Greater(t, counts["rare"], 500)
}

// TestChoiceCount tests that the chooser reports how many choices it holds
func TestChoiceCount(t *testing.T) {
	chooser := NewWeightedRandomChooser[int](rand.New(rand.NewSource(1)))
	assert.Equal(t, 0, chooser.ChoiceCount())

	chooser.AddChoices(NewWeightedRandomChoice(1, 1), NewWeightedRandomChoice(2, 1))
	assert.Equal(t, 2, chooser.ChoiceCount())
}
