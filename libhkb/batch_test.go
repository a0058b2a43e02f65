package libhkb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAll(t *testing.T) {
	r := resolverAt(utc(2023, time.June, 14, 22, 0))

	sentences := []Sentence{
		In{Amount: "5", Unit: "minutes"},
		Tomorrow{At: at("09", "30")},
		At{Clock: AtClause{Hour: "24", Minute: "00"}},
		On{Date: OnClause{Day: "31st", Month: "april"}},
		Next{Target: "week"},
	}

	results, err := ResolveAll(context.Background(), r, sentences, 2)
	require.NoError(t, err)
	require.Len(t, results, len(sentences))

	for i, res := range results {
		assert.Equal(t, sentences[i], res.Sentence)
	}

	assert.Equal(t, Relative{Amount: 5, Unit: Minute}, results[0].Spec)
	assert.Equal(t, Absolute{Time: utc(2023, time.June, 15, 9, 30)}, results[1].Spec)
	assert.ErrorIs(t, results[2].Err, ErrInvalidTime)
	assert.Nil(t, results[2].Spec)
	assert.ErrorIs(t, results[3].Err, ErrInvalidDate)
	assert.Equal(t, Relative{Amount: 7, Unit: Day}, results[4].Spec)
}

func TestResolveAllUnbounded(t *testing.T) {
	r := resolverAt(utc(2023, time.June, 14, 22, 0))

	sentences := make([]Sentence, 100)
	for i := range sentences {
		sentences[i] = InAlt{Cardinal: "two"}
	}

	results, err := ResolveAll(context.Background(), r, sentences, 0)
	require.NoError(t, err)
	for _, res := range results {
		require.NoError(t, res.Err)
		assert.Equal(t, Relative{Amount: 2, Unit: Day}, res.Spec)
	}
}

func TestResolveAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ResolveAll(ctx, resolverAt(utc(2023, time.June, 14, 22, 0)), []Sentence{Tomorrow{}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
