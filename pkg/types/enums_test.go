package types

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearedStateTokens(t *testing.T) {
	want := map[ClearedState]string{
		Cleared:    "cleared",
		Uncleared:  "uncleared",
		Reconciled: "reconciled",
	}
	require.Len(t, ClearedStates, len(want))
	for _, c := range ClearedStates {
		tok, err := c.Token()
		require.NoError(t, err)
		assert.Equal(t, want[c], tok)
	}
}

func TestFlagColorTokens(t *testing.T) {
	want := []string{"red", "orange", "yellow", "green", "blue", "purple"}
	require.Len(t, FlagColors, len(want))
	for i, f := range FlagColors {
		tok, err := f.Token()
		require.NoError(t, err)
		assert.Equal(t, want[i], tok)
	}
}

func TestFrequencyTokens(t *testing.T) {
	want := []string{
		"never", "daily", "weekly", "everyOtherWeek", "twiceAMonth", "every4Weeks",
		"monthly", "everyOtherMonth", "every3Months", "every4Months", "twiceAYear",
		"yearly", "everyOtherYear",
	}
	require.Len(t, Frequencies, len(want))
	for i, f := range Frequencies {
		tok, err := f.Token()
		require.NoError(t, err)
		assert.Equal(t, want[i], tok)
	}
}

func TestTokensAreNeverNumeric(t *testing.T) {
	var toks []string
	for _, c := range ClearedStates {
		tok, _ := c.Token()
		toks = append(toks, tok)
	}
	for _, f := range FlagColors {
		tok, _ := f.Token()
		toks = append(toks, tok)
	}
	for _, f := range Frequencies {
		tok, _ := f.Token()
		toks = append(toks, tok)
	}
	for _, tok := range toks {
		_, err := strconv.Atoi(tok)
		assert.Error(t, err, "token %q parses as a number", tok)
	}
}

func TestUnknownVariantToken(t *testing.T) {
	t.Run("zero values are invalid", func(t *testing.T) {
		_, err := ClearedState(0).Token()
		assert.ErrorIs(t, err, ErrUnknownVariant)
		_, err = FlagColor(0).Token()
		assert.ErrorIs(t, err, ErrUnknownVariant)
		_, err = Frequency(0).Token()
		assert.ErrorIs(t, err, ErrUnknownVariant)
	})

	t.Run("out of range values are invalid", func(t *testing.T) {
		_, err := ClearedState(99).Token()
		assert.ErrorIs(t, err, ErrUnknownVariant)
		_, err = FlagColor(-1).Token()
		assert.ErrorIs(t, err, ErrUnknownVariant)
		_, err = Frequency(EveryOtherYear + 1).Token()
		assert.ErrorIs(t, err, ErrUnknownVariant)
	})

	t.Run("String falls back to placeholder", func(t *testing.T) {
		assert.Equal(t, "<invalid>", Frequency(0).String())
		assert.Equal(t, "weekly", Weekly.String())
	})
}

func TestEnumJSONDecoding(t *testing.T) {
	t.Run("known tokens decode", func(t *testing.T) {
		var tx Transaction
		err := json.Unmarshal([]byte(`{"id":"t1","cleared":"reconciled","flag_color":"purple"}`), &tx)
		require.NoError(t, err)
		assert.Equal(t, Reconciled, tx.Cleared)
		require.NotNil(t, tx.FlagColor)
		assert.Equal(t, FlagPurple, *tx.FlagColor)
	})

	t.Run("null flag color stays absent", func(t *testing.T) {
		var tx Transaction
		err := json.Unmarshal([]byte(`{"id":"t1","cleared":"cleared","flag_color":null}`), &tx)
		require.NoError(t, err)
		assert.Nil(t, tx.FlagColor)
	})

	t.Run("unknown frequency fails", func(t *testing.T) {
		var st ScheduledTransaction
		err := json.Unmarshal([]byte(`{"id":"s1","frequency":"everyFortnight"}`), &st)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownVariant)
	})

	t.Run("unknown cleared state fails", func(t *testing.T) {
		var tx Transaction
		err := json.Unmarshal([]byte(`{"id":"t1","cleared":"pending"}`), &tx)
		assert.ErrorIs(t, err, ErrUnknownVariant)
	})
}
