package archive

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, a.Close())
	})
	return a
}

func TestOpenDisabled(t *testing.T) {
	a, err := Open("")
	require.ErrorIs(t, err, ErrDisabled)
	require.Nil(t, a)
}

func TestSaveAndRecent(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	_, err := a.Save(ctx, Record{
		CreatedAt: base,
		SessionID: "s1",
		Case:      "Detective Quest",
		Suspect:   "Suspeito B",
		Evidence:  1,
		Verdict:   "weak",
		Clues:     []string{"Pegadas molhadas perto da lareira"},
	})
	require.NoError(t, err)

	id, err := a.Save(ctx, Record{
		CreatedAt: base.Add(time.Minute),
		SessionID: "s2",
		Case:      "Detective Quest",
		Suspect:   "Suspeito A",
		Evidence:  2,
		Verdict:   "sustained",
		Clues:     []string{"Bilhete rasgado com hora marcada", "Carta com assinatura parcial"},
	})
	require.NoError(t, err)
	require.Positive(t, id)

	records, err := a.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	latest := records[0]
	require.Equal(t, id, latest.ID)
	require.Equal(t, "s2", latest.SessionID)
	require.Equal(t, "Suspeito A", latest.Suspect)
	require.Equal(t, 2, latest.Evidence)
	require.Equal(t, "sustained", latest.Verdict)
	require.Equal(t, []string{"Bilhete rasgado com hora marcada", "Carta com assinatura parcial"}, latest.Clues)
	require.True(t, latest.CreatedAt.Equal(base.Add(time.Minute)))

	records, err = a.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestSaveWithoutClues(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	_, err := a.Save(ctx, Record{SessionID: "s", Case: "c", Suspect: "Suspeito D", Verdict: "weak"})
	require.NoError(t, err)

	records, err := a.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Empty(t, records[0].Clues)
	require.False(t, records[0].CreatedAt.IsZero())
}
