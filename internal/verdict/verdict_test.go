package verdict_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tatianab/detective-quest/internal/ledger"
	"github.com/tatianab/detective-quest/internal/suspects"
	"github.com/tatianab/detective-quest/internal/verdict"
)

func newFixture() (*ledger.Ledger, *suspects.Index) {
	l := ledger.New()
	for _, c := range []string{
		"Faca com monograma X",
		"Carta com assinatura parcial",
		"Pegadas molhadas perto da lareira",
	} {
		l.Insert(c)
	}
	x := suspects.New()
	x.Associate("Faca com monograma X", "Suspeito A")
	x.Associate("Carta com assinatura parcial", "Suspeito A")
	x.Associate("Pegadas molhadas perto da lareira", "Suspeito B")
	return l, x
}

func TestTally(t *testing.T) {
	l, x := newFixture()

	tests := []struct {
		accused string
		want    int
		verdict verdict.Verdict
	}{
		{accused: "Suspeito A", want: 2, verdict: verdict.Sustained},
		{accused: "Suspeito B", want: 1, verdict: verdict.Weak},
		{accused: "Suspeito C", want: 0, verdict: verdict.Weak},
		{accused: "suspeito a", want: 0, verdict: verdict.Weak},
	}
	for _, tt := range tests {
		t.Run(tt.accused, func(t *testing.T) {
			got := verdict.Tally(tt.accused, l, x)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.verdict, verdict.Judge(got))
		})
	}
}

func TestTallySkipsUnassociatedClues(t *testing.T) {
	l, x := newFixture()
	l.Insert("Um guarda-chuva sem dono")
	require.Equal(t, 2, verdict.Tally("Suspeito A", l, x))
}

func TestJudge(t *testing.T) {
	require.Equal(t, verdict.Weak, verdict.Judge(0))
	require.Equal(t, verdict.Weak, verdict.Judge(verdict.Threshold-1))
	require.Equal(t, verdict.Sustained, verdict.Judge(verdict.Threshold))
	require.Equal(t, verdict.Sustained, verdict.Judge(8))
	require.Equal(t, "sustained", verdict.Sustained.String())
	require.Equal(t, "weak", verdict.Weak.String())
}

func TestEvaluate(t *testing.T) {
	l, x := newFixture()
	a := verdict.Evaluate("Suspeito A", l, x)
	require.Equal(t, verdict.Accusation{
		Suspect:  "Suspeito A",
		Evidence: 2,
		Matching: []string{"Carta com assinatura parcial", "Faca com monograma X"},
		Verdict:  verdict.Sustained,
	}, a)

	empty := verdict.Evaluate("Suspeito A", ledger.New(), x)
	require.Zero(t, empty.Evidence)
	require.Equal(t, verdict.Weak, empty.Verdict)
}

func TestEvaluateAgreesWithTally(t *testing.T) {
	l, x := newFixture()
	l.Insert("Um guarda-chuva sem dono")
	x.Associate("Carta com assinatura parcial", "Suspeito B")

	for _, accused := range []string{"Suspeito A", "Suspeito B", "Suspeito C", ""} {
		a := verdict.Evaluate(accused, l, x)
		require.Equal(t, verdict.Tally(accused, l, x), a.Evidence, accused)
		require.Len(t, a.Matching, a.Evidence, accused)
		require.Equal(t, verdict.Judge(a.Evidence), a.Verdict, accused)
	}
	require.Equal(t, []string{"Carta com assinatura parcial", "Pegadas molhadas perto da lareira"},
		verdict.Evaluate("Suspeito B", l, x).Matching)
}
