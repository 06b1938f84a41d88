package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tatianab/detective-quest/internal/archive"
	"github.com/tatianab/detective-quest/internal/engine"
	"github.com/tatianab/detective-quest/internal/models"
	"github.com/tatianab/detective-quest/internal/verdict"
)

type fakeRecorder struct {
	records []archive.Record
	err     error
}

func (f *fakeRecorder) Save(_ context.Context, r archive.Record) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.records = append(f.records, r)
	return int64(len(f.records)), nil
}

func play(t *testing.T, input string, opts ...engine.Option) (Result, string) {
	t.Helper()
	eng, err := engine.NewEngine(context.Background(), "", opts...)
	require.NoError(t, err)
	c, err := models.DefaultCase()
	require.NoError(t, err)
	s, err := eng.NewSession(c)
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := NewGame(eng, s, strings.NewReader(input), &out).Play(context.Background())
	require.NoError(t, err)
	return res, out.String()
}

func TestPlayLeftLeftStop(t *testing.T) {
	res, out := play(t, "e\ne\ns\nSuspeito A\n")

	require.Equal(t, []string{"Hall de Entrada", "Sala de Estar", "Biblioteca"}, res.Visited)
	require.Equal(t, []string{
		"Bilhete rasgado com hora marcada",
		"Livro apontando para passagem secreta",
		"Pegadas molhadas perto da lareira",
	}, res.Clues)

	require.NotNil(t, res.Accusation)
	require.Equal(t, 2, res.Accusation.Evidence)
	require.Equal(t, verdict.Sustained, res.Accusation.Verdict)

	// Clues are announced in visit order.
	first := strings.Index(out, `Pista encontrada: "Bilhete rasgado com hora marcada"`)
	second := strings.Index(out, `Pista encontrada: "Pegadas molhadas perto da lareira"`)
	third := strings.Index(out, `Pista encontrada: "Livro apontando para passagem secreta"`)
	require.True(t, first >= 0 && first < second && second < third, out)

	require.Contains(t, out, "Exploração encerrada pelo jogador.")
	require.Contains(t, out, "===== PISTAS COLETADAS =====\n - Bilhete rasgado com hora marcada\n - Livro apontando para passagem secreta\n - Pegadas molhadas perto da lareira\n")
	require.Contains(t, out, "Evidências encontradas que apontam para Suspeito A: 2")
	require.Contains(t, out, "ACUSAÇÃO SUSTENTADA")
	require.Contains(t, out, "Obrigado por jogar")
}

func TestPlayInvalidAndBlockedCommands(t *testing.T) {
	res, out := play(t, "x\nE\nE\nd\nzz\n\nS\nSuspeito B\n")

	require.Equal(t, []string{"Hall de Entrada", "Sala de Estar", "Biblioteca"}, res.Visited)
	require.Equal(t, 3, strings.Count(out, "Opção inválida. Use 'e', 'd' ou 's'."))
	require.Equal(t, 1, strings.Count(out, "Não há caminho à direita."))
	require.Contains(t, out, " (e) Ir para Sótão (esquerda)")
	require.Equal(t, 1, res.Accusation.Evidence)
	require.Contains(t, out, "ACUSAÇÃO FRACA")
}

func TestPlayEmptyAccusation(t *testing.T) {
	res, out := play(t, "s\n\n")
	require.Nil(t, res.Accusation)
	require.Equal(t, []string{"Bilhete rasgado com hora marcada"}, res.Clues)
	require.Contains(t, out, "Nenhum suspeito informado. Encerrando.")
	require.NotContains(t, out, "Resultado:")
}

func TestPlayEndOfInput(t *testing.T) {
	res, out := play(t, "d\n")
	require.Equal(t, []string{"Hall de Entrada", "Cozinha"}, res.Visited)
	require.Nil(t, res.Accusation)
	require.Contains(t, out, "Fim da entrada.")
	require.Contains(t, out, "Nenhum suspeito informado.")
}

func TestPlayNoCluesCollected(t *testing.T) {
	eng, err := engine.NewEngine(context.Background(), "")
	require.NoError(t, err)
	s, err := eng.NewSession(&models.Case{Title: "Casa vazia", Entry: "Hall", Rooms: []models.RoomSpec{{Name: "Hall"}}})
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := NewGame(eng, s, strings.NewReader("s\nAlguém\n"), &out).Play(context.Background())
	require.NoError(t, err)
	require.Empty(t, res.Clues)
	require.Contains(t, out.String(), "Nenhuma pista nova nesta sala.")
	require.Contains(t, out.String(), "Nenhuma pista coletada.")
	require.Equal(t, 0, res.Accusation.Evidence)
}

func TestPlayUnknownSuspectHint(t *testing.T) {
	res, out := play(t, "s\nSuspeito Z\n")
	require.Equal(t, "Suspeito Z", res.Accusation.Suspect)
	require.Zero(t, res.Accusation.Evidence)
	require.Contains(t, out, "Você quis dizer")
}

func TestPlayRecordsAccusation(t *testing.T) {
	a, err := archive.Open(":memory:")
	require.NoError(t, err)
	defer a.Close()

	res, _ := play(t, "d\nd\ns\nSuspeito A\n", engine.WithRecorder(a))

	records, err := a.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	r := records[0]
	require.Equal(t, "Suspeito A", r.Suspect)
	require.Equal(t, 2, r.Evidence)
	require.Equal(t, "sustained", r.Verdict)
	require.Equal(t, []string{"Bilhete rasgado com hora marcada", "Carta com assinatura parcial"}, r.Clues)
	require.Equal(t, res.Accusation.Matching, r.Clues)
}

func TestPlayRecorderFailureIsNotFatal(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	res, out := play(t, "s\nSuspeito A\n", engine.WithRecorder(rec))
	require.NotNil(t, res.Accusation)
	require.Contains(t, out, "ACUSAÇÃO FRACA")
}

func TestPlayListsSuspectsInCaseOrder(t *testing.T) {
	c := &models.Case{
		Title: "Casa pequena",
		Entry: "Hall",
		Rooms: []models.RoomSpec{{Name: "Hall", Clue: "Luva"}},
		Associations: []models.Association{
			{Clue: "Luva", Suspect: "Mordomo"},
			{Clue: "Taça", Suspect: "Condessa"},
			{Clue: "Bengala", Suspect: "Mordomo"},
		},
	}
	eng, err := engine.NewEngine(context.Background(), "")
	require.NoError(t, err)
	s, err := eng.NewSession(c)
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := NewGame(eng, s, strings.NewReader("s\nMordomo\n"), &out).Play(context.Background())
	require.NoError(t, err)
	require.Contains(t, out.String(), "Suspeitos: Mordomo, Condessa\n")
	require.Equal(t, 1, res.Accusation.Evidence)
}
