package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/detective-quest/internal/engine"
	"github.com/tatianab/detective-quest/internal/verdict"
)

type sessionState int

const (
	statePlaying sessionState = iota
	stateAccusing
	stateVerdict
	stateError
)

type model struct {
	ctx        context.Context
	state      sessionState
	engine     *engine.Engine
	session    *engine.Session
	logger     *slog.Logger
	textInput  textinput.Model
	viewport   viewport.Model
	accusation *verdict.Accusation
	err        error
	gameLog    string
	width      int
	height     int
	pending    tea.Cmd
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	clueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD75F"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

// NewModel starts the session in its entry room. The entry room's clue is
// collected immediately.
func NewModel(ctx context.Context, eng *engine.Engine, session *engine.Session, logger *slog.Logger) model {
	ti := textinput.New()
	ti.Placeholder = "Suspeito A"
	ti.CharLimit = 79
	ti.Width = 40

	m := model{
		ctx:       ctx,
		state:     statePlaying,
		engine:    eng,
		session:   session,
		logger:    logger,
		textInput: ti,
		viewport:  viewport.New(80, 20),
	}

	header := gameStyle.Bold(true).Render(session.Case.Title)
	m.gameLog = header + "\n\n"
	if d := session.Case.Description; d != "" {
		m.gameLog += gameStyle.Render(d) + "\n\n"
	}
	m.pending = m.arrive(session.Arrive())
	return m
}

func (m model) Init() tea.Cmd {
	return m.pending
}

type narratedMsg struct {
	room string
	text string
	err  error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}

		switch m.state {
		case statePlaying:
			return m.explore(msg)

		case stateAccusing:
			if msg.Type == tea.KeyEnter {
				return m.accuse(m.textInput.Value())
			}

		case stateVerdict, stateError:
			if msg.Type == tea.KeyEnter || msg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = int(float64(msg.Width) * 0.75)
		m.viewport.Height = msg.Height - 6
		m.refresh()

	case narratedMsg:
		if msg.err != nil {
			m.logger.WarnContext(m.ctx, "narration failed", slog.String("room", msg.room), slog.Any("error", msg.err))
			return m, nil
		}
		if msg.text != "" {
			m.appendLog(gameStyle.Width(m.logWidth()).Render(msg.text))
		}
		return m, nil
	}

	if m.state == stateAccusing {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) explore(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var input string
	switch msg.Type {
	case tea.KeyLeft:
		input = engine.CommandLeft.Key()
	case tea.KeyRight:
		input = engine.CommandRight.Key()
	case tea.KeyRunes:
		input = string(msg.Runes)
	default:
		return m, nil
	}

	m.appendLog(userStyle.Render("> " + input))

	r := m.session.Step(input)
	switch r.Outcome {
	case engine.Moved:
		return m, m.arrive(r.Arrival)
	case engine.Blocked:
		if r.Command == engine.CommandLeft {
			m.appendLog(warnStyle.Render("Não há caminho à esquerda."))
		} else {
			m.appendLog(warnStyle.Render("Não há caminho à direita."))
		}
	case engine.Invalid:
		m.appendLog(warnStyle.Render("Opção inválida. Use 'e', 'd' ou 's'."))
	case engine.Stopped:
		m.appendLog(gameStyle.Render("Exploração encerrada pelo jogador."))
		m.appendLog(m.renderCollected())
		m.appendLog(gameStyle.Render("Digite o nome do suspeito que você deseja acusar:"))
		m.state = stateAccusing
		return m, m.textInput.Focus()
	}
	return m, nil
}

func (m *model) arrive(a engine.Arrival) tea.Cmd {
	m.appendLog(gameStyle.Bold(true).Render("Você está na sala: " + a.Room))
	if a.Found {
		m.appendLog(clueStyle.Render(fmt.Sprintf("Pista encontrada: %q", a.Clue)))
	} else {
		m.appendLog(gameStyle.Render("Nenhuma pista nova nesta sala."))
	}

	if m.engine == nil || !m.engine.Narrates() {
		return nil
	}
	return m.narrate(m.session.Scene(a))
}

func (m model) accuse(name string) (tea.Model, tea.Cmd) {
	m.textInput.Blur()
	m.state = stateVerdict

	a, err := m.session.Accuse(m.ctx, name)
	if errors.Is(err, engine.ErrNoSuspect) {
		m.appendLog(gameStyle.Render("Nenhum suspeito informado. Encerrando."))
		return m, nil
	}
	if err != nil {
		m.err = err
		m.state = stateError
		return m, nil
	}
	m.accusation = &a

	m.appendLog(userStyle.Render("> " + a.Suspect))
	if !m.session.KnownSuspect(a.Suspect) {
		if s := m.session.SuggestSuspect(a.Suspect); s != "" {
			m.appendLog(helpStyle.Render(fmt.Sprintf("Esse nome não consta na investigação. Você quis dizer %q?", s)))
		}
	}
	m.appendLog(gameStyle.Render(fmt.Sprintf("Evidências encontradas que apontam para %s: %d", a.Suspect, a.Evidence)))
	if a.Verdict == verdict.Sustained {
		m.appendLog(clueStyle.Bold(true).Render("ACUSAÇÃO SUSTENTADA. Parece que você tem evidências suficientes!"))
	} else {
		m.appendLog(warnStyle.Bold(true).Render("ACUSAÇÃO FRACA. Poucas evidências. Falta prova contundente."))
	}
	return m, nil
}

func (m model) View() string {
	var s string

	switch m.state {
	case statePlaying, stateAccusing, stateVerdict:
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewport.View(),
			m.renderState(),
		)

		var footer string
		switch m.state {
		case statePlaying:
			footer = helpStyle.Render("Comandos: e (esquerda), d (direita), s (sair e acusar), Esc para abandonar.")
		case stateAccusing:
			footer = m.textInput.View() + "\n\n" + helpStyle.Render("Enter para acusar.")
		case stateVerdict:
			footer = helpStyle.Render(fmt.Sprintf("Obrigado por jogar %s! Enter para sair.", m.session.Case.Title))
		}

		s = lipgloss.JoinVertical(lipgloss.Left, mainView, "\n"+footer)

	case stateError:
		s = fmt.Sprintf("\n  Erro: %v\n\nPressione Esc para sair.", m.err)
	}

	return "\n" + s + "\n"
}

func (m model) renderState() string {
	location := titleStyle.Render("LOCAL") + "\n" + m.session.Current().Name + "\n\n"

	exits := titleStyle.Render("SAÍDAS") + "\n"
	if m.session.Current().IsLeaf() {
		exits += "(nenhuma, só resta sair)\n"
	}
	for _, t := range m.session.Transitions() {
		switch t.Command {
		case engine.CommandLeft:
			exits += "e: " + t.Room + "\n"
		case engine.CommandRight:
			exits += "d: " + t.Room + "\n"
		}
	}
	exits += "\n"

	clues := titleStyle.Render("PISTAS") + "\n"
	if m.session.Clues.Len() == 0 {
		clues += "(nenhuma)\n"
	}
	for c := range m.session.Clues.InOrder() {
		clues += "- " + c + "\n"
	}
	clues += "\n"

	suspects := titleStyle.Render("SUSPEITOS") + "\n" + strings.Join(m.session.Case.Suspects(), "\n")

	content := location + exits + clues + suspects

	stateWidth := int(float64(m.width) * 0.23)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(content)
}

func (m model) renderCollected() string {
	out := titleStyle.Render("PISTAS COLETADAS") + "\n"
	clues := m.session.CollectedClues()
	if len(clues) == 0 {
		return out + "Nenhuma pista coletada."
	}
	for _, c := range clues {
		out += clueStyle.Render(" - "+c) + "\n"
	}
	return strings.TrimSuffix(out, "\n")
}

func (m model) logWidth() int {
	return int(float64(m.width) * 0.75)
}

func (m *model) appendLog(text string) {
	m.gameLog += text + "\n\n"
	m.refresh()
}

func (m *model) refresh() {
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()
}

func (m model) narrate(scene engine.Scene) tea.Cmd {
	return func() tea.Msg {
		text, err := m.engine.Narrate(m.ctx, scene)
		return narratedMsg{room: scene.Room, text: text, err: err}
	}
}

// Run plays session in a full-screen terminal UI.
func Run(ctx context.Context, eng *engine.Engine, session *engine.Session, logger *slog.Logger) error {
	p := tea.NewProgram(NewModel(ctx, eng, session, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
