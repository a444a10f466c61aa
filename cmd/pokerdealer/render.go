package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lox/pokerdealer/internal/game"
	"github.com/lox/pokerdealer/internal/session"
	"github.com/lox/pokerdealer/internal/simulator"
	"github.com/muesli/termenv"
)

// styles are bound to one renderer so --no-color can drop to plain text
type styles struct {
	header  lipgloss.Style
	info    lipgloss.Style
	actions lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	turn    lipgloss.Style
	cell    lipgloss.Style
}

func newStyles(w io.Writer, noColor bool) styles {
	var opts []termenv.OutputOption
	if noColor {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	r := lipgloss.NewRenderer(w, opts...)

	return styles{
		header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		info:    r.NewStyle().Foreground(lipgloss.Color("#626262")),
		actions: r.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		success: r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
		turn:    r.NewStyle().Foreground(lipgloss.Color("#FFD700")).Padding(0, 1),
		cell:    r.NewStyle().Padding(0, 1),
	}
}

// renderStatus writes the table view of g.
func renderStatus(w io.Writer, st styles, g *game.Game) {
	h := &g.Hand
	phase := session.PhaseOf(h.Street)

	fmt.Fprintln(w, st.header.Render(fmt.Sprintf("Hand #%d · %s", h.HandNumber, h.Street)))
	fmt.Fprintln(w, st.info.Render(fmt.Sprintf("Blinds %d/%d · dealer seat %d · phase %s",
		g.Settings.SmallBlind, g.Settings.BigBlind, h.DealerSeat+1, phase)))
	fmt.Fprintln(w, "Pot: "+formatPot(h.Pot, g))

	payouts := map[game.PlayerID]int{}
	if h.PayoutResult != nil {
		payouts = h.PayoutResult.Payouts
	}

	headers := []string{"Seat", "Player", "Stack", "Street", "Hand", "State"}
	if h.PayoutResult != nil {
		headers = append(headers, "Won")
	}
	rows := make([][]string, 0, len(g.Players))
	turnRow := -1
	for i, p := range g.Players {
		seat := strconv.Itoa(p.Seat + 1)
		switch p.Seat {
		case h.DealerSeat:
			seat += " D"
		case h.SBSeat:
			seat += " SB"
		case h.BBSeat:
			seat += " BB"
		}
		row := []string{
			seat,
			p.Name,
			strconv.Itoa(p.Stack),
			strconv.Itoa(h.ContribThisStreet[p.ID]),
			strconv.Itoa(h.TotalContribThisHand[p.ID]),
			p.State.String(),
		}
		if h.PayoutResult != nil {
			row = append(row, strconv.Itoa(payouts[p.ID]))
		}
		if p.ID == h.CurrentTurnPlayerID && phase == session.PhaseTable {
			turnRow = i
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.cell.Bold(true)
			}
			if row == turnRow {
				return st.turn
			}
			return st.cell
		})
	fmt.Fprintln(w, t.Render())

	switch phase {
	case session.PhaseTable:
		renderTurn(w, st, g)
	case session.PhaseShowdown:
		_, breakdown := game.BuildBreakdown(g.Players, h)
		fmt.Fprintln(w, st.warning.Render("Showdown: choose winners with settle"))
		for _, pot := range breakdown {
			fmt.Fprintf(w, "  %s (%s) %d: %s\n", pot.Label, pot.ID, pot.Amount, joinIDs(pot.EligiblePlayerIDs))
		}
	case session.PhasePayout:
		fmt.Fprintln(w, st.success.Render("Hand complete: start the next one with next"))
		for _, pot := range h.PayoutResult.Breakdown {
			fmt.Fprintf(w, "  %s %d\n", pot.Label, pot.Amount)
		}
	}
}

func renderTurn(w io.Writer, st styles, g *game.Game) {
	h := &g.Hand
	p, ok := g.TurnPlayer()
	if !ok {
		return
	}

	if end, ended := game.DetectHandEnd(g.Players, h); ended {
		if end == game.HandEndPayout {
			fmt.Fprintln(w, st.warning.Render("Everyone else folded: run award"))
		} else {
			fmt.Fprintln(w, st.warning.Render("River complete: run showdown"))
		}
		return
	}
	if game.IsRoundComplete(g.Players, h) {
		fmt.Fprintln(w, st.warning.Render("Betting round complete: run advance"))
		return
	}

	legal := game.LegalActions(g.Players, h)
	if len(legal) == 0 {
		fmt.Fprintln(w, st.warning.Render("No one can act: run showdown"))
		return
	}
	names := make([]string, len(legal))
	for i, k := range legal {
		names[i] = strings.ToLower(k.String())
	}

	line := fmt.Sprintf("%s to act", p.Name)
	if call := game.CallNeeded(h, p.ID); call > 0 {
		line += fmt.Sprintf(" · %d to call", min(call, p.Stack))
	}
	if to, ok := game.MinRaiseTo(h); ok {
		line += fmt.Sprintf(" · min raise to %d", to)
	}
	fmt.Fprintln(w, st.actions.Render(line))
	fmt.Fprintln(w, st.info.Render("Legal: "+strings.Join(names, " ")))
}

func formatPot(pot game.PotState, g *game.Game) string {
	if g.Hand.PayoutResult != nil {
		pot = g.Hand.PayoutResult.Pot
	}
	s := strconv.Itoa(pot.Total())
	if len(pot.Sides) == 0 {
		return s
	}
	parts := []string{fmt.Sprintf("main %d", pot.Main)}
	for i, side := range pot.Sides {
		parts = append(parts, fmt.Sprintf("side %d %d", i+1, side.Amount))
	}
	return s + " (" + strings.Join(parts, ", ") + ")"
}

func joinIDs(ids []game.PlayerID) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return strings.Join(out, ", ")
}

func renderStats(w io.Writer, st styles, s simulator.Stats) {
	fmt.Fprintln(w, st.header.Render("Simulation complete"))
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Metric", "Value").
		StyleFunc(func(_, _ int) lipgloss.Style { return st.cell }).
		Rows(
			[]string{"Games", strconv.Itoa(s.Games)},
			[]string{"Hands", strconv.Itoa(s.Hands)},
			[]string{"Actions", strconv.Itoa(s.Actions)},
			[]string{"Showdowns", strconv.Itoa(s.Showdowns)},
			[]string{"Uncontested", strconv.Itoa(s.Uncontested)},
			[]string{"Side pots", strconv.Itoa(s.SidePots)},
			[]string{"Split pots", strconv.Itoa(s.SplitPots)},
			[]string{"Undo checks", strconv.Itoa(s.Undos)},
			[]string{"Largest pot", strconv.Itoa(s.MaxPot)},
		)
	fmt.Fprintln(w, t.Render())
}
