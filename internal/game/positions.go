package game

import "sort"

// ActiveSeats returns the seats of ACTIVE players in ascending order.
func ActiveSeats(players []Player) []int {
	seats := make([]int, 0, len(players))
	for _, p := range players {
		if p.State == StateActive {
			seats = append(seats, p.Seat)
		}
	}
	sort.Ints(seats)
	return seats
}

// buttonPosition locates the dealer on the active ring. When the dealer seat
// is not active, the first active seat clockwise from it takes the button.
func buttonPosition(ring []int, dealerSeat int) int {
	for i, seat := range ring {
		if seat >= dealerSeat {
			return i
		}
	}
	return 0
}

// BlindSeats resolves the small and big blind seats. Heads-up the dealer
// posts the small blind; otherwise the blinds are the next two active seats
// clockwise from the dealer, skipping folded and busted seats.
func BlindSeats(players []Player, dealerSeat int) (sbSeat, bbSeat int, err error) {
	ring := ActiveSeats(players)
	n := len(ring)
	if n < 2 {
		return 0, 0, ErrInsufficientPlayers
	}

	pos := buttonPosition(ring, dealerSeat)
	if n == 2 {
		return ring[pos], ring[(pos+1)%n], nil
	}
	return ring[(pos+1)%n], ring[(pos+2)%n], nil
}

// FirstToAct returns the player who opens the given street. Preflop the walk
// starts just after the big blind, which heads-up lands on the dealer; later
// streets start just after the dealer.
func FirstToAct(players []Player, street Street, dealerSeat, bbSeat int) (PlayerID, error) {
	start := dealerSeat
	if street == Preflop {
		start = bbSeat
	}

	order := bySeat(players)
	// first seat clockwise after start
	first := 0
	for i, idx := range order {
		if players[idx].Seat > start {
			first = i
			break
		}
	}

	for i := range order {
		p := &players[order[(first+i)%len(order)]]
		if p.State == StateActive {
			return p.ID, nil
		}
	}
	return "", ErrNoActivePlayers
}

// nextActivePlayer returns the next ACTIVE player clockwise after seat,
// wrapping around to seat itself. ok is false when nobody can act.
func nextActivePlayer(players []Player, seat int) (PlayerID, bool) {
	if len(players) == 0 {
		return "", false
	}
	id, err := FirstToAct(players, Flop, seat, seat)
	if err != nil {
		return "", false
	}
	return id, true
}
