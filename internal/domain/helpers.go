package domain

// RemoveCards removes the specified cards from a hand and returns the updated hand.
// The input slice is not modified.
func RemoveCards(hand []Card, toRemove []Card) []Card {
	if len(toRemove) == 0 || len(hand) == 0 {
		return cloneCards(hand)
	}

	removeCounts := make(map[Card]int, len(toRemove))
	for _, card := range toRemove {
		removeCounts[card]++
	}

	updated := make([]Card, 0, len(hand))
	for _, card := range hand {
		if count, ok := removeCounts[card]; ok && count > 0 {
			removeCounts[card] = count - 1
			continue
		}
		updated = append(updated, card)
	}

	return updated
}

// HasCards reports whether hand holds every card in cards, counting duplicates.
func HasCards(hand []Card, cards []Card) bool {
	held := make(map[Card]int, len(hand))
	for _, c := range hand {
		held[c]++
	}
	for _, c := range cards {
		if held[c] == 0 {
			return false
		}
		held[c]--
	}
	return true
}

func allSameRank(cards []Card) bool {
	if len(cards) == 0 {
		return false
	}
	r := cards[0].Rank
	for _, c := range cards {
		if c.Rank != r {
			return false
		}
	}
	return true
}

func containsRank(cards []Card, rank int) bool {
	for _, c := range cards {
		if c.Rank == rank {
			return true
		}
	}
	return false
}

func isFourOfAKind(cards []Card) bool {
	return len(cards) == 4 && allSameRank(cards)
}

func isSingleJoker(cards []Card) bool {
	return len(cards) == 1 && cards[0].IsJoker()
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}

// rankGroup is every held card of one rank.
type rankGroup struct {
	Rank  int
	Cards []Card
}

// groupByRank groups a hand by rank, ordered by ascending strength.
func groupByRank(hand []Card) []rankGroup {
	sorted := cloneCards(hand)
	SortHand(sorted)

	var groups []rankGroup
	for _, c := range sorted {
		if n := len(groups); n > 0 && groups[n-1].Rank == c.Rank {
			groups[n-1].Cards = append(groups[n-1].Cards, c)
			continue
		}
		groups = append(groups, rankGroup{Rank: c.Rank, Cards: []Card{c}})
	}
	return groups
}
