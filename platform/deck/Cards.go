package deck

import "github.com/Vishkec/monopoly/app/models"

var chance = []models.Card{
	{Text: "Advance to GO", Action: models.CardMove, Value: 0},
	{Text: "Go to Jail", Action: models.CardJail},
	{Text: "Bank pays you dividend of $50", Action: models.CardMoney, Value: 50},
	{Text: "Pay poor tax of $15", Action: models.CardMoney, Value: -15},
	{Text: "Advance to Tokyo", Action: models.CardMove, Value: 31},
	{Text: "Advance to nearest station", Action: models.CardNearestRail},
	{Text: "Get out of jail free", Action: models.CardJailFree},
	{Text: "Go back 3 spaces", Action: models.CardMoveSteps, Value: -3},
}

var community = []models.Card{
	{Text: "Doctor's fees. Pay $50", Action: models.CardMoney, Value: -50},
	{Text: "From sale of stock you get $50", Action: models.CardMoney, Value: 50},
	{Text: "Go to Jail", Action: models.CardJail},
	{Text: "Income tax refund. Collect $20", Action: models.CardMoney, Value: 20},
	{Text: "Life insurance matures. Collect $100", Action: models.CardMoney, Value: 100},
	{Text: "Pay school fees of $50", Action: models.CardMoney, Value: -50},
	{Text: "You inherit $100", Action: models.CardMoney, Value: 100},
	{Text: "Get out of jail free", Action: models.CardJailFree},
}

func ChanceCards() []models.Card {
	return append([]models.Card(nil), chance...)
}

func CommunityCards() []models.Card {
	return append([]models.Card(nil), community...)
}
