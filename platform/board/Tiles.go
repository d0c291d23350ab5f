package board

import "github.com/Vishkec/monopoly/app/models"

var (
	brown     = "#b89b6c"
	lightBlue = "#9ad0f5"
	pink      = "#f28fb3"
	orange    = "#f0b35a"
	red       = "#ff6b6b"
	teal      = "#6bcfbe"
	purple    = "#8b5cf6"
	navy      = "#111827"
)

var railroadRent = []int{25, 50, 100, 200}

func property(id int, name, country string, price int, rent []int, color string, houseCost int) models.Tile {
	return models.Tile{Id: id, Type: models.TileProperty, Name: name, Country: country, Price: price, Rent: rent, Color: color, HouseCost: houseCost}
}

func railroad(id int, name string) models.Tile {
	return models.Tile{Id: id, Type: models.TileRailroad, Name: name, Price: 200, Rent: railroadRent}
}

func special(id int, t models.TileType, name string) models.Tile {
	return models.Tile{Id: id, Type: t, Name: name}
}

var layout = [TileCount]models.Tile{
	special(0, models.TileGo, "GO"),
	property(1, "Lisbon", "Portugal", 60, []int{2, 10, 30, 90, 160, 250}, brown, 50),
	special(2, models.TileCommunity, "Community Chest"),
	property(3, "Porto", "Portugal", 60, []int{4, 20, 60, 180, 320, 450}, brown, 50),
	{Id: 4, Type: models.TileTax, Name: "Income Tax", Amount: 200},
	railroad(5, "North Station"),
	property(6, "Dublin", "Ireland", 100, []int{6, 30, 90, 270, 400, 550}, lightBlue, 50),
	special(7, models.TileChance, "Chance"),
	property(8, "Cork", "Ireland", 100, []int{6, 30, 90, 270, 400, 550}, lightBlue, 50),
	property(9, "Galway", "Ireland", 120, []int{8, 40, 100, 300, 450, 600}, lightBlue, 50),
	special(10, models.TileJail, "Jail"),
	property(11, "Madrid", "Spain", 140, []int{10, 50, 150, 450, 625, 750}, pink, 100),
	{Id: 12, Type: models.TileUtility, Name: "Electric Company", Price: 150},
	property(13, "Barcelona", "Spain", 140, []int{10, 50, 150, 450, 625, 750}, pink, 100),
	property(14, "Valencia", "Spain", 160, []int{12, 60, 180, 500, 700, 900}, pink, 100),
	railroad(15, "Central Station"),
	property(16, "Berlin", "Germany", 180, []int{14, 70, 200, 550, 750, 950}, orange, 100),
	special(17, models.TileCommunity, "Community Chest"),
	property(18, "Hamburg", "Germany", 180, []int{14, 70, 200, 550, 750, 950}, orange, 100),
	property(19, "Munich", "Germany", 200, []int{16, 80, 220, 600, 800, 1000}, orange, 100),
	special(20, models.TileFree, "Free Parking"),
	property(21, "Milan", "Italy", 220, []int{18, 90, 250, 700, 875, 1050}, red, 150),
	special(22, models.TileChance, "Chance"),
	property(23, "Rome", "Italy", 220, []int{18, 90, 250, 700, 875, 1050}, red, 150),
	property(24, "Venice", "Italy", 240, []int{20, 100, 300, 750, 925, 1100}, red, 150),
	railroad(25, "West Station"),
	property(26, "Oslo", "Norway", 260, []int{22, 110, 330, 800, 975, 1150}, teal, 150),
	property(27, "Bergen", "Norway", 260, []int{22, 110, 330, 800, 975, 1150}, teal, 150),
	{Id: 28, Type: models.TileUtility, Name: "Water Works", Price: 150},
	property(29, "Trondheim", "Norway", 280, []int{24, 120, 360, 850, 1025, 1200}, teal, 150),
	special(30, models.TileGoToJail, "Go To Jail"),
	property(31, "Tokyo", "Japan", 300, []int{26, 130, 390, 900, 1100, 1275}, purple, 200),
	property(32, "Osaka", "Japan", 300, []int{26, 130, 390, 900, 1100, 1275}, purple, 200),
	special(33, models.TileCommunity, "Community Chest"),
	property(34, "Kyoto", "Japan", 320, []int{28, 150, 450, 1000, 1200, 1400}, purple, 200),
	railroad(35, "South Station"),
	special(36, models.TileChance, "Chance"),
	property(37, "Mumbai", "India", 350, []int{35, 175, 500, 1100, 1300, 1500}, navy, 200),
	{Id: 38, Type: models.TileTax, Name: "Luxury Tax", Amount: 100},
	property(39, "Delhi", "India", 400, []int{50, 200, 600, 1400, 1700, 2000}, navy, 200),
}

// color sets for building eligibility
var sets = map[string][]int{
	brown:     {1, 3},
	lightBlue: {6, 8, 9},
	pink:      {11, 13, 14},
	orange:    {16, 18, 19},
	red:       {21, 23, 24},
	teal:      {26, 27, 29},
	purple:    {31, 32, 34},
	navy:      {37, 39},
}
