// Package levels holds the static level table and the point values earned
// per action.
package levels

import (
	"math"
	"strings"

	"github.com/givebridge/givebridge-backend/internal/models"
)

// Level maps a cumulative point threshold to a level number and name. The
// badge awarded on reaching a level carries the level's name.
type Level struct {
	Level     int
	Name      string
	MinPoints int
	BadgeKey  string
}

// table is ordered, strictly increasing in both Level and MinPoints.
var table = []Level{
	{Level: 1, Name: "Beginner", MinPoints: 0, BadgeKey: "beginner"},
	{Level: 2, Name: "Intermediate", MinPoints: 100, BadgeKey: "intermediate"},
	{Level: 3, Name: "Advanced", MinPoints: 500, BadgeKey: "advanced"},
	{Level: 4, Name: "Expert", MinPoints: 1000, BadgeKey: "expert"},
	{Level: 5, Name: "Champion", MinPoints: 2500, BadgeKey: "champion"},
}

// ActionKind identifies a point-earning action.
type ActionKind string

const (
	ActionFood       ActionKind = "food"
	ActionClothes    ActionKind = "clothes"
	ActionEssentials ActionKind = "essentials"
	ActionEvent      ActionKind = "event"
	ActionMoney      ActionKind = "money"
)

// Flat point values per completed item donation. Quantity does not scale
// item awards; only monetary donations scale with amount.
const (
	pointsFood       = 20
	pointsClothes    = 15
	pointsEssentials = 10
	pointsEvent      = 25
	moneyPointRate   = 0.1
)

// Table returns a copy of the level table.
func Table() []Level {
	out := make([]Level, len(table))
	copy(out, table)
	return out
}

// LevelForPoints returns the highest level whose MinPoints threshold is at
// or below the given cumulative total. Always a full recompute so large
// point jumps land on the right level.
func LevelForPoints(points int) Level {
	current := table[0]
	for _, l := range table {
		if points >= l.MinPoints {
			current = l
		}
	}
	return current
}

// PointsForAction returns the points earned by an action. Amount is only
// consulted for monetary actions, where points scale linearly and are
// floored to an integer.
func PointsForAction(kind ActionKind, amount float64) (int, error) {
	switch kind {
	case ActionFood:
		return pointsFood, nil
	case ActionClothes:
		return pointsClothes, nil
	case ActionEssentials:
		return pointsEssentials, nil
	case ActionEvent:
		return pointsEvent, nil
	case ActionMoney:
		return int(math.Floor(amount * moneyPointRate)), nil
	default:
		return 0, models.ErrUnknownActionKind
	}
}

// CategoryFromText maps a free-text donation category to an action kind.
// Matching is case-insensitive by substring; anything unrecognised falls
// back to essentials.
func CategoryFromText(category string) ActionKind {
	c := strings.ToLower(category)
	switch {
	case strings.Contains(c, "food"):
		return ActionFood
	case strings.Contains(c, "cloth"):
		return ActionClothes
	default:
		return ActionEssentials
	}
}
