package domain

import (
	"context"
	"fmt"
)

const StartBalance = 10

type User struct {
	ID          int
	Email       string
	PhoneNumber string
	FirstName   string
	LastName    string
	TotalPoints int
	EcoLevel    string
}

func (u User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

// Directory resolves users by their identity keys. Resolve tries the
// identifier as an email first (case-insensitive), then as a phone number.
type Directory interface {
	Resolve(ctx context.Context, identifier string) (User, bool, error)
	GetUser(ctx context.Context, userID int) (User, error)
}

const (
	LevelNewbie     = "Newbie"
	LevelBeginner   = "Eco Beginner"
	LevelEnthusiast = "Eco Enthusiast"
	LevelWarrior    = "Eco Warrior"
	LevelMaster     = "Master Eco"
)

func EcoLevelForPoints(points int) string {
	switch {
	case points >= 1000:
		return LevelMaster
	case points >= 500:
		return LevelWarrior
	case points >= 200:
		return LevelEnthusiast
	case points >= 100:
		return LevelBeginner
	default:
		return LevelNewbie
	}
}
