package reward

import "time"

type (
	Category string
	Season   string

	AchievementKind string

	// Reward is a catalog prize children trade points for.
	// A zero MinAge/MaxAge means no age bound; an empty Season means year-round.
	Reward struct {
		ID          string   `json:"id"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Icon        string   `json:"icon"`
		Category    Category `json:"category"`
		Cost        int      `json:"cost"`
		MinAge      int      `json:"min_age,omitempty"`
		MaxAge      int      `json:"max_age,omitempty"`
		Season      Season   `json:"season,omitempty"`
	}

	// Achievement is earned automatically once its threshold is crossed.
	Achievement struct {
		ID          string          `json:"id"`
		Title       string          `json:"title"`
		Description string          `json:"description"`
		Icon        string          `json:"icon"`
		Kind        AchievementKind `json:"kind"`
		Threshold   int             `json:"threshold"`
	}
)

const (
	CategoryAvatar      Category = "avatar"
	CategoryTheme       Category = "theme"
	CategoryBadge       Category = "badge"
	CategoryCertificate Category = "certificate"
	CategoryPrintable   Category = "printable"

	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"

	// KindPoints counts lifetime points earned, not the spendable balance.
	KindPoints      AchievementKind = "points"
	KindCompletions AchievementKind = "completions"
	KindStreak      AchievementKind = "streak"
)

var Rewards = []Reward{
	{ID: "rocket-avatar", Title: "Rocket Avatar", Description: "Blast off with a shiny rocket avatar", Icon: "🚀", Category: CategoryAvatar, Cost: 20},
	{ID: "unicorn-avatar", Title: "Unicorn Avatar", Description: "A magical unicorn to show off", Icon: "🦄", Category: CategoryAvatar, Cost: 20},
	{ID: "dino-avatar", Title: "Dino Avatar", Description: "Roar! A friendly dinosaur avatar", Icon: "🦖", Category: CategoryAvatar, Cost: 25},
	{ID: "space-theme", Title: "Space Theme", Description: "Planets and stars all over your screen", Icon: "🪐", Category: CategoryTheme, Cost: 40},
	{ID: "ocean-theme", Title: "Ocean Theme", Description: "Dive under the sea with fish and waves", Icon: "🌊", Category: CategoryTheme, Cost: 40},
	{ID: "jungle-theme", Title: "Jungle Theme", Description: "Parrots and vines for jungle explorers", Icon: "🦜", Category: CategoryTheme, Cost: 45},
	{ID: "super-reader-badge", Title: "Super Reader Badge", Description: "For bookworms who love their letters", Icon: "📚", Category: CategoryBadge, Cost: 15},
	{ID: "math-whiz-badge", Title: "Math Whiz Badge", Description: "Numbers are no match for you", Icon: "🧮", Category: CategoryBadge, Cost: 15},
	{ID: "star-certificate", Title: "Star Learner Certificate", Description: "A printable certificate with your name on it", Icon: "🏅", Category: CategoryCertificate, Cost: 50},
	{ID: "coloring-pack", Title: "Coloring Pack", Description: "Printable coloring pages for little artists", Icon: "🎨", Category: CategoryPrintable, Cost: 30, MinAge: 2, MaxAge: 6},
	{ID: "puzzle-pack", Title: "Puzzle Pack", Description: "Printable puzzles for sharp minds", Icon: "🧩", Category: CategoryPrintable, Cost: 35, MinAge: 6, MaxAge: 12},
	{ID: "snowflake-theme", Title: "Snowflake Theme", Description: "A frosty look for the cold months", Icon: "❄️", Category: CategoryTheme, Cost: 35, Season: SeasonWinter},
	{ID: "sunshine-theme", Title: "Sunshine Theme", Description: "Bright and sunny, just like summer", Icon: "☀️", Category: CategoryTheme, Cost: 35, Season: SeasonSummer},
}

var Achievements = []Achievement{
	{ID: "first-steps", Title: "First Steps", Description: "Complete your very first activity", Icon: "🌱", Kind: KindCompletions, Threshold: 1},
	{ID: "explorer", Title: "Explorer", Description: "Complete 5 activities", Icon: "🗺️", Kind: KindCompletions, Threshold: 5},
	{ID: "adventurer", Title: "Adventurer", Description: "Complete 15 activities", Icon: "🎒", Kind: KindCompletions, Threshold: 15},
	{ID: "trailblazer", Title: "Trailblazer", Description: "Complete 30 activities", Icon: "🏔️", Kind: KindCompletions, Threshold: 30},
	{ID: "completionist", Title: "Completionist", Description: "Complete 60 activities", Icon: "🏆", Kind: KindCompletions, Threshold: 60},
	{ID: "point-collector", Title: "Point Collector", Description: "Earn 50 points", Icon: "⭐", Kind: KindPoints, Threshold: 50},
	{ID: "point-hoarder", Title: "Point Hoarder", Description: "Earn 150 points", Icon: "🌟", Kind: KindPoints, Threshold: 150},
	{ID: "point-legend", Title: "Point Legend", Description: "Earn 400 points", Icon: "💫", Kind: KindPoints, Threshold: 400},
	{ID: "streak-starter", Title: "Streak Starter", Description: "Learn 3 days in a row", Icon: "🔥", Kind: KindStreak, Threshold: 3},
	{ID: "streak-keeper", Title: "Streak Keeper", Description: "Learn 7 days in a row", Icon: "⚡", Kind: KindStreak, Threshold: 7},
	{ID: "streak-champion", Title: "Streak Champion", Description: "Learn 30 days in a row", Icon: "👑", Kind: KindStreak, Threshold: 30},
}

var (
	rewardsByID      map[string]Reward
	achievementsByID map[string]Achievement
)

func init() {
	rewardsByID = make(map[string]Reward, len(Rewards))
	for _, r := range Rewards {
		rewardsByID[r.ID] = r
	}
	achievementsByID = make(map[string]Achievement, len(Achievements))
	for _, a := range Achievements {
		achievementsByID[a.ID] = a
	}
}

func FindReward(id string) (Reward, bool) {
	r, ok := rewardsByID[id]
	return r, ok
}

func FindAchievement(id string) (Achievement, bool) {
	a, ok := achievementsByID[id]
	return a, ok
}

// CurrentSeason maps a point in time to its northern-hemisphere season.
func CurrentSeason(t time.Time) Season {
	switch t.UTC().Month() {
	case time.December, time.January, time.February:
		return SeasonWinter
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	default:
		return SeasonAutumn
	}
}

// forAge reports whether the reward is available to a child of the given age.
// A zero age skips the check.
func (r Reward) forAge(age int) bool {
	if age == 0 {
		return true
	}
	if r.MinAge > 0 && age < r.MinAge {
		return false
	}
	if r.MaxAge > 0 && age > r.MaxAge {
		return false
	}
	return true
}

func (r Reward) inSeason(s Season) bool {
	return r.Season == "" || r.Season == s
}
