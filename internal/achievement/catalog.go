package achievement

// Definition is a static catalog entry. The catalog order is the order
// achievements are returned from evaluation.
type Definition struct {
	Name        string
	Description string
	Icon        string
	Color       string
	Rarity      Rarity
	Points      int
	Condition   Condition
}

// Catalog is the full achievement catalog. Editing an entry here
// propagates on the next seed without touching unlock history; removing
// one simply stops it from being evaluated.
var Catalog = []Definition{
	// First-time achievements
	{
		Name:        "Welcome Aboard",
		Description: "Created your first account on Waven",
		Icon:        "👋",
		Color:       "#10b981",
		Rarity:      RarityCommon,
		Points:      10,
		Condition:   Condition{Kind: CondFirstPost},
	},
	{
		Name:        "First Wave",
		Description: "Gave your first wave to another post",
		Icon:        "🌊",
		Color:       "#3b82f6",
		Rarity:      RarityCommon,
		Points:      5,
		Condition:   Condition{Kind: CondFirstWave},
	},
	{
		Name:        "Author",
		Description: "Published your first post",
		Icon:        "✍️",
		Color:       "#8b5cf6",
		Rarity:      RarityCommon,
		Points:      25,
		Condition:   Condition{Kind: CondFirstPost},
	},

	// Wave-based achievements
	{
		Name:        "Wave Rider",
		Description: "Received 10 waves on your content",
		Icon:        "🏄",
		Color:       "#06b6d4",
		Rarity:      RarityCommon,
		Points:      50,
		Condition:   Condition{Kind: CondWavesReceived, Target: 10},
	},
	{
		Name:        "Tsunami",
		Description: "Received 100 waves on your content",
		Icon:        "🌊",
		Color:       "#0891b2",
		Rarity:      RarityRare,
		Points:      200,
		Condition:   Condition{Kind: CondWavesReceived, Target: 100},
	},
	{
		Name:        "Ocean Master",
		Description: "Received 500 waves on your content",
		Icon:        "🌀",
		Color:       "#0e7490",
		Rarity:      RarityEpic,
		Points:      500,
		Condition:   Condition{Kind: CondWavesReceived, Target: 500},
	},

	// Content creation achievements
	{
		Name:        "Prolific Writer",
		Description: "Published 10 posts",
		Icon:        "📝",
		Color:       "#7c3aed",
		Rarity:      RarityRare,
		Points:      150,
		Condition:   Condition{Kind: CondPostsCreated, Target: 10},
	},
	{
		Name:        "Content Creator",
		Description: "Published 50 posts",
		Icon:        "🎯",
		Color:       "#6d28d9",
		Rarity:      RarityEpic,
		Points:      750,
		Condition:   Condition{Kind: CondPostsCreated, Target: 50},
	},
	{
		Name:        "Waven Legend",
		Description: "Published 100 posts",
		Icon:        "👑",
		Color:       "#fbbf24",
		Rarity:      RarityLegendary,
		Points:      1500,
		Condition:   Condition{Kind: CondPostsCreated, Target: 100},
	},

	// Engagement achievements
	{
		Name:        "Conversationalist",
		Description: "Made 25 comments",
		Icon:        "💬",
		Color:       "#f59e0b",
		Rarity:      RarityCommon,
		Points:      75,
		Condition:   Condition{Kind: CondCommentsMade, Target: 25},
	},
	{
		Name:        "Community Voice",
		Description: "Made 100 comments",
		Icon:        "🗣️",
		Color:       "#d97706",
		Rarity:      RarityRare,
		Points:      250,
		Condition:   Condition{Kind: CondCommentsMade, Target: 100},
	},
}
