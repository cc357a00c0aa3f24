package catalog

// Default returns the builtin modifier catalog. Order matters: extraction
// tests these definitions first to last.
func Default() (*Catalog, error) {
	return New(builtinSpecs)
}

// builtinSpecs covers the common tooltip affixes. Keywords and misread
// tables come from observed Tesseract output on real captures; misreads
// are overwhelmingly 1/l/i and 0/o confusions.
var builtinSpecs = []Spec{
	{
		Name: "Life",
		Patterns: []string{
			`(?:\+)?(\d+)\s*to\s*maximum\s*life`,
			`(\d+)\s*maximum\s*life`,
			`life\s*(?:\+)?(\d+)`,
			`(?:\+)?(\d+)\s*life`,
		},
		Keywords:   []string{"life", "maximum", "max", "hp"},
		ValueRange: Range{Min: 1, Max: 600},
		Corrections: []Correction{
			{Bad: "1ife", Good: "life"},
			{Bad: "11fe", Good: "life"},
			{Bad: "lite", Good: "life"},
		},
		Tiers: []TierStep{
			{Min: 120, Label: "T1"},
			{Min: 100, Label: "T2"},
			{Min: 80, Label: "T3"},
			{Min: 60, Label: "T4"},
			{Min: 0, Label: "T5"},
		},
		Affinities: []string{"armour", "body", "helmet", "gloves", "boots", "shield", "belt", "ring", "amulet"},
		Reasonable: map[string]Range{
			"armour": {Min: 20, Max: 130},
			"ring":   {Min: 10, Max: 90},
			"belt":   {Min: 20, Max: 100},
		},
	},
	{
		Name: "Energy Shield",
		Patterns: []string{
			`(?:\+)?(\d+)\s*to\s*maximum\s*energy\s*shield`,
			`(\d+)\s*maximum\s*energy\s*shield`,
			`energy\s*shield\s*(?:\+)?(\d+)`,
			`(?:\+)?(\d+)\s*(?:energy\s*shield|es)\b`,
		},
		Keywords:   []string{"energy", "shield", "es", "maximum"},
		ValueRange: Range{Min: 1, Max: 120},
		Corrections: []Correction{
			{Bad: "enerqy", Good: "energy"},
			{Bad: "sh1eld", Good: "shield"},
			{Bad: "shie1d", Good: "shield"},
		},
		Tiers: []TierStep{
			{Min: 100, Label: "T1"},
			{Min: 80, Label: "T2"},
			{Min: 60, Label: "T3"},
			{Min: 40, Label: "T4"},
			{Min: 0, Label: "T5"},
		},
		Affinities: []string{"armour", "shield", "helmet", "ring", "amulet"},
		Exclusions: []string{"weapon"},
		Reasonable: map[string]Range{
			"armour": {Min: 15, Max: 120},
			"ring":   {Min: 5, Max: 60},
		},
	},
	{
		Name: "Mana",
		Patterns: []string{
			`(?:\+)?(\d+)\s*to\s*maximum\s*mana`,
			`(\d+)\s*maximum\s*mana`,
			`mana\s*(?:\+)?(\d+)`,
		},
		Keywords:   []string{"mana", "maximum"},
		ValueRange: Range{Min: 1, Max: 100},
		Corrections: []Correction{
			{Bad: "rnana", Good: "mana"},
			{Bad: "mane", Good: "mana"},
		},
		Tiers: []TierStep{
			{Min: 70, Label: "T1"},
			{Min: 60, Label: "T2"},
			{Min: 50, Label: "T3"},
			{Min: 40, Label: "T4"},
			{Min: 0, Label: "T5"},
		},
		Affinities: []string{"ring", "amulet", "helmet"},
	},
	{
		Name: "Attack Speed",
		Patterns: []string{
			`(\d+)%\s*increased\s*attack\s*speed`,
			`attack\s*speed\s*(?:\+)?(\d+)%`,
			`(?:\+)?(\d+)%\s*attack\s*speed`,
			`increased\s*attack\s*speed\s*(\d+)%`,
		},
		Keywords:   []string{"attack", "speed", "increased", "ias"},
		ValueRange: Range{Min: 1, Max: 25},
		Corrections: []Correction{
			{Bad: "atlack", Good: "attack"},
			{Bad: "speeci", Good: "speed"},
			{Bad: "increaseci", Good: "increased"},
		},
		Tiers: []TierStep{
			{Min: 17, Label: "T1"},
			{Min: 14, Label: "T2"},
			{Min: 11, Label: "T3"},
			{Min: 8, Label: "T4"},
			{Min: 0, Label: "T5"},
		},
		Affinities: []string{"weapon", "sword", "axe", "mace", "bow", "claw", "dagger", "wand"},
		Exclusions: []string{"armour", "belt"},
		Reasonable: map[string]Range{
			"weapon": {Min: 5, Max: 17},
		},
	},
	{
		Name: "Cast Speed",
		Patterns: []string{
			`(\d+)%\s*increased\s*cast\s*speed`,
			`cast\s*speed\s*(?:\+)?(\d+)%`,
		},
		Keywords:   []string{"cast", "speed", "increased"},
		ValueRange: Range{Min: 1, Max: 25},
		Corrections: []Correction{
			{Bad: "casl", Good: "cast"},
			{Bad: "cost speed", Good: "cast speed"},
		},
		Tiers: []TierStep{
			{Min: 17, Label: "T1"},
			{Min: 14, Label: "T2"},
			{Min: 11, Label: "T3"},
			{Min: 8, Label: "T4"},
			{Min: 0, Label: "T5"},
		},
		Affinities: []string{"wand", "sceptre", "staff", "weapon"},
	},
	{
		Name: "Critical Strike",
		Patterns: []string{
			`(\d+)%\s*increased\s*critical\s*strike\s*chance`,
			`critical\s*strike\s*chance\s*(?:\+)?(\d+)%`,
			`(?:\+)?(\d+)%\s*critical\s*strike`,
			`crit(?:ical)?\s*chance\s*(?:\+)?(\d+)%`,
		},
		Keywords:   []string{"critical", "strike", "crit", "chance"},
		ValueRange: Range{Min: 1, Max: 50},
		Corrections: []Correction{
			{Bad: "critica1", Good: "critical"},
			{Bad: "crit1cal", Good: "critical"},
			{Bad: "stnke", Good: "strike"},
		},
		Tiers: []TierStep{
			{Min: 38, Label: "T1"},
			{Min: 34, Label: "T2"},
			{Min: 29, Label: "T3"},
			{Min: 24, Label: "T4"},
			{Min: 0, Label: "T5"},
		},
		Affinities: []string{"weapon", "dagger", "wand"},
	},
	{
		Name: "Resistance",
		Patterns: []string{
			`(?:\+)?(\d+)%\s*to\s*(fire|cold|lightning|chaos)\s*resistance`,
			`(fire|cold|lightning|chaos)\s*resistance\s*(?:\+)?(\d+)%`,
			`(?:\+)?(\d+)%\s*(fire|cold|lightning|chaos)\s*res(?:istance)?`,
		},
		Keywords:   []string{"resistance", "fire", "cold", "lightning", "chaos", "res"},
		ValueRange: Range{Min: 1, Max: 50},
		Corrections: []Correction{
			{Bad: "res1stance", Good: "resistance"},
			{Bad: "l1ghtning", Good: "lightning"},
			{Bad: "co1d", Good: "cold"},
		},
		Tiers: []TierStep{
			{Min: 48, Label: "T1"},
			{Min: 42, Label: "T2"},
			{Min: 36, Label: "T3"},
			{Min: 30, Label: "T4"},
			{Min: 0, Label: "T5"},
		},
		Affinities: []string{"ring", "amulet", "belt", "armour", "shield"},
	},
	{
		Name: "Added Damage",
		Patterns: []string{
			`adds\s*(\d+)\s*to\s*(\d+)\s*(\w+)\s*damage`,
		},
		Keywords:   []string{"adds", "damage"},
		ValueRange: Range{Min: 1, Max: 100},
		Corrections: []Correction{
			{Bad: "darnage", Good: "damage"},
			{Bad: "aclds", Good: "adds"},
		},
		Tiers: []TierStep{
			{Min: 50, Label: "T1"},
			{Min: 40, Label: "T2"},
			{Min: 30, Label: "T3"},
			{Min: 20, Label: "T4"},
			{Min: 0, Label: "T5"},
		},
		Affinities: []string{"weapon"},
		Exclusions: []string{"armour"},
	},
	{
		Name: "Accuracy",
		Patterns: []string{
			`(?:\+)?(\d+)\s*to\s*accuracy\s*rating`,
			`accuracy\s*rating\s*(?:\+)?(\d+)`,
		},
		Keywords:   []string{"accuracy", "rating"},
		ValueRange: Range{Min: 1, Max: 500},
		Corrections: []Correction{
			{Bad: "accuracv", Good: "accuracy"},
		},
		Tiers: []TierStep{
			{Min: 400, Label: "T1"},
			{Min: 300, Label: "T2"},
			{Min: 200, Label: "T3"},
			{Min: 100, Label: "T4"},
			{Min: 0, Label: "T5"},
		},
		Affinities: []string{"weapon", "gloves", "ring"},
	},
	{
		Name: "Strength",
		Patterns: []string{
			`(?:\+)?(\d+)\s*to\s*strength`,
		},
		Keywords:   []string{"strength"},
		ValueRange: Range{Min: 1, Max: 60},
		Corrections: []Correction{
			{Bad: "strenqth", Good: "strength"},
		},
		Tiers: []TierStep{
			{Min: 50, Label: "T1"},
			{Min: 40, Label: "T2"},
			{Min: 30, Label: "T3"},
			{Min: 20, Label: "T4"},
			{Min: 0, Label: "T5"},
		},
		Affinities: []string{"ring", "amulet", "belt"},
	},
	{
		Name: "Dexterity",
		Patterns: []string{
			`(?:\+)?(\d+)\s*to\s*dexterity`,
		},
		Keywords:   []string{"dexterity"},
		ValueRange: Range{Min: 1, Max: 60},
		Corrections: []Correction{
			{Bad: "dexterily", Good: "dexterity"},
		},
		Tiers: []TierStep{
			{Min: 50, Label: "T1"},
			{Min: 40, Label: "T2"},
			{Min: 30, Label: "T3"},
			{Min: 20, Label: "T4"},
			{Min: 0, Label: "T5"},
		},
		Affinities: []string{"ring", "amulet", "belt"},
	},
	{
		Name: "Intelligence",
		Patterns: []string{
			`(?:\+)?(\d+)\s*to\s*intelligence`,
		},
		Keywords:   []string{"intelligence"},
		ValueRange: Range{Min: 1, Max: 60},
		Corrections: []Correction{
			{Bad: "inte11igence", Good: "intelligence"},
			{Bad: "lntelligence", Good: "intelligence"},
		},
		Tiers: []TierStep{
			{Min: 50, Label: "T1"},
			{Min: 40, Label: "T2"},
			{Min: 30, Label: "T3"},
			{Min: 20, Label: "T4"},
			{Min: 0, Label: "T5"},
		},
		Affinities: []string{"ring", "amulet", "belt"},
	},
}
