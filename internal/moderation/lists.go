package moderation

import "regexp"

// phrases that are blocked outright regardless of anything else in the content
var highRiskPhrases = []string{
	"child pornography", "child abuse", "sexual violence", "rape", "pedophile",
	"terrorist attack", "bomb making", "build a bomb", "make a bomb",
	"mass shooting", "suicide bomber",
	"drug dealing", "human trafficking", "slavery",
}

// banned keywords for strict moderation (case-insensitive substring match)
var bannedKeywords = []string{
	// NSFW/adult content
	"nude", "naked", "sex", "porn", "pornographic", "explicit", "adult", "erotic", "sexual",
	"topless", "bottomless", "underwear", "lingerie", "bikini", "swimsuit", "revealing",
	"seductive", "sensual", "intimate", "provocative", "suggestive",

	// violence and weapons
	"violence", "violent", "blood", "bloody", "gore", "gory", "weapon", "weapons",
	"gun", "guns", "rifle", "pistol", "knife", "knives", "sword", "blade",
	"kill", "killing", "murder", "death", "dead", "corpse", "torture",
	"fight", "fighting", "war", "battle", "combat", "attack", "assault",

	// hate speech and discrimination
	"hate", "hatred", "racist", "racism", "nazi", "fascist", "terrorist", "terrorism",
	"supremacist", "extremist", "radical", "bigot", "discrimination",

	// drugs and illegal substances
	"drug", "drugs", "cocaine", "heroin", "marijuana", "cannabis", "weed", "meth",
	"addiction", "overdose", "substance abuse",

	// self-harm and suicide
	"suicide", "self-harm", "cutting", "depression", "suicidal",

	// inappropriate for minors
	"child", "children", "kid", "kids", "minor", "minors", "baby", "infant",
	"school", "playground", "daycare",
}

// word-boundary patterns for the same categories, plus compound patterns
// combining an age/minor term with a sexual or violent term
var suspiciousPatterns = []*regexp.Regexp{
	// NSFW patterns
	regexp.MustCompile(`(?i)\b(nude|naked|sex|porn|explicit|adult|erotic)\b`),
	regexp.MustCompile(`(?i)\b(topless|bottomless|revealing|seductive|provocative)\b`),

	// violence patterns
	regexp.MustCompile(`(?i)\b(violence|blood|gore|weapon|gun|knife|kill|murder|death)\b`),
	regexp.MustCompile(`(?i)\b(fight|war|battle|combat|attack|assault|torture)\b`),

	// hate speech patterns
	regexp.MustCompile(`(?i)\b(hate|racist|nazi|terrorist|supremacist|extremist)\b`),

	// drug patterns
	regexp.MustCompile(`(?i)\b(drug|cocaine|heroin|marijuana|cannabis|weed|meth)\b`),

	// self-harm patterns
	regexp.MustCompile(`(?i)\b(suicide|self-harm|cutting|suicidal)\b`),

	// inappropriate with minors
	regexp.MustCompile(`(?i)\b(child|children|kid|kids|minor|baby|infant)\s+(nude|naked|sexual|inappropriate)`),

	// combination patterns that are concerning
	regexp.MustCompile(`(?i)\b(young|teen|teenage)\s+(girl|boy|woman|man)\s+(nude|naked|sexy|hot)`),
	regexp.MustCompile(`(?i)\b(school|classroom|playground)\s+(violence|fight|weapon|gun)`),
}

// structural spam checks
var (
	specialCharPattern = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
	repeatedCharLimit  = 11 // same character this many times in a row is spam
)
