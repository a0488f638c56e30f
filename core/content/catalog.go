package content

// The learning catalog ships with the binary: language courses and activities
// are defined here and referenced by ID from progress records. Managed lessons
// (see models.go) complement the catalog with admin-authored content.

import (
	"fmt"
	"strconv"
	"strings"
)

type (
	ItemKind string

	// CatalogItem is a single learnable item of a language course:
	// a letter, a word, a number or a phrase.
	CatalogItem struct {
		ID      string   `json:"id"`
		Kind    ItemKind `json:"kind"`
		Level   int      `json:"level"`
		Value   string   `json:"value"`
		Latin   string   `json:"latin,omitempty"`   // transliteration
		Meaning string   `json:"meaning,omitempty"` // English meaning or example
		Points  int      `json:"points"`
	}

	LanguageCourse struct {
		Code       string        `json:"code"`
		Name       string        `json:"name"`
		NativeName string        `json:"native_name"`
		RTL        bool          `json:"rtl,omitempty"`
		Items      []CatalogItem `json:"items"`
	}

	Category string

	// Activity is a themed learning unit (game-like exercise set) of a module.
	Activity struct {
		ID       string   `json:"id"`
		Title    string   `json:"title"`
		Category Category `json:"category"`
		Module   string   `json:"module"`
		MinAge   int      `json:"min_age"`
		MaxAge   int      `json:"max_age"`
		Level    int      `json:"level"`
		Points   int      `json:"points"`
	}

	// ActivityRef is the unified lookup result for any completable catalog
	// entry, be it a course item or an activity.
	ActivityRef struct {
		ID     string
		Module string
		Level  int
		Points int
	}
)

const (
	ItemLetter ItemKind = "letter"
	ItemNumber ItemKind = "number"
	ItemWord   ItemKind = "word"
	ItemPhrase ItemKind = "phrase"
)

const (
	CategoryLanguage Category = "language"
	CategoryMath     Category = "math"
	CategoryScience  Category = "science"
	CategorySocial   Category = "social"
	CategoryArt      Category = "art"
	CategoryMusic    Category = "music"
	CategoryLogic    Category = "logic"
)

var Categories = []Category{
	CategoryLanguage, CategoryMath, CategoryScience, CategorySocial,
	CategoryArt, CategoryMusic, CategoryLogic,
}

// default points per item kind
const (
	letterPoints = 2
	numberPoints = 2
	wordPoints   = 3
	phrasePoints = 5
)

var Languages = []LanguageCourse{
	{
		Code:       "english",
		Name:       "English",
		NativeName: "English",
		Items: joinItems(
			englishLetters,
			numbers("english", []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"}),
			words("english",
				word("cat", "cat", "", "Cat"),
				word("dog", "dog", "", "Dog"),
				word("sun", "sun", "", "Sun"),
				word("moon", "moon", "", "Moon"),
				word("star", "star", "", "Star"),
				word("tree", "tree", "", "Tree"),
				word("book", "book", "", "Book"),
				word("milk", "milk", "", "Milk"),
			),
			phrases("english",
				phrase("hello", "Hello", "", "Hello"),
				phrase("thank-you", "Thank you", "", "Thank you"),
				phrase("good-morning", "Good morning", "", "Good morning"),
				phrase("good-night", "Good night", "", "Good night"),
			),
		),
	},
	{
		Code:       "hindi",
		Name:       "Hindi",
		NativeName: "हिन्दी",
		Items: joinItems(
			letters("hindi",
				letter("a", "अ", "a", "Vowel"),
				letter("aa", "आ", "aa", "Vowel"),
				letter("i", "इ", "i", "Vowel"),
				letter("ee", "ई", "ee", "Vowel"),
				letter("u", "उ", "u", "Vowel"),
				letter("oo", "ऊ", "oo", "Vowel"),
				letter("e", "ए", "e", "Vowel"),
				letter("ai", "ऐ", "ai", "Vowel"),
				letter("o", "ओ", "o", "Vowel"),
				letter("au", "औ", "au", "Vowel"),
				letter("ka", "क", "ka", "Consonant"),
				letter("kha", "ख", "kha", "Consonant"),
				letter("ga", "ग", "ga", "Consonant"),
				letter("cha", "च", "cha", "Consonant"),
				letter("ja", "ज", "ja", "Consonant"),
				letter("ta", "त", "ta", "Consonant"),
				letter("da", "द", "da", "Consonant"),
				letter("na", "न", "na", "Consonant"),
				letter("pa", "प", "pa", "Consonant"),
				letter("ba", "ब", "ba", "Consonant"),
				letter("ma", "म", "ma", "Consonant"),
				letter("ya", "य", "ya", "Consonant"),
				letter("ra", "र", "ra", "Consonant"),
				letter("la", "ल", "la", "Consonant"),
				letter("sa", "स", "sa", "Consonant"),
				letter("ha", "ह", "ha", "Consonant"),
			),
			numbers("hindi", []string{"ek", "do", "teen", "chaar", "paanch", "chhah", "saat", "aath", "nau", "das"},
				"१", "२", "३", "४", "५", "६", "७", "८", "९", "१०"),
			words("hindi",
				word("paani", "पानी", "paani", "Water"),
				word("ghar", "घर", "ghar", "Home"),
				word("maa", "माँ", "maa", "Mother"),
				word("kitaab", "किताब", "kitaab", "Book"),
				word("sooraj", "सूरज", "sooraj", "Sun"),
			),
			phrases("hindi",
				phrase("namaste", "नमस्ते", "namaste", "Hello"),
				phrase("dhanyavaad", "धन्यवाद", "dhanyavaad", "Thank you"),
				phrase("shubh-raatri", "शुभ रात्रि", "shubh raatri", "Good night"),
			),
		),
	},
	{
		Code:       "arabic",
		Name:       "Arabic",
		NativeName: "العربية",
		RTL:        true,
		Items: joinItems(
			letters("arabic",
				letter("alif", "ا", "alif", ""),
				letter("ba", "ب", "ba", ""),
				letter("ta", "ت", "ta", ""),
				letter("tha", "ث", "tha", ""),
				letter("jeem", "ج", "jeem", ""),
				letter("hha", "ح", "hha", ""),
				letter("kha", "خ", "kha", ""),
				letter("dal", "د", "dal", ""),
				letter("dhal", "ذ", "dhal", ""),
				letter("ra", "ر", "ra", ""),
				letter("zay", "ز", "zay", ""),
				letter("seen", "س", "seen", ""),
				letter("sheen", "ش", "sheen", ""),
				letter("sad", "ص", "sad", ""),
				letter("dad", "ض", "dad", ""),
				letter("tta", "ط", "tta", ""),
				letter("zza", "ظ", "zza", ""),
				letter("ain", "ع", "ain", ""),
				letter("ghain", "غ", "ghain", ""),
				letter("fa", "ف", "fa", ""),
				letter("qaf", "ق", "qaf", ""),
				letter("kaf", "ك", "kaf", ""),
				letter("lam", "ل", "lam", ""),
				letter("meem", "م", "meem", ""),
				letter("noon", "ن", "noon", ""),
				letter("ha", "ه", "ha", ""),
				letter("waw", "و", "waw", ""),
				letter("ya", "ي", "ya", ""),
			),
			numbers("arabic", []string{"wahid", "ithnan", "thalatha", "arbaa", "khamsa", "sitta", "sabaa", "thamaniya", "tisaa", "ashara"},
				"١", "٢", "٣", "٤", "٥", "٦", "٧", "٨", "٩", "١٠"),
			words("arabic",
				word("maa", "ماء", "maa", "Water"),
				word("bayt", "بيت", "bayt", "House"),
				word("shams", "شمس", "shams", "Sun"),
				word("qamar", "قمر", "qamar", "Moon"),
				word("kitab", "كتاب", "kitab", "Book"),
			),
			phrases("arabic",
				phrase("marhaban", "مرحبا", "marhaban", "Hello"),
				phrase("shukran", "شكرا", "shukran", "Thank you"),
			),
		),
	},
	{
		Code:       "spanish",
		Name:       "Spanish",
		NativeName: "Español",
		Items: joinItems(
			letters("spanish",
				letter("a", "A", "ah", "Avión"),
				letter("e", "E", "eh", "Elefante"),
				letter("i", "I", "ee", "Isla"),
				letter("o", "O", "oh", "Oso"),
				letter("u", "U", "oo", "Uva"),
				letter("enye", "Ñ", "enye", "Niño"),
			),
			numbers("spanish", []string{"uno", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho", "nueve", "diez"}),
			words("spanish",
				word("agua", "agua", "", "Water"),
				word("casa", "casa", "", "House"),
				word("sol", "sol", "", "Sun"),
				word("luna", "luna", "", "Moon"),
				word("gato", "gato", "", "Cat"),
				word("perro", "perro", "", "Dog"),
			),
			phrases("spanish",
				phrase("hola", "Hola", "", "Hello"),
				phrase("gracias", "Gracias", "", "Thank you"),
				phrase("buenos-dias", "Buenos días", "", "Good morning"),
				phrase("buenas-noches", "Buenas noches", "", "Good night"),
			),
		),
	},
	{
		Code:       "malayalam",
		Name:       "Malayalam",
		NativeName: "മലയാളം",
		Items: joinItems(
			letters("malayalam",
				letter("a", "അ", "a", "Vowel"),
				letter("aa", "ആ", "aa", "Vowel"),
				letter("i", "ഇ", "i", "Vowel"),
				letter("ee", "ഈ", "ee", "Vowel"),
				letter("u", "ഉ", "u", "Vowel"),
				letter("oo", "ഊ", "oo", "Vowel"),
				letter("e", "എ", "e", "Vowel"),
				letter("o", "ഒ", "o", "Vowel"),
				letter("ka", "ക", "ka", "Consonant"),
				letter("ga", "ഗ", "ga", "Consonant"),
				letter("cha", "ച", "cha", "Consonant"),
				letter("ta", "ത", "ta", "Consonant"),
				letter("na", "ന", "na", "Consonant"),
				letter("pa", "പ", "pa", "Consonant"),
				letter("ma", "മ", "ma", "Consonant"),
				letter("ya", "യ", "ya", "Consonant"),
				letter("ra", "ര", "ra", "Consonant"),
				letter("la", "ല", "la", "Consonant"),
				letter("va", "വ", "va", "Consonant"),
				letter("sa", "സ", "sa", "Consonant"),
			),
			numbers("malayalam", []string{"onnu", "randu", "moonnu", "naalu", "anchu", "aaru", "ezhu", "ettu", "onpathu", "pathu"}),
			words("malayalam",
				word("vellam", "വെള്ളം", "vellam", "Water"),
				word("veedu", "വീട്", "veedu", "House"),
				word("amma", "അമ്മ", "amma", "Mother"),
				word("sooryan", "സൂര്യൻ", "sooryan", "Sun"),
				word("pusthakam", "പുസ്തകം", "pusthakam", "Book"),
			),
			phrases("malayalam",
				phrase("namaskaram", "നമസ്കാരം", "namaskaram", "Hello"),
				phrase("nandi", "നന്ദി", "nandi", "Thank you"),
			),
		),
	},
}

var Activities = []Activity{
	{ID: "alphabet_adventure", Title: "Alphabet Adventure", Category: CategoryLanguage, Module: "english", MinAge: 2, MaxAge: 5, Level: 1, Points: 10},
	{ID: "animal_safari", Title: "Animal Safari", Category: CategoryScience, Module: "science", MinAge: 3, MaxAge: 7, Level: 1, Points: 10},
	{ID: "arabic_learning", Title: "Arabic Learning", Category: CategoryLanguage, Module: "arabic", MinAge: 4, MaxAge: 10, Level: 1, Points: 10},
	{ID: "art_studio", Title: "Art Studio", Category: CategoryArt, Module: "art", MinAge: 3, MaxAge: 8, Level: 1, Points: 10},
	{ID: "body_parts", Title: "Body Parts", Category: CategoryScience, Module: "science", MinAge: 2, MaxAge: 6, Level: 1, Points: 10},
	{ID: "color_match", Title: "Color Match", Category: CategoryArt, Module: "art", MinAge: 2, MaxAge: 5, Level: 1, Points: 10},
	{ID: "community_helpers", Title: "Community Helpers", Category: CategorySocial, Module: "social", MinAge: 4, MaxAge: 8, Level: 2, Points: 10},
	{ID: "counting_train", Title: "Counting Train", Category: CategoryMath, Module: "math", MinAge: 2, MaxAge: 5, Level: 1, Points: 10},
	{ID: "daily_routine", Title: "Daily Routine", Category: CategorySocial, Module: "social", MinAge: 3, MaxAge: 7, Level: 1, Points: 10},
	{ID: "emotion_explorer", Title: "Emotion Explorer", Category: CategorySocial, Module: "social", MinAge: 3, MaxAge: 8, Level: 2, Points: 10},
	{ID: "english_learning", Title: "English Learning", Category: CategoryLanguage, Module: "english", MinAge: 2, MaxAge: 10, Level: 1, Points: 10},
	{ID: "family_tree", Title: "Family Tree", Category: CategorySocial, Module: "social", MinAge: 3, MaxAge: 8, Level: 1, Points: 10},
	{ID: "fruit_basket", Title: "Fruit Basket", Category: CategoryScience, Module: "science", MinAge: 2, MaxAge: 6, Level: 1, Points: 10},
	{ID: "healthy_habits", Title: "Healthy Habits", Category: CategoryScience, Module: "science", MinAge: 3, MaxAge: 8, Level: 2, Points: 10},
	{ID: "logic_puzzles", Title: "Logic Puzzles", Category: CategoryLogic, Module: "logic", MinAge: 4, MaxAge: 10, Level: 3, Points: 15},
	{ID: "malayalam_learning", Title: "Malayalam Learning", Category: CategoryLanguage, Module: "malayalam", MinAge: 4, MaxAge: 10, Level: 1, Points: 10},
	{ID: "math_adventure", Title: "Math Adventure", Category: CategoryMath, Module: "math", MinAge: 4, MaxAge: 10, Level: 2, Points: 15},
	{ID: "memory_cards", Title: "Memory Cards", Category: CategoryLogic, Module: "logic", MinAge: 3, MaxAge: 8, Level: 1, Points: 10},
	{ID: "music_maker", Title: "Music Maker", Category: CategoryMusic, Module: "music", MinAge: 2, MaxAge: 8, Level: 1, Points: 10},
	{ID: "nature_walk", Title: "Nature Walk", Category: CategoryScience, Module: "science", MinAge: 3, MaxAge: 8, Level: 1, Points: 10},
	{ID: "number_garden", Title: "Number Garden", Category: CategoryMath, Module: "math", MinAge: 2, MaxAge: 6, Level: 1, Points: 10},
	{ID: "pattern_builder", Title: "Pattern Builder", Category: CategoryLogic, Module: "logic", MinAge: 3, MaxAge: 7, Level: 2, Points: 10},
	{ID: "pet_parade", Title: "Pet Parade", Category: CategoryScience, Module: "science", MinAge: 2, MaxAge: 6, Level: 1, Points: 10},
	{ID: "physical_fun", Title: "Physical Fun", Category: CategoryScience, Module: "science", MinAge: 2, MaxAge: 8, Level: 1, Points: 10},
	{ID: "pizza_fractions", Title: "Pizza Fractions", Category: CategoryMath, Module: "math", MinAge: 5, MaxAge: 10, Level: 3, Points: 15},
	{ID: "rhyme_time", Title: "Rhyme Time", Category: CategoryLanguage, Module: "english", MinAge: 3, MaxAge: 7, Level: 2, Points: 10},
	{ID: "science_lab", Title: "Science Lab", Category: CategoryScience, Module: "science", MinAge: 5, MaxAge: 10, Level: 3, Points: 15},
	{ID: "shape_explorer", Title: "Shape Explorer", Category: CategoryMath, Module: "math", MinAge: 2, MaxAge: 6, Level: 1, Points: 10},
	{ID: "simple_puzzles", Title: "Simple Puzzles", Category: CategoryLogic, Module: "logic", MinAge: 2, MaxAge: 5, Level: 1, Points: 10},
	{ID: "size_sort", Title: "Size Sort", Category: CategoryMath, Module: "math", MinAge: 2, MaxAge: 5, Level: 1, Points: 10},
	{ID: "social_skills", Title: "Social Skills", Category: CategorySocial, Module: "social", MinAge: 3, MaxAge: 8, Level: 2, Points: 10},
	{ID: "story_sequencing", Title: "Story Sequencing", Category: CategoryLanguage, Module: "english", MinAge: 4, MaxAge: 9, Level: 2, Points: 10},
	{ID: "toy_box", Title: "Toy Box", Category: CategoryLogic, Module: "logic", MinAge: 2, MaxAge: 5, Level: 1, Points: 10},
	{ID: "transportation", Title: "Transportation", Category: CategorySocial, Module: "social", MinAge: 3, MaxAge: 7, Level: 1, Points: 10},
	{ID: "vegetable_garden", Title: "Vegetable Garden", Category: CategoryScience, Module: "science", MinAge: 2, MaxAge: 6, Level: 1, Points: 10},
	{ID: "weather_watcher", Title: "Weather Watcher", Category: CategoryScience, Module: "science", MinAge: 3, MaxAge: 8, Level: 2, Points: 10},
}

var (
	languagesByCode map[string]*LanguageCourse
	activityRefs    map[string]ActivityRef
	knownModules    map[string]bool
)

func init() {
	languagesByCode = make(map[string]*LanguageCourse, len(Languages))
	activityRefs = make(map[string]ActivityRef)
	knownModules = make(map[string]bool)

	for i := range Languages {
		lang := &Languages[i]
		languagesByCode[lang.Code] = lang
		knownModules[lang.Code] = true
		for _, item := range lang.Items {
			activityRefs[item.ID] = ActivityRef{
				ID:     item.ID,
				Module: lang.Code,
				Level:  item.Level,
				Points: item.Points,
			}
		}
	}
	for _, act := range Activities {
		knownModules[act.Module] = true
		activityRefs[act.ID] = ActivityRef{
			ID:     act.ID,
			Module: act.Module,
			Level:  act.Level,
			Points: act.Points,
		}
	}
}

// FindLanguage returns the course for the given language code.
func FindLanguage(code string) (LanguageCourse, bool) {
	if lang, ok := languagesByCode[code]; ok {
		return *lang, true
	}
	return LanguageCourse{}, false
}

// LookupActivity resolves any completable ID (course item or activity).
func LookupActivity(id string) (ActivityRef, bool) {
	ref, ok := activityRefs[id]
	return ref, ok
}

// KnownModule tells whether `module` is a valid progress module.
func KnownModule(module string) bool {
	return knownModules[module]
}

// Modules returns all valid progress module names.
func Modules() []string {
	mods := make([]string, 0, len(knownModules))
	for mod := range knownModules {
		mods = append(mods, mod)
	}
	return mods
}

// FilterActivities returns activities matching the given category (empty for
// all) that are age-appropriate for `age` (0 for all ages).
func FilterActivities(category Category, age int) []Activity {
	acts := make([]Activity, 0, len(Activities))
	for _, act := range Activities {
		if category != "" && act.Category != category {
			continue
		}
		if age > 0 && (age < act.MinAge || age > act.MaxAge) {
			continue
		}
		acts = append(acts, act)
	}
	return acts
}

// catalog item builders

func letter(id, value, latin, meaning string) CatalogItem {
	return CatalogItem{ID: id, Kind: ItemLetter, Level: 1, Value: value, Latin: latin, Meaning: meaning, Points: letterPoints}
}

func word(id, value, latin, meaning string) CatalogItem {
	return CatalogItem{ID: id, Kind: ItemWord, Level: 3, Value: value, Latin: latin, Meaning: meaning, Points: wordPoints}
}

func phrase(id, value, latin, meaning string) CatalogItem {
	return CatalogItem{ID: id, Kind: ItemPhrase, Level: 4, Value: value, Latin: latin, Meaning: meaning, Points: phrasePoints}
}

// letters prefixes item IDs with "<lang>-letter-".
func letters(lang string, items ...CatalogItem) []CatalogItem {
	for i := range items {
		items[i].ID = lang + "-letter-" + items[i].ID
	}
	return items
}

// words prefixes item IDs with "<lang>-word-".
func words(lang string, items ...CatalogItem) []CatalogItem {
	for i := range items {
		items[i].ID = lang + "-word-" + items[i].ID
	}
	return items
}

// phrases prefixes item IDs with "<lang>-phrase-".
func phrases(lang string, items ...CatalogItem) []CatalogItem {
	for i := range items {
		items[i].ID = lang + "-phrase-" + items[i].ID
	}
	return items
}

// numbers builds the 1..10 number items of a course; values default to the
// arabic numerals unless native numerals are given.
func numbers(lang string, latin []string, native ...string) []CatalogItem {
	items := make([]CatalogItem, 0, len(latin))
	for i, lat := range latin {
		value := strconv.Itoa(i + 1)
		if i < len(native) {
			value = native[i]
		}
		items = append(items, CatalogItem{
			ID:      fmt.Sprintf("%s-number-%d", lang, i+1),
			Kind:    ItemNumber,
			Level:   2,
			Value:   value,
			Latin:   lat,
			Meaning: strconv.Itoa(i + 1),
			Points:  numberPoints,
		})
	}
	return items
}

func joinItems(groups ...[]CatalogItem) []CatalogItem {
	var items []CatalogItem
	for _, group := range groups {
		items = append(items, group...)
	}
	return items
}

var englishLetters = buildEnglishLetters()

func buildEnglishLetters() []CatalogItem {
	examples := []string{
		"Apple", "Ball", "Cat", "Dog", "Elephant", "Fish", "Goat", "Hat", "Ice cream",
		"Jug", "Kite", "Lion", "Moon", "Nest", "Orange", "Pig", "Queen", "Rabbit",
		"Sun", "Tree", "Umbrella", "Van", "Watch", "Xylophone", "Yak", "Zebra",
	}
	items := make([]CatalogItem, 0, len(examples))
	for i, example := range examples {
		char := rune('a' + i)
		items = append(items, CatalogItem{
			ID:      fmt.Sprintf("english-letter-%c", char),
			Kind:    ItemLetter,
			Level:   1,
			Value:   strings.ToUpper(string(char)),
			Meaning: example,
			Points:  letterPoints,
		})
	}
	return items
}
