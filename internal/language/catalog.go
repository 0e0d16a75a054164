// Package language provides the supported language catalog, language
// detection and cached translation.
package language

import (
	"fmt"
	"strings"

	xlanguage "golang.org/x/text/language"

	"github.com/nadzzz/coachd/internal/message"
)

// Catalog categories, in display order.
const (
	CategoryPopular        = "popular"
	CategoryIndianRegional = "indian-regional"
	CategoryInternational  = "international"
)

// Categories lists every category in display order.
var Categories = []string{CategoryPopular, CategoryIndianRegional, CategoryInternational}

// supported is the append-only language table.
var supported = []message.Language{
	{Code: "en", Name: "English", NativeName: "English", Category: CategoryPopular},
	{Code: "es", Name: "Spanish", NativeName: "Español", Category: CategoryPopular},
	{Code: "fr", Name: "French", NativeName: "Français", Category: CategoryPopular},
	{Code: "de", Name: "German", NativeName: "Deutsch", Category: CategoryPopular},
	{Code: "zh", Name: "Chinese", NativeName: "中文", Category: CategoryPopular},
	{Code: "ja", Name: "Japanese", NativeName: "日本語", Category: CategoryPopular},
	{Code: "ko", Name: "Korean", NativeName: "한국어", Category: CategoryPopular},
	{Code: "pt", Name: "Portuguese", NativeName: "Português", Category: CategoryPopular},
	{Code: "ru", Name: "Russian", NativeName: "Русский", Category: CategoryPopular},
	{Code: "it", Name: "Italian", NativeName: "Italiano", Category: CategoryPopular},

	{Code: "hi", Name: "Hindi", NativeName: "हिन्दी", Category: CategoryIndianRegional},
	{Code: "bn", Name: "Bengali", NativeName: "বাংলা", Category: CategoryIndianRegional},
	{Code: "te", Name: "Telugu", NativeName: "తెలుగు", Category: CategoryIndianRegional},
	{Code: "mr", Name: "Marathi", NativeName: "मराठी", Category: CategoryIndianRegional},
	{Code: "ta", Name: "Tamil", NativeName: "தமிழ்", Category: CategoryIndianRegional},
	{Code: "gu", Name: "Gujarati", NativeName: "ગુજરાતી", Category: CategoryIndianRegional},
	{Code: "kn", Name: "Kannada", NativeName: "ಕನ್ನಡ", Category: CategoryIndianRegional},
	{Code: "ml", Name: "Malayalam", NativeName: "മലയാളം", Category: CategoryIndianRegional},
	{Code: "or", Name: "Odia", NativeName: "ଓଡ଼ିଆ", Category: CategoryIndianRegional},
	{Code: "pa", Name: "Punjabi", NativeName: "ਪੰਜਾਬੀ", Category: CategoryIndianRegional},
	{Code: "as", Name: "Assamese", NativeName: "অসমীয়া", Category: CategoryIndianRegional},
	{Code: "ur", Name: "Urdu", NativeName: "اردو", Category: CategoryIndianRegional, RTL: true},
	{Code: "sa", Name: "Sanskrit", NativeName: "संस्कृतम्", Category: CategoryIndianRegional},
	{Code: "ks", Name: "Kashmiri", NativeName: "कॉशुर", Category: CategoryIndianRegional},
	{Code: "sd", Name: "Sindhi", NativeName: "سنڌي", Category: CategoryIndianRegional, RTL: true},
	{Code: "ne", Name: "Nepali", NativeName: "नेपाली", Category: CategoryIndianRegional},
	{Code: "si", Name: "Sinhala", NativeName: "සිංහල", Category: CategoryIndianRegional},
	{Code: "my", Name: "Burmese", NativeName: "မြန်မာ", Category: CategoryIndianRegional},

	{Code: "ar", Name: "Arabic", NativeName: "العربية", Category: CategoryInternational, RTL: true},
	{Code: "he", Name: "Hebrew", NativeName: "עברית", Category: CategoryInternational, RTL: true},
	{Code: "fa", Name: "Persian", NativeName: "فارسی", Category: CategoryInternational, RTL: true},
	{Code: "tr", Name: "Turkish", NativeName: "Türkçe", Category: CategoryInternational},
	{Code: "nl", Name: "Dutch", NativeName: "Nederlands", Category: CategoryInternational},
	{Code: "sv", Name: "Swedish", NativeName: "Svenska", Category: CategoryInternational},
	{Code: "da", Name: "Danish", NativeName: "Dansk", Category: CategoryInternational},
	{Code: "no", Name: "Norwegian", NativeName: "Norsk", Category: CategoryInternational},
	{Code: "fi", Name: "Finnish", NativeName: "Suomi", Category: CategoryInternational},
	{Code: "pl", Name: "Polish", NativeName: "Polski", Category: CategoryInternational},
	{Code: "cs", Name: "Czech", NativeName: "Čeština", Category: CategoryInternational},
	{Code: "sk", Name: "Slovak", NativeName: "Slovenčina", Category: CategoryInternational},
	{Code: "hu", Name: "Hungarian", NativeName: "Magyar", Category: CategoryInternational},
	{Code: "ro", Name: "Romanian", NativeName: "Română", Category: CategoryInternational},
	{Code: "bg", Name: "Bulgarian", NativeName: "Български", Category: CategoryInternational},
	{Code: "hr", Name: "Croatian", NativeName: "Hrvatski", Category: CategoryInternational},
	{Code: "sr", Name: "Serbian", NativeName: "Српски", Category: CategoryInternational},
	{Code: "sl", Name: "Slovenian", NativeName: "Slovenščina", Category: CategoryInternational},
	{Code: "et", Name: "Estonian", NativeName: "Eesti", Category: CategoryInternational},
	{Code: "lv", Name: "Latvian", NativeName: "Latviešu", Category: CategoryInternational},
	{Code: "lt", Name: "Lithuanian", NativeName: "Lietuvių", Category: CategoryInternational},
	{Code: "el", Name: "Greek", NativeName: "Ελληνικά", Category: CategoryInternational},
	{Code: "th", Name: "Thai", NativeName: "ไทย", Category: CategoryInternational},
	{Code: "vi", Name: "Vietnamese", NativeName: "Tiếng Việt", Category: CategoryInternational},
	{Code: "id", Name: "Indonesian", NativeName: "Bahasa Indonesia", Category: CategoryInternational},
	{Code: "ms", Name: "Malay", NativeName: "Bahasa Melayu", Category: CategoryInternational},
	{Code: "tl", Name: "Filipino", NativeName: "Filipino", Category: CategoryInternational},
	{Code: "sw", Name: "Swahili", NativeName: "Kiswahili", Category: CategoryInternational},
	{Code: "af", Name: "Afrikaans", NativeName: "Afrikaans", Category: CategoryInternational},
}

// Catalog is an immutable, indexed language table.
type Catalog struct {
	langs  []message.Language
	byCode map[string]int
	byName map[string]int // lowercased display and native names
}

// NewCatalog indexes langs. It rejects duplicate codes and unknown categories.
func NewCatalog(langs []message.Language) (*Catalog, error) {
	c := &Catalog{
		langs:  make([]message.Language, len(langs)),
		byCode: make(map[string]int, len(langs)),
		byName: make(map[string]int, 2*len(langs)),
	}
	copy(c.langs, langs)
	for i, l := range c.langs {
		if l.Code == "" || l.Name == "" {
			return nil, fmt.Errorf("catalog entry %d: code and name are required", i)
		}
		if _, dup := c.byCode[l.Code]; dup {
			return nil, fmt.Errorf("catalog: duplicate code %q", l.Code)
		}
		if !validCategory(l.Category) {
			return nil, fmt.Errorf("catalog: %q has unknown category %q", l.Code, l.Category)
		}
		c.byCode[l.Code] = i
		c.byName[strings.ToLower(l.Name)] = i
		if l.NativeName != "" {
			if _, taken := c.byName[strings.ToLower(l.NativeName)]; !taken {
				c.byName[strings.ToLower(l.NativeName)] = i
			}
		}
	}
	return c, nil
}

var defaultCatalog = mustCatalog(supported)

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog { return defaultCatalog }

func mustCatalog(langs []message.Language) *Catalog {
	c, err := NewCatalog(langs)
	if err != nil {
		panic(err)
	}
	return c
}

func validCategory(cat string) bool {
	for _, c := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// All returns a copy of every language in catalog order.
func (c *Catalog) All() []message.Language {
	out := make([]message.Language, len(c.langs))
	copy(out, c.langs)
	return out
}

// Len returns the number of languages.
func (c *Catalog) Len() int { return len(c.langs) }

// Resolve maps a language identifier to its catalog code. It accepts catalog
// codes in any case, BCP 47 tags ("en-US", "pt_BR") and display or native
// names ("Hindi", "हिन्दी").
func (c *Catalog) Resolve(id string) (string, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", false
	}
	lower := strings.ToLower(id)
	if _, ok := c.byCode[lower]; ok {
		return lower, true
	}
	if i, ok := c.byName[lower]; ok {
		return c.langs[i].Code, true
	}
	tag, err := xlanguage.Parse(strings.ReplaceAll(id, "_", "-"))
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	if _, ok := c.byCode[base.String()]; ok {
		return base.String(), true
	}
	return "", false
}

// Lookup returns the catalog entry for id (see Resolve).
func (c *Catalog) Lookup(id string) (message.Language, bool) {
	code, ok := c.Resolve(id)
	if !ok {
		return message.Language{}, false
	}
	return c.langs[c.byCode[code]], true
}

// Name returns the display name for code, or code itself when unknown.
func (c *Catalog) Name(code string) string {
	if l, ok := c.Lookup(code); ok {
		return l.Name
	}
	return code
}

// ByCategory groups the catalog by category in display order.
func (c *Catalog) ByCategory() []message.LanguageGroup {
	return Group(c.langs)
}

// Group partitions langs by category in display order, preserving the
// relative order within each category. Empty categories are omitted.
func Group(langs []message.Language) []message.LanguageGroup {
	groups := make([]message.LanguageGroup, 0, len(Categories))
	for _, cat := range Categories {
		var members []message.Language
		for _, l := range langs {
			if l.Category == cat {
				members = append(members, l)
			}
		}
		if len(members) > 0 {
			groups = append(groups, message.LanguageGroup{Category: cat, Languages: members})
		}
	}
	return groups
}

// Search returns languages whose code, name or native name contains q,
// case-insensitively. An empty query returns the whole catalog.
func (c *Catalog) Search(q string) []message.Language {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return c.All()
	}
	var out []message.Language
	for _, l := range c.langs {
		if strings.Contains(strings.ToLower(l.Code), q) ||
			strings.Contains(strings.ToLower(l.Name), q) ||
			strings.Contains(strings.ToLower(l.NativeName), q) {
			out = append(out, l)
		}
	}
	return out
}
