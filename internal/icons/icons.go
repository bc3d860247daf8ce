// Package icons is the fixed registry of category icons.
package icons

// Key identifies a registered icon.
type Key string

// Registered icon keys.
const (
	Food          Key = "food"
	Transport     Key = "transport"
	Shopping      Key = "shopping"
	Bills         Key = "bills"
	Health        Key = "health"
	Entertainment Key = "entertainment"
	Education     Key = "education"
	Salary        Key = "salary"
	Gift          Key = "gift"
	Investment    Key = "investment"
	Other         Key = "other"
)

// Icon is a registered icon handle.
type Icon struct {
	Key   Key
	Glyph string
	Label string
}

var registry = map[Key]Icon{
	Food:          {Key: Food, Glyph: "🍔", Label: "Food"},
	Transport:     {Key: Transport, Glyph: "🚌", Label: "Transport"},
	Shopping:      {Key: Shopping, Glyph: "🛍", Label: "Shopping"},
	Bills:         {Key: Bills, Glyph: "🧾", Label: "Bills"},
	Health:        {Key: Health, Glyph: "💊", Label: "Health"},
	Entertainment: {Key: Entertainment, Glyph: "🎬", Label: "Entertainment"},
	Education:     {Key: Education, Glyph: "🎓", Label: "Education"},
	Salary:        {Key: Salary, Glyph: "💼", Label: "Salary"},
	Gift:          {Key: Gift, Glyph: "🎁", Label: "Gift"},
	Investment:    {Key: Investment, Glyph: "📈", Label: "Investment"},
	Other:         {Key: Other, Glyph: "🏷", Label: "Other"},
}

var order = []Key{Food, Transport, Shopping, Bills, Health, Entertainment, Education, Salary, Gift, Investment, Other}

// Lookup returns the icon registered under key.
func Lookup(key string) (Icon, bool) {
	icon, ok := registry[Key(key)]
	return icon, ok
}

// Resolve returns the icon registered under key, falling back to Other.
func Resolve(key string) Icon {
	if icon, ok := Lookup(key); ok {
		return icon
	}
	return registry[Other]
}

// All returns every registered icon in display order.
func All() []Icon {
	out := make([]Icon, 0, len(order))
	for _, k := range order {
		out = append(out, registry[k])
	}
	return out
}
