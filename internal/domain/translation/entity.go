package translation

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/urbavisu/urbavisu-api/internal/pkg/i18n"
)

// Translation is one UI string in every supported language.
type Translation struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Key       string    `db:"key" json:"key"`
	FR        string    `db:"fr" json:"fr"`
	DE        string    `db:"de" json:"de"`
	IT        string    `db:"it" json:"it"`
	EN        string    `db:"en" json:"en"`
	Category  string    `db:"category" json:"category"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Text returns the string for locale, or the French one when it is empty.
func (t Translation) Text(locale i18n.Locale) string {
	var text string
	switch locale {
	case i18n.DE:
		text = t.DE
	case i18n.IT:
		text = t.IT
	case i18n.EN:
		text = t.EN
	}
	if text == "" {
		return t.FR
	}
	return text
}

// Input is the admin-editable part of a translation.
type Input struct {
	Key      string `json:"key" validate:"required,max=255"`
	FR       string `json:"fr" validate:"required"`
	DE       string `json:"de"`
	IT       string `json:"it"`
	EN       string `json:"en"`
	Category string `json:"category" validate:"max=100"`
}

func (in Input) normalized() Input {
	in.Key = strings.TrimSpace(in.Key)
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		in.Category = "general"
	}
	return in
}

func (in Input) apply(t *Translation) {
	t.Key = in.Key
	t.FR = in.FR
	t.DE = in.DE
	t.IT = in.IT
	t.EN = in.EN
	t.Category = in.Category
}
