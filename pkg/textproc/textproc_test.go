package textproc_test

import (
	"testing"

	"github.com/aladaia/vocan/pkg/textproc"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		msg, input, want string
	}{
		{"lower case", "Sophie MARTIN", "sophie martin"},
		{"keeps accents", "Hélène Lefèvre", "hélène lefèvre"},
		{"collapses spaces", "  Marc \t Dupont\n", "marc dupont"},
		{"decomposed accents composed", "He\u0301le\u0300ne", "hélène"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, textproc.Normalize(tt.input), tt.msg)
	}

	assert.NotEqual(t,
		textproc.Normalize("Hélène"), textproc.Normalize("Helene"),
		"normalization is diacritic-sensitive")
}

func TestFold(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Réparation", "reparation"},
		{"Qualité du NLP", "qualite du nlp"},
		{"He\u0301le\u0300ne", "helene"},
		{"Ça va", "ca va"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, textproc.Fold(tt.input), tt.input)
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		msg   string
		input string
		want  []string
	}{
		{
			msg:   "simple sentence",
			input: "Merci pour le conseil !",
			want:  []string{"merci", "pour", "le", "conseil"},
		},
		{
			msg:   "elision splits",
			input: "Je n'étais pas satisfait",
			want:  []string{"je", "n", "étais", "pas", "satisfait"},
		},
		{
			msg:   "hyphenated words stay",
			input: "Magasin en sous-effectif -- vraiment",
			want:  []string{"magasin", "en", "sous-effectif", "vraiment"},
		},
		{
			msg:   "placeholders are skipped",
			input: "Merci [PERSONNE_1], écrivez à [EMAIL]",
			want:  []string{"merci", "écrivez", "à"},
		},
		{
			msg:   "digits separate",
			input: "vélo 29pouces",
			want:  []string{"vélo", "pouces"},
		},
		{
			msg:   "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, textproc.Words(tt.input))
		})
	}
}

func TestTokensOffsets(t *testing.T) {
	s := "Super accueil, vendeur compétent"
	for _, tok := range textproc.Tokens(s) {
		assert.Equal(t, tok.Text, textproc.Normalize(s[tok.Start:tok.End]))
	}
}

func TestContentWords(t *testing.T) {
	res := textproc.ContentWords("Le vendeur et la caisse sont au top", 3)
	assert.Equal(t, []string{"vendeur", "caisse", "top"}, res)
}

func TestStem(t *testing.T) {
	tests := []struct {
		word string
		n    int
		want string
	}{
		{"réparation", 5, "répar"},
		{"réparer", 5, "répar"},
		{"prix", 5, "prix"},
		{"vélo", 0, "vélo"},
		{"", 3, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, textproc.Stem(tt.word, tt.n), tt.word)
	}
}
