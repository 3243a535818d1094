package textproc

// stopwords contains French function words, auxiliaries and review
// boilerplate that carry no topical value.
var stopwords = map[string]struct{}{
	// Articles and determiners
	"le": {}, "la": {}, "les": {}, "un": {}, "une": {}, "des": {}, "du": {},
	"de": {}, "d": {}, "l": {}, "au": {}, "aux": {}, "ce": {}, "cet": {},
	"cette": {}, "ces": {}, "mon": {}, "ma": {}, "mes": {}, "ton": {},
	"ta": {}, "tes": {}, "son": {}, "sa": {}, "ses": {}, "notre": {},
	"nos": {}, "votre": {}, "vos": {}, "leur": {}, "leurs": {},
	// Pronouns
	"je": {}, "j": {}, "tu": {}, "il": {}, "elle": {}, "on": {}, "nous": {},
	"vous": {}, "ils": {}, "elles": {}, "me": {}, "m": {}, "te": {}, "t": {},
	"se": {}, "s": {}, "lui": {}, "y": {}, "en": {}, "moi": {}, "toi": {},
	"qui": {}, "que": {}, "qu": {}, "quoi": {}, "dont": {}, "où": {},
	"c": {}, "ça": {}, "cela": {}, "ceci": {}, "celui": {}, "celle": {},
	// Prepositions and conjunctions
	"à": {}, "et": {}, "ou": {}, "mais": {}, "donc": {}, "or": {}, "ni": {},
	"car": {}, "avec": {}, "pour": {}, "dans": {}, "sur": {}, "par": {},
	"sans": {}, "sous": {}, "chez": {}, "vers": {}, "entre": {}, "depuis": {},
	"pendant": {}, "avant": {}, "après": {}, "comme": {}, "quand": {},
	"si": {}, "lors": {},
	// Negation and adverbs
	"ne": {}, "n": {}, "pas": {}, "plus": {}, "très": {}, "trop": {},
	"bien": {}, "tout": {}, "tous": {}, "toute": {}, "toutes": {},
	"aussi": {}, "encore": {}, "déjà": {}, "même": {}, "alors": {},
	"ici": {}, "là": {}, "peu": {}, "beaucoup": {}, "vraiment": {},
	"jamais": {}, "toujours": {}, "rien": {},
	// Auxiliaries and light verbs
	"est": {}, "sont": {}, "été": {}, "être": {}, "était": {}, "suis": {},
	"avons": {}, "avez": {}, "ont": {}, "ai": {}, "as": {}, "a": {},
	"avait": {}, "avoir": {}, "fait": {}, "faire": {}, "va": {}, "vais": {},
	"peut": {}, "dit": {},
	// Review boilerplate
	"merci": {}, "bonjour": {}, "fois": {}, "chose": {},
}

// IsStopword reports whether a lower-cased word is a French stopword.
func IsStopword(w string) bool {
	_, ok := stopwords[w]
	return ok
}
