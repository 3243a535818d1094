package tagging

// Option changes settings of a Deriver.
type Option func(*Deriver)

// OptTopK sets the maximum number of derived tags.
func OptTopK(n int) Option {
	return func(d *Deriver) {
		if n > 0 {
			d.topK = n
		}
	}
}

// OptMinSupport sets how many reviews must contain a term for it to become
// a candidate.
func OptMinSupport(n int) Option {
	return func(d *Deriver) {
		if n > 0 {
			d.minSupport = n
		}
	}
}

// OptStemRunes sets the length of the prefix stem used to group terms.
func OptStemRunes(n int) Option {
	return func(d *Deriver) {
		if n > 0 {
			d.stemRunes = n
		}
	}
}

// OptMaxSamples sets how many sample reviews are kept per tag.
func OptMaxSamples(n int) Option {
	return func(d *Deriver) {
		if n >= 0 {
			d.maxSamples = n
		}
	}
}

// OptExclude sets a predicate of words that never become tag terms,
// usually sentiment lexicon terms.
func OptExclude(fn func(string) bool) Option {
	return func(d *Deriver) {
		if fn != nil {
			d.exclude = fn
		}
	}
}
