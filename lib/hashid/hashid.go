// Package hashid identifies the crypt(3) family that produced a stored password hash.
package hashid

// Algorithm represents the hash family a stored password hash belongs to.
type Algorithm int

const (
	// Unknown is for hashes whose prefix matches none of the known families.
	// It is the zero value so an unclassified hash can never alias a real family.
	Unknown Algorithm = iota
	// DES is the traditional 13 character crypt(3) hash with no `$` prefix.
	DES
	// NT is the `$3$` NTHASH format.
	NT
	// MD5 is the `$1$` md5crypt format.
	MD5
	// SHA256 is the `$5$` sha256crypt format.
	SHA256
	// SHA512 is the `$6$` sha512crypt format.
	SHA512
	// Yescrypt is the `$y$` format.
	Yescrypt
	// GostYescrypt is the `$gy$` format.
	GostYescrypt
	// Bcrypt is the `$2b$` format.
	Bcrypt

	// NumAlgorithms is the number of Algorithm values, Unknown included.
	NumAlgorithms
)

// String returns the display name of an Algorithm.
func (a Algorithm) String() string {
	switch a {
	case DES:
		return "DES"
	case NT:
		return "NT"
	case MD5:
		return "MD5"
	case SHA256:
		return "SHA256"
	case SHA512:
		return "SHA512"
	case Yescrypt:
		return "YESCRYPT"
	case GostYescrypt:
		return "GOST_YESCRYPT"
	case Bcrypt:
		return "BCRYPT"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether a is one of the enumerated values.
func (a Algorithm) Valid() bool {
	return a >= Unknown && a < NumAlgorithms
}

// All returns every Algorithm in report order: the known families first, Unknown last.
func All() []Algorithm {
	return []Algorithm{DES, NT, MD5, SHA256, SHA512, Yescrypt, GostYescrypt, Bcrypt, Unknown}
}

// prefixRule maps the characters following the leading `$` to a family.
type prefixRule struct {
	ident     string
	algorithm Algorithm
}

// NOTE: The first rule whose ident prefixes the text after `$` wins. `2b` is matched
// exactly; `$2a$` and `$2y$` fall through to Unknown.
//
//nolint:gochecknoglobals // Prefix table
var prefixRules = []prefixRule{
	{"3", NT},
	{"1", MD5},
	{"5", SHA256},
	{"6", SHA512},
	{"y", Yescrypt},
	{"gy", GostYescrypt},
	{"2b", Bcrypt},
}

// Classify returns the Algorithm of a stored hash by inspecting its prefix.
// It is a pure function; empty input and unmatched `$` prefixes yield Unknown.
func Classify(text string) Algorithm {
	if text == "" {
		return Unknown
	}

	if text[0] != '$' {
		return DES
	}

	rest := text[1:]
	for _, rule := range prefixRules {
		if len(rest) >= len(rule.ident) && rest[:len(rule.ident)] == rule.ident {
			return rule.algorithm
		}
	}

	return Unknown
}
