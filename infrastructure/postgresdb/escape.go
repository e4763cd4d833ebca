package postgresdb

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	dangerousChars    = regexp.MustCompile(`[;'"\\()]`)
	identifierPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
)

// QuoteIdentifier validates and quotes a SQL identifier, optionally in
// schema.table form. Anything that does not look like a plain identifier is
// rejected so dynamic field names can never smuggle SQL into a query.
func QuoteIdentifier(name string) (string, error) {
	if dangerousChars.MatchString(name) {
		return "", fmt.Errorf("identifier contains dangerous characters: %s", name)
	}

	segments := strings.Split(name, ".")
	if len(segments) > 2 {
		return "", fmt.Errorf("invalid identifier format (too many segments): %s", name)
	}

	quoted := make([]string, len(segments))
	for i, segment := range segments {
		if !identifierPattern.MatchString(segment) {
			return "", fmt.Errorf("invalid identifier segment at position %d: %s", i, segment)
		}
		quoted[i] = fmt.Sprintf(`"%s"`, segment)
	}

	return strings.Join(quoted, "."), nil
}
