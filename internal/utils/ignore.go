package utils

import (
	"bufio"
	"os"
	"strings"
)

// IgnoreList holds path fragments excluded from library scans
type IgnoreList struct {
	terms []string
}

// LoadIgnoreList loads ignore terms from a file
func LoadIgnoreList(path string) (*IgnoreList, error) {
	// If file doesn't exist, return empty list
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &IgnoreList{terms: []string{}}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var terms []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		term := strings.TrimSpace(scanner.Text())
		if term != "" && !strings.HasPrefix(term, "#") {
			terms = append(terms, term)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &IgnoreList{terms: terms}, nil
}

// IsIgnored checks if a path matches any ignore term
// Returns (isIgnored, matchedTerm)
func (l *IgnoreList) IsIgnored(path string) (bool, string) {
	pathLower := strings.ToLower(path)

	for _, term := range l.terms {
		termLower := strings.ToLower(term)
		if strings.Contains(pathLower, termLower) {
			return true, term
		}
	}

	return false, ""
}
