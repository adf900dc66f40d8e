// Package data provides data management functionality for the Skillscape application.
// This file contains the standard code grammar: parsing, validation and
// generation of the letter-dot-number codes that identify standards.
package data

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"skillscape/local-app/pkg/model"
)

// LevelOf returns the hierarchy depth encoded in a code, which is the number
// of dot separators it contains. A bare group letter is level 0, a top-level
// standard like "A.1" is level 1 and "A.1.2" is level 2.
func LevelOf(code string) int {
	return strings.Count(code, ".")
}

// ParentCodeOf returns the code prefix before the last dot, or an empty
// string when the code has no dot.
func ParentCodeOf(code string) string {
	idx := strings.LastIndex(code, ".")
	if idx < 0 {
		return ""
	}
	return code[:idx]
}

// ValidateGroupCode checks that code is a single letter A to Z.
func ValidateGroupCode(code string) error {
	if len(code) != 1 || code[0] < 'A' || code[0] > 'Z' {
		return fmt.Errorf("group code %q is not a single letter A-Z: %w", code, ErrMalformedCode)
	}
	return nil
}

// ValidateCode checks a standard code against the grammar: a group letter
// followed by one or more dot-separated integer segments.
func ValidateCode(code string) error {
	segments := strings.Split(code, ".")
	if len(segments) < 2 {
		return fmt.Errorf("standard code %q has no numeric segment: %w", code, ErrMalformedCode)
	}
	if err := ValidateGroupCode(segments[0]); err != nil {
		return fmt.Errorf("standard code %q does not start with a group letter: %w", code, ErrMalformedCode)
	}
	for _, segment := range segments[1:] {
		if !isDigits(segment) {
			return fmt.Errorf("standard code %q has non-numeric segment %q: %w", code, segment, ErrMalformedCode)
		}
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NextSiblingCode returns the next free code under prefix given the codes of
// the existing siblings. It finds the highest trailing numeric segment among
// codes of the form prefix.N and returns prefix.(highest+1), so the first
// child of "A.1" is "A.1.1" and the sibling after "A.9" is "A.10". Codes that
// do not sit directly under prefix, or whose trailing segment is not numeric,
// are skipped.
func NextSiblingCode(siblingCodes []string, prefix string) string {
	highestIndex := 0
	for _, code := range siblingCodes {
		rest, ok := strings.CutPrefix(code, prefix+".")
		if !ok || strings.Contains(rest, ".") {
			continue
		}
		if lastPart, err := strconv.Atoi(rest); err == nil && lastPart > highestIndex {
			highestIndex = lastPart
		}
	}
	return fmt.Sprintf("%s.%d", prefix, highestIndex+1)
}

// GenerateNewCode derives the code for a new standard. When parentCode is
// given the new code goes under it, numbered after the highest existing
// child. Otherwise, when groupLetter is given, the new code goes at the top
// level of that group. With neither the result is empty and the caller must
// reject the input.
func GenerateNewCode(standards []*model.Standard, parentCode, groupLetter string) string {
	switch {
	case parentCode != "":
		var siblings []string
		for _, s := range standards {
			if s.ParentCode == parentCode {
				siblings = append(siblings, s.Code)
			}
		}
		return NextSiblingCode(siblings, parentCode)
	case groupLetter != "":
		var siblings []string
		for _, s := range standards {
			if s.ParentCode == "" && strings.HasPrefix(s.Code, groupLetter+".") {
				siblings = append(siblings, s.Code)
			}
		}
		return NextSiblingCode(siblings, groupLetter)
	default:
		return ""
	}
}

// NextGroupCode returns the lowest letter A to Z not assigned to any existing
// group, or ErrGroupLettersExhausted when all 26 are taken.
func NextGroupCode(groups []*model.Group) (string, error) {
	used := make(map[string]bool, len(groups))
	for _, g := range groups {
		used[g.Code] = true
	}
	for letter := 'A'; letter <= 'Z'; letter++ {
		if !used[string(letter)] {
			return string(letter), nil
		}
	}
	return "", ErrGroupLettersExhausted
}

// CompareCodes orders two codes segment by segment, numerically where both
// segments are numbers, so "A.2" sorts before "A.10" and a shorter code
// sorts before its own descendants.
func CompareCodes(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] == bs[i] {
			continue
		}
		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])
		if aerr == nil && berr == nil {
			return an - bn
		}
		return strings.Compare(as[i], bs[i])
	}
	return len(as) - len(bs)
}

// SortCodes sorts codes in place into display order.
func SortCodes(codes []string) {
	sort.Slice(codes, func(i, j int) bool {
		return CompareCodes(codes[i], codes[j]) < 0
	})
}
