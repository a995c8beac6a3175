// Package dedup flags probable re-entry of an existing job application.
//
// Everything here is a pure function of its inputs: no storage access, no logging.
package dedup

import (
	"strings"

	"github.com/ternarybob/applytrack/internal/models"
)

const (
	// MaxEditDistance is the largest Levenshtein distance still considered similar
	MaxEditDistance = 3

	// MinFuzzyLength is the length both strings must exceed before edit distance applies
	MinFuzzyLength = 5
)

// Normalize lowercases, trims and collapses internal whitespace runs to a single space
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// IsSimilar compares two already normalized strings.
// Similar means equal, one containing the other, or within MaxEditDistance edits
// when both are longer than MinFuzzyLength. The relation is symmetric.
func IsSimilar(a, b string) bool {
	if a == b {
		return true
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	if runeLen(a) > MinFuzzyLength && runeLen(b) > MinFuzzyLength {
		return Levenshtein(a, b) <= MaxEditDistance
	}
	return false
}

// Levenshtein returns the edit distance between a and b with unit insert, delete and replace costs
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// single row DP over b
	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		diag := row[0]
		row[0] = i
		for j := 1; j <= len(rb); j++ {
			above := row[j]
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			row[j] = min(row[j]+1, row[j-1]+1, diag+cost)
			diag = above
		}
	}

	return row[len(rb)]
}

// FindDuplicates scans records for probable duplicates of the given job name and company.
// The record whose id equals excludeID is skipped so a record being edited never flags itself.
//
// When both sides carry a company, job name and company must both be similar.
// Otherwise only an exact normalized job name match counts; there is deliberately
// no fuzzy fallback without company context.
func FindDuplicates(records []*models.JobRecord, jobName, companyName, excludeID string) []*models.JobRecord {
	name := Normalize(jobName)
	if name == "" {
		return []*models.JobRecord{}
	}
	company := Normalize(companyName)

	matches := make([]*models.JobRecord, 0)
	for _, record := range records {
		if record == nil {
			continue
		}
		if excludeID != "" && record.ID == excludeID {
			continue
		}

		candidateName := Normalize(record.JobName)
		if candidateName == "" {
			continue
		}
		candidateCompany := Normalize(record.CompanyName)

		if company != "" && candidateCompany != "" {
			if IsSimilar(name, candidateName) && IsSimilar(company, candidateCompany) {
				matches = append(matches, record)
			}
			continue
		}

		if name == candidateName {
			matches = append(matches, record)
		}
	}

	return matches
}

func runeLen(s string) int {
	return len([]rune(s))
}
