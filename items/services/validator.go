package services

import "fmt"

// ValidationReport maps a draft's batch index to its violations. Drafts
// without an entry are eligible for upload.
type ValidationReport map[int][]string

// Valid reports whether no draft has a violation.
func (r ValidationReport) Valid() bool {
	for _, msgs := range r {
		if len(msgs) > 0 {
			return false
		}
	}
	return true
}

// ViolationCount is the total number of messages across all drafts.
func (r ValidationReport) ViolationCount() int {
	n := 0
	for _, msgs := range r {
		n += len(msgs)
	}
	return n
}

// ValidateDrafts checks every draft and size variant, collecting all
// violations rather than stopping at the first.
func ValidateDrafts(drafts []ProductDraft) ValidationReport {
	report := make(ValidationReport)
	for i, d := range drafts {
		if msgs := validateDraft(d); len(msgs) > 0 {
			report[i] = msgs
		}
	}
	return report
}

func validateDraft(d ProductDraft) []string {
	var msgs []string
	if d.ProductName == "" {
		msgs = append(msgs, "Product name is required")
	}
	if d.Title == "" {
		msgs = append(msgs, "Title is required")
	}
	if d.Description == "" {
		msgs = append(msgs, "Description is required")
	}
	if len(d.Sizes) == 0 {
		msgs = append(msgs, "At least one size is required")
	}

	for i, s := range d.Sizes {
		pos := i + 1
		if s.Size == "" {
			msgs = append(msgs, fmt.Sprintf("Size %d: Size name is required", pos))
		}
		if s.Quantity <= 0 {
			msgs = append(msgs, fmt.Sprintf("Size %d: Quantity must be greater than 0", pos))
		}
		if !s.RegularPrice.IsPositive() {
			msgs = append(msgs, fmt.Sprintf("Size %d: Regular price must be greater than 0", pos))
		}
	}
	return msgs
}
