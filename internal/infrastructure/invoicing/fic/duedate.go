package fic

import "time"

// TermsEndOfMonth makes the due date fall on the last day of the month
// reached by adding the payment terms.
const TermsEndOfMonth = "end_of_month"

// DueDate computes a payment due date from the issue date, the payment
// terms in days and the terms type configured on the client.
func DueDate(from time.Time, termsDays int, termsType string) time.Time {
	due := from.AddDate(0, 0, termsDays)
	if termsType == TermsEndOfMonth {
		due = time.Date(due.Year(), due.Month()+1, 0, 0, 0, 0, 0, due.Location())
	}
	return due
}
