// Package entities contains core business entities.
package entities

// Officer is a municipal staff account belonging to an office.
type Officer struct {
	ID       int64
	Username string
	Office   string
	Workload int64
}

// ExternalMaintainer is a contractor account scoped to one category.
type ExternalMaintainer struct {
	ID       int64
	Username string
	Company  string
	Category Category
	Workload int64
}

// Candidate is an assignment candidate with its current workload.
type Candidate struct {
	ID       int64
	Workload int64
}
