package reporting

// DashboardStats is the admin overview: stock, circulation, and money
// outstanding, in one payload.
type DashboardStats struct {
	TotalBooks       int    `json:"total_books"`
	AvailableCopies  int    `json:"available_copies"`
	IssuedCopies     int    `json:"issued_copies"`
	DamagedCopies    int    `json:"damaged_copies"`
	ActiveBorrows    int    `json:"active_borrows"`
	OverdueBorrows   int    `json:"overdue_borrows"`
	ActiveHolds      int    `json:"active_holds"`
	TotalStudents    int    `json:"total_students"`
	TotalTeachers    int    `json:"total_teachers"`
	UnpaidFinesTotal string `json:"unpaid_fines_total"`
}

// UserSummary is the borrower's own circulation snapshot.
type UserSummary struct {
	OpenBorrows int `json:"open_borrows"`
	UnpaidFines int `json:"unpaid_fines"`
	ActiveHolds int `json:"active_holds"`
	BorrowLimit int `json:"borrow_limit"`
}
