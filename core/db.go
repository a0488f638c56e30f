package core

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// Pagination is applied by repositories as LIMIT/OFFSET.
type Pagination struct {
	Limit  int
	Offset int
}

func (p Pagination) IsZero() bool { return p.Limit == 0 && p.Offset == 0 }
