package annotation

// Pagination tracks the page shown by a paginated viewer. Pages are 1-based.
type Pagination struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

func newPagination() Pagination {
	return Pagination{Current: 1, Total: 1}
}

// SetTotal records the page count reported by the viewer and pulls the
// current page back into range.
func (p *Pagination) SetTotal(total int) {
	if total < 1 {
		total = 1
	}
	p.Total = total
	if p.Current > total {
		p.Current = total
	}
	if p.Current < 1 {
		p.Current = 1
	}
}

func (p Pagination) HasNext() bool     { return p.Current < p.Total }
func (p Pagination) HasPrevious() bool { return p.Current > 1 }

func (p *Pagination) Next() {
	if p.HasNext() {
		p.Current++
	}
}

func (p *Pagination) Previous() {
	if p.HasPrevious() {
		p.Current--
	}
}
