// AngelaMos | 2026
// pagination.go

package client

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Pager tracks which page of a server-paginated list is showing. It holds
// no items; callers re-request the list with Page and Size whenever a
// move reports a change.
type Pager struct {
	size  int
	count int
	page  int
}

func NewPager(size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return &Pager{size: size, page: 1}
}

func (p *Pager) Page() int  { return p.page }
func (p *Pager) Size() int  { return p.size }
func (p *Pager) Count() int { return p.count }

// TotalPages is ceil(count / size).
func (p *Pager) TotalPages() int {
	return (p.count + p.size - 1) / p.size
}

// Pages lists the page numbers 1..TotalPages.
func (p *Pager) Pages() []int {
	total := p.TotalPages()
	pages := make([]int, total)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// SetCount records the total the server reported and pulls the current
// page back into range. It reports whether the page moved.
func (p *Pager) SetCount(count int) bool {
	if count < 0 {
		count = 0
	}
	p.count = count
	return p.clamp()
}

func (p *Pager) clamp() bool {
	last := max(p.TotalPages(), 1)
	before := p.page
	p.page = min(max(p.page, 1), last)
	return p.page != before
}

// JumpTo moves to page n. Jumping to the current page or outside
// 1..TotalPages does nothing.
func (p *Pager) JumpTo(n int) bool {
	if n == p.page || n < 1 || n > p.TotalPages() {
		return false
	}
	p.page = n
	return true
}

func (p *Pager) Prev() bool {
	if p.page <= 1 {
		return false
	}
	p.page--
	return true
}

func (p *Pager) Next() bool {
	if p.page >= p.TotalPages() {
		return false
	}
	p.page++
	return true
}

// Reset goes back to page 1, as a new search or filter does.
func (p *Pager) Reset() bool {
	if p.page == 1 {
		return false
	}
	p.page = 1
	return true
}
