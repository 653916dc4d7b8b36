package paging

// Sizes are the supported local page sizes.
var Sizes = []int{10, 25, 50}

// DefaultSize is the local page size used when none is configured.
const DefaultSize = 25

// PageCount returns the number of local pages needed for n records,
// zero when there are none.
func PageCount(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Pager owns the local page index and size.
type Pager struct {
	page int // zero-based local page index
	size int
}

// NewPager creates a pager at page 0. A size outside Sizes falls back
// to DefaultSize.
func NewPager(size int) *Pager {
	return &Pager{size: validSize(size)}
}

func validSize(size int) int {
	for _, s := range Sizes {
		if s == size {
			return s
		}
	}
	return DefaultSize
}

// Page returns the zero-based local page index.
func (p *Pager) Page() int { return p.page }

// Size returns the local page size.
func (p *Pager) Size() int { return p.size }

// Slice returns the half-open record index range [start, end) for the
// current page given the filtered record count.
func (p *Pager) Slice(filteredCount int) (start, end int) {
	start = p.page * p.size
	if start > filteredCount {
		start = filteredCount
	}
	end = start + p.size
	if end > filteredCount {
		end = filteredCount
	}
	return start, end
}

// First jumps to the first page.
func (p *Pager) First() { p.page = 0 }

// Prev moves one page back, stopping at 0.
func (p *Pager) Prev() {
	if p.page > 0 {
		p.page--
	}
}

// Next moves one page forward, stopping at the last page.
func (p *Pager) Next(pageCount int) {
	if p.page < pageCount-1 {
		p.page++
	}
}

// Last jumps to the last page.
func (p *Pager) Last(pageCount int) {
	if pageCount > 0 {
		p.page = pageCount - 1
	} else {
		p.page = 0
	}
}

// Reset returns to page 0. Used when the filter key changes and no
// cached entry exists for the new key.
func (p *Pager) Reset() { p.page = 0 }

// SetSize changes the local page size, keeping the first row of the
// current page visible rather than snapping back to page 0.
func (p *Pager) SetSize(size int) {
	firstRow := p.page * p.size
	p.size = validSize(size)
	p.page = firstRow / p.size
}

// Restore moves back to saved after a merge when it is still a valid
// page. An out-of-range index is clamped to the last page; it is never
// forced to page 0, which would lose the user's place entirely.
func (p *Pager) Restore(saved, pageCount int) {
	switch {
	case saved >= 0 && saved < pageCount:
		p.page = saved
	case pageCount > 0:
		p.page = pageCount - 1
	default:
		p.page = 0
	}
}

// Clamp pulls the current page back into range after the filtered set
// shrank (tighter search, smaller result set).
func (p *Pager) Clamp(pageCount int) {
	p.Restore(p.page, pageCount)
}

// NeedsMore reports whether another server page should be fetched: the
// user is on the last or second-to-last local page of the filtered set,
// and the accumulated count is a nonzero exact multiple of the server
// page size (a partial last server page proves exhaustion). This is a
// heuristic; the API's true total is unknown.
func (p *Pager) NeedsMore(filteredCount, accumulatedCount, serverPageSize int) bool {
	if accumulatedCount <= 0 || serverPageSize <= 0 {
		return false
	}
	if accumulatedCount%serverPageSize != 0 {
		return false
	}
	pageCount := PageCount(filteredCount, p.size)
	return p.page >= pageCount-2
}
